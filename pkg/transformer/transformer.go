// Package transformer drives the whole pipeline over recorded scripts:
// discovery, per-file transformation with fresh state, output writing and
// error collection.
package transformer

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/arthur-debert/pwtransformer/pkg/datamap"
	"github.com/arthur-debert/pwtransformer/pkg/dispatcher"
	"github.com/arthur-debert/pwtransformer/pkg/errors"
	"github.com/arthur-debert/pwtransformer/pkg/filesystem"
	"github.com/arthur-debert/pwtransformer/pkg/handlers"
	"github.com/arthur-debert/pwtransformer/pkg/lines"
	"github.com/arthur-debert/pwtransformer/pkg/logging"
	"github.com/arthur-debert/pwtransformer/pkg/preview"
	"github.com/arthur-debert/pwtransformer/pkg/rules"
	"github.com/arthur-debert/pwtransformer/pkg/textutil"
	"github.com/rs/zerolog"
)

const (
	// TestCaseNameKey is the first field of every data record.
	TestCaseNameKey = "tcName"
	// DefaultTestCaseName is used when the script name has no TCnn prefix.
	DefaultTestCaseName = "TC01"
	// DefaultDataSourcePath is used when the data directory cannot be
	// related to the output directory.
	DefaultDataSourcePath = "@data"

	dataExt      = "json"
	specTSSuffix = ".spec.ts"
)

var testCasePrefix = regexp.MustCompile(`^(TC\d+)`)

// Options configures a run.
type Options struct {
	InputDir  string
	OutputDir string
	DataDir   string
	// Extensions selects which files under InputDir are scripts. Empty
	// means *.ts.
	Extensions []string
	// All processes every discovered script instead of only the first.
	All bool
	// DryRun transforms in memory and reports previews without writing.
	DryRun bool
}

// FileResult describes one transformed script.
type FileResult struct {
	Source   string
	Script   string
	Data     string
	Lines    int
	Fields   int
	Preview  preview.Result
	DryRun   bool
	Duration time.Duration
}

// FileError is a failure confined to one script.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

func (e FileError) Unwrap() error {
	return e.Err
}

// Result collects the outcome of a run.
type Result struct {
	Files  []FileResult
	Errors []FileError
}

// Success reports whether every script was transformed.
func (r *Result) Success() bool {
	return len(r.Errors) == 0
}

// Output is the in-memory result of transforming one script.
type Output struct {
	Script []string
	Data   []byte
	State  *handlers.State
}

// Transformer runs the pipeline with one RuleSet.
type Transformer struct {
	rules  *rules.RuleSet
	fs     *filesystem.FS
	logger zerolog.Logger
}

// New creates a transformer. The RuleSet is only read.
func New(rs *rules.RuleSet, fs *filesystem.FS) *Transformer {
	if fs == nil {
		fs = filesystem.NewOS()
	}
	return &Transformer{
		rules:  rs,
		fs:     fs,
		logger: logging.GetLogger("transformer"),
	}
}

// Run transforms the scripts under opts.InputDir. Errors that prevent any
// work are returned; failures of single scripts are collected in the result.
func (t *Transformer) Run(opts Options) (*Result, error) {
	if !t.fs.IsDir(opts.InputDir) {
		return nil, errors.Newf(errors.ErrInputNotFound, "input directory %s does not exist", opts.InputDir).
			WithDetail(errors.DetailPath, opts.InputDir)
	}

	files, err := t.fs.FindScripts(opts.InputDir, opts.Extensions...)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.Newf(errors.ErrNoInputFiles, "no scripts found in %s", opts.InputDir).
			WithDetail(errors.DetailPath, opts.InputDir)
	}
	if !opts.All {
		files = files[:1]
	}

	defer logging.LogOperationStart(t.logger, "run")()
	t.logger.Info().
		Str("input", opts.InputDir).
		Int("files", len(files)).
		Bool("dryRun", opts.DryRun).
		Msg("Transforming scripts")

	result := &Result{}
	for _, path := range files {
		fr, err := t.transformFile(path, opts)
		if err != nil {
			t.logger.Error().Err(err).Str("file", path).Msg("Transformation failed")
			result.Errors = append(result.Errors, FileError{Path: path, Err: err})
			continue
		}
		result.Files = append(result.Files, *fr)
	}

	t.logger.Info().
		Int("transformed", len(result.Files)).
		Int("failed", len(result.Errors)).
		Msg("Run complete")
	return result, nil
}

func (t *Transformer) transformFile(path string, opts Options) (*FileResult, error) {
	start := time.Now()

	script, err := t.fs.ReadLines(path)
	if err != nil {
		return nil, err
	}
	dest, err := filesystem.DestinationPath(path, opts.InputDir, opts.OutputDir, "")
	if err != nil {
		return nil, err
	}
	data, err := filesystem.DestinationPath(path, opts.InputDir, opts.DataDir, dataExt)
	if err != nil {
		return nil, err
	}

	out, err := t.TransformLines(script, handlers.Source{
		Path:           path,
		Dir:            opts.InputDir,
		DataSourcePath: DataSourcePath(dest, data),
	})
	if err != nil {
		return nil, err
	}

	fr := &FileResult{
		Source: path,
		Script: dest,
		Data:   data,
		Lines:  len(out.Script),
		Fields: out.State.Data.Len(),
		DryRun: opts.DryRun,
	}

	if opts.DryRun {
		name := path
		if rel, err := filepath.Rel(opts.InputDir, path); err == nil {
			name = rel
		}
		fr.Preview = preview.Lines(filepath.ToSlash(name), script, out.Script, preview.DefaultContext)
	} else {
		t.fs.RemoveIfExists(dest)
		t.fs.RemoveIfExists(data)
		if err := t.fs.WriteLines(dest, out.Script); err != nil {
			return nil, err
		}
		if err := t.fs.WriteFile(data, out.Data); err != nil {
			return nil, err
		}
	}

	fr.Duration = time.Since(start)
	t.logger.Debug().
		Str("file", path).
		Str("script", dest).
		Str("data", data).
		Int("fields", fr.Fields).
		Dur("duration", fr.Duration).
		Msg("Script transformed")
	return fr, nil
}

// TransformLines runs the line pipeline over one script with fresh state.
func (t *Transformer) TransformLines(script []string, src handlers.Source) (*Output, error) {
	rs := t.rules
	state := handlers.NewState()
	state.Data.PutUnique(TestCaseNameKey, TestCaseName(src.Path))

	body := lines.NewInsertEngine(rs.Insert).Apply(script)
	body = lines.RemoveNoise(body, rs.Skip, rs.NoiseMaxIterations)

	full := make([]string, 0, len(rs.Boilerplate.Prepend)+len(body))
	for _, l := range rs.Boilerplate.Prepend {
		if !textutil.IsBlank(l) {
			full = append(full, l)
		}
	}
	full = append(full, body...)

	ctx := handlers.NewContext(rs, src, state, full)
	for i := range full {
		ctx.Index = i
		if err := dispatcher.Dispatch(ctx); err != nil {
			return nil, errors.Wrapf(err, errors.ErrTransform, "cannot transform %s", src.Path).
				WithDetail(errors.DetailPath, src.Path)
		}
	}

	return &Output{
		Script: lines.CollapseBlankLines(ctx.Output()),
		Data:   datamap.MarshalRecords(state.Data),
		State:  state,
	}, nil
}

// TestCaseName returns the TCnn prefix of the script's base name.
func TestCaseName(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), specTSSuffix)
	if m := testCasePrefix.FindStringSubmatch(base); m != nil {
		return m[1]
	}
	return DefaultTestCaseName
}

// DataSourcePath is the import path from the script's directory to the data
// file's directory, without a leading ../ or ./. Scripts sharing the data
// file's directory get DefaultDataSourcePath.
func DataSourcePath(scriptPath, dataPath string) string {
	rel, err := filepath.Rel(filepath.Dir(scriptPath), filepath.Dir(dataPath))
	if err != nil {
		return DefaultDataSourcePath
	}
	rel = filepath.ToSlash(rel)
	if rel == "." {
		return DefaultDataSourcePath
	}
	switch {
	case strings.HasPrefix(rel, "../"):
		rel = strings.TrimPrefix(rel, "../")
	case strings.HasPrefix(rel, "./"):
		rel = strings.TrimPrefix(rel, "./")
	}
	if rel == "" {
		return DefaultDataSourcePath
	}
	return rel
}
