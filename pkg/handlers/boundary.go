package handlers

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/pwtransformer/pkg/logging"
	"github.com/arthur-debert/pwtransformer/pkg/rules"
	"github.com/arthur-debert/pwtransformer/pkg/textutil"
)

// TestCaseNameExpr is appended to the recorded test name so every run is
// labelled with the data record's test case name.
const TestCaseNameExpr = "${data['tcName']}"

// TestCaseStart replaces the recorded test() line with the test-start
// wrapper, carrying over the test name and any pre-processor lines
// configured for this script.
type TestCaseStart struct{}

func (TestCaseStart) Name() string { return TestCaseStartName }

func (TestCaseStart) Process(ctx *Context, line string) (string, bool, error) {
	logger := logging.GetLogger("handlers.testcase")
	m := ctx.Rules.Markers

	sm := rules.TestCaseNamePattern.FindStringSubmatch(line)
	if sm == nil {
		logger.Debug().Str("line", line).Msg("No test name found, wrapper kept as configured")
	}
	base := filepath.Base(ctx.Source.Path)

	for _, b := range ctx.Rules.Boilerplate.TestStart {
		switch {
		case sm != nil && m.TestCaseNameMatcher != "" && strings.Contains(b, m.TestCaseNameMatcher):
			ctx.Emit(textutil.ReplaceFirst(b, m.TestCaseNameMatcher, sm[1]+" "+TestCaseNameExpr))
		case m.S3UtilsInit != "" && strings.TrimSpace(b) == m.S3UtilsInit:
			ctx.Emit(b)
			for _, pp := range ctx.Rules.PreProcessors {
				if strings.EqualFold(pp.FileName, base) {
					logger.Debug().Str("file", base).Int("lines", len(pp.Lines)).Msg("Pre-processor lines injected")
					ctx.Emit(pp.Lines...)
				}
			}
		default:
			ctx.Emit(b)
		}
	}
	return "", false, nil
}

// CompleteFileName fills the data source path and the test case name into
// the header line that imports the data file.
type CompleteFileName struct{}

func (CompleteFileName) Name() string { return CompleteFileNameName }

func (CompleteFileName) Process(ctx *Context, line string) (string, bool, error) {
	m := ctx.Rules.Markers
	tcName := TestCaseFileName(ctx.Source.Path, ctx.Source.Dir)
	if m.DataSourcePathPlaceholder != "" {
		line = textutil.ReplaceFirst(line, m.DataSourcePathPlaceholder, ctx.Source.DataSourcePath)
	}
	line = textutil.ReplaceFirst(line, m.CompleteTestFileName, tcName)
	ctx.Emit(line)
	return "", false, nil
}

// TestCaseFileName is the script path relative to dir, in slash form, cut at
// the first dot (specs/login.spec.ts -> specs/login).
func TestCaseFileName(path, dir string) string {
	rel := filepath.ToSlash(path)
	if dir != "" {
		rel = strings.TrimPrefix(rel, strings.TrimSuffix(filepath.ToSlash(dir), "/")+"/")
	}
	if i := strings.Index(rel, "."); i >= 0 {
		rel = rel[:i]
	}
	return rel
}

// LastLine drops the script's final line and writes the test-end footer.
type LastLine struct{}

func (LastLine) Name() string { return LastLineName }

func (LastLine) Process(ctx *Context, _ string) (string, bool, error) {
	ctx.Emit(ctx.Rules.Boilerplate.TestEnd...)
	return "", false, nil
}
