package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/pwtransformer/pkg/errors"
	"github.com/arthur-debert/pwtransformer/pkg/logging"
	"github.com/arthur-debert/pwtransformer/pkg/rules"
)

// DefaultDir is the config directory used when none is given, relative to
// the working directory.
const DefaultDir = "config"

// Loaded is everything read from a config directory.
type Loaded struct {
	Dir          string
	SettingsFile string
	Settings     *Settings
	Sources      rules.Sources
	Boilerplate  rules.Boilerplate
	RuleSet      *rules.RuleSet
}

// Load reads settings, rule files and boilerplate from dir and compiles the
// rule set. An empty dir means DefaultDir.
func Load(dir string, overrides map[string]interface{}) (*Loaded, error) {
	logger := logging.GetLogger("config")
	if dir == "" {
		dir = DefaultDir
	}

	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Missing(dir,
				"create the config directory with the rule files and boilerplate, or pass its location with --config")
		}
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot access config directory %s", dir).
			WithDetail(errors.DetailPath, dir)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrConfigLoad, "config path is not a directory: %s", dir).
			WithDetail(errors.DetailPath, dir)
	}

	defer logging.LogOperationStart(logger, "load config")()

	settings, err := LoadSettings(dir, overrides)
	if err != nil {
		return nil, err
	}

	l := &Loaded{
		Dir:          dir,
		SettingsFile: SettingsFile(dir),
		Settings:     settings,
	}
	r := resources{dir: dir}
	f := settings.Files

	if l.Sources.Fill, err = readRules[rules.FillPattern](r.required(f.FillPatterns), KindFillPatterns); err != nil {
		return nil, err
	}
	if l.Sources.Replace, err = readRules[rules.ReplaceText](r.required(f.ReplaceTexts), KindReplaceTexts); err != nil {
		return nil, err
	}
	if l.Sources.Insert, err = readRules[rules.InsertLines](r.required(f.InsertLines), KindInsertLines); err != nil {
		return nil, err
	}
	if l.Sources.PreProcessors, err = readRules[rules.PreProcessor](r.optional(f.PreProcessor), KindPreProcessor); err != nil {
		return nil, err
	}
	if l.Sources.Skip, err = readRules[rules.SkipPattern](r.internal(f.SkipPatterns, skipPatterns), KindSkipPatterns); err != nil {
		return nil, err
	}

	bp := &l.Boilerplate
	if bp.Prepend, err = r.required(f.Prepend).lines(); err != nil {
		return nil, err
	}
	if bp.TestStart, err = r.required(f.TestStart).lines(); err != nil {
		return nil, err
	}
	if bp.OpenPortal, err = r.internal(f.OpenPortal, openPortal).lines(); err != nil {
		return nil, err
	}
	if bp.TestEnd, err = r.internal(f.TestScriptEnd, testScriptEnd).lines(); err != nil {
		return nil, err
	}

	l.RuleSet, err = rules.Compile(l.Sources, settings.RuleOptions(), l.Boilerplate)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("dir", dir).
		Int("fill", len(l.RuleSet.Fill)).
		Int("replace", len(l.RuleSet.Replace)).
		Int("insert", len(l.RuleSet.Insert)).
		Int("skip", len(l.RuleSet.Skip)).
		Msg("Configuration loaded")
	return l, nil
}

// resources resolves named files in the config directory.
type resources struct {
	dir string
}

// resource is the outcome of resolving one named file: its content, or the
// error that resolving produced.
type resource struct {
	name string
	path string
	data []byte
	err  error
}

func (r resources) read(name string) resource {
	res := resource{name: name, path: filepath.Join(r.dir, name)}
	data, err := os.ReadFile(res.path)
	if err != nil {
		res.err = err
		return res
	}
	res.data = data
	return res
}

// required fails with RESOURCE_MISSING when the file is absent.
func (r resources) required(name string) resource {
	res := r.read(name)
	if os.IsNotExist(res.err) {
		res.err = errors.Missing(res.path, "ensure '"+name+"' exists in the config directory")
	}
	return res
}

// optional yields no content when the file is absent.
func (r resources) optional(name string) resource {
	if name == "" {
		return resource{}
	}
	res := r.read(name)
	if os.IsNotExist(res.err) {
		res.err = nil
	}
	return res
}

// internal falls back to the built-in content when the file is absent.
func (r resources) internal(name string, builtin embedded) resource {
	fallback := resource{name: builtin.name, path: "embedded/" + builtin.name, data: builtin.data}
	if name == "" {
		return fallback
	}
	res := r.read(name)
	if os.IsNotExist(res.err) {
		return fallback
	}
	if res.err == nil {
		logger := logging.GetLogger("config")
		logger.Debug().Str("path", res.path).Msg("Built-in resource overridden")
	}
	return res
}

func (res resource) failure() error {
	if res.err == nil {
		return nil
	}
	if errors.GetErrorCode(res.err) != errors.ErrUnknown {
		return res.err
	}
	return errors.Wrapf(res.err, errors.ErrFileRead, "failed to read %s", res.path).
		WithDetail(errors.DetailPath, res.path)
}

// lines splits the content on newlines. Carriage returns and trailing
// newlines are dropped.
func (res resource) lines() ([]string, error) {
	if err := res.failure(); err != nil {
		return nil, err
	}
	text := strings.TrimRight(strings.ReplaceAll(string(res.data), "\r\n", "\n"), "\n")
	if text == "" {
		return nil, nil
	}
	return strings.Split(text, "\n"), nil
}

func readRules[T any](res resource, kind string) ([]T, error) {
	if err := res.failure(); err != nil {
		return nil, err
	}
	return DecodeRules[T](res.data, res.name, kind)
}
