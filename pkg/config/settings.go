package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/pwtransformer/pkg/errors"
	"github.com/arthur-debert/pwtransformer/pkg/logging"
	"github.com/arthur-debert/pwtransformer/pkg/rules"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix marks environment overrides. Sections and keys are joined
	// with a double underscore: PWT_NOISE__MAX_ITERATIONS=5.
	EnvPrefix = "PWT_"
	envDelim  = "__"

	// SettingsName is the base name of the optional settings file in the
	// config directory.
	SettingsName = "pwtransformer"
)

var settingsExts = []string{".toml", ".yaml", ".yml"}

// Settings is the scalar configuration of a run.
type Settings struct {
	Markers   rules.Markers `koanf:"markers"`
	Upload    rules.Upload  `koanf:"upload"`
	Noise     Noise         `koanf:"noise"`
	Discovery Discovery     `koanf:"discovery"`
	Files     Files         `koanf:"files"`
}

// Noise tunes the noise line filter.
type Noise struct {
	MaxIterations int `koanf:"max_iterations"`
}

// Discovery selects input scripts.
type Discovery struct {
	Extensions []string `koanf:"extensions"`
}

// Files names the rule and boilerplate resources inside the config directory.
type Files struct {
	FillPatterns  string `koanf:"fill_patterns"`
	ReplaceTexts  string `koanf:"replace_texts"`
	InsertLines   string `koanf:"insert_lines"`
	PreProcessor  string `koanf:"pre_processor"`
	SkipPatterns  string `koanf:"skip_patterns"`
	Prepend       string `koanf:"prepend"`
	TestStart     string `koanf:"test_start"`
	OpenPortal    string `koanf:"open_portal"`
	TestScriptEnd string `koanf:"test_script_end"`
}

// RuleOptions returns the settings rules.Compile needs.
func (s *Settings) RuleOptions() rules.Options {
	return rules.Options{
		Markers:            s.Markers,
		Upload:             s.Upload,
		NoiseMaxIterations: s.Noise.MaxIterations,
	}
}

// SettingsFile returns the settings file found in dir, or "" when there is none.
func SettingsFile(dir string) string {
	for _, ext := range settingsExts {
		path := filepath.Join(dir, SettingsName+ext)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// LoadSettings layers the built-in defaults, the settings file in dir (if
// any), PWT_ environment variables and overrides, in that order. Override
// keys use dotted paths such as "noise.max_iterations".
func LoadSettings(dir string, overrides map[string]interface{}) (*Settings, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Built-in defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to load built-in settings")
	}

	// 2. Settings file
	if path := SettingsFile(dir); path != "" {
		var parser koanf.Parser = toml.Parser()
		if filepath.Ext(path) != ".toml" {
			parser = kyaml.Parser()
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load settings from %s", path).
				WithDetail(errors.DetailPath, path)
		}
		logger.Debug().Str("path", path).Msg("Settings file loaded")
	}

	// 3. Environment
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, strings.ToLower(envDelim), ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment settings")
	}

	// 4. Overrides
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply setting overrides")
		}
	}

	var s Settings
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &s,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
				mapstructure.TextUnmarshallerHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &s, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode settings")
	}

	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Settings) validate() error {
	required := []struct{ key, value string }{
		{"markers.test_start", s.Markers.TestStart},
		{"markers.complete_test_file_name", s.Markers.CompleteTestFileName},
		{"markers.fill", s.Markers.Fill},
		{"upload.externalized_data", s.Upload.ExternalizedData},
		{"files.fill_patterns", s.Files.FillPatterns},
		{"files.replace_texts", s.Files.ReplaceTexts},
		{"files.insert_lines", s.Files.InsertLines},
		{"files.prepend", s.Files.Prepend},
		{"files.test_start", s.Files.TestStart},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return errors.Newf(errors.ErrConfigValid, "setting %s must not be empty", r.key).
				WithDetail("key", r.key)
		}
	}
	if s.Noise.MaxIterations < 0 {
		return errors.Newf(errors.ErrConfigValid, "noise.max_iterations must not be negative, got %d", s.Noise.MaxIterations).
			WithDetail("key", "noise.max_iterations")
	}
	return nil
}
