package config

import (
	_ "embed"
	"errors"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// Internal resources. A same-named file in the config directory replaces them.
var (
	//go:embed embedded/skip_patterns.json
	skipPatternsData []byte

	//go:embed embedded/open_portal.ts
	openPortalData []byte

	//go:embed embedded/test_script_end.ts
	testScriptEndData []byte

	skipPatterns  = embedded{name: "skip_patterns.json", data: skipPatternsData}
	openPortal    = embedded{name: "open_portal.ts", data: openPortalData}
	testScriptEnd = embedded{name: "test_script_end.ts", data: testScriptEndData}
)

// embedded is a built-in resource and the name it decodes under.
type embedded struct {
	name string
	data []byte
}

// GetDefaultsContent returns the built-in settings file.
func GetDefaultsContent() string {
	return string(defaultConfig)
}

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}
