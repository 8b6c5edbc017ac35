package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/pwtransformer/pkg/config"
	"github.com/arthur-debert/pwtransformer/pkg/errors"
	"github.com/arthur-debert/pwtransformer/pkg/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseFiles = map[string]string{
	"fill_patterns.json": `[
  {
    "regex": "getByTestId\\('([^']+)'\\)\\.fill\\('([^']*)'\\)",
    "groupNoForKey": "1",
    "groupNoForValue": 2,
    "nonUniqueKeys": "city"
  }
]`,
	"replace_texts.json": `[
  {"dataPrependedBy": "getByText('", "dataAppendedBy": "')", "isWholeWordMatch": "false"}
]`,
	"insert_lines.json": `[]`,
	"prepend.ts":        "import { test } from '@playwright/test';\r\nimport data from '__DATA_SOURCE_PATH__/__COMPLETE_TEST_FILE_NAME__.json';\n",
	"test_start.ts":     "test('__TEST_CASE_NAME__', async ({ page }) => {\n  const uniqueIndex = Date.now();\n",
}

// writeConfig creates a config directory holding baseFiles plus extra. An
// empty value in extra removes the base file.
func writeConfig(t *testing.T, extra map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	files := make(map[string]string, len(baseFiles)+len(extra))
	for name, content := range baseFiles {
		files[name] = content
	}
	for name, content := range extra {
		if content == "" {
			delete(files, name)
			continue
		}
		files[name] = content
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	dir := writeConfig(t, nil)

	l, err := config.Load(dir, nil)
	require.NoError(t, err)

	assert.Equal(t, dir, l.Dir)
	assert.Empty(t, l.SettingsFile)

	rs := l.RuleSet
	require.Len(t, rs.Fill, 1)
	assert.Equal(t, 1, rs.Fill[0].KeyGroup)
	assert.Equal(t, 2, rs.Fill[0].ValueGroup)
	assert.Len(t, rs.Replace, 1)
	assert.Empty(t, rs.Insert)
	assert.Empty(t, rs.PreProcessors)
	assert.NotEmpty(t, rs.Skip, "built-in skip patterns")

	assert.Equal(t, ".fill('", rs.Markers.Fill)
	assert.Equal(t, "EXTERNALIZED_DATA", rs.Upload.ExternalizedData)
	assert.Equal(t, rules.DefaultNoiseMaxIterations, rs.NoiseMaxIterations)

	assert.Equal(t, []string{
		"import { test } from '@playwright/test';",
		"import data from '__DATA_SOURCE_PATH__/__COMPLETE_TEST_FILE_NAME__.json';",
	}, rs.Boilerplate.Prepend)
	assert.Len(t, rs.Boilerplate.TestStart, 2)
	assert.Equal(t, []string{"  });", "}"}, rs.Boilerplate.TestEnd)
	assert.Equal(t, "  const page1 = await page1Promise;", rs.Boilerplate.OpenPortal[0])

	assert.Equal(t, []string{".ts"}, l.Settings.Discovery.Extensions)
}

func TestLoad_MissingDirectory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")

	_, err := config.Load(missing, nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrResourceMissing))

	details := errors.GetErrorDetails(err)
	assert.Equal(t, missing, details[errors.DetailPath])
	assert.NotEmpty(t, details[errors.DetailHint])
}

func TestLoad_NotADirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	_, err := config.Load(path, nil)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestLoad_MissingRequiredResource(t *testing.T) {
	for _, name := range []string{
		"fill_patterns.json",
		"replace_texts.json",
		"insert_lines.json",
		"prepend.ts",
		"test_start.ts",
	} {
		t.Run(name, func(t *testing.T) {
			dir := writeConfig(t, map[string]string{name: ""})

			_, err := config.Load(dir, nil)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrResourceMissing))
			assert.Equal(t, filepath.Join(dir, name), errors.GetErrorDetails(err)[errors.DetailPath])
			assert.Contains(t, errors.GetErrorDetails(err)[errors.DetailHint], name)
		})
	}
}

func TestLoad_OptionalPreProcessor(t *testing.T) {
	dir := writeConfig(t, map[string]string{
		"pre_processor.json": `[{"testScriptName": "TC01_login.spec.ts", "linesToBeInserted": "a|b", "separator": "|"}]`,
	})

	l, err := config.Load(dir, nil)
	require.NoError(t, err)
	require.Len(t, l.RuleSet.PreProcessors, 1)
	assert.Equal(t, []string{"a", "b"}, l.RuleSet.PreProcessors[0].Lines)
}

func TestLoad_InternalResourcesCanBeOverridden(t *testing.T) {
	dir := writeConfig(t, map[string]string{
		"skip_patterns.json": `[{"pattern": ".hover();", "patternScope": "doubleLine"}]`,
		"open_portal.ts":     "  const portal = await portalPromise;\n",
		"test_script_end.ts": "});\n",
	})

	l, err := config.Load(dir, nil)
	require.NoError(t, err)
	require.Len(t, l.RuleSet.Skip, 1)
	assert.Equal(t, ".hover();", l.RuleSet.Skip[0].Pattern)
	assert.Equal(t, []string{"  const portal = await portalPromise;"}, l.RuleSet.Boilerplate.OpenPortal)
	assert.Equal(t, []string{"});"}, l.RuleSet.Boilerplate.TestEnd)
}

func TestLoad_SettingsFileRenamesResources(t *testing.T) {
	dir := writeConfig(t, map[string]string{
		"fill_patterns.json": "",
		"pwtransformer.toml": `
[noise]
max_iterations = 3

[files]
fill_patterns = "fill.yaml"
`,
		"fill.yaml": `
- regex: "locator\\('([^']+)'\\)\\.fill\\('([^']*)'\\)"
  groupNoForKey: 1
  groupNoForValue: "2"
  isDelay: "true"
`,
	})

	l, err := config.Load(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "pwtransformer.toml"), l.SettingsFile)
	assert.Equal(t, 3, l.RuleSet.NoiseMaxIterations)
	require.Len(t, l.RuleSet.Fill, 1)
	assert.True(t, l.RuleSet.Fill[0].Delay)
}

func TestLoad_InvalidRule(t *testing.T) {
	dir := writeConfig(t, map[string]string{
		"fill_patterns.json": `[{"regex": "(unclosed", "groupNoForKey": 1, "groupNoForValue": 2}]`,
	})

	_, err := config.Load(dir, nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRuleInvalid))
}

func TestLoad_MalformedRuleFile(t *testing.T) {
	dir := writeConfig(t, map[string]string{"replace_texts.json": `[{"dataPrependedBy": `})

	_, err := config.Load(dir, nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
	assert.Equal(t, "replace_texts.json", errors.GetErrorDetails(err)[errors.DetailPath])
}
