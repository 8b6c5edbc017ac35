package pwtransformer_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/pwtransformer/cmd/pwtransformer"
	"github.com/arthur-debert/pwtransformer/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configFiles = map[string]string{
	"fill_patterns.json": `[{"regex": "getByTestId\\('([^']+)'\\)\\.fill\\('([^']*)'\\)", "groupNoForKey": 1, "groupNoForValue": 2}]`,
	"replace_texts.json": `[{"dataPrependedBy": "getByText('", "dataAppendedBy": "')"}]`,
	"insert_lines.json":  `[]`,
	"prepend.ts":         "import { test } from '@playwright/test';\nimport data from '__DATA_SOURCE_PATH__/__COMPLETE_TEST_FILE_NAME__.json';\n",
	"test_start.ts":      "test('__TEST_CASE_NAME__', async ({ page }) => {\n  const uniqueIndex = Date.now();\n",
}

const loginScript = `test('login', async ({ page }) => {
  await page.goto('https://example.com/');
  await page.getByTestId('username').fill('testuser');
  await expect(page.getByText('Hello testuser')).toBeVisible();
});
`

type workspace struct {
	root   string
	config string
	input  string
	output string
	data   string
}

func setupWorkspace(t *testing.T) workspace {
	t.Helper()
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")

	root := t.TempDir()
	ws := workspace{
		root:   root,
		config: filepath.Join(root, "config"),
		input:  filepath.Join(root, "tests", "input"),
		output: filepath.Join(root, "tests", "output"),
		data:   filepath.Join(root, "data", "output"),
	}
	require.NoError(t, os.MkdirAll(ws.config, 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(ws.input, "auth"), 0755))
	for name, content := range configFiles {
		require.NoError(t, os.WriteFile(filepath.Join(ws.config, name), []byte(content), 0644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(ws.input, "auth", "TC05_login.spec.ts"), []byte(loginScript), 0644))
	return ws
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := pwtransformer.NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func (ws workspace) transformArgs(extra ...string) []string {
	args := []string{"transform", "--no-color", "-c", ws.config, "-i", ws.input, "-o", ws.output, "-d", ws.data}
	return append(args, extra...)
}

func TestTransformCmd(t *testing.T) {
	ws := setupWorkspace(t)

	out, err := execute(t, ws.transformArgs()...)
	require.NoError(t, err)
	assert.Contains(t, out, "Transformed 1 of 1 scripts")
	assert.Contains(t, out, "TC05_login.spec.ts")

	script, err := os.ReadFile(filepath.Join(ws.output, "auth", "TC05_login.spec.ts"))
	require.NoError(t, err)
	assert.Contains(t, string(script), "data.username")
	assert.NotContains(t, string(script), "'testuser'")

	data, err := os.ReadFile(filepath.Join(ws.data, "auth", "TC05_login.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"tcName": "TC05"`)
	assert.Contains(t, string(data), `"username": "testuser"`)
}

func TestTransformCmd_DryRun(t *testing.T) {
	ws := setupWorkspace(t)

	out, err := execute(t, ws.transformArgs("--dry-run")...)
	require.NoError(t, err)
	assert.Contains(t, out, "DRY RUN")
	assert.Contains(t, out, "+++ b/auth/TC05_login.spec.ts")
	assert.NotContains(t, out, "[added]", "markup is stripped without color")

	_, err = os.Stat(filepath.Join(ws.output, "auth", "TC05_login.spec.ts"))
	assert.True(t, os.IsNotExist(err))
}

func TestTransformCmd_RequiredFlags(t *testing.T) {
	ws := setupWorkspace(t)

	_, err := execute(t, "transform", "-c", ws.config, "-i", ws.input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output-dir")
}

func TestTransformCmd_MissingConfigDir(t *testing.T) {
	ws := setupWorkspace(t)

	_, err := execute(t, "transform", "-c", filepath.Join(ws.root, "nope"), "-i", ws.input, "-o", ws.output, "-d", ws.data)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrResourceMissing))

	var buf bytes.Buffer
	pwtransformer.PrintError(&buf, err)
	assert.Contains(t, buf.String(), "Error:")
	assert.Contains(t, buf.String(), "--config", "the hint is printed")
}

func TestTransformCmd_InvalidSet(t *testing.T) {
	ws := setupWorkspace(t)

	_, err := execute(t, ws.transformArgs("--set", "noise.max_iterations")...)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))

	_, err = execute(t, ws.transformArgs("--set", "noise.max_iterations=-2")...)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
}

func TestTransformCmd_FailedScriptFailsRun(t *testing.T) {
	ws := setupWorkspace(t)
	// A regular file where the output directory should be makes every write fail.
	require.NoError(t, os.MkdirAll(filepath.Dir(ws.output), 0755))
	require.NoError(t, os.WriteFile(ws.output, []byte("x"), 0644))

	out, err := execute(t, ws.transformArgs()...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 scripts failed")
	assert.Contains(t, out, "Transformed 0 of 1 scripts")
}

func TestRulesCmd(t *testing.T) {
	ws := setupWorkspace(t)

	out, err := execute(t, "rules", "--no-color", "-c", ws.config)
	require.NoError(t, err)
	assert.Contains(t, out, "built-in defaults")
	assert.Regexp(t, `fill\s+1`, out)
	assert.Regexp(t, `skip\s+4`, out, "embedded skip patterns are loaded")
	assert.Regexp(t, `prepend\s+2`, out)

	out, err = execute(t, "rules", "--defaults")
	require.NoError(t, err)
	assert.Contains(t, out, "[markers]")
}

func TestVersionCmd(t *testing.T) {
	setupWorkspace(t)

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "pwtransformer version dev")
}

func TestCompletionCmd(t *testing.T) {
	setupWorkspace(t)

	out, err := execute(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "pwtransformer")

	_, err = execute(t, "completion", "tcsh")
	assert.Error(t, err)
}

func TestRootCmd_NoCommand(t *testing.T) {
	setupWorkspace(t)

	_, err := execute(t)
	assert.Error(t, err)
}
