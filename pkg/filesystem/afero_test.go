package filesystem_test

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/pwtransformer/pkg/errors"
	"github.com/arthur-debert/pwtransformer/pkg/filesystem"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemFS(t *testing.T, files map[string]string) *filesystem.FS {
	t.Helper()
	mem := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(mem, path, []byte(content), 0644))
	}
	return filesystem.New(mem)
}

func TestFindScripts(t *testing.T) {
	fs := newMemFS(t, map[string]string{
		"/in/b.spec.ts":        "b",
		"/in/a.spec.ts":        "a",
		"/in/nested/c.ts":      "c",
		"/in/nested/notes.txt": "x",
	})

	got, err := fs.FindScripts("/in")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join("/in", "a.spec.ts"),
		filepath.Join("/in", "b.spec.ts"),
		filepath.Join("/in", "nested", "c.ts"),
	}, got)
}

func TestFindScripts_Extensions(t *testing.T) {
	fs := newMemFS(t, map[string]string{
		"/in/a.spec.ts": "a",
		"/in/b.spec.js": "b",
		"/in/c.txt":     "c",
	})

	got, err := fs.FindScripts("/in", ".js", ".txt")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join("/in", "b.spec.js"),
		filepath.Join("/in", "c.txt"),
	}, got)
}

func TestFindScripts_MissingRoot(t *testing.T) {
	fs := newMemFS(t, nil)
	_, err := fs.FindScripts("/nope")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileRead))
}

func TestReadWriteLines(t *testing.T) {
	fs := newMemFS(t, nil)

	require.NoError(t, fs.WriteLines("/out/deep/x.ts", []string{"a", "", "b"}))
	assert.True(t, fs.Exists("/out/deep/x.ts"))

	lines, err := fs.ReadLines("/out/deep/x.ts")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "", "b"}, lines)

	_, err = fs.ReadLines("/out/missing.ts")
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileRead))
}

func TestRemoveIfExists(t *testing.T) {
	fs := newMemFS(t, map[string]string{"/out/x.ts": "x"})

	assert.True(t, fs.RemoveIfExists("/out/x.ts"))
	assert.False(t, fs.Exists("/out/x.ts"))
	assert.True(t, fs.RemoveIfExists("/out/x.ts"), "second removal is silent")
}

func TestDestinationPath(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		newExt string
		want   string
	}{
		{"mirrors script", "/in/sub/login.spec.ts", "", filepath.Join("/out", "sub", "login.spec.ts")},
		{"data file drops spec", "/in/sub/login.spec.ts", "json", filepath.Join("/out", "sub", "login.json")},
		{"plain ts", "/in/login.ts", "json", filepath.Join("/out", "login.json")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := filesystem.DestinationPath(tt.src, "/in", "/out", tt.newExt)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
