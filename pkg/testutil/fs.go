package testutil

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// MemFS is an in-memory filesystem for tests.
type MemFS struct {
	afero.Fs
	t *testing.T
}

// NewMemFS returns an empty in-memory filesystem.
func NewMemFS(t *testing.T) *MemFS {
	t.Helper()
	return &MemFS{Fs: afero.NewMemMapFs(), t: t}
}

// WriteLines writes lines joined by newlines to path, creating parents.
func (m *MemFS) WriteLines(path string, lines ...string) {
	m.t.Helper()
	require.NoError(m.t, m.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(m.t, afero.WriteFile(m.Fs, path, []byte(strings.Join(lines, "\n")), 0644))
}

// ReadString returns the content of path.
func (m *MemFS) ReadString(path string) string {
	m.t.Helper()
	b, err := afero.ReadFile(m.Fs, path)
	require.NoError(m.t, err)
	return string(b)
}

// ReadLines returns the content of path split on newlines.
func (m *MemFS) ReadLines(path string) []string {
	m.t.Helper()
	return strings.Split(m.ReadString(path), "\n")
}

// Exists reports whether path exists.
func (m *MemFS) Exists(path string) bool {
	m.t.Helper()
	ok, err := afero.Exists(m.Fs, path)
	require.NoError(m.t, err)
	return ok
}
