package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/pwtransformer/pkg/errors"
	"github.com/spf13/afero"
)

const (
	scriptExt  = ".ts"
	specSuffix = ".spec"
)

// FS wraps an afero filesystem with the line-oriented helpers the pipeline needs.
type FS struct {
	fs afero.Fs
}

// New creates a filesystem backed by the given afero implementation.
func New(fs afero.Fs) *FS {
	return &FS{fs: fs}
}

// NewOS creates a filesystem backed by the real disk.
func NewOS() *FS {
	return New(afero.NewOsFs())
}

// Afero exposes the underlying afero filesystem.
func (f *FS) Afero() afero.Fs {
	return f.fs
}

// Exists reports whether path exists.
func (f *FS) Exists(path string) bool {
	ok, err := afero.Exists(f.fs, path)
	return err == nil && ok
}

// IsDir reports whether path exists and is a directory.
func (f *FS) IsDir(path string) bool {
	ok, err := afero.IsDir(f.fs, path)
	return err == nil && ok
}

// FindScripts returns every file under root whose name ends with one of
// exts, recursively, sorted lexically. No extensions means *.ts.
func (f *FS) FindScripts(root string, exts ...string) ([]string, error) {
	if len(exts) == 0 {
		exts = []string{scriptExt}
	}
	var found []string
	err := afero.Walk(f.fs, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && hasAnySuffix(info.Name(), exts) {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to scan %s", root)
	}
	sort.Strings(found)
	return found, nil
}

// ReadLines reads path and splits it on "\n". A trailing newline yields a
// final empty line, matching how the recorder writes scripts.
func (f *FS) ReadLines(path string) ([]string, error) {
	data, err := afero.ReadFile(f.fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to read %s", path).
			WithDetail(errors.DetailPath, path)
	}
	return strings.Split(string(data), "\n"), nil
}

// WriteLines joins lines with "\n" and writes them, creating parent directories.
func (f *FS) WriteLines(path string, lines []string) error {
	return f.WriteFile(path, []byte(strings.Join(lines, "\n")))
}

// WriteFile writes data to path, creating parent directories.
func (f *FS) WriteFile(path string, data []byte) error {
	if err := f.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to create directory for %s", path)
	}
	if err := afero.WriteFile(f.fs, path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path).
			WithDetail(errors.DetailPath, path)
	}
	return nil
}

// RemoveIfExists deletes path. A missing file or a failed removal is not an
// error; the result only reports whether the path is now gone.
func (f *FS) RemoveIfExists(path string) bool {
	err := f.fs.Remove(path)
	return err == nil || os.IsNotExist(err)
}

// DestinationPath maps src, found under srcDir, to the same relative location
// under destDir. With a non-empty newExt the extension is replaced and a
// ".spec" suffix on the base name is dropped (login.spec.ts -> login.json).
func DestinationPath(src, srcDir, destDir, newExt string) (string, error) {
	rel, err := filepath.Rel(srcDir, src)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInternal, "cannot relate %s to %s", src, srcDir)
	}
	dest := filepath.Join(destDir, rel)
	if newExt == "" {
		return dest, nil
	}
	dir, base := filepath.Split(dest)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.TrimSuffix(base, specSuffix)
	return filepath.Join(dir, base+"."+strings.TrimPrefix(newExt, ".")), nil
}

func hasAnySuffix(name string, exts []string) bool {
	for _, ext := range exts {
		if ext != "" && strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
