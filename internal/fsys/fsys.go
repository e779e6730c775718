// Package fsys is the filesystem accessor used while resolving a series:
// directory listings and existence checks over an afero.Fs, so the same code
// runs against the OS and against in-memory trees in tests.
package fsys

import (
	"errors"
	"io/fs"
	"sort"

	"github.com/spf13/afero"
)

// Accessor lists directories and checks file existence.
type Accessor interface {
	// List returns the names of the entries in dir, sorted.
	List(dir string) ([]string, error)
	// Exists reports whether path names an existing regular file.
	Exists(path string) (bool, error)
}

// AferoAccessor implements Accessor on top of an afero.Fs.
type AferoAccessor struct {
	fs afero.Fs
}

// New wraps fs.
func New(fs afero.Fs) *AferoAccessor {
	return &AferoAccessor{fs: fs}
}

// List returns the sorted entry names of dir.
func (a *AferoAccessor) List(dir string) ([]string, error) {
	infos, err := afero.ReadDir(a.fs, dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(infos))
	for _, fi := range infos {
		names = append(names, fi.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Exists reports whether path is an existing regular file. A missing file is
// not an error.
func (a *AferoAccessor) Exists(path string) (bool, error) {
	fi, err := a.fs.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return fi.Mode().IsRegular(), nil
}
