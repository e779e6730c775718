// Package companion locates the optional sidecar metadata file that can sit
// next to a ScanImage acquisition (for example an .xml export).
package companion

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/backmassage/scanseries/internal/fsys"
)

// Locator finds sidecar files and remembers the answer per directory and
// extension set until Reset. It is not safe for concurrent use.
type Locator struct {
	fs    fsys.Accessor
	cache map[string]string
}

// NewLocator returns a Locator that lists directories through fs.
func NewLocator(fs fsys.Accessor) *Locator {
	return &Locator{fs: fs, cache: make(map[string]string)}
}

// Find returns the path of the first entry in dir (in sorted order) whose
// extension matches one of exts, case-insensitively. exts are given without
// the leading dot. An empty path means no sidecar exists. A listing failure
// is returned as an error.
func (l *Locator) Find(dir string, exts []string) (string, error) {
	key := cacheKey(dir, exts)
	if path, ok := l.cache[key]; ok {
		return path, nil
	}

	names, err := l.fs.List(dir)
	if err != nil {
		return "", fmt.Errorf("list %s: %w", dir, err)
	}

	found := ""
	for _, name := range names {
		if hasExt(name, exts) {
			found = filepath.Join(dir, name)
			break
		}
	}
	l.cache[key] = found
	return found, nil
}

// Reset forgets all memoized lookups.
func (l *Locator) Reset() {
	clear(l.cache)
}

func hasExt(name string, exts []string) bool {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	if ext == "" {
		return false
	}
	for _, want := range exts {
		if strings.EqualFold(ext, strings.TrimPrefix(want, ".")) {
			return true
		}
	}
	return false
}

func cacheKey(dir string, exts []string) string {
	return filepath.Clean(dir) + "\x00" + strings.ToLower(strings.Join(exts, "\x00"))
}
