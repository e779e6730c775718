package pipeline

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// tiffExtensions are the candidate extensions (lowercase, with leading dot).
var tiffExtensions = map[string]bool{
	".tif":  true,
	".tiff": true,
}

// Discover collects TIFF files under dir and returns them sorted
// lexicographically. Subdirectories are walked only when recursive is set.
// Hidden directories (leading dot) are pruned.
func Discover(fs afero.Fs, dir string, recursive bool) ([]string, error) {
	root := filepath.Clean(dir)
	var files []string
	err := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path == root {
				return nil
			}
			if !recursive || strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if tiffExtensions[strings.ToLower(filepath.Ext(path))] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
