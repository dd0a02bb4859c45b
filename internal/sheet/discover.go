package sheet

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/rotisserie/eris"
)

// Discover lists the files in dir whose names match the glob pattern, sorted
// by name so repeated runs see the same order.
func Discover(dir, pattern string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, eris.Wrapf(err, "sheet: stat source dir %s", dir)
	}
	if !info.IsDir() {
		return nil, eris.Errorf("sheet: %s is not a directory", dir)
	}

	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, eris.Wrapf(err, "sheet: bad pattern %q", pattern)
	}

	files := matches[:0]
	for _, m := range matches {
		fi, statErr := os.Stat(m)
		if statErr != nil || fi.IsDir() {
			continue
		}
		files = append(files, m)
	}
	sort.Strings(files)
	return files, nil
}
