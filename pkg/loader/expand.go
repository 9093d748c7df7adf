package loader

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultExtensions are the file types a directory scan picks up.
var DefaultExtensions = []string{".csv", ".md", ".markdown"}

// ExpandInputs turns files and directories into a sorted list of files.
// Files are kept as given whatever their extension; directories are
// walked recursively for files whose extension (case-insensitive) is in
// exts. An empty exts means DefaultExtensions.
func ExpandInputs(inputs []string, exts []string) ([]string, error) {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	supported := make(map[string]bool, len(exts))
	for _, e := range exts {
		e = strings.ToLower(e)
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		supported[e] = true
	}

	var files []string
	for _, in := range inputs {
		info, err := os.Stat(in)
		if err != nil {
			return nil, NewSourceError(in, 0, "stat", err)
		}

		if !info.IsDir() {
			files = append(files, in)
			continue
		}

		err = filepath.WalkDir(in, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.Type().IsRegular() && supported[strings.ToLower(filepath.Ext(path))] {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, NewSourceError(in, 0, "scan directory", err)
		}
	}

	if len(files) == 0 {
		return nil, ErrNoInputs
	}
	sort.Strings(files)
	return files, nil
}
