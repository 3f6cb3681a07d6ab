// Package file locates the corpus files on disk.
package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Splits are the treebank partitions, in processing order.
var Splits = []string{"train", "test", "dev"}

var (
	// ErrSourceMissing indicates a missing input directory or file.
	ErrSourceMissing = errors.New("source does not exist")

	// ErrSplitMissing indicates a treebank directory without a file for a
	// split.
	ErrSplitMissing = errors.New("no file for split")
)

// Require returns ErrSourceMissing naming path if path does not exist.
func Require(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrSourceMissing, path)
		}
		return err
	}
	return nil
}

// List returns the sorted paths of the regular files of dir with extension
// ext.
func List(dir, ext string) ([]string, error) {
	if err := Require(dir); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ext {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// SplitFiles returns, for every split, the first file of dir with extension
// ext whose name contains the split name.
func SplitFiles(dir, ext string) (map[string]string, error) {
	paths, err := List(dir, ext)
	if err != nil {
		return nil, err
	}

	files := make(map[string]string, len(Splits))
	for _, split := range Splits {
		for _, p := range paths {
			if strings.Contains(filepath.Base(p), split) {
				files[split] = p
				break
			}
		}
		if _, ok := files[split]; !ok {
			return nil, fmt.Errorf("%w %s in %s", ErrSplitMissing, split, dir)
		}
	}
	return files, nil
}

// Replace returns the path of name in dir with its extension replaced by ext.
func Replace(dir, name, ext string) string {
	base := filepath.Base(name)
	return filepath.Join(dir, strings.TrimSuffix(base, filepath.Ext(base))+ext)
}

// ReadJSON reads the JSON file at path into v.
func ReadJSON(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}
