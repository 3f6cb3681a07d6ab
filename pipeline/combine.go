package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ulikunitz/xz"

	"github.com/revelaction/entalign/conllu"
	"github.com/revelaction/entalign/file"
)

// XZExt is appended to compressed combined files.
const XZExt = ".xz"

// CombinedName returns the file name of the combined split.
func CombinedName(prefix, lang, split string) string {
	return fmt.Sprintf("%s_%s_%s%s", prefix, lang, split, conllu.Ext)
}

// Combine concatenates the CoNLL-U documents of <merged>/<split> in name
// order into <out>/<prefix>_<lang>_<split>.conllu, xz compressed if
// compress is set. It returns the path written.
func Combine(merged, out, prefix, lang, split string, compress bool) (string, error) {
	paths, err := file.List(filepath.Join(merged, split), conllu.Ext)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(out, 0o755); err != nil {
		return "", err
	}

	dst := filepath.Join(out, CombinedName(prefix, lang, split))
	if compress {
		dst += XZExt
	}

	f, err := os.Create(dst)
	if err != nil {
		return "", err
	}

	if err := combine(f, paths, compress); err != nil {
		f.Close()
		return "", err
	}
	return dst, f.Close()
}

func combine(f io.Writer, paths []string, compress bool) error {
	w := f
	var xw *xz.Writer
	if compress {
		var err error
		if xw, err = xz.NewWriter(f); err != nil {
			return err
		}
		w = xw
	}

	for _, p := range paths {
		if err := appendFile(w, p); err != nil {
			return err
		}
	}

	if xw != nil {
		return xw.Close()
	}
	return nil
}

func appendFile(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(w, f)
	return err
}

// OpenCombined opens a combined split file, decompressing it if its name
// ends with the xz extension.
func OpenCombined(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if filepath.Ext(path) != XZExt {
		return f, nil
	}

	r, err := xz.NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return readCloser{Reader: r, Closer: f}, nil
}

type readCloser struct {
	io.Reader
	io.Closer
}
