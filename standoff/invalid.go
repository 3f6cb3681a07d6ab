package standoff

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Invalid is the manually curated set of annotation ids to skip, per
// document.
type Invalid map[string]map[string]bool

// ReadInvalid reads "doc_id annotation_id" lines. Lines containing "#" are
// comments.
func ReadInvalid(r io.Reader) (Invalid, error) {
	inv := Invalid{}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.Contains(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: invalid list line %d: %q", ErrMalformedLine, lineNo, line)
		}
		inv.Add(fields[0], fields[1])
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return inv, nil
}

// LoadInvalid reads the invalid list at path. An empty path is an empty list.
func LoadInvalid(path string) (Invalid, error) {
	if path == "" {
		return Invalid{}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	inv, err := ReadInvalid(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return inv, nil
}

func (inv Invalid) Add(doc, id string) {
	if inv[doc] == nil {
		inv[doc] = map[string]bool{}
	}
	inv[doc][id] = true
}

// For returns the ids to skip in doc.
func (inv Invalid) For(doc string) map[string]bool {
	return inv[doc]
}
