package storage

import (
	"os"
	"path/filepath"
	"strings"
)

// DocListExt is the extension of the plain document list of a split.
const DocListExt = ".txt"

// WriteDocList writes the documents of m, one per line, to
// <dir>/<split>.txt.
func WriteDocList(dir string, m Manifest) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	var list strings.Builder
	for _, doc := range m.Docs {
		list.WriteString(doc + "\n")
	}
	return os.WriteFile(filepath.Join(dir, m.Split+DocListExt), []byte(list.String()), 0o644)
}

// DocLists wraps a repository that keeps no document lists of its own and
// writes one into Dir for every manifest written.
type DocLists struct {
	ManifestRepository
	Dir string
}

func (d DocLists) Write(m Manifest) error {
	if err := d.ManifestRepository.Write(m); err != nil {
		return err
	}
	return WriteDocList(d.Dir, m)
}
