package filesystem

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/revelaction/entalign/storage"
)

const (
	manifestExt = ".json"
	sumExt      = ".b3"
)

// ManifestStore keeps every split manifest as a JSON file mapping documents
// to sentence ids, a BLAKE3 sum file in b3sum format next to it and, if a
// splits directory is given, a plain list of the split documents.
type ManifestStore struct {
	dir       string
	splitsDir string
}

var _ storage.ManifestRepository = (*ManifestStore)(nil)

// NewManifestStore creates the manifest directory and the optional splits
// directory.
func NewManifestStore(dir, splitsDir string) (*ManifestStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	if splitsDir != "" {
		if err := os.MkdirAll(splitsDir, 0o755); err != nil {
			return nil, err
		}
	}
	return &ManifestStore{dir: dir, splitsDir: splitsDir}, nil
}

func (s *ManifestStore) Splits() ([]string, error) {
	files, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	names := []string{}
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != manifestExt {
			continue
		}
		names = append(names, strings.TrimSuffix(file.Name(), manifestExt))
	}
	sort.Strings(names)
	return names, nil
}

// Read returns the manifest of split. Documents are in name order.
func (s *ManifestStore) Read(split string) (storage.Manifest, error) {
	b, err := os.ReadFile(s.path(split, manifestExt))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return storage.Manifest{}, fmt.Errorf("%w: split %s", storage.ErrNotFound, split)
		}
		return storage.Manifest{}, err
	}

	m := storage.Manifest{Split: split, SentIds: map[string][]string{}}
	if err := json.Unmarshal(b, &m.SentIds); err != nil {
		return storage.Manifest{}, fmt.Errorf("JSON decoding error %s: %w", s.path(split, manifestExt), err)
	}

	for doc := range m.SentIds {
		m.Docs = append(m.Docs, doc)
	}
	sort.Strings(m.Docs)

	m.Sums, err = readSums(s.path(split, sumExt))
	if err != nil {
		return storage.Manifest{}, err
	}

	return m, nil
}

func (s *ManifestStore) Write(m storage.Manifest) error {
	sentIds := make(map[string][]string, len(m.Docs))
	for _, doc := range m.Docs {
		ids := m.SentIds[doc]
		if ids == nil {
			ids = []string{}
		}
		sentIds[doc] = ids
	}

	data, err := json.MarshalIndent(sentIds, "", "    ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path(m.Split, manifestExt), data, 0o644); err != nil {
		return err
	}

	var sums strings.Builder
	for _, doc := range m.Docs {
		if sum, ok := m.Sums[doc]; ok {
			fmt.Fprintf(&sums, "%s  %s\n", sum, doc)
		}
	}
	if err := os.WriteFile(s.path(m.Split, sumExt), []byte(sums.String()), 0o644); err != nil {
		return err
	}

	if s.splitsDir == "" {
		return nil
	}
	return storage.WriteDocList(s.splitsDir, m)
}

func (s *ManifestStore) path(split, ext string) string {
	return filepath.Join(s.dir, split+ext)
}

// readSums reads "<sum>  <doc>" lines. A missing file has no sums.
func readSums(path string) (map[string]string, error) {
	sums := map[string]string{}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return sums, nil
		}
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		sum, doc, ok := strings.Cut(scanner.Text(), "  ")
		if !ok {
			continue
		}
		sums[doc] = sum
	}
	return sums, scanner.Err()
}
