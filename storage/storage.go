package storage

import (
	"encoding/hex"
	"errors"

	"github.com/zeebo/blake3"
)

// ErrNotFound indicates a split without manifest.
var ErrNotFound = errors.New("storage: not found")

// Manifest is the alignment decision of one split: its documents in order
// and, per document, the treebank sentence ids of its sentences.
type Manifest struct {
	Split   string
	Docs    []string
	SentIds map[string][]string

	// Sums holds the fingerprint of the text of each document at mapping
	// time.
	Sums map[string]string
}

// ManifestReader defines read operations for manifest storage
type ManifestReader interface {
	// Splits returns the names of the stored splits, sorted.
	Splits() ([]string, error)

	// Read returns the manifest of a split
	Read(split string) (Manifest, error)
}

// ManifestWriter defines write operations for manifest storage
type ManifestWriter interface {
	// Write persists the manifest of a split, replacing a previous one
	Write(m Manifest) error
}

// ManifestRepository combines read and write operations
type ManifestRepository interface {
	ManifestReader
	ManifestWriter
}

// Fingerprint returns the hex BLAKE3-256 sum of b.
func Fingerprint(b []byte) string {
	sum := blake3.Sum256(b)
	return hex.EncodeToString(sum[:])
}
