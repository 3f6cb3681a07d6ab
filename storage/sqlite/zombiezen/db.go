package zombiezen

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"zombiezen.com/go/sqlite/sqlitex"
)

// IsDB reports whether path names a SQLite database file.
func IsDB(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

// NewPool creates a new Zombiezen SQLite connection pool with reasonable defaults
// (e.g., WAL mode enabled).
func NewPool(dbPath string) (*sqlitex.Pool, error) {
	poolSize := runtime.NumCPU()
	initString := fmt.Sprintf("file:%s", dbPath)

	// zombiezen/sqlitex.NewPool with default options uses flags:
	// sqlite.OpenReadWrite | sqlite.OpenCreate | sqlite.OpenWAL | sqlite.OpenURI
	pool, err := sqlitex.NewPool(initString, sqlitex.PoolOptions{
		PoolSize: poolSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create default zombiezen pool at %s: %w", dbPath, err)
	}
	return pool, nil
}

// Open creates the pool of the database at dbPath and its manifest tables.
func Open(dbPath string) (*sqlitex.Pool, error) {
	pool, err := NewPool(dbPath)
	if err != nil {
		return nil, err
	}

	if err := CreateSchemas(pool, ManifestSchema); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
