package zombiezen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/revelaction/entalign/storage"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

type ManifestStore struct {
	pool *sqlitex.Pool
}

var _ storage.ManifestRepository = (*ManifestStore)(nil)

func NewManifestStore(pool *sqlitex.Pool) *ManifestStore {
	return &ManifestStore{pool: pool}
}

func (h *ManifestStore) Splits() ([]string, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	names := []string{}
	err = sqlitex.Execute(conn, "SELECT name FROM splits ORDER BY name", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			names = append(names, stmt.ColumnText(0))
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (h *ManifestStore) Read(split string) (storage.Manifest, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return storage.Manifest{}, err
	}
	defer h.pool.Put(conn)

	found := false
	err = sqlitex.Execute(conn, "SELECT 1 FROM splits WHERE name = ?", &sqlitex.ExecOptions{
		Args: []interface{}{split},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			found = true
			return nil
		},
	})
	if err != nil {
		return storage.Manifest{}, err
	}
	if !found {
		return storage.Manifest{}, fmt.Errorf("%w: split %s", storage.ErrNotFound, split)
	}

	m := storage.Manifest{Split: split, SentIds: map[string][]string{}, Sums: map[string]string{}}
	err = sqlitex.Execute(conn, "SELECT doc, sent_ids, sum FROM manifests WHERE split = ? ORDER BY position", &sqlitex.ExecOptions{
		Args: []interface{}{split},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			doc := stmt.ColumnText(0)
			var ids []string
			if err := json.Unmarshal([]byte(stmt.ColumnText(1)), &ids); err != nil {
				return fmt.Errorf("doc %s: %w", doc, err)
			}
			m.Docs = append(m.Docs, doc)
			m.SentIds[doc] = ids
			if sum := stmt.ColumnText(2); sum != "" {
				m.Sums[doc] = sum
			}
			return nil
		},
	})
	if err != nil {
		return storage.Manifest{}, err
	}

	return m, nil
}

// Write replaces the documents of the split. A document stored under another
// split moves to this one.
func (h *ManifestStore) Write(m storage.Manifest) (err error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	// Start Transaction
	defer sqlitex.Save(conn)(&err)

	err = sqlitex.Execute(conn, "INSERT OR IGNORE INTO splits (name) VALUES (?)", &sqlitex.ExecOptions{
		Args: []interface{}{m.Split},
	})
	if err != nil {
		return fmt.Errorf("failed to insert split: %w", err)
	}

	err = sqlitex.Execute(conn, "DELETE FROM manifests WHERE split = ?", &sqlitex.ExecOptions{
		Args: []interface{}{m.Split},
	})
	if err != nil {
		return fmt.Errorf("failed to clear split: %w", err)
	}

	for i, doc := range m.Docs {
		ids := m.SentIds[doc]
		if ids == nil {
			ids = []string{}
		}
		data, marshalErr := json.Marshal(ids)
		if marshalErr != nil {
			return marshalErr
		}

		err = sqlitex.Execute(conn, "INSERT OR REPLACE INTO manifests (doc, split, position, sent_ids, sum) VALUES (?, ?, ?, ?, ?)", &sqlitex.ExecOptions{
			Args: []interface{}{doc, m.Split, i, string(data), m.Sums[doc]},
		})
		if err != nil {
			return fmt.Errorf("failed to insert manifest of doc %s: %w", doc, err)
		}
	}

	return nil
}
