package iostorage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "modernc.org/sqlite"

	"github.com/inslake/inslake/pkg/storage"
	"github.com/inslake/inslake/pkg/table"
)

// sqliteStore keeps the whole lake in one sqlite file: a catalog table of
// named, encoded table payloads. It is the default backend, good for a
// laptop run without any cloud credentials.
type sqliteStore struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS lake_tables (
	name       TEXT PRIMARY KEY,
	payload    BLOB NOT NULL,
	updated_at TEXT NOT NULL
)`

func newSQLite(path string) (storage.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, ConnectError("sqlite", err)
	}
	if _, err = db.Exec(sqliteSchema); err != nil {
		return nil, ConnectError("sqlite", err)
	}
	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Load(
	ctx context.Context, name string,
) (*table.Table, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT payload FROM lake_tables WHERE name = ?", name,
	).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NotFoundError(name)
		}
		return nil, TransientError(name, err)
	}
	return decodeTable(payload, name)
}

func (s *sqliteStore) Store(
	ctx context.Context, t *table.Table, name string,
) error {
	payload, err := encodeTable(t)
	if err != nil {
		return CorruptError(name, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO lake_tables (name, payload, updated_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
		   payload = excluded.payload,
		   updated_at = excluded.updated_at`,
		name, payload, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return TransientError(name, err)
	}
	return nil
}
