package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/tournament-bracket/storage"
	"github.com/lib/pq"
)

const defaultKVTable = "tournament_kv"

// PostgresKVStore implements storage.KVStore on a two-column table.
type PostgresKVStore struct {
	db    *sql.DB
	table string
}

func NewPostgresKVStore(db *sql.DB, table string) *PostgresKVStore {
	if table == "" {
		table = defaultKVTable
	}
	return &PostgresKVStore{db: db, table: pq.QuoteIdentifier(table)}
}

// EnsureSchema creates the backing table when it does not exist yet.
func (s *PostgresKVStore) EnsureSchema(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS ` + s.table + ` (
		key        TEXT PRIMARY KEY,
		value      BYTEA NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create kv table %s: %w", s.table, err)
	}
	return nil
}

func (s *PostgresKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT value FROM ` + s.table + ` WHERE key = $1`

	var value []byte
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrKeyNotFound
		}
		return nil, wrapPQError("get", key, err)
	}
	return value, nil
}

func (s *PostgresKVStore) Set(ctx context.Context, key string, value []byte) error {
	query := `INSERT INTO ` + s.table + ` (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`

	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return wrapPQError("set", key, err)
	}
	return nil
}

func (s *PostgresKVStore) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM ` + s.table + ` WHERE key = $1`

	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return wrapPQError("delete", key, err)
	}
	return nil
}

func wrapPQError(op, key string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "42P01" {
		return fmt.Errorf("kv %s %s: table missing, run EnsureSchema: %w", op, key, err)
	}
	return fmt.Errorf("kv %s %s: %w", op, key, err)
}
