package keyvalue

import (
	"context"
	"database/sql"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS keyvalue (
	key TEXT NOT NULL PRIMARY KEY,
	value BLOB NOT NULL
);`

// SQLite stores keys in a single table. The caller owns the *sql.DB and
// imports the driver (modernc.org/sqlite).
type SQLite struct {
	db *sql.DB
}

func NewSQLite(db *sql.DB) (SQLite, error) {
	_, err := db.Exec(sqliteSchema)
	if err != nil {
		return SQLite{}, err
	}
	return SQLite{db: db}, nil
}

func (s SQLite) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRowContext(
		ctx, "SELECT value FROM keyvalue WHERE key = ?", key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (s SQLite) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO keyvalue (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}
