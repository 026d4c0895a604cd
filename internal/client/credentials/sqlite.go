package credentials

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/clinivault/clinivault/internal/client/migrations"
	"github.com/clinivault/clinivault/internal/dbx"
)

// SQLiteTier is the durable production tier, backed by a local sqlite
// database. Secrets written here survive application restarts.
type SQLiteTier struct {
	db dbx.DBTX
}

func NewSQLiteTier(db dbx.DBTX) *SQLiteTier {
	return &SQLiteTier{db: db}
}

// OpenDatabase opens the local credential database and applies pending
// migrations. The caller owns the returned handle. The sqlite driver must be
// registered by the importing binary (modernc.org/sqlite).
func OpenDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open credential db: %w", err)
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return nil, fmt.Errorf("migrate credential db: %w", err)
	}

	return db, nil
}

func (t *SQLiteTier) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := t.db.QueryRowContext(ctx, `SELECT value FROM credentials WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get credentials[%s]: %w", key, err)
	}
	return value, nil
}

func (t *SQLiteTier) Set(ctx context.Context, key, value string) error {
	_, err := t.db.ExecContext(ctx, `
		INSERT INTO credentials (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set credentials[%s]: %w", key, err)
	}
	return nil
}

func (t *SQLiteTier) Delete(ctx context.Context, key string) error {
	_, err := t.db.ExecContext(ctx, `DELETE FROM credentials WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete credentials[%s]: %w", key, err)
	}
	return nil
}

func (t *SQLiteTier) Clear(ctx context.Context) error {
	_, err := t.db.ExecContext(ctx, `DELETE FROM credentials`)
	if err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}
