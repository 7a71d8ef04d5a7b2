package storage

import (
	"database/sql"
	"fmt"
)

// Open connects to the PostgreSQL write store and verifies the connection.
// The returned handle is owned by the caller: opened at process start,
// closed at shutdown, and injected into every repository that needs it.
func Open(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id         SERIAL PRIMARY KEY,
	name       VARCHAR(255) NOT NULL,
	email      VARCHAR(255) NOT NULL UNIQUE,
	created_at TIMESTAMPTZ  NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS orders (
	id           SERIAL PRIMARY KEY,
	account_id   INTEGER NOT NULL REFERENCES users (id) ON DELETE CASCADE,
	product_name VARCHAR(255) NOT NULL,
	quantity     INTEGER NOT NULL CONSTRAINT quantity_positive CHECK (quantity > 0),
	order_date   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// EnsureSchema creates the users and orders tables if they do not exist.
// The constraints declared here (unique email, foreign key with cascade,
// quantity_positive check) are the source of truth for data integrity;
// the service layer only pre-checks existence, never constraint rules.
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// WithTx runs fn inside a transaction scoped to this call: commit when fn
// succeeds, rollback on any error, including a failed commit. The
// connection returns to the pool on every exit path.
func WithTx(db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		tx.Rollback()
		return TranslateError(err)
	}
	return nil
}
