package storage

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

// The error taxonomy every storage failure is translated into before it
// leaves the repository layer. Handlers map these to HTTP statuses; raw
// engine error text never reaches a client.
var (
	// ErrNotFound: the referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateKey: a unique constraint was violated (users.email).
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrInvalidData: any other constraint violation (check, foreign key,
	// not-null), e.g. a non-positive order quantity.
	ErrInvalidData = errors.New("invalid data")
)

// TranslateError maps a storage-engine error onto the taxonomy above.
// Errors with no taxonomy equivalent pass through unchanged.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505": // unique_violation
			return ErrDuplicateKey
		case "23502", "23503", "23514": // not_null, foreign_key, check
			return ErrInvalidData
		}
	}
	return err
}
