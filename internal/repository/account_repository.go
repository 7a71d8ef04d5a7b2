package repository

import (
	"database/sql"
	"fmt"

	"github.com/storefront/storefront-api/internal/models"
	"github.com/storefront/storefront-api/internal/storage"
)

// AccountWriteRepository handles all state-mutating operations for accounts
// against the PostgreSQL write store. Every mutation runs in its own scoped
// transaction; constraint violations roll it back and come out translated
// to the storage error taxonomy.
type AccountWriteRepository struct {
	db *sql.DB
}

func NewAccountWriteRepository(db *sql.DB) *AccountWriteRepository {
	return &AccountWriteRepository{db: db}
}

// Create inserts the account and fills in the storage-assigned id and
// creation timestamp. A duplicate email surfaces as ErrDuplicateKey.
func (r *AccountWriteRepository) Create(account *models.Account) error {
	return storage.WithTx(r.db, func(tx *sql.Tx) error {
		query := `
			INSERT INTO users (name, email)
			VALUES ($1, $2)
			RETURNING id, created_at
		`
		if err := tx.QueryRow(query, account.Name, account.Email).
			Scan(&account.ID, &account.CreatedAt); err != nil {
			return storage.TranslateError(err)
		}
		return nil
	})
}

// GetByID fetches the write model, used for existence checks and
// read-modify-write updates.
func (r *AccountWriteRepository) GetByID(id int64) (*models.Account, error) {
	query := `SELECT id, name, email, created_at FROM users WHERE id = $1`
	var account models.Account
	err := r.db.QueryRow(query, id).
		Scan(&account.ID, &account.Name, &account.Email, &account.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

// Update writes the full row. Callers load the account first and apply
// only the supplied fields, so absent fields keep their stored values.
func (r *AccountWriteRepository) Update(account *models.Account) error {
	return storage.WithTx(r.db, func(tx *sql.Tx) error {
		query := `UPDATE users SET name = $2, email = $3 WHERE id = $1`
		result, err := tx.Exec(query, account.ID, account.Name, account.Email)
		if err != nil {
			return storage.TranslateError(err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check rows affected: %w", err)
		}
		if rows == 0 {
			return storage.ErrNotFound
		}
		return nil
	})
}

// Delete removes the account. The foreign key's ON DELETE CASCADE removes
// all of its orders in the same transaction.
func (r *AccountWriteRepository) Delete(id int64) error {
	return storage.WithTx(r.db, func(tx *sql.Tx) error {
		result, err := tx.Exec(`DELETE FROM users WHERE id = $1`, id)
		if err != nil {
			return storage.TranslateError(err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check rows affected: %w", err)
		}
		if rows == 0 {
			return storage.ErrNotFound
		}
		return nil
	})
}

// OrderIDs returns the ids of all orders owned by the account. Called
// before a cascade delete so the orders' cached views can be invalidated
// once the delete commits.
func (r *AccountWriteRepository) OrderIDs(accountID int64) ([]int64, error) {
	rows, err := r.db.Query(`SELECT id FROM orders WHERE account_id = $1`, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list order ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan order id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
