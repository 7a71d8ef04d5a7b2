package repository

import (
	"database/sql"
	"fmt"

	"github.com/storefront/storefront-api/internal/models"
	"github.com/storefront/storefront-api/internal/storage"
)

// OrderWriteRepository handles all state-mutating operations for orders.
// The quantity_positive check constraint is enforced here by the storage
// engine, never pre-validated: a non-positive quantity rolls back the
// transaction and surfaces as ErrInvalidData.
type OrderWriteRepository struct {
	db *sql.DB
}

func NewOrderWriteRepository(db *sql.DB) *OrderWriteRepository {
	return &OrderWriteRepository{db: db}
}

// Create inserts the order and fills in the storage-assigned id and
// order timestamp.
func (r *OrderWriteRepository) Create(order *models.Order) error {
	return storage.WithTx(r.db, func(tx *sql.Tx) error {
		query := `
			INSERT INTO orders (account_id, product_name, quantity)
			VALUES ($1, $2, $3)
			RETURNING id, order_date
		`
		if err := tx.QueryRow(query, order.AccountID, order.ProductName, order.Quantity).
			Scan(&order.ID, &order.OrderDate); err != nil {
			return storage.TranslateError(err)
		}
		return nil
	})
}

func (r *OrderWriteRepository) GetByID(id int64) (*models.Order, error) {
	query := `SELECT id, account_id, product_name, quantity, order_date FROM orders WHERE id = $1`
	var order models.Order
	err := r.db.QueryRow(query, id).
		Scan(&order.ID, &order.AccountID, &order.ProductName, &order.Quantity, &order.OrderDate)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

// Update writes the full row. Callers load the order first and apply only
// the supplied fields; account_id and order_date are never rewritten.
func (r *OrderWriteRepository) Update(order *models.Order) error {
	return storage.WithTx(r.db, func(tx *sql.Tx) error {
		query := `UPDATE orders SET product_name = $2, quantity = $3 WHERE id = $1`
		result, err := tx.Exec(query, order.ID, order.ProductName, order.Quantity)
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

func (r *OrderWriteRepository) Delete(id int64) error {
	return storage.WithTx(r.db, func(tx *sql.Tx) error {
		result, err := tx.Exec(`DELETE FROM orders WHERE id = $1`, id)
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
