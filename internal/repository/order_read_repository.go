package repository

import (
	"context"
	"database/sql"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/storefront/storefront-api/internal/models"
	redisview "github.com/storefront/storefront-api/internal/redis"
	"github.com/storefront/storefront-api/internal/storage"
)

const orderViewKeyPrefix = "order:view:"

func orderViewKey(id int64) string {
	return fmt.Sprintf("%s%d", orderViewKeyPrefix, id)
}

// OrderReadRepository handles all read operations for orders, Redis first
// with transparent PostgreSQL fallback and cache warming.
type OrderReadRepository struct {
	db    *sql.DB
	cache *redisview.ViewCache[models.Order]
}

func NewOrderReadRepository(db *sql.DB, redisClient *goredis.Client) *OrderReadRepository {
	return &OrderReadRepository{
		db:    db,
		cache: redisview.NewViewCache[models.Order](redisClient, 0),
	}
}

// GetByID returns the order, trying Redis first then PostgreSQL.
func (r *OrderReadRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	if order, ok := r.cache.Get(ctx, orderViewKey(id)); ok {
		return order, nil
	}

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

	r.CacheOrderView(ctx, &order)
	return &order, nil
}

// List returns all orders from PostgreSQL in id order.
func (r *OrderReadRepository) List(ctx context.Context) ([]models.Order, error) {
	query := `SELECT id, account_id, product_name, quantity, order_date FROM orders ORDER BY id`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var order models.Order
		if err := rows.Scan(&order.ID, &order.AccountID, &order.ProductName, &order.Quantity, &order.OrderDate); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

// CacheOrderView stores or refreshes the Redis read model for an order.
func (r *OrderReadRepository) CacheOrderView(ctx context.Context, order *models.Order) {
	r.cache.Set(ctx, orderViewKey(order.ID), order)
}

// InvalidateOrderView removes the Redis entry for a deleted order.
func (r *OrderReadRepository) InvalidateOrderView(ctx context.Context, id int64) {
	r.cache.Delete(ctx, orderViewKey(id))
}

// InvalidateOrderViews removes the Redis entries for orders removed by an
// account cascade delete.
func (r *OrderReadRepository) InvalidateOrderViews(ctx context.Context, ids []int64) {
	for _, id := range ids {
		r.cache.Delete(ctx, orderViewKey(id))
	}
}
