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

const accountViewKeyPrefix = "user:view:"

func accountViewKey(id int64) string {
	return fmt.Sprintf("%s%d", accountViewKeyPrefix, id)
}

// AccountReadRepository handles all read operations for accounts. It treats
// Redis as the primary read store and falls back to PostgreSQL
// transparently, warming the cache on every cold read.
type AccountReadRepository struct {
	db    *sql.DB
	cache *redisview.ViewCache[models.Account]
}

func NewAccountReadRepository(db *sql.DB, redisClient *goredis.Client) *AccountReadRepository {
	return &AccountReadRepository{
		db:    db,
		cache: redisview.NewViewCache[models.Account](redisClient, 0),
	}
}

// GetByID returns the account, trying Redis first then PostgreSQL.
func (r *AccountReadRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	if account, ok := r.cache.Get(ctx, accountViewKey(id)); ok {
		return account, nil
	}

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

	r.CacheAccountView(ctx, &account)
	return &account, nil
}

// List returns all accounts from PostgreSQL in id order.
func (r *AccountReadRepository) List(ctx context.Context) ([]models.Account, error) {
	query := `SELECT id, name, email, created_at FROM users ORDER BY id`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		var account models.Account
		if err := rows.Scan(&account.ID, &account.Name, &account.Email, &account.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

// CacheAccountView stores or refreshes the Redis read model for an account.
// Called by the command service after every successful mutation.
func (r *AccountReadRepository) CacheAccountView(ctx context.Context, account *models.Account) {
	r.cache.Set(ctx, accountViewKey(account.ID), account)
}

// InvalidateAccountView removes the Redis entry for a deleted account.
func (r *AccountReadRepository) InvalidateAccountView(ctx context.Context, id int64) {
	r.cache.Delete(ctx, accountViewKey(id))
}
