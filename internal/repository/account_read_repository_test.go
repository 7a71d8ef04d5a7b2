package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/storefront/storefront-api/internal/storage"
)

func newAccountReadRepoMock(t *testing.T) (sqlmock.Sqlmock, *miniredis.Miniredis, *AccountReadRepository) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return mock, mr, NewAccountReadRepository(db, client)
}

// A cold read falls through to Postgres and warms the cache; the next read
// is served from Redis without touching the database again.
func TestAccountReadColdThenWarm(t *testing.T) {
	mock, mr, repo := newAccountReadRepoMock(t)
	ctx := context.Background()

	created := time.Now().UTC()
	mock.ExpectQuery("SELECT id, name, email, created_at FROM users").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "created_at"}).
			AddRow(1, "Alice", "alice@example.com", created))

	first, err := repo.GetByID(ctx, 1)
	if err != nil {
		t.Fatalf("cold read: %v", err)
	}
	if !mr.Exists("user:view:1") {
		t.Fatal("expected cold read to warm the cache")
	}

	// No further SQL expectations: this read must be served from Redis.
	second, err := repo.GetByID(ctx, 1)
	if err != nil {
		t.Fatalf("warm read: %v", err)
	}
	if second.Email != first.Email || second.ID != first.ID {
		t.Errorf("warm read mismatch: %+v vs %+v", second, first)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestAccountReadNotFound(t *testing.T) {
	mock, _, repo := newAccountReadRepoMock(t)

	mock.ExpectQuery("SELECT id, name, email, created_at FROM users").
		WithArgs(int64(999)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "created_at"}))

	_, err := repo.GetByID(context.Background(), 999)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

// List always reads Postgres; two calls with no writes in between return
// the same set.
func TestAccountListIsRepeatable(t *testing.T) {
	mock, _, repo := newAccountReadRepoMock(t)
	ctx := context.Background()

	created := time.Now().UTC()
	for i := 0; i < 2; i++ {
		mock.ExpectQuery("SELECT id, name, email, created_at FROM users ORDER BY id").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "created_at"}).
				AddRow(1, "Alice", "alice@example.com", created).
				AddRow(2, "Bob", "bob@example.com", created))
	}

	first, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("first list: %v", err)
	}
	second, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("second list: %v", err)
	}
	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("expected 2 accounts in both lists, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("list mismatch at %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}
