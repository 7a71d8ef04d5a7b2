package command

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	goredis "github.com/redis/go-redis/v9"
	"github.com/storefront/storefront-api/internal/cqrs"
	"github.com/storefront/storefront-api/internal/events"
	"github.com/storefront/storefront-api/internal/models"
	"github.com/storefront/storefront-api/internal/repository"
	"github.com/storefront/storefront-api/internal/storage"
)

func newOrderCommandService(db *sql.DB, client *goredis.Client) *OrderCommandService {
	return NewOrderCommandService(
		repository.NewOrderWriteRepository(db),
		repository.NewOrderReadRepository(db, client),
		repository.NewAccountWriteRepository(db),
		events.NewPublisher(client),
	)
}

// A missing account must fail before any mutating transaction: the only
// statement the store sees is the existence check.
func TestCreateOrderMissingAccountOpensNoTransaction(t *testing.T) {
	mock, _, client, db := newCommandEnv(t)
	svc := newOrderCommandService(db, client)

	mock.ExpectQuery("SELECT id, name, email, created_at FROM users").
		WithArgs(int64(999)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "created_at"}))

	_, err := svc.CreateOrder(cqrs.CreateOrderCommand{AccountID: 999, ProductName: "Widget", Quantity: 2})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expected no mutating statements, got: %v", err)
	}
}

func TestCreateOrderWarmsCacheAndPublishes(t *testing.T) {
	mock, mr, client, db := newCommandEnv(t)
	svc := newOrderCommandService(db, client)

	created := time.Now().UTC()
	mock.ExpectQuery("SELECT id, name, email, created_at FROM users").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "created_at"}).
			AddRow(1, "Alice", "alice@example.com", created))
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(int64(1), "Widget", 2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_date"}).AddRow(1, created))
	mock.ExpectCommit()

	order, err := svc.CreateOrder(cqrs.CreateOrderCommand{AccountID: 1, ProductName: "Widget", Quantity: 2})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if order.ID != 1 || order.AccountID != 1 {
		t.Errorf("unexpected order: %+v", order)
	}

	data, err := mr.Get("order:view:1")
	if err != nil {
		t.Fatalf("expected cached view, got %v", err)
	}
	var cached models.Order
	if err := json.Unmarshal([]byte(data), &cached); err != nil {
		t.Fatalf("failed to unmarshal cached view: %v", err)
	}
	if cached.Quantity != 2 {
		t.Errorf("cached view quantity %d, want 2", cached.Quantity)
	}

	n, err := client.XLen(context.Background(), events.OrderEventsStream).Result()
	if err != nil || n != 1 {
		t.Errorf("expected 1 event on %s, got %d (err %v)", events.OrderEventsStream, n, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

// A constraint violation rolls back and must leave the cached view at its
// previous state.
func TestUpdateOrderConstraintViolationLeavesCacheUntouched(t *testing.T) {
	mock, mr, client, db := newCommandEnv(t)
	svc := newOrderCommandService(db, client)

	prior, _ := json.Marshal(models.Order{ID: 1, AccountID: 1, ProductName: "Widget", Quantity: 2})
	mr.Set("order:view:1", string(prior))

	placed := time.Now().UTC()
	mock.ExpectQuery("SELECT id, account_id, product_name, quantity, order_date FROM orders").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "account_id", "product_name", "quantity", "order_date"}).
			AddRow(1, 1, "Widget", 2, placed))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE orders").
		WithArgs(int64(1), "Widget", 0).
		WillReturnError(&pq.Error{Code: "23514", Constraint: "quantity_positive"})
	mock.ExpectRollback()

	quantity := 0
	_, err := svc.UpdateOrder(cqrs.UpdateOrderCommand{OrderID: 1, Quantity: &quantity})
	if !errors.Is(err, storage.ErrInvalidData) {
		t.Fatalf("expected invalid data, got %v", err)
	}

	data, err := mr.Get("order:view:1")
	if err != nil {
		t.Fatalf("expected cached view to survive, got %v", err)
	}
	var cached models.Order
	if err := json.Unmarshal([]byte(data), &cached); err != nil {
		t.Fatalf("failed to unmarshal cached view: %v", err)
	}
	if cached.Quantity != 2 {
		t.Errorf("cached quantity %d, want prior value 2", cached.Quantity)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestDeleteOrderInvalidatesView(t *testing.T) {
	mock, mr, client, db := newCommandEnv(t)
	svc := newOrderCommandService(db, client)

	mr.Set("order:view:3", "{}")

	placed := time.Now().UTC()
	mock.ExpectQuery("SELECT id, account_id, product_name, quantity, order_date FROM orders").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "account_id", "product_name", "quantity", "order_date"}).
			AddRow(3, 1, "Widget", 2, placed))
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM orders").
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := svc.DeleteOrder(cqrs.DeleteOrderCommand{OrderID: 3}); err != nil {
		t.Fatalf("delete order: %v", err)
	}
	if mr.Exists("order:view:3") {
		t.Error("expected order view to be invalidated")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
