package events

import "time"

// Event types
const (
	AccountCreated = "user.created"
	AccountUpdated = "user.updated"
	AccountDeleted = "user.deleted"

	OrderCreated = "order.created"
	OrderUpdated = "order.updated"
	OrderDeleted = "order.deleted"
)

// Stream names
const (
	AccountEventsStream = "user.events"
	OrderEventsStream   = "order.events"
)

// Base event structure
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// Account events
type AccountCreatedEvent struct {
	AccountID int64  `json:"account_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
}

type AccountUpdatedEvent struct {
	AccountID int64  `json:"account_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
}

type AccountDeletedEvent struct {
	AccountID int64 `json:"account_id"`
	// DeletedOrders is the number of orders removed by the cascade.
	DeletedOrders int `json:"deleted_orders"`
}

// Order events
type OrderCreatedEvent struct {
	OrderID     int64  `json:"order_id"`
	AccountID   int64  `json:"account_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

type OrderUpdatedEvent struct {
	OrderID     int64  `json:"order_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

type OrderDeletedEvent struct {
	OrderID int64 `json:"order_id"`
}
