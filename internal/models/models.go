package models

import "time"

// Account is the write model for a registered user. ID and CreatedAt are
// assigned by the storage engine on insert and never mutated afterwards.
type Account struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Order is the write model for a purchase record. Every order is owned by
// exactly one account; deleting the account cascades to its orders.
type Order struct {
	ID          int64     `json:"id"`
	AccountID   int64     `json:"account_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	OrderDate   time.Time `json:"order_date"`
}
