package cqrs

type CreateAccountCommand struct {
	Name  string
	Email string
}

// UpdateAccountCommand carries partial-update fields. A nil field was not
// supplied by the client and must leave the stored value untouched.
type UpdateAccountCommand struct {
	AccountID int64
	Name      *string
	Email     *string
}

type DeleteAccountCommand struct {
	AccountID int64
}

type CreateOrderCommand struct {
	AccountID   int64
	ProductName string
	Quantity    int
}

// UpdateOrderCommand carries partial-update fields, nil meaning "not supplied".
type UpdateOrderCommand struct {
	OrderID     int64
	ProductName *string
	Quantity    *int
}

type DeleteOrderCommand struct {
	OrderID int64
}
