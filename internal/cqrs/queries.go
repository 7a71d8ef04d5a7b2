package cqrs

// ---------- Account queries ----------

// GetAccountQuery fetches a single account by ID.
type GetAccountQuery struct {
	AccountID int64
}

// ListAccountsQuery fetches all accounts.
type ListAccountsQuery struct{}

// ---------- Order queries ----------

// GetOrderQuery fetches a single order by ID.
type GetOrderQuery struct {
	OrderID int64
}

// ListOrdersQuery fetches all orders.
type ListOrdersQuery struct{}
