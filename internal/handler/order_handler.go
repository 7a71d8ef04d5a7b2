package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/storefront/storefront-api/internal/cqrs"
	"github.com/storefront/storefront-api/internal/middleware"
	"github.com/storefront/storefront-api/internal/models"
	"github.com/storefront/storefront-api/internal/storage"
)

// OrderCommander defines the write-side operations used by OrderHandler.
type OrderCommander interface {
	CreateOrder(cqrs.CreateOrderCommand) (*models.Order, error)
	UpdateOrder(cqrs.UpdateOrderCommand) (*models.Order, error)
	DeleteOrder(cqrs.DeleteOrderCommand) error
}

// OrderQuerier defines the read-side operations used by OrderHandler.
type OrderQuerier interface {
	GetOrder(cqrs.GetOrderQuery) (*models.Order, error)
	ListOrders(cqrs.ListOrdersQuery) ([]models.Order, error)
}

// OrderHandler routes requests to the command or query service as appropriate.
type OrderHandler struct {
	commands OrderCommander
	queries  OrderQuerier
}

// CreateOrderRequest deliberately carries no positivity rule on quantity:
// the storage check constraint is the source of truth, so quantity 0
// passes shape validation and fails at commit as invalid data. AccountID
// and Quantity are pointers so that an explicit zero still counts as
// "supplied".
type CreateOrderRequest struct {
	AccountID   *int64 `json:"account_id" validate:"required"`
	ProductName string `json:"product_name" validate:"required"`
	Quantity    *int   `json:"quantity" validate:"required"`
}

// UpdateOrderRequest is a partial update: nil fields were not supplied
// and must leave the stored values untouched.
type UpdateOrderRequest struct {
	ProductName *string `json:"product_name" validate:"omitempty,min=1"`
	Quantity    *int    `json:"quantity"`
}

func NewOrderHandler(commands OrderCommander, queries OrderQuerier) *OrderHandler {
	return &OrderHandler{commands: commands, queries: queries}
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	order, err := h.commands.CreateOrder(cqrs.CreateOrderCommand{
		AccountID:   *req.AccountID,
		ProductName: req.ProductName,
		Quantity:    *req.Quantity,
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "User not found")
			return
		}
		if errors.Is(err, storage.ErrInvalidData) {
			middleware.RespondWithError(c, http.StatusBadRequest, "Invalid order data")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to create order")
		return
	}

	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := parseID(c.Param("orderId"))
	if err != nil {
		middleware.RespondWithError(c, http.StatusNotFound, "Order not found")
		return
	}

	order, err := h.queries.GetOrder(cqrs.GetOrderQuery{OrderID: id})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "Order not found")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to get order")
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.queries.ListOrders(cqrs.ListOrdersQuery{})
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to list orders")
		return
	}

	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	id, err := parseID(c.Param("orderId"))
	if err != nil {
		middleware.RespondWithError(c, http.StatusNotFound, "Order not found")
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	order, err := h.commands.UpdateOrder(cqrs.UpdateOrderCommand{
		OrderID:     id,
		ProductName: req.ProductName,
		Quantity:    req.Quantity,
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "Order not found")
			return
		}
		if errors.Is(err, storage.ErrInvalidData) {
			middleware.RespondWithError(c, http.StatusBadRequest, "Invalid order data")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to update order")
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	id, err := parseID(c.Param("orderId"))
	if err != nil {
		middleware.RespondWithError(c, http.StatusNotFound, "Order not found")
		return
	}

	if err := h.commands.DeleteOrder(cqrs.DeleteOrderCommand{OrderID: id}); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "Order not found")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to delete order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Order deleted successfully with ID - %d", id),
	})
}
