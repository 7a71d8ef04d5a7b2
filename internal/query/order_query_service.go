package query

import (
	"context"

	"github.com/storefront/storefront-api/internal/cqrs"
	"github.com/storefront/storefront-api/internal/models"
	"github.com/storefront/storefront-api/internal/repository"
)

// OrderQueryService serves the read side for orders.
type OrderQueryService struct {
	readRepo *repository.OrderReadRepository
}

func NewOrderQueryService(readRepo *repository.OrderReadRepository) *OrderQueryService {
	return &OrderQueryService{readRepo: readRepo}
}

func (s *OrderQueryService) GetOrder(q cqrs.GetOrderQuery) (*models.Order, error) {
	return s.readRepo.GetByID(context.Background(), q.OrderID)
}

func (s *OrderQueryService) ListOrders(q cqrs.ListOrdersQuery) ([]models.Order, error) {
	return s.readRepo.List(context.Background())
}
