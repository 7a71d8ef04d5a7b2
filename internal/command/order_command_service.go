package command

import (
	"context"
	"log"

	"github.com/storefront/storefront-api/internal/cqrs"
	"github.com/storefront/storefront-api/internal/events"
	"github.com/storefront/storefront-api/internal/models"
	"github.com/storefront/storefront-api/internal/repository"
)

// OrderCommandService writes order state to PostgreSQL and keeps the Redis
// read model current. It resolves the owning account before opening any
// mutating transaction; quantity rules are left to the storage engine's
// check constraint.
type OrderCommandService struct {
	writeRepo   *repository.OrderWriteRepository
	readRepo    *repository.OrderReadRepository
	accountRepo *repository.AccountWriteRepository
	publisher   *events.Publisher
}

func NewOrderCommandService(
	writeRepo *repository.OrderWriteRepository,
	readRepo *repository.OrderReadRepository,
	accountRepo *repository.AccountWriteRepository,
	publisher *events.Publisher,
) *OrderCommandService {
	return &OrderCommandService{
		writeRepo:   writeRepo,
		readRepo:    readRepo,
		accountRepo: accountRepo,
		publisher:   publisher,
	}
}

func (s *OrderCommandService) CreateOrder(cmd cqrs.CreateOrderCommand) (*models.Order, error) {
	// Resolve the owning account first so a missing account never opens a
	// mutating transaction.
	if _, err := s.accountRepo.GetByID(cmd.AccountID); err != nil {
		return nil, err
	}
	order := &models.Order{
		AccountID:   cmd.AccountID,
		ProductName: cmd.ProductName,
		Quantity:    cmd.Quantity,
	}
	if err := s.writeRepo.Create(order); err != nil {
		return nil, err
	}
	ctx := context.Background()
	s.readRepo.CacheOrderView(ctx, order)
	if err := s.publisher.Publish(ctx, events.OrderEventsStream, events.OrderCreated, events.OrderCreatedEvent{
		OrderID:     order.ID,
		AccountID:   order.AccountID,
		ProductName: order.ProductName,
		Quantity:    order.Quantity,
	}); err != nil {
		log.Printf("Failed to publish order.created event: %v", err)
	}
	return order, nil
}

// UpdateOrder applies only the fields the command carries; nil fields keep
// their stored values. A constraint violation (e.g. quantity 0) rolls the
// write back and the stored order is left unchanged.
func (s *OrderCommandService) UpdateOrder(cmd cqrs.UpdateOrderCommand) (*models.Order, error) {
	order, err := s.writeRepo.GetByID(cmd.OrderID)
	if err != nil {
		return nil, err
	}
	if cmd.ProductName != nil {
		order.ProductName = *cmd.ProductName
	}
	if cmd.Quantity != nil {
		order.Quantity = *cmd.Quantity
	}
	if err := s.writeRepo.Update(order); err != nil {
		return nil, err
	}
	ctx := context.Background()
	s.readRepo.CacheOrderView(ctx, order)
	if err := s.publisher.Publish(ctx, events.OrderEventsStream, events.OrderUpdated, events.OrderUpdatedEvent{
		OrderID:     order.ID,
		ProductName: order.ProductName,
		Quantity:    order.Quantity,
	}); err != nil {
		log.Printf("Failed to publish order.updated event: %v", err)
	}
	return order, nil
}

func (s *OrderCommandService) DeleteOrder(cmd cqrs.DeleteOrderCommand) error {
	if _, err := s.writeRepo.GetByID(cmd.OrderID); err != nil {
		return err
	}
	if err := s.writeRepo.Delete(cmd.OrderID); err != nil {
		return err
	}
	ctx := context.Background()
	s.readRepo.InvalidateOrderView(ctx, cmd.OrderID)
	if err := s.publisher.Publish(ctx, events.OrderEventsStream, events.OrderDeleted, events.OrderDeletedEvent{
		OrderID: cmd.OrderID,
	}); err != nil {
		log.Printf("Failed to publish order.deleted event: %v", err)
	}
	return nil
}
