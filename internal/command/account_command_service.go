package command

import (
	"context"
	"log"

	"github.com/storefront/storefront-api/internal/cqrs"
	"github.com/storefront/storefront-api/internal/events"
	"github.com/storefront/storefront-api/internal/models"
	"github.com/storefront/storefront-api/internal/repository"
)

// AccountCommandService writes account state to PostgreSQL and keeps the
// Redis read model current. Deleting an account cascades to its orders, so
// the service also drops the cached views of the orders it takes with it.
type AccountCommandService struct {
	writeRepo     *repository.AccountWriteRepository
	readRepo      *repository.AccountReadRepository
	orderReadRepo *repository.OrderReadRepository
	publisher     *events.Publisher
}

func NewAccountCommandService(
	writeRepo *repository.AccountWriteRepository,
	readRepo *repository.AccountReadRepository,
	orderReadRepo *repository.OrderReadRepository,
	publisher *events.Publisher,
) *AccountCommandService {
	return &AccountCommandService{
		writeRepo:     writeRepo,
		readRepo:      readRepo,
		orderReadRepo: orderReadRepo,
		publisher:     publisher,
	}
}

func (s *AccountCommandService) CreateAccount(cmd cqrs.CreateAccountCommand) (*models.Account, error) {
	account := &models.Account{
		Name:  cmd.Name,
		Email: cmd.Email,
	}
	if err := s.writeRepo.Create(account); err != nil {
		return nil, err
	}
	ctx := context.Background()
	s.readRepo.CacheAccountView(ctx, account)
	if err := s.publisher.Publish(ctx, events.AccountEventsStream, events.AccountCreated, events.AccountCreatedEvent{
		AccountID: account.ID,
		Name:      account.Name,
		Email:     account.Email,
	}); err != nil {
		log.Printf("Failed to publish user.created event: %v", err)
	}
	return account, nil
}

// UpdateAccount applies only the fields the command carries; nil fields
// keep their stored values. A duplicate email rolls the write back and the
// stored account is left unchanged.
func (s *AccountCommandService) UpdateAccount(cmd cqrs.UpdateAccountCommand) (*models.Account, error) {
	account, err := s.writeRepo.GetByID(cmd.AccountID)
	if err != nil {
		return nil, err
	}
	if cmd.Name != nil {
		account.Name = *cmd.Name
	}
	if cmd.Email != nil {
		account.Email = *cmd.Email
	}
	if err := s.writeRepo.Update(account); err != nil {
		return nil, err
	}
	ctx := context.Background()
	s.readRepo.CacheAccountView(ctx, account)
	if err := s.publisher.Publish(ctx, events.AccountEventsStream, events.AccountUpdated, events.AccountUpdatedEvent{
		AccountID: account.ID,
		Name:      account.Name,
		Email:     account.Email,
	}); err != nil {
		log.Printf("Failed to publish user.updated event: %v", err)
	}
	return account, nil
}

// DeleteAccount removes the account and, via the storage cascade, all of
// its orders in one transaction. The existence check runs before the
// mutating transaction; the owned order ids are collected up front so
// their cached views can be invalidated after the commit.
func (s *AccountCommandService) DeleteAccount(cmd cqrs.DeleteAccountCommand) error {
	if _, err := s.writeRepo.GetByID(cmd.AccountID); err != nil {
		return err
	}
	orderIDs, err := s.writeRepo.OrderIDs(cmd.AccountID)
	if err != nil {
		return err
	}
	if err := s.writeRepo.Delete(cmd.AccountID); err != nil {
		return err
	}
	ctx := context.Background()
	s.readRepo.InvalidateAccountView(ctx, cmd.AccountID)
	s.orderReadRepo.InvalidateOrderViews(ctx, orderIDs)
	if err := s.publisher.Publish(ctx, events.AccountEventsStream, events.AccountDeleted, events.AccountDeletedEvent{
		AccountID:     cmd.AccountID,
		DeletedOrders: len(orderIDs),
	}); err != nil {
		log.Printf("Failed to publish user.deleted event: %v", err)
	}
	return nil
}
