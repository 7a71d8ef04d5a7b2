package query

import (
	"context"

	"github.com/storefront/storefront-api/internal/cqrs"
	"github.com/storefront/storefront-api/internal/models"
	"github.com/storefront/storefront-api/internal/repository"
)

// AccountQueryService serves the read side for accounts.
type AccountQueryService struct {
	readRepo *repository.AccountReadRepository
}

func NewAccountQueryService(readRepo *repository.AccountReadRepository) *AccountQueryService {
	return &AccountQueryService{readRepo: readRepo}
}

func (s *AccountQueryService) GetAccount(q cqrs.GetAccountQuery) (*models.Account, error) {
	return s.readRepo.GetByID(context.Background(), q.AccountID)
}

func (s *AccountQueryService) ListAccounts(q cqrs.ListAccountsQuery) ([]models.Account, error) {
	return s.readRepo.List(context.Background())
}
