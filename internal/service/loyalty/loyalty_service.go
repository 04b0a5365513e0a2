package loyalty

import (
	"context"

	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/Domenick1991/skybook/internal/repository"
)

type LoyaltyUseCase interface {
	Balance(ctx context.Context, username string) (*domain.LoyaltyAccount, error)
}

type LoyaltyService struct {
	repo repository.LoyaltyRepository
}

func NewLoyaltyService(repo repository.LoyaltyRepository) *LoyaltyService {
	return &LoyaltyService{repo: repo}
}

func (s *LoyaltyService) Balance(ctx context.Context, username string) (*domain.LoyaltyAccount, error) {
	return s.repo.GetByUsername(ctx, username)
}

var _ LoyaltyUseCase = (*LoyaltyService)(nil)
