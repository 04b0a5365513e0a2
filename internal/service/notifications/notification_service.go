package notifications

import (
	"context"

	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/Domenick1991/skybook/internal/repository"
)

type NotificationUseCase interface {
	List(ctx context.Context, username string) ([]domain.Notification, error)
	MarkAllRead(ctx context.Context, username string) error
}

type NotificationService struct {
	repo repository.NotificationRepository
}

func NewNotificationService(repo repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

func (s *NotificationService) List(ctx context.Context, username string) ([]domain.Notification, error) {
	return s.repo.ListByUser(ctx, username)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, username string) error {
	return s.repo.MarkAllRead(ctx, username)
}

var _ NotificationUseCase = (*NotificationService)(nil)
