package repository

import (
	"context"

	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type NotificationRepository interface {
	ListByUser(ctx context.Context, username string) ([]domain.Notification, error)
	MarkAllRead(ctx context.Context, username string) error
}

type PGNotificationRepository struct {
	db *pgxpool.Pool
}

func NewNotificationRepository(db *pgxpool.Pool) NotificationRepository {
	return &PGNotificationRepository{db: db}
}

func (r *PGNotificationRepository) ListByUser(ctx context.Context, username string) ([]domain.Notification, error) {
	rows, err := r.db.Query(ctx, `SELECT id, username, message, is_read, created_at FROM notifications WHERE username=$1 ORDER BY created_at DESC`, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := make([]domain.Notification, 0)
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.Username, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *PGNotificationRepository) MarkAllRead(ctx context.Context, username string) error {
	_, err := r.db.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE username=$1`, username)
	return err
}

var _ NotificationRepository = (*PGNotificationRepository)(nil)
