package repository

import (
	"context"

	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *domain.Feedback) error
	ListByBooking(ctx context.Context, bookingID int64) ([]domain.Feedback, error)
}

type PGFeedbackRepository struct {
	db *pgxpool.Pool
}

func NewFeedbackRepository(db *pgxpool.Pool) FeedbackRepository {
	return &PGFeedbackRepository{db: db}
}

func (r *PGFeedbackRepository) Create(ctx context.Context, feedback *domain.Feedback) error {
	return r.db.QueryRow(ctx, `INSERT INTO feedback (booking_id, username, rating, comments) VALUES ($1, $2, $3, $4) RETURNING id, created_at`,
		feedback.BookingID, feedback.Username, feedback.Rating, feedback.Comments).
		Scan(&feedback.ID, &feedback.CreatedAt)
}

func (r *PGFeedbackRepository) ListByBooking(ctx context.Context, bookingID int64) ([]domain.Feedback, error) {
	rows, err := r.db.Query(ctx, `SELECT id, booking_id, username, rating, comments, created_at FROM feedback WHERE booking_id=$1 ORDER BY created_at DESC`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.Feedback, 0)
	for rows.Next() {
		var f domain.Feedback
		if err := rows.Scan(&f.ID, &f.BookingID, &f.Username, &f.Rating, &f.Comments, &f.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, f)
	}
	return items, rows.Err()
}

var _ FeedbackRepository = (*PGFeedbackRepository)(nil)
