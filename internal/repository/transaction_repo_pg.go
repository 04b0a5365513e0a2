package repository

import (
	"context"

	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TransactionRepository interface {
	ListViewsByUser(ctx context.Context, username string) ([]domain.TransactionView, error)
}

type PGTransactionRepository struct {
	db *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) TransactionRepository {
	return &PGTransactionRepository{db: db}
}

func (r *PGTransactionRepository) ListViewsByUser(ctx context.Context, username string) ([]domain.TransactionView, error) {
	rows, err := r.db.Query(ctx, `SELECT t.id, t.booking_id, t.username, t.amount_cents, t.discount_cents, t.transaction_type, t.status, t.payment_method, t.transaction_date,
		f.flight_number, f.source, f.destination
		FROM transactions t
		JOIN bookings b ON t.booking_id = b.id
		JOIN flights f ON b.flight_id = f.id
		WHERE t.username=$1
		ORDER BY t.transaction_date DESC`, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]domain.TransactionView, 0)
	for rows.Next() {
		var v domain.TransactionView
		if err := rows.Scan(&v.ID, &v.BookingID, &v.Username, &v.AmountCents, &v.DiscountCents, &v.Type, &v.Status, &v.PaymentMethod, &v.Date,
			&v.FlightNumber, &v.Source, &v.Destination); err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

var _ TransactionRepository = (*PGTransactionRepository)(nil)
