package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Purchase is the write set of one booking-payment unit. Everything in it is
// persisted in a single transaction or not at all.
type Purchase struct {
	Booking        *domain.Booking
	Transaction    *domain.Transaction
	PointsEarned   int64
	PointsRedeemed int64
	Notifications  []string
}

type BookingRepository interface {
	CreatePurchase(ctx context.Context, p *Purchase) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetViewByID(ctx context.Context, id int64) (*domain.BookingView, error)
	ListViewsByUser(ctx context.Context, username string) ([]domain.BookingView, error)
	ListCancelledByUser(ctx context.Context, username string) ([]domain.BookingView, error)
	Cancel(ctx context.Context, id int64, notification string) (*domain.Booking, error)
	MarkRefunded(ctx context.Context, id int64, username string) error
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

// CreatePurchase inserts the booking, its transaction, the ledger mutation and
// the user notifications as one unit. The ledger update is a single conditional
// statement so a concurrent redemption cannot drive total_points_left negative.
func (r *PGBookingRepository) CreatePurchase(ctx context.Context, p *Purchase) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	b := p.Booking
	if err := tx.QueryRow(ctx, `INSERT INTO bookings (flight_id, username, passenger_name, status, refund_status, final_price_cents, booking_date)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		RETURNING id, booking_date`, b.FlightID, b.Username, b.PassengerName, b.Status, b.RefundStatus, b.FinalPriceCents).
		Scan(&b.ID, &b.BookingDate); err != nil {
		return err
	}

	t := p.Transaction
	t.BookingID = b.ID
	if err := tx.QueryRow(ctx, `INSERT INTO transactions (booking_id, username, amount_cents, discount_cents, transaction_type, status, payment_method, transaction_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		RETURNING id, transaction_date`, t.BookingID, t.Username, t.AmountCents, t.DiscountCents, t.Type, t.Status, t.PaymentMethod).
		Scan(&t.ID, &t.Date); err != nil {
		return err
	}

	delta := p.PointsEarned - p.PointsRedeemed
	cmd, err := tx.Exec(ctx, `INSERT INTO loyalty_points (username, points, total_points_left)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO UPDATE
		SET points = loyalty_points.points + $2,
		    total_points_left = loyalty_points.total_points_left + $3
		WHERE loyalty_points.total_points_left + $3 >= 0`, b.Username, p.PointsEarned, delta)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrInsufficientPoints
	}

	for _, msg := range p.Notifications {
		if _, err := tx.Exec(ctx, `INSERT INTO notifications (username, message) VALUES ($1, $2)`, b.Username, msg); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

const bookingColumns = `id, flight_id, username, passenger_name, status, refund_status, final_price_cents, booking_date`

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id)
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.FlightID, &b.Username, &b.PassengerName, &b.Status, &b.RefundStatus, &b.FinalPriceCents, &b.BookingDate); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

const bookingViewQuery = `SELECT b.id, b.flight_id, b.username, b.passenger_name, b.status, b.refund_status, b.final_price_cents, b.booking_date,
	f.flight_number, f.source, f.destination, f.departure_date
	FROM bookings b JOIN flights f ON b.flight_id = f.id`

func (r *PGBookingRepository) GetViewByID(ctx context.Context, id int64) (*domain.BookingView, error) {
	row := r.db.QueryRow(ctx, bookingViewQuery+` WHERE b.id=$1`, id)
	var v domain.BookingView
	if err := scanBookingView(row, &v); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *PGBookingRepository) ListViewsByUser(ctx context.Context, username string) ([]domain.BookingView, error) {
	rows, err := r.db.Query(ctx, bookingViewQuery+` WHERE b.username=$1 ORDER BY b.booking_date DESC`, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookingViews(rows)
}

func (r *PGBookingRepository) ListCancelledByUser(ctx context.Context, username string) ([]domain.BookingView, error) {
	rows, err := r.db.Query(ctx, bookingViewQuery+` WHERE b.username=$1 AND b.status=$2 ORDER BY b.booking_date DESC`, username, domain.BookingStatusCancelled)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookingViews(rows)
}

// Cancel flips the booking to cancelled and writes the cancellation notification
// in the same transaction. The status guard in the WHERE clause makes a repeat
// cancel a no-op at the SQL level.
func (r *PGBookingRepository) Cancel(ctx context.Context, id int64, notification string) (*domain.Booking, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `UPDATE bookings SET status=$1 WHERE id=$2 AND status<>$1 RETURNING `+bookingColumns, domain.BookingStatusCancelled, id)
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.FlightID, &b.Username, &b.PassengerName, &b.Status, &b.RefundStatus, &b.FinalPriceCents, &b.BookingDate); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}

	if _, err := tx.Exec(ctx, `INSERT INTO notifications (username, message) VALUES ($1, $2)`, b.Username, notification); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &b, nil
}

// MarkRefunded transitions the booking's refund status and the linked payment
// transaction together. Both updates carry their own status guards, so the
// operation is a no-op when the refund was already processed.
func (r *PGBookingRepository) MarkRefunded(ctx context.Context, id int64, username string) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `UPDATE bookings SET refund_status=$1 WHERE id=$2 AND username=$3 AND status=$4`,
		domain.RefundStatusRefunded, id, username, domain.BookingStatusCancelled)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrBookingNotCancelled
	}

	if _, err := tx.Exec(ctx, `UPDATE transactions SET status=$1 WHERE booking_id=$2 AND username=$3 AND status=$4`,
		domain.TransactionStatusRefunded, id, username, domain.TransactionStatusSuccess); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func scanBookingView(row pgx.Row, v *domain.BookingView) error {
	return row.Scan(&v.ID, &v.FlightID, &v.Username, &v.PassengerName, &v.Status, &v.RefundStatus, &v.FinalPriceCents, &v.BookingDate,
		&v.FlightNumber, &v.Source, &v.Destination, &v.DepartureDate)
}

func collectBookingViews(rows pgx.Rows) ([]domain.BookingView, error) {
	views := make([]domain.BookingView, 0)
	for rows.Next() {
		var v domain.BookingView
		if err := scanBookingView(rows, &v); err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

var _ BookingRepository = (*PGBookingRepository)(nil)
