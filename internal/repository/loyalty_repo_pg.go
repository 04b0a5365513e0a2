package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LoyaltyRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.LoyaltyAccount, error)
}

type PGLoyaltyRepository struct {
	db *pgxpool.Pool
}

func NewLoyaltyRepository(db *pgxpool.Pool) LoyaltyRepository {
	return &PGLoyaltyRepository{db: db}
}

// GetByUsername returns a zero-balance account for users who never earned points.
func (r *PGLoyaltyRepository) GetByUsername(ctx context.Context, username string) (*domain.LoyaltyAccount, error) {
	row := r.db.QueryRow(ctx, `SELECT username, points, total_points_left FROM loyalty_points WHERE username=$1`, username)
	var a domain.LoyaltyAccount
	if err := row.Scan(&a.Username, &a.Points, &a.TotalPointsLeft); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.LoyaltyAccount{Username: username}, nil
		}
		return nil, err
	}
	return &a, nil
}

var _ LoyaltyRepository = (*PGLoyaltyRepository)(nil)
