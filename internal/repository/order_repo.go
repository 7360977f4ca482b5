package repository

import (
	"context"
	"errors"

	"github.com/Matooloose/verdant-village-store-sub002/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepository struct {
	DB *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{DB: db}
}

// GetByID returns the order row for the given id, or nil when absent.
func (r *OrderRepository) GetByID(ctx context.Context, orderID string) (*model.Order, error) {
	q := `
		SELECT id, user_id, total, status, created_at, updated_at
		FROM orders
		WHERE id=$1
	`

	var o model.Order
	err := r.DB.QueryRow(ctx, q, orderID).Scan(
		&o.ID,
		&o.UserID,
		&o.Total,
		&o.Status,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

// SetStatusForUser transitions an order's status in a single conditioned
// write. The compound (id, user_id) predicate rejects notifications whose
// correlation values point at someone else's order; the caller reads the
// affected-row count to tell "updated" from "no such order for that user".
func (r *OrderRepository) SetStatusForUser(
	ctx context.Context,
	orderID string,
	userID string,
	status string,
) (int64, error) {

	q := `
		UPDATE orders
		SET status=$3,
		    updated_at=NOW()
		WHERE id=$1 AND user_id=$2
	`

	tag, err := r.DB.Exec(ctx, q, orderID, userID, status)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
