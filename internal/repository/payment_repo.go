package repository

import (
	"context"
	"errors"

	"github.com/Matooloose/verdant-village-store-sub002/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PaymentRepository struct {
	DB *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

// Upsert writes the payment row for an order as one atomic statement.
// Insert-or-update on the order_id unique constraint is what makes webhook
// redelivery idempotent: two concurrent handlers for the same order cannot
// produce duplicate rows or lose each other's update the way a
// read-then-write sequence could.
func (r *PaymentRepository) Upsert(ctx context.Context, p *model.Payment) error {
	q := `
		INSERT INTO payments
			(order_id, amount, currency, status, payment_method, transaction_id, metadata, created_at, updated_at)
		VALUES
			($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		ON CONFLICT (order_id) DO UPDATE
		SET amount=EXCLUDED.amount,
		    currency=EXCLUDED.currency,
		    status=EXCLUDED.status,
		    payment_method=EXCLUDED.payment_method,
		    transaction_id=EXCLUDED.transaction_id,
		    metadata=EXCLUDED.metadata,
		    updated_at=NOW()
	`

	_, err := r.DB.Exec(
		ctx, q,
		p.OrderID,
		p.Amount,
		p.Currency,
		p.Status,
		p.PaymentMethod,
		p.TransactionID,
		p.Metadata,
	)
	return err
}

// GetByOrderID returns the payment row for an order, or nil when absent.
func (r *PaymentRepository) GetByOrderID(
	ctx context.Context,
	orderID string,
) (*model.Payment, error) {

	var p model.Payment

	q := `
		SELECT order_id, amount, currency, status,
		       payment_method, transaction_id, metadata,
		       created_at, updated_at
		FROM payments
		WHERE order_id=$1
	`

	err := r.DB.QueryRow(ctx, q, orderID).Scan(
		&p.OrderID,
		&p.Amount,
		&p.Currency,
		&p.Status,
		&p.PaymentMethod,
		&p.TransactionID,
		&p.Metadata,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &p, nil
}
