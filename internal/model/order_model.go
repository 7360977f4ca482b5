package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses. Payment reconciliation only ever moves an order between
// pending, confirmed and cancelled; the fulfilment statuses are owned by the
// storefront.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderConfirmed  = "confirmed"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

type Order struct {
	ID        string          `db:"id" json:"id"`
	UserID    string          `db:"user_id" json:"user_id"`
	Total     decimal.Decimal `db:"total" json:"total"`
	Status    string          `db:"status" json:"status"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}
