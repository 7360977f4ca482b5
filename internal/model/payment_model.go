package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment statuses, mirroring the gateway's vocabulary.
const (
	PaymentPending   = "PENDING"
	PaymentCompleted = "COMPLETED"
	PaymentFailed    = "FAILED"
	PaymentCancelled = "CANCELLED"
)

// Payment is the gateway-side record for an order. One row per order —
// order_id carries a uniqueness constraint and redelivered notifications
// overwrite in place rather than inserting duplicates.
type Payment struct {
	OrderID       string          `db:"order_id" json:"order_id"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`
	Currency      string          `db:"currency" json:"currency"`
	Status        string          `db:"status" json:"status"`
	PaymentMethod string          `db:"payment_method" json:"payment_method"`
	TransactionID string          `db:"transaction_id" json:"transaction_id"`
	Metadata      []byte          `db:"metadata" json:"metadata"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}
