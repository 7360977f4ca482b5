package model

import "github.com/shopspring/decimal"

// External payment statuses as PayFast reports them in ITN callbacks.
const (
	ITNComplete  = "COMPLETE"
	ITNFailed    = "FAILED"
	ITNCancelled = "CANCELLED"
)

// PaymentNotification is the typed outcome of a verified ITN callback.
// The verifier produces it after the signature and field gates pass, so
// everything downstream works with checked values instead of raw maps.
type PaymentNotification struct {
	OrderID       string // custom_str1, set at request time
	UserID        string // custom_str2, set at request time
	Status        string // external vocabulary (ITN* above)
	TransactionID string // pf_payment_id
	AmountGross   decimal.Decimal
	AmountFee     decimal.Decimal
	AmountNet     decimal.Decimal
	PaymentMethod string
	Raw           []byte // full payload as received, kept for the payment metadata blob
}
