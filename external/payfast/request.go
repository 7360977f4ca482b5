package payfast

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	liveProcessURL    = "https://www.payfast.co.za/eng/process"
	sandboxProcessURL = "https://sandbox.payfast.co.za/eng/process"
)

var (
	ErrInvalidAmount = errors.New("payment amount must be greater than zero")
	ErrMissingField  = errors.New("missing required payment field")
)

// RequestBuilder assembles the signed parameter set a browser is redirected
// to the processor with. The merchant id/key identify the account on the
// wire; they are not secrets in the signing sense — the passphrase inside
// the Codec is.
type RequestBuilder struct {
	MerchantID  string
	MerchantKey string
	ReturnURL   string
	CancelURL   string
	NotifyURL   string
	Sandbox     bool
	Codec       *Codec
}

// Build produces the outbound payment-initiation parameters for one order.
// Pure assembly: no network, no persistence. Field order follows the
// processor's documented attribute order — the signature depends on it.
func (b *RequestBuilder) Build(orderID, userID, itemName string, amount decimal.Decimal) (*ParameterSet, error) {
	if orderID == "" || userID == "" || itemName == "" {
		return nil, ErrMissingField
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	params := NewParameterSet()
	params.Set("merchant_id", b.MerchantID)
	params.Set("merchant_key", b.MerchantKey)
	params.Set("return_url", b.ReturnURL)
	params.Set("cancel_url", b.CancelURL)
	params.Set("notify_url", b.NotifyURL)
	params.Set("m_payment_id", MerchantReference(orderID))
	params.Set("amount", amount.StringFixed(2))
	params.Set("item_name", itemName)
	params.Set("custom_str1", orderID)
	params.Set("custom_str2", userID)
	params.Set("signature", b.Codec.Sign(params))

	return params, nil
}

// ProcessURL is the processor endpoint the signed parameters are posted to.
func (b *RequestBuilder) ProcessURL() string {
	if b.Sandbox {
		return sandboxProcessURL
	}
	return liveProcessURL
}

// MerchantReference builds a unique merchant-side payment reference. The
// order id stays recoverable from the prefix; the uuid keeps retried
// checkouts distinct on the processor side.
func MerchantReference(orderID string) string {
	return fmt.Sprintf("ORDER-%s-%s", orderID, uuid.NewString())
}
