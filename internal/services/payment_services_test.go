package services

import (
	"context"
	"testing"

	"github.com/Matooloose/verdant-village-store-sub002/external/payfast"
	"github.com/Matooloose/verdant-village-store-sub002/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderReader struct {
	order *model.Order
	err   error
}

func (f *fakeOrderReader) GetByID(context.Context, string) (*model.Order, error) {
	return f.order, f.err
}

func checkoutBuilder() *payfast.RequestBuilder {
	return &payfast.RequestBuilder{
		MerchantID:  "10000100",
		MerchantKey: "46f0cd694581a",
		ReturnURL:   "https://shop.example/pay/return",
		CancelURL:   "https://shop.example/pay/cancel",
		NotifyURL:   "https://shop.example/store/payments/notify",
		Sandbox:     true,
		Codec:       payfast.NewCodec("jt7NOE43FZPn", payfast.EncodePlus),
	}
}

func pendingOrder() *model.Order {
	return &model.Order{
		ID:     "ord-123",
		UserID: "usr-9",
		Total:  decimal.RequireFromString("100"),
		Status: model.OrderPending,
	}
}

func TestPaymentService_CreateCheckout(t *testing.T) {
	svc := NewPaymentService(&fakeOrderReader{order: pendingOrder()}, checkoutBuilder(), zerolog.Nop())

	result, err := svc.CreateCheckout(context.Background(), "ord-123", "usr-9")
	require.NoError(t, err)

	assert.Equal(t, "https://sandbox.payfast.co.za/eng/process", result.ProcessURL)
	assert.Equal(t, "100.00", result.Params["amount"])
	assert.Equal(t, "ord-123", result.Params["custom_str1"])
	assert.Equal(t, "usr-9", result.Params["custom_str2"])
	assert.Len(t, result.Params["signature"], 32)
}

func TestPaymentService_CreateCheckout_OrderMissing(t *testing.T) {
	svc := NewPaymentService(&fakeOrderReader{}, checkoutBuilder(), zerolog.Nop())

	_, err := svc.CreateCheckout(context.Background(), "ord-404", "usr-9")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestPaymentService_CreateCheckout_WrongUser(t *testing.T) {
	svc := NewPaymentService(&fakeOrderReader{order: pendingOrder()}, checkoutBuilder(), zerolog.Nop())

	_, err := svc.CreateCheckout(context.Background(), "ord-123", "usr-1000")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestPaymentService_CreateCheckout_NotPayable(t *testing.T) {
	order := pendingOrder()
	order.Status = model.OrderConfirmed
	svc := NewPaymentService(&fakeOrderReader{order: order}, checkoutBuilder(), zerolog.Nop())

	_, err := svc.CreateCheckout(context.Background(), "ord-123", "usr-9")
	assert.ErrorIs(t, err, ErrOrderNotPayable)
}

func TestPaymentService_CreateCheckout_ZeroTotal(t *testing.T) {
	order := pendingOrder()
	order.Total = decimal.Zero
	svc := NewPaymentService(&fakeOrderReader{order: order}, checkoutBuilder(), zerolog.Nop())

	_, err := svc.CreateCheckout(context.Background(), "ord-123", "usr-9")
	assert.ErrorIs(t, err, payfast.ErrInvalidAmount)
}
