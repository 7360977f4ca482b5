package payfast

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBuilder() *RequestBuilder {
	return &RequestBuilder{
		MerchantID:  "10000100",
		MerchantKey: "46f0cd694581a",
		ReturnURL:   "https://shop.example/pay/return",
		CancelURL:   "https://shop.example/pay/cancel",
		NotifyURL:   "https://shop.example/store/payments/notify",
		Sandbox:     true,
		Codec:       NewCodec("jt7NOE43FZPn", EncodePlus),
	}
}

func TestRequestBuilder_Build(t *testing.T) {
	b := testBuilder()

	params, err := b.Build("ord-123", "usr-9", "Order ord-123", decimal.RequireFromString("100"))
	require.NoError(t, err)

	// Wire order matters: the processor signs over this exact sequence.
	assert.Equal(t, []string{
		"merchant_id", "merchant_key",
		"return_url", "cancel_url", "notify_url",
		"m_payment_id", "amount", "item_name",
		"custom_str1", "custom_str2",
		"signature",
	}, params.Keys())

	amount, _ := params.Get("amount")
	assert.Equal(t, "100.00", amount)

	ref, _ := params.Get("m_payment_id")
	assert.True(t, strings.HasPrefix(ref, "ORDER-ord-123-"))

	orderID, _ := params.Get("custom_str1")
	userID, _ := params.Get("custom_str2")
	assert.Equal(t, "ord-123", orderID)
	assert.Equal(t, "usr-9", userID)

	// The embedded signature covers everything before it.
	sig, ok := params.Get("signature")
	require.True(t, ok)
	signed := params.Clone()
	signed.Del("signature")
	assert.True(t, b.Codec.Verify(signed, sig))
}

func TestRequestBuilder_Validation(t *testing.T) {
	b := testBuilder()

	_, err := b.Build("ord-123", "usr-9", "Order", decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = b.Build("ord-123", "usr-9", "Order", decimal.RequireFromString("-5"))
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = b.Build("", "usr-9", "Order", decimal.RequireFromString("10"))
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = b.Build("ord-123", "", "Order", decimal.RequireFromString("10"))
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = b.Build("ord-123", "usr-9", "", decimal.RequireFromString("10"))
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestRequestBuilder_ProcessURL(t *testing.T) {
	b := testBuilder()
	assert.Equal(t, "https://sandbox.payfast.co.za/eng/process", b.ProcessURL())

	b.Sandbox = false
	assert.Equal(t, "https://www.payfast.co.za/eng/process", b.ProcessURL())
}

func TestMerchantReference_Unique(t *testing.T) {
	a := MerchantReference("ord-123")
	b := MerchantReference("ord-123")

	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "ORDER-ord-123-"))
}
