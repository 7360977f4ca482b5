package services

import (
	"testing"

	"github.com/Matooloose/verdant-village-store-sub002/external/payfast"
	"github.com/Matooloose/verdant-village-store-sub002/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedNotification(codec *payfast.Codec) *payfast.ParameterSet {
	p := payfast.NewParameterSet()
	p.Set("m_payment_id", "ORDER-ord-123-ref")
	p.Set("pf_payment_id", "1089250")
	p.Set("payment_status", "COMPLETE")
	p.Set("item_name", "Order ord-123")
	p.Set("amount_gross", "100.00")
	p.Set("amount_fee", "-2.30")
	p.Set("amount_net", "97.70")
	p.Set("custom_str1", "ord-123")
	p.Set("custom_str2", "usr-9")
	p.Set("signature", codec.Sign(p))
	return p
}

func newVerifier(codec *payfast.Codec) *NotificationService {
	return NewNotificationService(codec, zerolog.Nop())
}

func TestNotificationService_Verify_Accepted(t *testing.T) {
	codec := payfast.NewCodec("jt7NOE43FZPn", payfast.EncodePlus)
	svc := newVerifier(codec)

	n, err := svc.Verify(signedNotification(codec))
	require.NoError(t, err)

	assert.Equal(t, "ord-123", n.OrderID)
	assert.Equal(t, "usr-9", n.UserID)
	assert.Equal(t, model.ITNComplete, n.Status)
	assert.Equal(t, "1089250", n.TransactionID)
	assert.Equal(t, "100.00", n.AmountGross.StringFixed(2))
	assert.Equal(t, "-2.30", n.AmountFee.StringFixed(2))
	assert.Equal(t, "97.70", n.AmountNet.StringFixed(2))
	assert.NotEmpty(t, n.Raw)
}

func TestNotificationService_Verify_TamperedSignature(t *testing.T) {
	codec := payfast.NewCodec("jt7NOE43FZPn", payfast.EncodePlus)
	svc := newVerifier(codec)

	params := signedNotification(codec)
	sig, _ := params.Get("signature")
	flipped := "0"
	if sig[0] == '0' {
		flipped = "1"
	}
	params.Set("signature", flipped+sig[1:])

	_, err := svc.Verify(params)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestNotificationService_Verify_TamperedAmount(t *testing.T) {
	codec := payfast.NewCodec("jt7NOE43FZPn", payfast.EncodePlus)
	svc := newVerifier(codec)

	params := signedNotification(codec)
	params.Set("amount_gross", "999.00")

	_, err := svc.Verify(params)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestNotificationService_Verify_MissingSignature(t *testing.T) {
	codec := payfast.NewCodec("jt7NOE43FZPn", payfast.EncodePlus)
	svc := newVerifier(codec)

	params := signedNotification(codec)
	params.Del("signature")

	_, err := svc.Verify(params)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestNotificationService_Verify_MissingRequiredFields(t *testing.T) {
	codec := payfast.NewCodec("jt7NOE43FZPn", payfast.EncodePlus)
	svc := newVerifier(codec)

	required := []string{"payment_status", "pf_payment_id", "amount_gross", "custom_str1", "custom_str2"}
	for _, field := range required {
		p := payfast.NewParameterSet()
		p.Set("pf_payment_id", "1089250")
		p.Set("payment_status", "COMPLETE")
		p.Set("amount_gross", "100.00")
		p.Set("custom_str1", "ord-123")
		p.Set("custom_str2", "usr-9")
		p.Del(field)
		p.Set("signature", codec.Sign(p))

		_, err := svc.Verify(p)
		assert.ErrorIs(t, err, ErrMissingCorrelationData, "missing %s", field)
	}
}

func TestNotificationService_Verify_UnparseableAmount(t *testing.T) {
	codec := payfast.NewCodec("jt7NOE43FZPn", payfast.EncodePlus)
	svc := newVerifier(codec)

	p := payfast.NewParameterSet()
	p.Set("pf_payment_id", "1089250")
	p.Set("payment_status", "COMPLETE")
	p.Set("amount_gross", "one hundred")
	p.Set("custom_str1", "ord-123")
	p.Set("custom_str2", "usr-9")
	p.Set("signature", codec.Sign(p))

	_, err := svc.Verify(p)
	assert.ErrorIs(t, err, ErrMissingCorrelationData)
}

func TestNotificationService_Verify_WrongPassphrase(t *testing.T) {
	signerCodec := payfast.NewCodec("their-secret", payfast.EncodePlus)
	svc := newVerifier(payfast.NewCodec("our-secret", payfast.EncodePlus))

	_, err := svc.Verify(signedNotification(signerCodec))
	assert.ErrorIs(t, err, ErrInvalidSignature)
}
