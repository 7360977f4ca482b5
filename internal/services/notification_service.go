package services

import (
	"encoding/json"

	"github.com/Matooloose/verdant-village-store-sub002/external/payfast"
	"github.com/Matooloose/verdant-village-store-sub002/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// NotificationService authenticates inbound ITN callbacks and turns them
// into typed records. It never touches storage: a notification that fails
// any gate here is rejected before business logic can run.
type NotificationService struct {
	Codec *payfast.Codec
	Log   zerolog.Logger
}

func NewNotificationService(codec *payfast.Codec, log zerolog.Logger) *NotificationService {
	return &NotificationService{Codec: codec, Log: log}
}

// Verify runs the gate chain: signature first, then required fields. The
// signature check is mandatory and happens before anything else — a forged
// payload must not reach field validation, let alone the reconciler.
func (s *NotificationService) Verify(params *payfast.ParameterSet) (*model.PaymentNotification, error) {
	claimed, ok := params.Get("signature")
	if !ok {
		return nil, ErrInvalidSignature
	}

	// The signature field itself is not part of the signed set.
	signed := params.Clone()
	signed.Del("signature")

	if !s.Codec.Verify(signed, claimed) {
		s.Log.Warn().Msg("webhook rejected: signature mismatch")
		return nil, ErrInvalidSignature
	}

	n, err := s.buildNotification(params)
	if err != nil {
		s.Log.Warn().Err(err).Msg("webhook rejected: field validation failed")
		return nil, err
	}
	return n, nil
}

func (s *NotificationService) buildNotification(params *payfast.ParameterSet) (*model.PaymentNotification, error) {
	status, ok := params.Get("payment_status")
	if !ok || status == "" {
		return nil, ErrMissingCorrelationData
	}
	txID, ok := params.Get("pf_payment_id")
	if !ok || txID == "" {
		return nil, ErrMissingCorrelationData
	}
	grossStr, ok := params.Get("amount_gross")
	if !ok || grossStr == "" {
		return nil, ErrMissingCorrelationData
	}
	orderID, ok := params.Get("custom_str1")
	if !ok || orderID == "" {
		return nil, ErrMissingCorrelationData
	}
	userID, ok := params.Get("custom_str2")
	if !ok || userID == "" {
		return nil, ErrMissingCorrelationData
	}

	gross, err := decimal.NewFromString(grossStr)
	if err != nil {
		return nil, ErrMissingCorrelationData
	}

	n := &model.PaymentNotification{
		OrderID:       orderID,
		UserID:        userID,
		Status:        status,
		TransactionID: txID,
		AmountGross:   gross,
	}

	// Optional fields: keep whatever the gateway sent.
	if v, ok := params.Get("amount_fee"); ok {
		if fee, err := decimal.NewFromString(v); err == nil {
			n.AmountFee = fee
		}
	}
	if v, ok := params.Get("amount_net"); ok {
		if net, err := decimal.NewFromString(v); err == nil {
			n.AmountNet = net
		}
	}
	if v, ok := params.Get("payment_method"); ok {
		n.PaymentMethod = v
	}

	n.Raw, _ = json.Marshal(params.Map())
	return n, nil
}
