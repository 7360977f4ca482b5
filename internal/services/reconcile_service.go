package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Matooloose/verdant-village-store-sub002/internal/model"

	"github.com/rs/zerolog"
)

// OrderStore is the slice of the order repository the reconciler needs.
type OrderStore interface {
	SetStatusForUser(ctx context.Context, orderID, userID, status string) (int64, error)
}

// PaymentStore is the slice of the payment repository the reconciler needs.
type PaymentStore interface {
	Upsert(ctx context.Context, p *model.Payment) error
}

// ReconcileService applies a verified payment notification as an idempotent
// state transition over the order and payment records.
type ReconcileService struct {
	Orders   OrderStore
	Payments PaymentStore
	Currency string
	Timeout  time.Duration
	Log      zerolog.Logger
}

func NewReconcileService(
	orders OrderStore,
	payments PaymentStore,
	currency string,
	timeout time.Duration,
	log zerolog.Logger,
) *ReconcileService {
	return &ReconcileService{
		Orders:   orders,
		Payments: payments,
		Currency: currency,
		Timeout:  timeout,
		Log:      log,
	}
}

// mapPaymentStatus translates the gateway's status vocabulary into internal
// order and payment statuses. Anything unknown stays pending — the gateway
// may redeliver a terminal status later.
func mapPaymentStatus(external string) (orderStatus, paymentStatus string) {
	switch external {
	case model.ITNComplete:
		return model.OrderConfirmed, model.PaymentCompleted
	case model.ITNFailed:
		return model.OrderCancelled, model.PaymentFailed
	case model.ITNCancelled:
		return model.OrderCancelled, model.PaymentCancelled
	default:
		return model.OrderPending, model.PaymentPending
	}
}

// Apply performs the two persisted writes for one notification.
//
// The order update is the authoritative outcome: a storage error there is
// returned (the processor will redeliver), and zero affected rows means the
// order/user pair does not exist — ErrOrderNotFound, no further mutation.
// The payment upsert is non-fatal: a failure is logged for operational
// backfill but the caller still acknowledges the notification, because the
// processor only needs to know we received it.
func (s *ReconcileService) Apply(ctx context.Context, n *model.PaymentNotification) error {
	orderStatus, paymentStatus := mapPaymentStatus(n.Status)

	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	affected, err := s.Orders.SetStatusForUser(ctx, n.OrderID, n.UserID, orderStatus)
	if err != nil {
		return fmt.Errorf("order status update: %w", err)
	}
	if affected == 0 {
		return ErrOrderNotFound
	}

	payment := &model.Payment{
		OrderID:       n.OrderID,
		Amount:        n.AmountGross,
		Currency:      s.Currency,
		Status:        paymentStatus,
		PaymentMethod: n.PaymentMethod,
		TransactionID: n.TransactionID,
		Metadata:      buildMetadata(n),
	}

	if err := s.Payments.Upsert(ctx, payment); err != nil {
		// Order and payment records have drifted; operations backfills from
		// this log line plus the raw payload kept by the gateway.
		s.Log.Error().
			Err(err).
			Str("order_id", n.OrderID).
			Str("transaction_id", n.TransactionID).
			Str("payment_status", paymentStatus).
			Msg("payment upsert failed after order update")
	}

	return nil
}

func buildMetadata(n *model.PaymentNotification) []byte {
	meta := map[string]interface{}{
		"amount_fee":   n.AmountFee.String(),
		"amount_net":   n.AmountNet.String(),
		"notification": json.RawMessage(n.Raw),
		"received_at":  time.Now().UTC().Format(time.RFC3339),
	}
	data, _ := json.Marshal(meta)
	return data
}
