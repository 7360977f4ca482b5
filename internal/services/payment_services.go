package services

import (
	"context"

	"github.com/Matooloose/verdant-village-store-sub002/external/payfast"
	"github.com/Matooloose/verdant-village-store-sub002/internal/model"

	"github.com/rs/zerolog"
)

// OrderReader is the read-only slice of the order repository checkout needs.
type OrderReader interface {
	GetByID(ctx context.Context, orderID string) (*model.Order, error)
}

// PaymentLookup is the read-only slice of the payment repository the
// storefront's payment status endpoint needs.
type PaymentLookup interface {
	GetByOrderID(ctx context.Context, orderID string) (*model.Payment, error)
}

// CheckoutResult is what the storefront needs to redirect the buyer: the
// processor endpoint and the signed form fields to post to it.
type CheckoutResult struct {
	ProcessURL string            `json:"process_url"`
	Params     map[string]string `json:"params"`
}

// PaymentService assembles signed payment requests for orders.
type PaymentService struct {
	Orders  OrderReader
	Builder *payfast.RequestBuilder
	Log     zerolog.Logger
}

func NewPaymentService(orders OrderReader, builder *payfast.RequestBuilder, log zerolog.Logger) *PaymentService {
	return &PaymentService{Orders: orders, Builder: builder, Log: log}
}

// CreateCheckout builds the signed redirect parameters for one order after
// checking the order exists, belongs to the requesting user, and is still
// payable. Pure assembly beyond the order lookup — nothing is persisted;
// the order only transitions when the gateway notifies us.
func (s *PaymentService) CreateCheckout(
	ctx context.Context,
	orderID string,
	userID string,
) (*CheckoutResult, error) {

	order, err := s.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	// Ownership check: the user embedded in the request becomes the
	// correlation value the webhook is later matched against.
	if order.UserID != userID {
		return nil, ErrForbidden
	}

	if order.Status != model.OrderPending {
		return nil, ErrOrderNotPayable
	}

	itemName := "Order " + order.ID
	params, err := s.Builder.Build(order.ID, order.UserID, itemName, order.Total)
	if err != nil {
		return nil, err
	}

	s.Log.Info().
		Str("order_id", order.ID).
		Str("amount", order.Total.StringFixed(2)).
		Msg("checkout parameters issued")

	return &CheckoutResult{
		ProcessURL: s.Builder.ProcessURL(),
		Params:     params.Map(),
	}, nil
}
