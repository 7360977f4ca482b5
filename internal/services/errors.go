package services

import "errors"

// Webhook gate and reconciliation failures. Signature and field failures are
// permanent: the processor retrying the same payload cannot fix them. Order
// lookup failures indicate a data/correlation inconsistency on our side and
// surface as server errors so the processor's retry policy kicks in.
var (
	ErrInvalidSignature       = errors.New("notification signature mismatch")
	ErrMissingCorrelationData = errors.New("notification is missing required fields")
	ErrOrderNotFound          = errors.New("no order matches the notification's order/user pair")

	ErrOrderNotPayable = errors.New("order is not in a payable state")
	ErrForbidden       = errors.New("order does not belong to this user")
)
