package payment

import "context"

// Provider creates payment intents for sessions. Capture and verification
// happen outside this backend (webhooks / client confirmation), so the only
// thing the booking flow needs back is an opaque reference.
type Provider interface {
	CreateIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (string, error)

	// CancelIntent voids a previously created intent, for when the booking
	// it was opened for cannot be claimed after all.
	CancelIntent(ctx context.Context, ref string) error
}

// Disabled is a Provider used when no payment gateway is configured.
// It returns an empty reference so bookings can proceed without payment.
type Disabled struct{}

// CreateIntent implements Provider.
func (Disabled) CreateIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (string, error) {
	return "", nil
}

// CancelIntent implements Provider.
func (Disabled) CancelIntent(ctx context.Context, ref string) error {
	return nil
}
