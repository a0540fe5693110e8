package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// StripeProvider creates Stripe PaymentIntents for session bookings.
type StripeProvider struct {
	api *client.API
}

// NewStripeProvider creates a provider bound to the given secret key.
func NewStripeProvider(apiKey string) *StripeProvider {
	api := &client.API{}
	api.Init(apiKey, nil)
	return &StripeProvider{api: api}
}

// CreateIntent creates a PaymentIntent and returns its ID as the reference.
func (p *StripeProvider) CreateIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Params: stripe.Params{
			Context:  ctx,
			Metadata: metadata,
		},
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}

	intent, err := p.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("create payment intent failed: %w", err)
	}
	return intent.ID, nil
}

// CancelIntent voids an uncaptured PaymentIntent.
func (p *StripeProvider) CancelIntent(ctx context.Context, ref string) error {
	params := &stripe.PaymentIntentCancelParams{
		Params: stripe.Params{Context: ctx},
	}
	if _, err := p.api.PaymentIntents.Cancel(ref, params); err != nil {
		return fmt.Errorf("cancel payment intent failed: %w", err)
	}
	return nil
}
