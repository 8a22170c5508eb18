package payment

import (
	"context"

	stripe "github.com/stripe/stripe-go/v79"

	"github.com/Andrew-Karvelis/sparkd/internal/domain"
)

type checkoutClient interface {
	NewCheckoutSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

type eventVerifier interface {
	ConstructEvent(payload []byte, sigHeader, secret string) (stripe.Event, error)
}

type creditLedger interface {
	Credit(ctx context.Context, userID int64, amount int64, reference string) (int64, error)
}

type eventRecorder interface {
	RecordOnce(ctx context.Context, event *domain.PaymentEvent) (bool, error)
}
