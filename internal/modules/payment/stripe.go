package payment

import (
	stripe "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/stripe/stripe-go/v79/webhook"
)

// StripeCheckoutClient is the production checkoutClient.
type StripeCheckoutClient struct{}

func NewStripeCheckoutClient(apiKey string) *StripeCheckoutClient {
	stripe.Key = apiKey
	return &StripeCheckoutClient{}
}

func (StripeCheckoutClient) NewCheckoutSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	return session.New(params)
}

// StripeEventVerifier is the production eventVerifier.
type StripeEventVerifier struct{}

func (StripeEventVerifier) ConstructEvent(payload []byte, sigHeader, secret string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, sigHeader, secret)
}
