package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	stripe "github.com/stripe/stripe-go/v79"

	"github.com/Andrew-Karvelis/sparkd/internal/domain"
)

var (
	ErrInvalidSelection = errors.New("invalid plan or credits selection")
	ErrInvalidSignature = errors.New("invalid signature")
)

type Service struct {
	checkout      checkoutClient
	verifier      eventVerifier
	ledger        creditLedger
	events        eventRecorder
	loggerf       func(format string, args ...interface{})
	catalog       *Catalog
	webhookSecret string
	publicBaseURL string
}

func NewService(
	checkout checkoutClient,
	verifier eventVerifier,
	ledger creditLedger,
	events eventRecorder,
	catalog *Catalog,
	webhookSecret string,
	publicBaseURL string,
	loggerf func(format string, args ...interface{}),
) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{
		checkout:      checkout,
		verifier:      verifier,
		ledger:        ledger,
		events:        events,
		loggerf:       loggerf,
		catalog:       catalog,
		webhookSecret: webhookSecret,
		publicBaseURL: publicBaseURL,
	}
}

// CreateCheckout resolves the selection against the catalog and opens a
// hosted checkout session. The user id and credit grant travel as session
// metadata and come back in the completed-checkout webhook.
func (s *Service) CreateCheckout(ctx context.Context, userID int64, req CheckoutRequest) (*CheckoutResponse, error) {
	sel, ok := s.catalog.Resolve(req.Type, req.ID)
	if !ok {
		return nil, ErrInvalidSelection
	}

	mode := stripe.CheckoutSessionModePayment
	if sel.Mode == "subscription" {
		mode = stripe.CheckoutSessionModeSubscription
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(mode)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(sel.PriceID), Quantity: stripe.Int64(1)},
		},
		SuccessURL: stripe.String(s.publicBaseURL + "/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(s.publicBaseURL + "/pricing"),
	}
	params.Context = ctx
	params.AddMetadata("user_id", strconv.FormatInt(userID, 10))
	params.AddMetadata("credits", strconv.FormatInt(sel.Credits, 10))

	session, err := s.checkout.NewCheckoutSession(params)
	if err != nil {
		return nil, fmt.Errorf("create checkout session failed: %w", err)
	}

	s.loggerf("level=info msg=checkout session created user_id=%d type=%s id=%s session=%s", userID, req.Type, req.ID, session.ID)
	return &CheckoutResponse{URL: session.URL}, nil
}

// HandleWebhook verifies and applies one webhook delivery. Signature failure
// is the only fatal outcome; once the payload is authentic the delivery is
// always acknowledged, because the processor redelivers anything else
// indefinitely. Crediting is keyed on the event id, so redeliveries of an
// already-processed event change nothing.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, sigHeader string) error {
	event, err := s.verifier.ConstructEvent(payload, sigHeader, s.webhookSecret)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	if event.Type != stripe.EventTypeCheckoutSessionCompleted {
		s.loggerf("level=info msg=ignoring webhook event event_id=%s type=%s", event.ID, event.Type)
		return nil
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		s.loggerf("level=error msg=failed to decode checkout session event_id=%s err=%v", event.ID, err)
		return nil
	}

	userID, credits, ok := parseGrantMetadata(session.Metadata)
	if !ok {
		s.loggerf("level=warn msg=checkout completed without grant metadata event_id=%s session=%s", event.ID, session.ID)
		s.recordEvent(ctx, &domain.PaymentEvent{
			EventID: event.ID,
			Type:    string(event.Type),
			Status:  domain.PaymentEventSkipped,
			RawBody: string(payload),
		})
		return nil
	}

	record := &domain.PaymentEvent{
		EventID: event.ID,
		Type:    string(event.Type),
		UserID:  userID,
		Credits: credits,
		Status:  domain.PaymentEventProcessed,
		RawBody: string(payload),
	}
	created, err := s.events.RecordOnce(ctx, record)
	if err != nil {
		s.loggerf("level=error msg=failed to record payment event event_id=%s err=%v", event.ID, err)
		return nil
	}
	if !created {
		s.loggerf("level=info msg=duplicate webhook delivery ignored event_id=%s", event.ID)
		return nil
	}

	balance, err := s.ledger.Credit(ctx, userID, credits, event.ID)
	if err != nil {
		s.loggerf("level=error msg=failed to credit user user_id=%d credits=%d event_id=%s err=%v", userID, credits, event.ID, err)
		return nil
	}

	s.loggerf("level=info msg=credits applied user_id=%d credits=%d balance=%d event_id=%s", userID, credits, balance, event.ID)
	return nil
}

func (s *Service) recordEvent(ctx context.Context, record *domain.PaymentEvent) {
	if _, err := s.events.RecordOnce(ctx, record); err != nil {
		s.loggerf("level=error msg=failed to record payment event event_id=%s err=%v", record.EventID, err)
	}
}

func parseGrantMetadata(metadata map[string]string) (userID int64, credits int64, ok bool) {
	if metadata == nil {
		return 0, 0, false
	}

	userID, err := strconv.ParseInt(metadata["user_id"], 10, 64)
	if err != nil || userID <= 0 {
		return 0, 0, false
	}
	credits, err = strconv.ParseInt(metadata["credits"], 10, 64)
	if err != nil || credits <= 0 {
		return 0, 0, false
	}
	return userID, credits, true
}
