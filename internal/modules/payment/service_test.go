package payment

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"testing"

	stripe "github.com/stripe/stripe-go/v79"

	"github.com/Andrew-Karvelis/sparkd/internal/domain"
)

type mockCheckoutClient struct {
	lastParams *stripe.CheckoutSessionParams
	err        error
}

func (m *mockCheckoutClient) NewCheckoutSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	m.lastParams = params
	if m.err != nil {
		return nil, m.err
	}
	return &stripe.CheckoutSession{ID: "cs_test_1", URL: "https://checkout.example/cs_test_1"}, nil
}

type mockVerifier struct {
	event stripe.Event
	err   error
}

func (m *mockVerifier) ConstructEvent(payload []byte, sigHeader, secret string) (stripe.Event, error) {
	if m.err != nil {
		return stripe.Event{}, m.err
	}
	return m.event, nil
}

type mockLedger struct {
	creditCalls int
	lastUserID  int64
	lastAmount  int64
	err         error
}

func (m *mockLedger) Credit(ctx context.Context, userID int64, amount int64, reference string) (int64, error) {
	m.creditCalls++
	m.lastUserID = userID
	m.lastAmount = amount
	if m.err != nil {
		return 0, m.err
	}
	return amount, nil
}

type mockRecorder struct {
	seen   map[string]bool
	last   *domain.PaymentEvent
	err    error
	record int
}

func (m *mockRecorder) RecordOnce(ctx context.Context, event *domain.PaymentEvent) (bool, error) {
	m.record++
	m.last = event
	if m.err != nil {
		return false, m.err
	}
	if m.seen == nil {
		m.seen = map[string]bool{}
	}
	if m.seen[event.EventID] {
		return false, nil
	}
	m.seen[event.EventID] = true
	return true, nil
}

func completedEvent(eventID string, userID, credits int64) stripe.Event {
	metadata := map[string]string{}
	if userID > 0 {
		metadata["user_id"] = strconv.FormatInt(userID, 10)
		metadata["credits"] = strconv.FormatInt(credits, 10)
	}
	session := map[string]any{"id": "cs_test_1", "metadata": metadata}
	raw, _ := json.Marshal(session)
	return stripe.Event{
		ID:   eventID,
		Type: stripe.EventTypeCheckoutSessionCompleted,
		Data: &stripe.EventData{Raw: raw},
	}
}

func newTestService(checkout checkoutClient, verifier eventVerifier, ledger creditLedger, events eventRecorder) *Service {
	return NewService(checkout, verifier, ledger, events, LoadCatalog(), "whsec_test", "https://sparkd.example", func(string, ...interface{}) {})
}

func TestHandleWebhook_BadSignature(t *testing.T) {
	ledger := &mockLedger{}
	recorder := &mockRecorder{}
	svc := newTestService(&mockCheckoutClient{}, &mockVerifier{err: errors.New("bad sig")}, ledger, recorder)

	err := svc.HandleWebhook(context.Background(), []byte("payload"), "t=1,v1=bad")
	if !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
	if ledger.creditCalls != 0 {
		t.Fatalf("expected no credit on signature failure")
	}
	if recorder.record != 0 {
		t.Fatalf("expected no event recorded on signature failure")
	}
}

func TestHandleWebhook_CreditsOnce(t *testing.T) {
	ledger := &mockLedger{}
	recorder := &mockRecorder{}
	svc := newTestService(&mockCheckoutClient{}, &mockVerifier{event: completedEvent("evt_1", 42, 15)}, ledger, recorder)

	if err := svc.HandleWebhook(context.Background(), []byte("payload"), "sig"); err != nil {
		t.Fatalf("HandleWebhook returned error: %v", err)
	}
	if ledger.creditCalls != 1 {
		t.Fatalf("expected exactly one credit call, got %d", ledger.creditCalls)
	}
	if ledger.lastUserID != 42 || ledger.lastAmount != 15 {
		t.Fatalf("credited wrong grant: user=%d amount=%d", ledger.lastUserID, ledger.lastAmount)
	}
	if recorder.last.Status != domain.PaymentEventProcessed {
		t.Fatalf("expected processed status, got %s", recorder.last.Status)
	}
}

func TestHandleWebhook_DuplicateDeliveryNotDoubleCredited(t *testing.T) {
	ledger := &mockLedger{}
	recorder := &mockRecorder{}
	verifier := &mockVerifier{event: completedEvent("evt_dup", 42, 25)}
	svc := newTestService(&mockCheckoutClient{}, verifier, ledger, recorder)

	for i := 0; i < 2; i++ {
		if err := svc.HandleWebhook(context.Background(), []byte("payload"), "sig"); err != nil {
			t.Fatalf("delivery %d returned error: %v", i+1, err)
		}
	}
	if ledger.creditCalls != 1 {
		t.Fatalf("expected one credit across two deliveries, got %d", ledger.creditCalls)
	}
}

func TestHandleWebhook_MissingMetadataAcknowledged(t *testing.T) {
	ledger := &mockLedger{}
	recorder := &mockRecorder{}
	svc := newTestService(&mockCheckoutClient{}, &mockVerifier{event: completedEvent("evt_bare", 0, 0)}, ledger, recorder)

	if err := svc.HandleWebhook(context.Background(), []byte("payload"), "sig"); err != nil {
		t.Fatalf("expected acknowledgement, got error: %v", err)
	}
	if ledger.creditCalls != 0 {
		t.Fatalf("expected no credit without metadata")
	}
	if recorder.last == nil || recorder.last.Status != domain.PaymentEventSkipped {
		t.Fatalf("expected event recorded as skipped")
	}
}

func TestHandleWebhook_CreditFailureStillAcknowledged(t *testing.T) {
	ledger := &mockLedger{err: errors.New("db down")}
	recorder := &mockRecorder{}
	svc := newTestService(&mockCheckoutClient{}, &mockVerifier{event: completedEvent("evt_fail", 42, 5)}, ledger, recorder)

	if err := svc.HandleWebhook(context.Background(), []byte("payload"), "sig"); err != nil {
		t.Fatalf("crediting failure must not surface after a verified signature, got %v", err)
	}
}

func TestHandleWebhook_IgnoresOtherEventTypes(t *testing.T) {
	ledger := &mockLedger{}
	recorder := &mockRecorder{}
	event := stripe.Event{ID: "evt_pi", Type: stripe.EventTypePaymentIntentSucceeded, Data: &stripe.EventData{Raw: json.RawMessage(`{}`)}}
	svc := newTestService(&mockCheckoutClient{}, &mockVerifier{event: event}, ledger, recorder)

	if err := svc.HandleWebhook(context.Background(), []byte("payload"), "sig"); err != nil {
		t.Fatalf("HandleWebhook returned error: %v", err)
	}
	if ledger.creditCalls != 0 || recorder.record != 0 {
		t.Fatalf("unrelated events must not credit or record")
	}
}

func TestCreateCheckout_UnknownSelection(t *testing.T) {
	svc := newTestService(&mockCheckoutClient{}, &mockVerifier{}, &mockLedger{}, &mockRecorder{})

	_, err := svc.CreateCheckout(context.Background(), 1, CheckoutRequest{Type: "credits", ID: "999"})
	if !errors.Is(err, ErrInvalidSelection) {
		t.Fatalf("expected ErrInvalidSelection, got %v", err)
	}
}

func TestCreateCheckout_AttachesGrantMetadata(t *testing.T) {
	checkout := &mockCheckoutClient{}
	svc := newTestService(checkout, &mockVerifier{}, &mockLedger{}, &mockRecorder{})

	resp, err := svc.CreateCheckout(context.Background(), 42, CheckoutRequest{Type: "credits", ID: "15"})
	if err != nil {
		t.Fatalf("CreateCheckout returned error: %v", err)
	}
	if resp.URL == "" {
		t.Fatalf("expected a checkout url")
	}

	params := checkout.lastParams
	if params == nil {
		t.Fatalf("checkout client was not called")
	}
	if got := params.Metadata["user_id"]; got != "42" {
		t.Fatalf("expected user_id metadata 42, got %q", got)
	}
	if got := params.Metadata["credits"]; got != "15" {
		t.Fatalf("expected credits metadata 15, got %q", got)
	}
	if got := *params.Mode; got != string(stripe.CheckoutSessionModePayment) {
		t.Fatalf("expected payment mode, got %s", got)
	}
}

func TestCreateCheckout_SubscriptionMode(t *testing.T) {
	checkout := &mockCheckoutClient{}
	svc := newTestService(checkout, &mockVerifier{}, &mockLedger{}, &mockRecorder{})

	if _, err := svc.CreateCheckout(context.Background(), 7, CheckoutRequest{Type: "subscription", ID: "pro"}); err != nil {
		t.Fatalf("CreateCheckout returned error: %v", err)
	}
	if got := *checkout.lastParams.Mode; got != string(stripe.CheckoutSessionModeSubscription) {
		t.Fatalf("expected subscription mode, got %s", got)
	}
	if got := checkout.lastParams.Metadata["credits"]; got != "30" {
		t.Fatalf("expected pro plan to grant 30 credits, got %q", got)
	}
}
