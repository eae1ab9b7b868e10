package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"eldercare_billing/internal/domain/entities"
	mock_interfaces "eldercare_billing/internal/usecase/interfaces/mocks"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const webhookToken = "whsec_test"

type webhookFixture struct {
	decoder     *mock_interfaces.MockIWebhookDecoder
	events      *mock_interfaces.MockIWebhookEventRepository
	invoiceRepo *mock_interfaces.MockIInvoiceRepository
	subs        *mock_interfaces.MockISubscriptionRepository
	invoices    *stubInvoiceUseCase
	payments    *stubPaymentUseCase
	uc          *WebhookUseCase
}

func newWebhookFixture(t *testing.T) *webhookFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &webhookFixture{
		decoder:     mock_interfaces.NewMockIWebhookDecoder(ctrl),
		events:      mock_interfaces.NewMockIWebhookEventRepository(ctrl),
		invoiceRepo: mock_interfaces.NewMockIInvoiceRepository(ctrl),
		subs:        mock_interfaces.NewMockISubscriptionRepository(ctrl),
		invoices:    &stubInvoiceUseCase{},
		payments:    &stubPaymentUseCase{},
	}
	f.decoder.EXPECT().Gateway().Return(entities.GatewayAsaas).AnyTimes()
	f.uc = NewWebhookUseCase(f.events, f.invoiceRepo, f.subs, f.invoices, f.payments, webhookToken, f.decoder)
	f.uc.now = func() time.Time { return fixedNow }
	return f
}

func receivedNotification() entities.WebhookNotification {
	return entities.WebhookNotification{
		Gateway:         entities.GatewayAsaas,
		EventType:       entities.EventPaymentReceived,
		ExternalEventID: "evt_1",
		Payment: &entities.GatewayPayment{
			ID:          "pay_1",
			Status:      entities.GatewayPaymentReceived,
			BillingType: entities.BillingTypePix,
			Value:       decimal.RequireFromString("299.90"),
			PaymentDate: civil.Date{Year: 2026, Month: 3, Day: 2},
			Raw:         json.RawMessage(`{"id":"pay_1","billingType":"PIX"}`),
		},
		Raw: json.RawMessage(`{"id":"evt_1","event":"PAYMENT_RECEIVED"}`),
	}
}

func claimed(_ context.Context, e entities.WebhookEvent, _ time.Time) (entities.WebhookEvent, bool, error) {
	return e, true, nil
}

func TestWebhookUseCase_Handle(t *testing.T) {
	body := []byte(`{"id":"evt_1"}`)

	t.Run("token mismatch is rejected before decoding", func(t *testing.T) {
		f := newWebhookFixture(t)
		_, err := f.uc.Handle(context.Background(), "asaas", "wrong", body)
		if !errors.Is(err, ErrInvalidWebhookToken) {
			t.Fatalf("expected ErrInvalidWebhookToken, got %v", err)
		}
	})

	t.Run("unknown gateway", func(t *testing.T) {
		f := newWebhookFixture(t)
		_, err := f.uc.Handle(context.Background(), "stripe", webhookToken, body)
		if !errors.Is(err, ErrUnknownGateway) {
			t.Fatalf("expected ErrUnknownGateway, got %v", err)
		}
	})

	t.Run("undecodable body", func(t *testing.T) {
		f := newWebhookFixture(t)
		f.decoder.EXPECT().Decode(gomock.Any(), body).Return(entities.WebhookNotification{}, errors.New("unexpected end of JSON input"))

		_, err := f.uc.Handle(context.Background(), "asaas", webhookToken, body)
		if !errors.Is(err, ErrInvalidWebhookPayload) {
			t.Fatalf("expected ErrInvalidWebhookPayload, got %v", err)
		}
	})

	t.Run("already processed event is acknowledged without side effects", func(t *testing.T) {
		f := newWebhookFixture(t)
		n := receivedNotification()
		f.decoder.EXPECT().Decode(gomock.Any(), body).Return(n, nil)
		f.events.EXPECT().Claim(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(entities.WebhookEvent{ID: "we-1", Processed: true}, false, nil)

		res, err := f.uc.Handle(context.Background(), "asaas", webhookToken, body)
		require.NoError(t, err)
		assert.Equal(t, entities.WebhookAlreadyProcessed, res.Status)
		assert.Equal(t, "we-1", res.EventID)
		assert.Empty(t, f.payments.recorded)
	})

	t.Run("delivery held by another worker is acknowledged", func(t *testing.T) {
		f := newWebhookFixture(t)
		n := receivedNotification()
		f.decoder.EXPECT().Decode(gomock.Any(), body).Return(n, nil)
		f.events.EXPECT().Claim(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(entities.WebhookEvent{ID: "we-1", ClaimedAt: fixedNow}, false, nil)

		res, err := f.uc.Handle(context.Background(), "asaas", webhookToken, body)
		require.NoError(t, err)
		assert.Equal(t, entities.WebhookAlreadyProcessed, res.Status)
		assert.Empty(t, f.payments.recorded)
	})

	t.Run("payment received records the payment and marks processed", func(t *testing.T) {
		f := newWebhookFixture(t)
		n := receivedNotification()
		f.decoder.EXPECT().Decode(gomock.Any(), body).Return(n, nil)
		f.events.EXPECT().Claim(gomock.Any(), gomock.Any(), fixedNow.UTC().Add(-webhookClaimTTL)).
			DoAndReturn(func(_ context.Context, e entities.WebhookEvent, _ time.Time) (entities.WebhookEvent, bool, error) {
				assert.Equal(t, n.DedupKey(), e.DedupKey)
				assert.Equal(t, entities.WebhookEventID(n.DedupKey()), e.ID)
				assert.JSONEq(t, string(n.Raw), string(e.Payload))
				assert.False(t, e.Processed)
				assert.Equal(t, fixedNow.UTC(), e.ClaimedAt)
				return e, true, nil
			})
		f.invoiceRepo.EXPECT().GetByExternalPaymentID(gomock.Any(), entities.GatewayAsaas, "pay_1").
			Return(linkedInvoice(entities.InvoiceStatusOpen), nil)
		f.events.EXPECT().MarkProcessed(gomock.Any(), gomock.Any(), fixedNow.UTC()).Return(nil)

		res, err := f.uc.Handle(context.Background(), "asaas", webhookToken, body)
		require.NoError(t, err)
		assert.Equal(t, entities.WebhookProcessed, res.Status)
		assert.NotEmpty(t, res.EventID)

		require.Len(t, f.payments.recorded, 1)
		in := f.payments.recorded[0]
		assert.Equal(t, "inv-1", in.InvoiceID)
		assert.Equal(t, entities.PaymentMethodPix, in.Method)
		assert.True(t, in.PaidAt.Equal(time.Date(2026, 3, 2, 3, 0, 0, 0, time.UTC)))
		assert.Equal(t, "PIX", in.Metadata["billingType"])
	})

	t.Run("payment received for an unknown invoice creates it first", func(t *testing.T) {
		f := newWebhookFixture(t)
		n := receivedNotification()
		n.Payment.SubscriptionID = "gsub_1"
		f.decoder.EXPECT().Decode(gomock.Any(), body).Return(n, nil)
		f.events.EXPECT().Claim(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(claimed)
		f.invoiceRepo.EXPECT().GetByExternalPaymentID(gomock.Any(), entities.GatewayAsaas, "pay_1").Return(entities.Invoice{}, nil)
		f.invoices.createFromGateway = func(gw entities.Gateway, p entities.GatewayPayment) (entities.Invoice, bool, error) {
			return entities.Invoice{ID: "inv-new", Status: entities.InvoiceStatusPaid}, true, nil
		}
		f.events.EXPECT().MarkProcessed(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.uc.Handle(context.Background(), "asaas", webhookToken, body)
		require.NoError(t, err)
		assert.Equal(t, entities.WebhookProcessed, res.Status)
		require.Len(t, f.payments.recorded, 1)
		assert.Equal(t, "inv-new", f.payments.recorded[0].InvoiceID)
	})

	t.Run("handler failure is stored and acknowledged with error status", func(t *testing.T) {
		f := newWebhookFixture(t)
		n := receivedNotification()
		f.decoder.EXPECT().Decode(gomock.Any(), body).Return(n, nil)
		f.events.EXPECT().Claim(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(claimed)
		f.invoiceRepo.EXPECT().GetByExternalPaymentID(gomock.Any(), entities.GatewayAsaas, "pay_1").Return(entities.Invoice{}, nil)
		f.invoices.createFromGateway = func(entities.Gateway, entities.GatewayPayment) (entities.Invoice, bool, error) {
			return entities.Invoice{}, false, nil
		}
		f.events.EXPECT().MarkFailed(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, msg string) error {
				assert.Contains(t, msg, "pay_1")
				return nil
			})

		res, err := f.uc.Handle(context.Background(), "asaas", webhookToken, body)
		require.NoError(t, err)
		assert.Equal(t, entities.WebhookError, res.Status)
		assert.Contains(t, res.Error, ErrInvoiceNotFound.Error())
	})

	t.Run("storage failure is returned so the gateway retries", func(t *testing.T) {
		f := newWebhookFixture(t)
		n := receivedNotification()
		f.decoder.EXPECT().Decode(gomock.Any(), body).Return(n, nil)
		f.events.EXPECT().Claim(gomock.Any(), gomock.Any(), gomock.Any()).Return(entities.WebhookEvent{}, false, errors.New("dynamodb unavailable"))

		_, err := f.uc.Handle(context.Background(), "asaas", webhookToken, body)
		assert.Error(t, err)
	})

	t.Run("unhandled event types are processed as no-ops", func(t *testing.T) {
		f := newWebhookFixture(t)
		n := entities.WebhookNotification{Gateway: entities.GatewayAsaas, EventType: "ACCOUNT_STATUS_UPDATED", ExternalEventID: "evt_9"}
		f.decoder.EXPECT().Decode(gomock.Any(), body).Return(n, nil)
		f.events.EXPECT().Claim(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, e entities.WebhookEvent, _ time.Time) (entities.WebhookEvent, bool, error) {
				assert.JSONEq(t, string(body), string(e.Payload))
				return e, true, nil
			})
		f.events.EXPECT().MarkProcessed(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.uc.Handle(context.Background(), "asaas", webhookToken, body)
		require.NoError(t, err)
		assert.Equal(t, entities.WebhookProcessed, res.Status)
	})
}

func TestWebhookUseCase_Dispatch(t *testing.T) {
	body := []byte(`{}`)

	expectStored := func(f *webhookFixture, n entities.WebhookNotification) {
		f.decoder.EXPECT().Decode(gomock.Any(), body).Return(n, nil)
		f.events.EXPECT().Claim(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(claimed)
		f.events.EXPECT().MarkProcessed(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	}

	t.Run("payment deleted cancels the invoice", func(t *testing.T) {
		f := newWebhookFixture(t)
		n := entities.WebhookNotification{Gateway: entities.GatewayAsaas, EventType: entities.EventPaymentDeleted, ExternalEventID: "evt_2", Payment: &entities.GatewayPayment{ID: "pay_1"}}
		expectStored(f, n)
		f.invoiceRepo.EXPECT().GetByExternalPaymentID(gomock.Any(), entities.GatewayAsaas, "pay_1").Return(linkedInvoice(entities.InvoiceStatusOpen), nil)

		_, err := f.uc.Handle(context.Background(), "asaas", webhookToken, body)
		require.NoError(t, err)
		assert.Equal(t, []string{"inv-1"}, f.invoices.canceled)
	})

	t.Run("payment refunded goes through refund processing", func(t *testing.T) {
		f := newWebhookFixture(t)
		n := entities.WebhookNotification{Gateway: entities.GatewayAsaas, EventType: entities.EventPaymentRefunded, ExternalEventID: "evt_3", Payment: &entities.GatewayPayment{ID: "pay_1"}}
		expectStored(f, n)

		_, err := f.uc.Handle(context.Background(), "asaas", webhookToken, body)
		require.NoError(t, err)
		assert.Equal(t, []string{"pay_1"}, f.payments.refunded)
	})

	t.Run("payment created builds the invoice for recurring charges", func(t *testing.T) {
		f := newWebhookFixture(t)
		n := entities.WebhookNotification{Gateway: entities.GatewayAsaas, EventType: entities.EventPaymentCreated, ExternalEventID: "evt_4", Payment: &entities.GatewayPayment{ID: "pay_7", SubscriptionID: "gsub_1"}}
		expectStored(f, n)
		var seen string
		f.invoices.createFromGateway = func(_ entities.Gateway, p entities.GatewayPayment) (entities.Invoice, bool, error) {
			seen = p.ID
			return entities.Invoice{ID: "inv-7"}, true, nil
		}

		_, err := f.uc.Handle(context.Background(), "asaas", webhookToken, body)
		require.NoError(t, err)
		assert.Equal(t, "pay_7", seen)
	})

	t.Run("subscription event refreshes sync state", func(t *testing.T) {
		f := newWebhookFixture(t)
		n := entities.WebhookNotification{Gateway: entities.GatewayAsaas, EventType: entities.EventSubscriptionUpdated, ExternalEventID: "evt_5", Subscription: &entities.GatewaySubscription{ID: "gsub_1"}}
		expectStored(f, n)
		f.subs.EXPECT().GetByGatewayID(gomock.Any(), "gsub_1").Return(sampleSubscription(), nil)
		f.subs.EXPECT().UpdateSyncState(gomock.Any(), "sub-1", entities.SubscriptionStatusActive, fixedNow.UTC(), "").Return(nil)

		_, err := f.uc.Handle(context.Background(), "asaas", webhookToken, body)
		require.NoError(t, err)
	})
}

// memWebhookEvents applies the claim rule under a lock, the way the
// conditional put does in DynamoDB.
type memWebhookEvents struct {
	mu   sync.Mutex
	rows map[string]entities.WebhookEvent
}

func newMemWebhookEvents() *memWebhookEvents {
	return &memWebhookEvents{rows: map[string]entities.WebhookEvent{}}
}

func (m *memWebhookEvents) Claim(_ context.Context, e entities.WebhookEvent, staleBefore time.Time) (entities.WebhookEvent, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cur, ok := m.rows[e.ID]; ok {
		if cur.Processed || (cur.Error == "" && !cur.ClaimedAt.Before(staleBefore)) {
			return cur, false, nil
		}
	}
	m.rows[e.ID] = e
	return e, true, nil
}

func (m *memWebhookEvents) MarkProcessed(_ context.Context, id string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := m.rows[id]
	e.Processed = true
	e.ProcessedAt = &at
	e.Error = ""
	m.rows[id] = e
	return nil
}

func (m *memWebhookEvents) MarkFailed(_ context.Context, id string, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := m.rows[id]
	e.Error = message
	m.rows[id] = e
	return nil
}

func TestWebhookUseCase_Redelivery(t *testing.T) {
	body := []byte(`{"id":"evt_1"}`)

	t.Run("concurrent deliveries dispatch once", func(t *testing.T) {
		f := newWebhookFixture(t)
		events := newMemWebhookEvents()
		uc := NewWebhookUseCase(events, f.invoiceRepo, f.subs, f.invoices, f.payments, webhookToken, f.decoder)
		uc.now = func() time.Time { return fixedNow }

		f.decoder.EXPECT().Decode(gomock.Any(), body).Return(receivedNotification(), nil).Times(2)
		f.invoiceRepo.EXPECT().GetByExternalPaymentID(gomock.Any(), entities.GatewayAsaas, "pay_1").
			Return(linkedInvoice(entities.InvoiceStatusOpen), nil).Times(1)

		var wg sync.WaitGroup
		results := make([]entities.WebhookResult, 2)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				res, err := uc.Handle(context.Background(), "asaas", webhookToken, body)
				assert.NoError(t, err)
				results[i] = res
			}(i)
		}
		wg.Wait()

		statuses := []entities.WebhookResultStatus{results[0].Status, results[1].Status}
		assert.ElementsMatch(t, []entities.WebhookResultStatus{entities.WebhookProcessed, entities.WebhookAlreadyProcessed}, statuses)
		assert.Equal(t, results[0].EventID, results[1].EventID)
		assert.Len(t, f.payments.recorded, 1)
	})

	t.Run("failed delivery is taken over by the next one", func(t *testing.T) {
		f := newWebhookFixture(t)
		events := newMemWebhookEvents()
		uc := NewWebhookUseCase(events, f.invoiceRepo, f.subs, f.invoices, f.payments, webhookToken, f.decoder)
		uc.now = func() time.Time { return fixedNow }

		f.decoder.EXPECT().Decode(gomock.Any(), body).Return(receivedNotification(), nil).Times(3)
		gomock.InOrder(
			f.invoiceRepo.EXPECT().GetByExternalPaymentID(gomock.Any(), entities.GatewayAsaas, "pay_1").
				Return(entities.Invoice{}, errors.New("throttled")),
			f.invoiceRepo.EXPECT().GetByExternalPaymentID(gomock.Any(), entities.GatewayAsaas, "pay_1").
				Return(linkedInvoice(entities.InvoiceStatusOpen), nil),
		)

		first, err := uc.Handle(context.Background(), "asaas", webhookToken, body)
		require.NoError(t, err)
		assert.Equal(t, entities.WebhookError, first.Status)

		second, err := uc.Handle(context.Background(), "asaas", webhookToken, body)
		require.NoError(t, err)
		assert.Equal(t, entities.WebhookProcessed, second.Status)

		third, err := uc.Handle(context.Background(), "asaas", webhookToken, body)
		require.NoError(t, err)
		assert.Equal(t, entities.WebhookAlreadyProcessed, third.Status)
		assert.Len(t, f.payments.recorded, 1)
	})

	t.Run("stale claim is taken over", func(t *testing.T) {
		f := newWebhookFixture(t)
		events := newMemWebhookEvents()
		id := entities.WebhookEventID(receivedNotification().DedupKey())
		events.rows[id] = entities.WebhookEvent{ID: id, ClaimedAt: fixedNow.Add(-time.Hour)}
		uc := NewWebhookUseCase(events, f.invoiceRepo, f.subs, f.invoices, f.payments, webhookToken, f.decoder)
		uc.now = func() time.Time { return fixedNow }

		f.decoder.EXPECT().Decode(gomock.Any(), body).Return(receivedNotification(), nil)
		f.invoiceRepo.EXPECT().GetByExternalPaymentID(gomock.Any(), entities.GatewayAsaas, "pay_1").
			Return(linkedInvoice(entities.InvoiceStatusOpen), nil)

		res, err := uc.Handle(context.Background(), "asaas", webhookToken, body)
		require.NoError(t, err)
		assert.Equal(t, entities.WebhookProcessed, res.Status)
		assert.True(t, events.rows[id].Processed)
	})
}
