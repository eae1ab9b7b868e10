package usecase

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"time"

	"eldercare_billing/internal/domain/entities"
	"eldercare_billing/internal/logger"
	"eldercare_billing/internal/usecase/interfaces"

	"github.com/rs/zerolog"
)

// webhookClaimTTL is how long an unfinished delivery holds its event before a
// redelivery may take it over.
const webhookClaimTTL = 5 * time.Minute

// IWebhookUseCase ingests gateway notifications.
//
// Business outcomes (processed, already processed, handler failure) come back
// in the WebhookResult; a returned error means the delivery was rejected or
// could not be stored and should be retried by the gateway.
type IWebhookUseCase interface {
	Handle(ctx context.Context, gateway string, token string, body []byte) (entities.WebhookResult, error)
}

type WebhookUseCase struct {
	decoders      map[entities.Gateway]interfaces.IWebhookDecoder
	events        interfaces.IWebhookEventRepository
	invoiceRepo   interfaces.IInvoiceRepository
	subscriptions interfaces.ISubscriptionRepository
	invoices      IInvoiceUseCase
	payments      IPaymentUseCase
	token         string
	now           func() time.Time
	log           zerolog.Logger
}

var _ IWebhookUseCase = (*WebhookUseCase)(nil)

func NewWebhookUseCase(
	events interfaces.IWebhookEventRepository,
	invoiceRepo interfaces.IInvoiceRepository,
	subscriptions interfaces.ISubscriptionRepository,
	invoices IInvoiceUseCase,
	payments IPaymentUseCase,
	token string,
	decoders ...interfaces.IWebhookDecoder,
) *WebhookUseCase {
	byGateway := make(map[entities.Gateway]interfaces.IWebhookDecoder, len(decoders))
	for _, d := range decoders {
		if d != nil {
			byGateway[d.Gateway()] = d
		}
	}
	return &WebhookUseCase{
		decoders:      byGateway,
		events:        events,
		invoiceRepo:   invoiceRepo,
		subscriptions: subscriptions,
		invoices:      invoices,
		payments:      payments,
		token:         token,
		now:           time.Now,
		log:           logger.WithComponent("webhook.usecase"),
	}
}

func (u *WebhookUseCase) Handle(ctx context.Context, gateway string, token string, body []byte) (entities.WebhookResult, error) {
	if u.token != "" && subtle.ConstantTimeCompare([]byte(token), []byte(u.token)) != 1 {
		u.log.Warn().Str("gateway", gateway).Msg("webhook rejected: token mismatch")
		return entities.WebhookResult{}, ErrInvalidWebhookToken
	}

	dec, ok := u.decoders[entities.Gateway(gateway)]
	if !ok {
		return entities.WebhookResult{}, ErrUnknownGateway
	}

	n, err := dec.Decode(ctx, body)
	if err != nil {
		u.log.Warn().Err(err).Str("gateway", gateway).Msg("webhook body rejected")
		return entities.WebhookResult{}, fmt.Errorf("%w: %v", ErrInvalidWebhookPayload, err)
	}

	dedupKey := n.DedupKey()
	payload := n.Raw
	if len(payload) == 0 {
		payload = json.RawMessage(body)
	}
	now := u.now().UTC()
	ev, claimed, err := u.events.Claim(ctx, entities.WebhookEvent{
		ID:              entities.WebhookEventID(dedupKey),
		Gateway:         n.Gateway,
		EventType:       n.EventType,
		ExternalEventID: n.ExternalEventID,
		DedupKey:        dedupKey,
		Payload:         payload,
		ClaimedAt:       now,
		CreatedAt:       now,
	}, now.Add(-webhookClaimTTL))
	if err != nil {
		return entities.WebhookResult{}, err
	}
	if !claimed {
		if ev.Processed {
			u.log.Info().Str("event_id", ev.ID).Str("dedup_key", dedupKey).Msg("webhook already processed")
		} else {
			u.log.Info().Str("event_id", ev.ID).Str("dedup_key", dedupKey).Msg("webhook delivery in progress elsewhere")
		}
		return entities.WebhookResult{Status: entities.WebhookAlreadyProcessed, EventID: ev.ID}, nil
	}

	logEv := u.log.With().Str("event_id", ev.ID).Str("event_type", n.EventType).Str("gateway", string(n.Gateway)).Logger()
	if err := u.dispatch(ctx, n, logEv); err != nil {
		logEv.Error().Err(err).Msg("webhook handler failed")
		if markErr := u.events.MarkFailed(ctx, ev.ID, err.Error()); markErr != nil {
			logEv.Error().Err(markErr).Msg("failed to persist webhook error")
		}
		return entities.WebhookResult{Status: entities.WebhookError, EventID: ev.ID, Error: err.Error()}, nil
	}

	if err := u.events.MarkProcessed(ctx, ev.ID, u.now().UTC()); err != nil {
		return entities.WebhookResult{}, err
	}
	logEv.Info().Msg("webhook processed")
	return entities.WebhookResult{Status: entities.WebhookProcessed, EventID: ev.ID}, nil
}

func (u *WebhookUseCase) dispatch(ctx context.Context, n entities.WebhookNotification, log zerolog.Logger) error {
	switch n.EventType {
	case entities.EventPaymentCreated:
		if n.Payment == nil {
			log.Info().Msg("payment created without payment data")
			return nil
		}
		inv, created, err := u.invoices.CreateFromGatewayPayment(ctx, n.Gateway, *n.Payment)
		if err != nil {
			return err
		}
		if created {
			log.Info().Str("invoice_id", inv.ID).Msg("invoice created for gateway payment")
		}
		return nil

	case entities.EventPaymentReceived, entities.EventPaymentConfirmed:
		if n.Payment == nil {
			return fmt.Errorf("%w: payment data missing", ErrInvalidWebhookPayload)
		}
		return u.onPaymentSettled(ctx, n, log)

	case entities.EventPaymentOverdue:
		if n.Payment != nil {
			log.Info().Str("external_payment_id", n.Payment.ID).Str("due_date", n.Payment.DueDate.String()).Msg("payment overdue")
		}
		return nil

	case entities.EventPaymentDeleted:
		if n.Payment == nil {
			return nil
		}
		inv, err := u.invoiceRepo.GetByExternalPaymentID(ctx, n.Gateway, n.Payment.ID)
		if err != nil {
			return err
		}
		if inv.ID == "" {
			log.Info().Str("external_payment_id", n.Payment.ID).Msg("deleted payment has no local invoice")
			return nil
		}
		_, err = u.invoices.Cancel(ctx, inv.ID)
		return err

	case entities.EventPaymentRefunded:
		if n.Payment == nil {
			return fmt.Errorf("%w: payment data missing", ErrInvalidWebhookPayload)
		}
		_, err := u.payments.ProcessRefund(ctx, n.Gateway, n.Payment.ID)
		return err

	case entities.EventSubscriptionCreated,
		entities.EventSubscriptionUpdated,
		entities.EventSubscriptionInactivated,
		entities.EventSubscriptionDeleted:
		return u.onSubscriptionEvent(ctx, n, log)

	case entities.EventPaymentReceivedInCashUndone,
		entities.EventPaymentChargebackRequested,
		entities.EventPaymentChargebackDispute,
		entities.EventPaymentAwaitingChargeback,
		entities.EventPaymentDunningReceived,
		entities.EventPaymentDunningRequested:
		ref := ""
		if n.Payment != nil {
			ref = n.Payment.ID
		}
		log.Warn().Str("external_payment_id", ref).Msg("event requires manual follow-up")
		return nil

	default:
		log.Debug().Msg("ignoring unhandled webhook event")
		return nil
	}
}

func (u *WebhookUseCase) onPaymentSettled(ctx context.Context, n entities.WebhookNotification, log zerolog.Logger) error {
	gp := *n.Payment
	inv, err := u.invoiceRepo.GetByExternalPaymentID(ctx, n.Gateway, gp.ID)
	if err != nil {
		return err
	}
	if inv.ID == "" {
		// The created notification may have been lost; build the invoice now.
		inv, _, err = u.invoices.CreateFromGatewayPayment(ctx, n.Gateway, gp)
		if err != nil {
			return err
		}
		if inv.ID == "" {
			return fmt.Errorf("%w: external payment %s", ErrInvoiceNotFound, gp.ID)
		}
	}

	var paidAt time.Time
	if !gp.PaymentDate.IsZero() {
		paidAt = gp.PaymentDate.In(entities.Tenant{}.Location())
	}
	var metadata map[string]any
	if len(gp.Raw) > 0 {
		_ = json.Unmarshal(gp.Raw, &metadata)
	}

	p, err := u.payments.RecordPayment(ctx, RecordPaymentInput{
		InvoiceID:  inv.ID,
		Gateway:    n.Gateway,
		ExternalID: gp.ID,
		Amount:     gp.Value,
		Method:     entities.PaymentMethodFromBillingType(gp.BillingType),
		PaidAt:     paidAt,
		Metadata:   metadata,
	})
	if err != nil {
		return err
	}
	log.Info().Str("invoice_id", inv.ID).Str("payment_id", p.ID).Msg("payment settled")
	return nil
}

func (u *WebhookUseCase) onSubscriptionEvent(ctx context.Context, n entities.WebhookNotification, log zerolog.Logger) error {
	if n.Subscription == nil || n.Subscription.ID == "" {
		return nil
	}
	sub, err := u.subscriptions.GetByGatewayID(ctx, n.Subscription.ID)
	if err != nil {
		return err
	}
	if sub.ID == "" {
		log.Info().Str("gateway_subscription_id", n.Subscription.ID).Msg("subscription unknown locally")
		return nil
	}
	return u.subscriptions.UpdateSyncState(ctx, sub.ID, sub.Status, u.now().UTC(), "")
}
