package payments

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"

	"eldercare_billing/internal/domain/entities"
	"eldercare_billing/internal/usecase/interfaces"
)

var ErrInvalidWebhookBody = errors.New("invalid webhook body")

// AsaasWebhookDecoder decodes Asaas notifications:
//
//	{"event": "PAYMENT_RECEIVED", "id": "evt_...", "payment": {...}, "subscription": {...}}
type AsaasWebhookDecoder struct{}

var _ interfaces.IWebhookDecoder = AsaasWebhookDecoder{}

func (AsaasWebhookDecoder) Gateway() entities.Gateway {
	return entities.GatewayAsaas
}

func (AsaasWebhookDecoder) Decode(_ context.Context, body []byte) (entities.WebhookNotification, error) {
	var b asaasWebhookBody
	if err := json.Unmarshal(body, &b); err != nil {
		return entities.WebhookNotification{}, ErrInvalidWebhookBody
	}
	if strings.TrimSpace(b.Event) == "" {
		return entities.WebhookNotification{}, ErrInvalidWebhookBody
	}

	n := entities.WebhookNotification{
		Gateway:         entities.GatewayAsaas,
		EventType:       strings.ToUpper(strings.TrimSpace(b.Event)),
		ExternalEventID: strings.TrimSpace(b.ID),
		DateCreated:     b.DateCreated,
		Raw:             json.RawMessage(body),
	}
	if n.ExternalEventID == "" {
		n.ExternalEventID = bodyHashID(body)
	}

	if len(b.Payment) > 0 && string(b.Payment) != "null" {
		var p asaasPayment
		if err := json.Unmarshal(b.Payment, &p); err != nil {
			return entities.WebhookNotification{}, ErrInvalidWebhookBody
		}
		gp := p.toEntity(b.Payment)
		n.Payment = &gp
	}
	if b.Subscription != nil {
		gs := b.Subscription.toEntity()
		n.Subscription = &gs
	}
	return n, nil
}

// bodyHashID derives a stable event id for notifications that carry none.
func bodyHashID(body []byte) string {
	sum := sha256.Sum256(body)
	return "hash:" + hex.EncodeToString(sum[:])
}
