package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"eldercare_billing/internal/domain/entities"
	"eldercare_billing/internal/usecase/interfaces"
)

// MercadoPagoWebhookDecoder decodes Mercado Pago notifications:
//
//	{"id": 12345, "action": "payment.updated", "type": "payment", "data": {"id": "999"}}
//
// The notification only names the payment, so the decoder fetches it and
// derives the canonical event type from its status.
type MercadoPagoWebhookDecoder struct {
	gateway interfaces.IPaymentGateway
}

var _ interfaces.IWebhookDecoder = (*MercadoPagoWebhookDecoder)(nil)

func NewMercadoPagoWebhookDecoder(gateway interfaces.IPaymentGateway) *MercadoPagoWebhookDecoder {
	return &MercadoPagoWebhookDecoder{gateway: gateway}
}

func (d *MercadoPagoWebhookDecoder) Gateway() entities.Gateway {
	return entities.GatewayMercadoPago
}

type mpNotification struct {
	ID     json.RawMessage `json:"id"`
	Action string          `json:"action"`
	Type   string          `json:"type"`
	Data   struct {
		ID json.RawMessage `json:"id"`
	} `json:"data"`
	DateCreated string `json:"date_created"`
}

func (d *MercadoPagoWebhookDecoder) Decode(ctx context.Context, body []byte) (entities.WebhookNotification, error) {
	var b mpNotification
	if err := json.Unmarshal(body, &b); err != nil {
		return entities.WebhookNotification{}, ErrInvalidWebhookBody
	}
	if b.Type == "" && b.Action == "" {
		return entities.WebhookNotification{}, ErrInvalidWebhookBody
	}

	n := entities.WebhookNotification{
		Gateway:         entities.GatewayMercadoPago,
		ExternalEventID: rawID(b.ID),
		DateCreated:     b.DateCreated,
		Raw:             json.RawMessage(body),
	}
	if n.ExternalEventID == "" {
		n.ExternalEventID = bodyHashID(body)
	}

	kind := strings.ToLower(b.Type)
	if kind == "" {
		kind = strings.SplitN(strings.ToLower(b.Action), ".", 2)[0]
	}
	if kind != "payment" {
		n.EventType = "MP_" + strings.ToUpper(strings.ReplaceAll(kind, ".", "_"))
		return n, nil
	}

	paymentID := rawID(b.Data.ID)
	if paymentID == "" {
		return entities.WebhookNotification{}, ErrInvalidWebhookBody
	}
	p, err := d.gateway.GetPayment(ctx, paymentID)
	if err != nil {
		return entities.WebhookNotification{}, fmt.Errorf("fetch mercado pago payment %s: %w", paymentID, err)
	}
	n.Payment = &p
	n.EventType = mpEventType(b.Action, p.Status)
	return n, nil
}

func mpEventType(action, status string) string {
	if strings.EqualFold(action, "payment.created") && status == entities.GatewayPaymentPending {
		return entities.EventPaymentCreated
	}
	switch status {
	case entities.GatewayPaymentReceived:
		return entities.EventPaymentReceived
	case entities.GatewayPaymentRefunded:
		return entities.EventPaymentRefunded
	case entities.GatewayPaymentCancelled:
		return entities.EventPaymentDeleted
	default:
		return entities.EventPaymentUpdated
	}
}

// rawID accepts both numeric and string ids.
func rawID(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return ""
	}
	var str string
	if json.Unmarshal(raw, &str) == nil {
		return strings.TrimSpace(str)
	}
	return s
}
