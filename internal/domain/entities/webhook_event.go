package entities

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Gateway event types. The vocabulary is open: unknown types are accepted
// and ignored.
const (
	EventPaymentCreated              = "PAYMENT_CREATED"
	EventPaymentUpdated              = "PAYMENT_UPDATED"
	EventPaymentConfirmed            = "PAYMENT_CONFIRMED"
	EventPaymentReceived             = "PAYMENT_RECEIVED"
	EventPaymentOverdue              = "PAYMENT_OVERDUE"
	EventPaymentDeleted              = "PAYMENT_DELETED"
	EventPaymentRefunded             = "PAYMENT_REFUNDED"
	EventPaymentReceivedInCashUndone = "PAYMENT_RECEIVED_IN_CASH_UNDONE"
	EventPaymentChargebackRequested  = "PAYMENT_CHARGEBACK_REQUESTED"
	EventPaymentChargebackDispute    = "PAYMENT_CHARGEBACK_DISPUTE"
	EventPaymentAwaitingChargeback   = "PAYMENT_AWAITING_CHARGEBACK_REVERSAL"
	EventPaymentDunningReceived      = "PAYMENT_DUNNING_RECEIVED"
	EventPaymentDunningRequested     = "PAYMENT_DUNNING_REQUESTED"
	EventSubscriptionCreated         = "SUBSCRIPTION_CREATED"
	EventSubscriptionUpdated         = "SUBSCRIPTION_UPDATED"
	EventSubscriptionInactivated     = "SUBSCRIPTION_INACTIVATED"
	EventSubscriptionDeleted         = "SUBSCRIPTION_DELETED"
)

// WebhookNotification is a decoded gateway notification.
type WebhookNotification struct {
	Gateway         Gateway
	EventType       string
	ExternalEventID string
	Payment         *GatewayPayment
	Subscription    *GatewaySubscription
	DateCreated     string
	Raw             json.RawMessage
}

// DedupKey identifies the logical event.
func (n WebhookNotification) DedupKey() string {
	return WebhookDedupKey(n.Gateway, n.EventType, n.ExternalEventID)
}

func WebhookDedupKey(gateway Gateway, eventType, externalEventID string) string {
	return strings.Join([]string{string(gateway), eventType, externalEventID}, "#")
}

var webhookEventNamespace = uuid.MustParse("2b8e4f0c-5a61-4c1e-8f3d-9d7b6a2e1c54")

// WebhookEventID returns the deterministic record id for a dedup key, so
// redeliveries of one logical event land on the same row.
func WebhookEventID(dedupKey string) string {
	return uuid.NewSHA1(webhookEventNamespace, []byte(dedupKey)).String()
}

// WebhookEvent is the audit and idempotency record of a delivery.
//
// Storage model (DynamoDB):
//   - PK: id, derived from dedup_key with WebhookEventID
//
// A row is claimed by the delivery that writes it. A later delivery may take
// the claim over only when the row failed or its claim went stale.
type WebhookEvent struct {
	ID              string          `json:"id"`
	Gateway         Gateway         `json:"gateway"`
	EventType       string          `json:"event_type"`
	ExternalEventID string          `json:"external_event_id"`
	DedupKey        string          `json:"dedup_key"`
	Payload         json.RawMessage `json:"payload"`
	Processed       bool            `json:"processed"`
	ProcessedAt     *time.Time      `json:"processed_at,omitempty"`
	Error           string          `json:"error,omitempty"`
	ClaimedAt       time.Time       `json:"claimed_at"`
	CreatedAt       time.Time       `json:"created_at"`
}

// WebhookResultStatus is the acknowledgment status returned to the gateway.
type WebhookResultStatus string

const (
	WebhookProcessed        WebhookResultStatus = "processed"
	WebhookAlreadyProcessed WebhookResultStatus = "already_processed"
	WebhookError            WebhookResultStatus = "error"
)

type WebhookResult struct {
	Status  WebhookResultStatus `json:"status"`
	EventID string              `json:"eventId"`
	Error   string              `json:"error,omitempty"`
}
