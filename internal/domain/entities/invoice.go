package entities

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus is the local invoice state.
//
//	OPEN -> PAID -> VOID (refund)
//	OPEN -> VOID
//
// VOID is terminal. PAID only leaves through the refund/cancel path.
type InvoiceStatus string

const (
	InvoiceStatusOpen InvoiceStatus = "OPEN"
	InvoiceStatusPaid InvoiceStatus = "PAID"
	InvoiceStatusVoid InvoiceStatus = "VOID"
)

type BillingCycle string

const (
	BillingCycleMonthly BillingCycle = "MONTHLY"
	BillingCycleAnnual  BillingCycle = "ANNUAL"
)

// Invoice is the tenant-facing billing document.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI tenant_id-created_at-index: tenant_id, created_at
//   - GSI subscription_id-created_at-index: subscription_id, created_at
//   - GSI external_payment_key-index: external_payment_key (gateway#external id)
type Invoice struct {
	ID                string           `json:"id"`
	TenantID          string           `json:"tenant_id"`
	SubscriptionID    string           `json:"subscription_id"`
	Number            string           `json:"number"`
	Amount            decimal.Decimal  `json:"amount"`
	OriginalAmount    *decimal.Decimal `json:"original_amount,omitempty"`
	DiscountPercent   *decimal.Decimal `json:"discount_percent,omitempty"`
	DiscountReason    string           `json:"discount_reason,omitempty"`
	BillingCycle      BillingCycle     `json:"billing_cycle"`
	Description       string           `json:"description"`
	Currency          string           `json:"currency"`
	Status            InvoiceStatus    `json:"status"`
	DueDate           civil.Date       `json:"due_date"`
	PaidAt            *time.Time       `json:"paid_at,omitempty"`
	Gateway           Gateway          `json:"gateway"`
	ExternalPaymentID string           `json:"external_payment_id,omitempty"`
	PaymentURL        string           `json:"payment_url,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// LinkedToGateway reports whether the invoice has a gateway payment.
func (i Invoice) LinkedToGateway() bool {
	return i.ExternalPaymentID != ""
}

var invoiceNamespace = uuid.MustParse("9a3d7c1e-2f4b-4e8a-b6d5-0c1e7f3a8b92")

// InvoiceIDForGatewayPayment returns the deterministic id of the invoice
// billing a gateway payment. At most one invoice exists per external payment.
func InvoiceIDForGatewayPayment(gateway Gateway, externalPaymentID string) string {
	return uuid.NewSHA1(invoiceNamespace, []byte(string(gateway)+":"+externalPaymentID)).String()
}

// FormatInvoiceNumber renders INV-<year>-<seq>, seq zero-padded to 4 digits.
func FormatInvoiceNumber(year int, seq int64) string {
	return fmt.Sprintf("INV-%d-%04d", year, seq)
}

var gatewayPaymentToInvoiceStatus = map[string]InvoiceStatus{
	GatewayPaymentPending:        InvoiceStatusOpen,
	GatewayPaymentOverdue:        InvoiceStatusOpen,
	GatewayPaymentConfirmed:      InvoiceStatusPaid,
	GatewayPaymentReceived:       InvoiceStatusPaid,
	GatewayPaymentReceivedInCash: InvoiceStatusPaid,
	GatewayPaymentRefunded:       InvoiceStatusVoid,
}

// MapGatewayPaymentStatus maps a gateway payment status to the local status.
// Unknown values map to OPEN.
func MapGatewayPaymentStatus(status string) InvoiceStatus {
	if s, ok := gatewayPaymentToInvoiceStatus[status]; ok {
		return s
	}
	return InvoiceStatusOpen
}

// CanTransition reports whether from -> to is allowed. Same-state is allowed.
func CanTransition(from, to InvoiceStatus) bool {
	if from == to {
		return true
	}
	switch from {
	case InvoiceStatusOpen:
		return to == InvoiceStatusPaid || to == InvoiceStatusVoid
	case InvoiceStatusPaid:
		return to == InvoiceStatusVoid
	default:
		return false
	}
}
