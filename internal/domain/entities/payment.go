package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus represents a settlement outcome.
type PaymentStatus string

const (
	PaymentStatusSucceeded PaymentStatus = "SUCCEEDED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusRefunded  PaymentStatus = "REFUNDED"
)

type PaymentMethod string

const (
	PaymentMethodBoleto     PaymentMethod = "BOLETO"
	PaymentMethodCreditCard PaymentMethod = "CREDIT_CARD"
	PaymentMethodDebitCard  PaymentMethod = "DEBIT_CARD"
	PaymentMethodPix        PaymentMethod = "PIX"
	PaymentMethodTransfer   PaymentMethod = "TRANSFER"
)

// PaymentMethodFromBillingType maps a gateway billing type to a payment method.
func PaymentMethodFromBillingType(bt BillingType) PaymentMethod {
	switch bt {
	case BillingTypeBoleto:
		return PaymentMethodBoleto
	case BillingTypeCreditCard:
		return PaymentMethodCreditCard
	case BillingTypeDebitCard:
		return PaymentMethodDebitCard
	case BillingTypePix:
		return PaymentMethodPix
	default:
		return PaymentMethodTransfer
	}
}

// Payment is one gateway settlement recorded against an invoice.
//
// Storage model (DynamoDB):
//   - PK: id, derived from (gateway, external_id) so a settlement is stored once
//   - GSI invoice_id-index: invoice_id
//
// Metadata keeps the gateway payload for audit.
type Payment struct {
	ID         string          `json:"id"`
	InvoiceID  string          `json:"invoice_id"`
	TenantID   string          `json:"tenant_id"`
	Amount     decimal.Decimal `json:"amount"`
	Gateway    Gateway         `json:"gateway"`
	ExternalID string          `json:"external_id"`
	Method     PaymentMethod   `json:"method"`
	Status     PaymentStatus   `json:"status"`
	PaidAt     time.Time       `json:"paid_at"`
	Metadata   map[string]any  `json:"metadata,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

var paymentNamespace = uuid.MustParse("6f1c2a52-8d0e-4d3b-9b7a-3f6c1f0e9a41")

// PaymentID returns the deterministic id of a gateway settlement.
func PaymentID(gateway Gateway, externalID string) string {
	return uuid.NewSHA1(paymentNamespace, []byte(string(gateway)+":"+externalID)).String()
}
