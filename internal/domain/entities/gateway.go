package entities

import (
	"encoding/json"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Gateway identifies an external payment provider.
type Gateway string

const (
	GatewayAsaas       Gateway = "asaas"
	GatewayMercadoPago Gateway = "mercadopago"
)

func (g Gateway) Valid() bool {
	return g == GatewayAsaas || g == GatewayMercadoPago
}

// BillingType is the charge method requested from the gateway.
type BillingType string

const (
	BillingTypeUndefined  BillingType = "UNDEFINED"
	BillingTypeBoleto     BillingType = "BOLETO"
	BillingTypeCreditCard BillingType = "CREDIT_CARD"
	BillingTypeDebitCard  BillingType = "DEBIT_CARD"
	BillingTypePix        BillingType = "PIX"
	BillingTypeTransfer   BillingType = "TRANSFER"
)

// Canonical gateway payment statuses. Providers with a different vocabulary
// are normalized to these values by their adapter.
const (
	GatewayPaymentPending        = "PENDING"
	GatewayPaymentConfirmed      = "CONFIRMED"
	GatewayPaymentReceived       = "RECEIVED"
	GatewayPaymentReceivedInCash = "RECEIVED_IN_CASH"
	GatewayPaymentOverdue        = "OVERDUE"
	GatewayPaymentRefunded       = "REFUNDED"
	GatewayPaymentCancelled      = "CANCELLED"
)

// Canonical gateway subscription statuses.
const (
	GatewaySubscriptionActive   = "ACTIVE"
	GatewaySubscriptionInactive = "INACTIVE"
	GatewaySubscriptionExpired  = "EXPIRED"
)

type GatewayCustomerInput struct {
	Name              string
	TaxID             string
	Email             string
	Phone             string
	ExternalReference string
}

type GatewayCustomer struct {
	ID    string
	Name  string
	TaxID string
	Email string
}

type GatewaySubscriptionInput struct {
	CustomerID        string
	BillingType       BillingType
	Value             decimal.Decimal
	NextDueDate       civil.Date
	Cycle             BillingCycle
	Description       string
	ExternalReference string
}

type GatewaySubscription struct {
	ID                string
	CustomerID        string
	Status            string
	Value             decimal.Decimal
	Cycle             string
	NextDueDate       civil.Date
	ExternalReference string
}

type GatewayPaymentInput struct {
	CustomerID        string
	BillingType       BillingType
	Value             decimal.Decimal
	DueDate           civil.Date
	Description       string
	ExternalReference string
}

// GatewayPayment is a payment as reported by the provider.
type GatewayPayment struct {
	ID                string
	CustomerID        string
	SubscriptionID    string
	Status            string
	BillingType       BillingType
	Value             decimal.Decimal
	NetValue          decimal.Decimal
	DueDate           civil.Date
	PaymentDate       civil.Date
	InvoiceURL        string
	BankSlipURL       string
	Description       string
	ExternalReference string
	Raw               json.RawMessage
}

// PaymentURL prefers the hosted invoice page over the bank slip.
func (p GatewayPayment) PaymentURL() string {
	if p.InvoiceURL != "" {
		return p.InvoiceURL
	}
	return p.BankSlipURL
}

type PixQrCode struct {
	EncodedImage   string `json:"encoded_image"`
	Payload        string `json:"payload"`
	ExpirationDate string `json:"expiration_date,omitempty"`
}
