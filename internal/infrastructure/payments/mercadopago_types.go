package payments

import (
	"encoding/json"
	"strings"
	"time"

	"eldercare_billing/internal/domain/entities"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// mpPayment is the subset of the Mercado Pago payment resource billing reads.
type mpPayment struct {
	ID                 json.Number          `json:"id"`
	Status             string               `json:"status"`
	StatusDetail       string               `json:"status_detail,omitempty"`
	PaymentMethodID    string               `json:"payment_method_id"`
	PaymentTypeID      string               `json:"payment_type_id"`
	TransactionAmount  decimal.Decimal      `json:"transaction_amount"`
	Description        string               `json:"description"`
	ExternalReference  string               `json:"external_reference"`
	DateOfExpiration   string               `json:"date_of_expiration,omitempty"`
	DateApproved       string               `json:"date_approved,omitempty"`
	Payer              mpPayer              `json:"payer"`
	TransactionDetails mpTransactionDetails `json:"transaction_details"`
	PointOfInteraction mpPointOfInteraction `json:"point_of_interaction"`
}

type mpPayer struct {
	Email string `json:"email"`
}

type mpTransactionDetails struct {
	NetReceivedAmount   decimal.Decimal `json:"net_received_amount"`
	ExternalResourceURL string          `json:"external_resource_url,omitempty"`
}

type mpPointOfInteraction struct {
	TransactionData struct {
		QRCode       string `json:"qr_code,omitempty"`
		QRCodeBase64 string `json:"qr_code_base64,omitempty"`
		TicketURL    string `json:"ticket_url,omitempty"`
	} `json:"transaction_data"`
}

// mpStatus normalizes Mercado Pago statuses to the canonical gateway vocabulary.
func mpStatus(s string) string {
	switch strings.ToLower(s) {
	case "approved":
		return entities.GatewayPaymentReceived
	case "pending", "in_process", "authorized", "in_mediation":
		return entities.GatewayPaymentPending
	case "refunded", "charged_back":
		return entities.GatewayPaymentRefunded
	case "cancelled", "rejected":
		return entities.GatewayPaymentCancelled
	default:
		return strings.ToUpper(s)
	}
}

func mpBillingType(paymentTypeID, methodID string) entities.BillingType {
	switch {
	case methodID == "pix":
		return entities.BillingTypePix
	case paymentTypeID == "ticket":
		return entities.BillingTypeBoleto
	case paymentTypeID == "credit_card":
		return entities.BillingTypeCreditCard
	case paymentTypeID == "debit_card":
		return entities.BillingTypeDebitCard
	case paymentTypeID == "bank_transfer":
		return entities.BillingTypeTransfer
	default:
		return entities.BillingTypeUndefined
	}
}

// mpDate converts an RFC3339 timestamp to the Brasilia calendar day.
func mpDate(s string) civil.Date {
	if s == "" {
		return civil.Date{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return parseCivil(s)
	}
	loc, err := time.LoadLocation(entities.DefaultTimezone)
	if err != nil {
		loc = time.UTC
	}
	return civil.DateOf(t.In(loc))
}

func (p mpPayment) toEntity(raw json.RawMessage) entities.GatewayPayment {
	return entities.GatewayPayment{
		ID:                p.ID.String(),
		CustomerID:        p.Payer.Email,
		Status:            mpStatus(p.Status),
		BillingType:       mpBillingType(p.PaymentTypeID, p.PaymentMethodID),
		Value:             p.TransactionAmount,
		NetValue:          p.TransactionDetails.NetReceivedAmount,
		DueDate:           mpDate(p.DateOfExpiration),
		PaymentDate:       mpDate(p.DateApproved),
		InvoiceURL:        p.PointOfInteraction.TransactionData.TicketURL,
		BankSlipURL:       p.TransactionDetails.ExternalResourceURL,
		Description:       p.Description,
		ExternalReference: p.ExternalReference,
		Raw:               raw,
	}
}
