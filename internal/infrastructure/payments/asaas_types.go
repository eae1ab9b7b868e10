package payments

import (
	"encoding/json"
	"strings"

	"eldercare_billing/internal/domain/entities"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

type asaasErrorResponse struct {
	Errors []struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"errors"`
	Message string `json:"message"`
}

type asaasList[T any] struct {
	Data       []T  `json:"data"`
	TotalCount int  `json:"totalCount"`
	HasMore    bool `json:"hasMore"`
}

type asaasCustomerRequest struct {
	Name              string `json:"name"`
	CpfCnpj           string `json:"cpfCnpj"`
	Email             string `json:"email,omitempty"`
	MobilePhone       string `json:"mobilePhone,omitempty"`
	ExternalReference string `json:"externalReference,omitempty"`
}

type asaasCustomer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	CpfCnpj string `json:"cpfCnpj"`
	Email   string `json:"email"`
}

type asaasSubscriptionRequest struct {
	Customer          string  `json:"customer"`
	BillingType       string  `json:"billingType"`
	Value             float64 `json:"value"`
	NextDueDate       string  `json:"nextDueDate"`
	Cycle             string  `json:"cycle"`
	Description       string  `json:"description,omitempty"`
	ExternalReference string  `json:"externalReference,omitempty"`
}

type asaasSubscription struct {
	ID                string          `json:"id"`
	Customer          string          `json:"customer"`
	Status            string          `json:"status"`
	Value             decimal.Decimal `json:"value"`
	Cycle             string          `json:"cycle"`
	NextDueDate       string          `json:"nextDueDate"`
	ExternalReference string          `json:"externalReference"`
}

type asaasPaymentRequest struct {
	Customer          string  `json:"customer"`
	BillingType       string  `json:"billingType"`
	Value             float64 `json:"value"`
	DueDate           string  `json:"dueDate"`
	Description       string  `json:"description,omitempty"`
	ExternalReference string  `json:"externalReference,omitempty"`
}

type asaasPayment struct {
	ID                string          `json:"id"`
	Customer          string          `json:"customer"`
	Subscription      string          `json:"subscription"`
	Status            string          `json:"status"`
	BillingType       string          `json:"billingType"`
	Value             decimal.Decimal `json:"value"`
	NetValue          decimal.Decimal `json:"netValue"`
	DueDate           string          `json:"dueDate"`
	PaymentDate       string          `json:"paymentDate"`
	ClientPaymentDate string          `json:"clientPaymentDate"`
	InvoiceURL        string          `json:"invoiceUrl"`
	BankSlipURL       string          `json:"bankSlipUrl"`
	Description       string          `json:"description"`
	ExternalReference string          `json:"externalReference"`
}

type asaasPixQrCode struct {
	EncodedImage   string `json:"encodedImage"`
	Payload        string `json:"payload"`
	ExpirationDate string `json:"expirationDate"`
}

type asaasWebhookBody struct {
	Event        string             `json:"event"`
	ID           string             `json:"id"`
	DateCreated  string             `json:"dateCreated"`
	Payment      json.RawMessage    `json:"payment"`
	Subscription *asaasSubscription `json:"subscription"`
}

func parseCivil(s string) civil.Date {
	if len(s) > 10 {
		s = s[:10]
	}
	d, err := civil.ParseDate(s)
	if err != nil {
		return civil.Date{}
	}
	return d
}

func civilString(d civil.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}

func asaasCycle(c entities.BillingCycle) string {
	if c == entities.BillingCycleAnnual {
		return "YEARLY"
	}
	return "MONTHLY"
}

func (p asaasPayment) toEntity(raw json.RawMessage) entities.GatewayPayment {
	paid := parseCivil(p.PaymentDate)
	if paid.IsZero() {
		paid = parseCivil(p.ClientPaymentDate)
	}
	return entities.GatewayPayment{
		ID:                p.ID,
		CustomerID:        p.Customer,
		SubscriptionID:    p.Subscription,
		Status:            strings.ToUpper(p.Status),
		BillingType:       entities.BillingType(strings.ToUpper(p.BillingType)),
		Value:             p.Value,
		NetValue:          p.NetValue,
		DueDate:           parseCivil(p.DueDate),
		PaymentDate:       paid,
		InvoiceURL:        p.InvoiceURL,
		BankSlipURL:       p.BankSlipURL,
		Description:       p.Description,
		ExternalReference: p.ExternalReference,
		Raw:               raw,
	}
}

func (s asaasSubscription) toEntity() entities.GatewaySubscription {
	return entities.GatewaySubscription{
		ID:                s.ID,
		CustomerID:        s.Customer,
		Status:            strings.ToUpper(s.Status),
		Value:             s.Value,
		Cycle:             s.Cycle,
		NextDueDate:       parseCivil(s.NextDueDate),
		ExternalReference: s.ExternalReference,
	}
}
