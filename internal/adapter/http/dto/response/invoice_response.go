package response

import (
	"time"

	"eldercare_billing/internal/domain/entities"
	"eldercare_billing/internal/usecase"

	"github.com/shopspring/decimal"
)

type InvoiceResponse struct {
	ID                string     `json:"id"`
	TenantID          string     `json:"tenant_id"`
	SubscriptionID    string     `json:"subscription_id"`
	Number            string     `json:"number"`
	Amount            string     `json:"amount"`
	OriginalAmount    *string    `json:"original_amount,omitempty"`
	DiscountPercent   *string    `json:"discount_percent,omitempty"`
	DiscountReason    string     `json:"discount_reason,omitempty"`
	BillingCycle      string     `json:"billing_cycle,omitempty"`
	Description       string     `json:"description"`
	Currency          string     `json:"currency"`
	Status            string     `json:"status"`
	DueDate           string     `json:"due_date"`
	PaidAt            *time.Time `json:"paid_at,omitempty"`
	Gateway           string     `json:"gateway,omitempty"`
	ExternalPaymentID string     `json:"external_payment_id,omitempty"`
	PaymentURL        string     `json:"payment_url,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func FromInvoice(inv entities.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:                inv.ID,
		TenantID:          inv.TenantID,
		SubscriptionID:    inv.SubscriptionID,
		Number:            inv.Number,
		Amount:            money(inv.Amount),
		OriginalAmount:    optionalMoney(inv.OriginalAmount),
		DiscountPercent:   optionalMoney(inv.DiscountPercent),
		DiscountReason:    inv.DiscountReason,
		BillingCycle:      string(inv.BillingCycle),
		Description:       inv.Description,
		Currency:          inv.Currency,
		Status:            string(inv.Status),
		DueDate:           inv.DueDate.String(),
		PaidAt:            inv.PaidAt,
		Gateway:           string(inv.Gateway),
		ExternalPaymentID: inv.ExternalPaymentID,
		PaymentURL:        inv.PaymentURL,
		CreatedAt:         inv.CreatedAt,
		UpdatedAt:         inv.UpdatedAt,
	}
}

type InvoiceListResponse struct {
	Items   []InvoiceResponse `json:"items"`
	Total   int               `json:"total"`
	Limit   int               `json:"limit"`
	Offset  int               `json:"offset"`
	HasMore bool              `json:"has_more"`
}

func FromInvoicePage(p usecase.InvoicePage) InvoiceListResponse {
	items := make([]InvoiceResponse, 0, len(p.Items))
	for _, inv := range p.Items {
		items = append(items, FromInvoice(inv))
	}
	return InvoiceListResponse{Items: items, Total: p.Total, Limit: p.Limit, Offset: p.Offset, HasMore: p.HasMore}
}

type PaymentResponse struct {
	ID         string         `json:"id"`
	InvoiceID  string         `json:"invoice_id"`
	Amount     string         `json:"amount"`
	Gateway    string         `json:"gateway"`
	ExternalID string         `json:"external_id"`
	Method     string         `json:"method"`
	Status     string         `json:"status"`
	PaidAt     time.Time      `json:"paid_at"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

func FromPayments(payments []entities.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, PaymentResponse{
			ID:         p.ID,
			InvoiceID:  p.InvoiceID,
			Amount:     money(p.Amount),
			Gateway:    string(p.Gateway),
			ExternalID: p.ExternalID,
			Method:     string(p.Method),
			Status:     string(p.Status),
			PaidAt:     p.PaidAt,
			Metadata:   p.Metadata,
			CreatedAt:  p.CreatedAt,
		})
	}
	return out
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func optionalMoney(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := money(*d)
	return &s
}
