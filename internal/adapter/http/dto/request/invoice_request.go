package request

import (
	"strings"

	"eldercare_billing/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// GenerateInvoiceRequest is the body of an ad-hoc invoice generation.
type GenerateInvoiceRequest struct {
	SubscriptionID  string           `json:"subscription_id" binding:"required"`
	Amount          decimal.Decimal  `json:"amount"`
	OriginalAmount  *decimal.Decimal `json:"original_amount"`
	DiscountPercent *decimal.Decimal `json:"discount_percent"`
	DiscountReason  string           `json:"discount_reason" binding:"max=255"`
	BillingType     string           `json:"billing_type" binding:"omitempty,oneof=UNDEFINED BOLETO CREDIT_CARD DEBIT_CARD PIX TRANSFER"`
}

func (r GenerateInvoiceRequest) BillingTypeOrDefault() entities.BillingType {
	if bt := strings.ToUpper(strings.TrimSpace(r.BillingType)); bt != "" {
		return entities.BillingType(bt)
	}
	return entities.BillingTypeUndefined
}

// ListInvoicesQuery binds the invoice listing query string.
type ListInvoicesQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=OPEN PAID VOID"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset int    `form:"offset" binding:"omitempty,min=0"`
}
