package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"eldercare_billing/internal/domain/entities"
	"eldercare_billing/internal/logger"
	"eldercare_billing/internal/usecase/interfaces"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// RecordPaymentInput is one settlement reported by a gateway.
type RecordPaymentInput struct {
	InvoiceID  string
	Gateway    entities.Gateway
	ExternalID string
	Amount     decimal.Decimal
	Method     entities.PaymentMethod
	PaidAt     time.Time
	Metadata   map[string]any
}

// IPaymentUseCase records gateway settlements against invoices.
type IPaymentUseCase interface {
	RecordPayment(ctx context.Context, in RecordPaymentInput) (entities.Payment, error)
	ProcessRefund(ctx context.Context, gateway entities.Gateway, externalID string) (entities.Payment, error)
	ListByInvoice(ctx context.Context, tenantID, invoiceID string) ([]entities.Payment, error)
}

type PaymentUseCase struct {
	payments interfaces.IPaymentRepository
	invoices interfaces.IInvoiceRepository
	now      func() time.Time
	log      zerolog.Logger
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(payments interfaces.IPaymentRepository, invoices interfaces.IInvoiceRepository) *PaymentUseCase {
	return &PaymentUseCase{
		payments: payments,
		invoices: invoices,
		now:      time.Now,
		log:      logger.WithComponent("payment.usecase"),
	}
}

// RecordPayment stores the settlement once per (gateway, external id) and
// marks the invoice paid. A repeated settlement returns the stored payment
// and still makes sure the invoice is paid.
func (u *PaymentUseCase) RecordPayment(ctx context.Context, in RecordPaymentInput) (entities.Payment, error) {
	in.ExternalID = strings.TrimSpace(in.ExternalID)
	if in.ExternalID == "" || !in.Gateway.Valid() {
		return entities.Payment{}, ErrInvalidInput
	}

	inv, err := u.invoices.GetByID(ctx, in.InvoiceID)
	if err != nil {
		return entities.Payment{}, err
	}
	if inv.ID == "" {
		return entities.Payment{}, ErrInvoiceNotFound
	}

	now := u.now().UTC()
	paidAt := in.PaidAt
	if paidAt.IsZero() {
		paidAt = now
	}
	method := in.Method
	if method == "" {
		method = entities.PaymentMethodTransfer
	}

	p := entities.Payment{
		ID:         entities.PaymentID(in.Gateway, in.ExternalID),
		InvoiceID:  inv.ID,
		TenantID:   inv.TenantID,
		Amount:     entities.RoundMoney(in.Amount),
		Gateway:    in.Gateway,
		ExternalID: in.ExternalID,
		Method:     method,
		Status:     entities.PaymentStatusSucceeded,
		PaidAt:     paidAt.UTC(),
		Metadata:   in.Metadata,
		CreatedAt:  now,
	}
	stored, err := u.payments.Create(ctx, p)
	switch {
	case errors.Is(err, interfaces.ErrAlreadyExists):
		stored, err = u.payments.GetByGatewayID(ctx, in.Gateway, in.ExternalID)
		if err != nil {
			return entities.Payment{}, err
		}
		u.log.Info().Str("payment_id", stored.ID).Str("invoice_id", inv.ID).Msg("payment already recorded")
	case err != nil:
		return entities.Payment{}, err
	default:
		u.log.Info().
			Str("payment_id", stored.ID).
			Str("invoice_id", inv.ID).
			Str("tenant_id", inv.TenantID).
			Str("amount", stored.Amount.StringFixed(2)).
			Msg("payment recorded")
	}

	switch inv.Status {
	case entities.InvoiceStatusOpen:
		if _, err := u.invoices.UpdateStatus(ctx, inv.ID, entities.InvoiceStatusPaid, &p.PaidAt); err != nil {
			return entities.Payment{}, err
		}
	case entities.InvoiceStatusVoid:
		u.log.Warn().Str("invoice_id", inv.ID).Str("payment_id", stored.ID).Msg("payment received for a void invoice")
	}
	return stored, nil
}

// ProcessRefund marks the payment refunded and voids its invoice.
func (u *PaymentUseCase) ProcessRefund(ctx context.Context, gateway entities.Gateway, externalID string) (entities.Payment, error) {
	p, err := u.payments.GetByGatewayID(ctx, gateway, externalID)
	if err != nil {
		return entities.Payment{}, err
	}

	var inv entities.Invoice
	if p.ID != "" {
		if p.Status != entities.PaymentStatusRefunded {
			p, err = u.payments.UpdateStatus(ctx, p.ID, entities.PaymentStatusRefunded)
			if err != nil {
				return entities.Payment{}, err
			}
		}
		inv, err = u.invoices.GetByID(ctx, p.InvoiceID)
	} else {
		inv, err = u.invoices.GetByExternalPaymentID(ctx, gateway, externalID)
	}
	if err != nil {
		return entities.Payment{}, err
	}
	if p.ID == "" && inv.ID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}

	if inv.ID != "" && inv.Status != entities.InvoiceStatusVoid {
		if _, err := u.invoices.UpdateStatus(ctx, inv.ID, entities.InvoiceStatusVoid, inv.PaidAt); err != nil {
			return entities.Payment{}, err
		}
	}
	u.log.Info().Str("external_id", externalID).Str("invoice_id", inv.ID).Msg("refund processed")
	return p, nil
}

func (u *PaymentUseCase) ListByInvoice(ctx context.Context, tenantID, invoiceID string) ([]entities.Payment, error) {
	inv, err := u.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.ID == "" || inv.TenantID != tenantID {
		return nil, ErrInvoiceNotFound
	}
	payments, err := u.payments.ListByInvoiceID(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	if payments == nil {
		payments = []entities.Payment{}
	}
	return payments, nil
}
