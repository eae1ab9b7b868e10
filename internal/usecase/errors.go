package usecase

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidInput                = errors.New("invalid input")
	ErrTenantNotFound              = errors.New("tenant not found")
	ErrSubscriptionNotFound        = errors.New("subscription not found")
	ErrPlanNotFound                = errors.New("plan not found")
	ErrInvoiceNotFound             = errors.New("invoice not found")
	ErrInvoiceNotLinked            = errors.New("invoice has no gateway payment")
	ErrInvoiceAlreadyPaid          = errors.New("paid invoices cannot be canceled")
	ErrInvalidTransition           = errors.New("invalid invoice status transition")
	ErrInvoicesAlreadyExist        = errors.New("subscription already has invoices")
	ErrPaymentNotFound             = errors.New("payment not found")
	ErrUnknownGateway              = errors.New("unknown payment gateway")
	ErrInvalidWebhookToken         = errors.New("invalid webhook token")
	ErrInvalidWebhookPayload       = errors.New("invalid webhook payload")
	ErrUnknownJob                  = errors.New("unknown job")
	ErrBankAccountNotFound         = errors.New("bank account not found")
	ErrReconciliationExists        = errors.New("reconciliation already exists for this date")
	ErrReconciliationNotFound      = errors.New("reconciliation not found")
	ErrInvalidReconciliationStatus = errors.New("invalid reconciliation status transition")
)

var validate = validator.New()
