package interfaces

import (
	"context"
	"time"

	"eldercare_billing/internal/domain/entities"
)

// IInvoiceRepository abstracts DynamoDB persistence for Invoice.
//
// Lookups return a zero Invoice (empty ID) when nothing matches.
type IInvoiceRepository interface {
	Create(ctx context.Context, inv entities.Invoice) (entities.Invoice, error)
	GetByID(ctx context.Context, id string) (entities.Invoice, error)
	GetByExternalPaymentID(ctx context.Context, gateway entities.Gateway, externalID string) (entities.Invoice, error)
	// ListByTenant returns the tenant's invoices, newest first.
	ListByTenant(ctx context.Context, tenantID string) ([]entities.Invoice, error)
	// ListOpenLinkedByTenant returns up to limit OPEN invoices with a gateway payment, newest first.
	ListOpenLinkedByTenant(ctx context.Context, tenantID string, limit int) ([]entities.Invoice, error)
	// CountBySubscription counts invoices created in [from, to). Zero bounds mean unbounded.
	CountBySubscription(ctx context.Context, subscriptionID string, from, to time.Time) (int, error)
	// UpdateStatus overwrites status and paid_at (last write wins).
	UpdateStatus(ctx context.Context, id string, status entities.InvoiceStatus, paidAt *time.Time) (entities.Invoice, error)
}

// IInvoiceNumberSequence hands out invoice sequence numbers per year.
type IInvoiceNumberSequence interface {
	Next(ctx context.Context, year int) (int64, error)
}
