package usecase

import (
	"context"
	"time"

	"eldercare_billing/internal/domain/entities"
	"eldercare_billing/internal/logger"
	"eldercare_billing/internal/usecase/interfaces"

	"cloud.google.com/go/civil"
	"github.com/rs/zerolog"
)

// PaymentSyncJob re-reads every open, gateway-linked invoice so missed
// webhooks are healed.
type PaymentSyncJob struct {
	tenants  interfaces.ITenantRepository
	invoices interfaces.IInvoiceRepository
	sync     IInvoiceUseCase
	itemCap  int
	now      func() time.Time
	log      zerolog.Logger
}

var _ Job = (*PaymentSyncJob)(nil)

func NewPaymentSyncJob(tenants interfaces.ITenantRepository, invoices interfaces.IInvoiceRepository, sync IInvoiceUseCase, itemCap int) *PaymentSyncJob {
	return &PaymentSyncJob{
		tenants:  tenants,
		invoices: invoices,
		sync:     sync,
		itemCap:  itemCap,
		now:      time.Now,
		log:      logger.WithComponent("jobs.payment_sync"),
	}
}

func (j *PaymentSyncJob) Name() entities.JobName { return entities.JobPaymentSync }

func (j *PaymentSyncJob) Run(ctx context.Context) (entities.JobReport, error) {
	return forEachTenant(ctx, j.tenants, j.syncTenant)
}

func (j *PaymentSyncJob) syncTenant(ctx context.Context, t entities.Tenant, tl *tally) {
	open, err := j.invoices.ListOpenLinkedByTenant(ctx, t.ID, j.itemCap)
	if err != nil {
		tl.tenantFailure(err)
		return
	}

	today := civil.DateOf(j.now().In(t.Location()))
	for _, inv := range open {
		updated, err := j.sync.Sync(ctx, inv.ID)
		if err != nil {
			j.log.Warn().Err(err).Str("tenant_id", t.ID).Str("invoice_id", inv.ID).Msg("invoice sync failed")
			tl.fail(inv.ID, err)
			continue
		}
		tl.ok()
		switch {
		case updated.Status == entities.InvoiceStatusPaid:
			tl.report.Paid++
		case updated.Status == entities.InvoiceStatusOpen && updated.DueDate.Before(today):
			tl.report.Overdue++
		}
	}
}
