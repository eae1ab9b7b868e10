package usecase

import (
	"context"
	"fmt"
	"time"

	"eldercare_billing/internal/domain/entities"
	"eldercare_billing/internal/logger"
	"eldercare_billing/internal/usecase/interfaces"

	"github.com/rs/zerolog"
)

// InvoiceGenerationJob issues the monthly (or anniversary-month annual)
// invoice of every active subscription that has none yet this month.
type InvoiceGenerationJob struct {
	tenants       interfaces.ITenantRepository
	subscriptions interfaces.ISubscriptionRepository
	plans         interfaces.IPlanRepository
	invoiceRepo   interfaces.IInvoiceRepository
	invoices      IInvoiceUseCase
	itemCap       int
	now           func() time.Time
	log           zerolog.Logger
}

var _ Job = (*InvoiceGenerationJob)(nil)

func NewInvoiceGenerationJob(
	tenants interfaces.ITenantRepository,
	subscriptions interfaces.ISubscriptionRepository,
	plans interfaces.IPlanRepository,
	invoiceRepo interfaces.IInvoiceRepository,
	invoices IInvoiceUseCase,
	itemCap int,
) *InvoiceGenerationJob {
	return &InvoiceGenerationJob{
		tenants:       tenants,
		subscriptions: subscriptions,
		plans:         plans,
		invoiceRepo:   invoiceRepo,
		invoices:      invoices,
		itemCap:       itemCap,
		now:           time.Now,
		log:           logger.WithComponent("jobs.invoice_generation"),
	}
}

func (j *InvoiceGenerationJob) Name() entities.JobName { return entities.JobInvoiceGeneration }

func (j *InvoiceGenerationJob) Run(ctx context.Context) (entities.JobReport, error) {
	return forEachTenant(ctx, j.tenants, j.generateTenant)
}

func (j *InvoiceGenerationJob) generateTenant(ctx context.Context, t entities.Tenant, tl *tally) {
	subs, err := j.subscriptions.ListByTenant(ctx, t.ID, j.itemCap)
	if err != nil {
		tl.tenantFailure(err)
		return
	}

	loc := t.Location()
	now := j.now()
	local := now.In(loc)
	monthStart := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
	nextMonth := monthStart.AddDate(0, 1, 0)

	for _, s := range subs {
		if s.Status != entities.SubscriptionStatusActive {
			tl.skip()
			continue
		}
		if s.BillingCycle == entities.BillingCycleAnnual && !s.IsAnniversaryMonth(now, loc) {
			tl.skip()
			continue
		}

		n, err := j.invoiceRepo.CountBySubscription(ctx, s.ID, monthStart, nextMonth)
		if err != nil {
			tl.fail(s.ID, err)
			continue
		}
		if n > 0 {
			tl.skip()
			continue
		}

		plan, err := j.plans.GetByID(ctx, s.PlanID)
		if err != nil {
			tl.fail(s.ID, err)
			continue
		}
		if plan.ID == "" {
			tl.fail(s.ID, fmt.Errorf("%w: %s", ErrPlanNotFound, s.PlanID))
			continue
		}

		quote := entities.QuoteSubscription(s, plan)
		inv, err := j.invoices.Generate(ctx, GenerateInvoiceInput{
			TenantID:        t.ID,
			SubscriptionID:  s.ID,
			Amount:          quote.Amount,
			OriginalAmount:  quote.OriginalAmount,
			DiscountPercent: quote.DiscountPercent,
			DiscountReason:  quote.DiscountReason,
			BillingType:     s.PreferredPaymentMethod,
		})
		if err != nil {
			j.log.Warn().Err(err).Str("tenant_id", t.ID).Str("subscription_id", s.ID).Msg("invoice generation failed")
			tl.fail(s.ID, err)
			continue
		}
		j.log.Debug().Str("invoice_id", inv.ID).Str("subscription_id", s.ID).Msg("invoice generated")
		tl.ok()
	}
}
