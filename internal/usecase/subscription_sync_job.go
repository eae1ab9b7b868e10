package usecase

import (
	"context"
	"time"

	"eldercare_billing/internal/domain/entities"
	"eldercare_billing/internal/logger"
	"eldercare_billing/internal/usecase/interfaces"

	"github.com/rs/zerolog"
)

// SubscriptionSyncJob pulls the gateway status of every billable
// subscription and stores it locally.
type SubscriptionSyncJob struct {
	tenants       interfaces.ITenantRepository
	subscriptions interfaces.ISubscriptionRepository
	gateway       interfaces.IPaymentGateway
	itemCap       int
	now           func() time.Time
	log           zerolog.Logger
}

var _ Job = (*SubscriptionSyncJob)(nil)

func NewSubscriptionSyncJob(tenants interfaces.ITenantRepository, subscriptions interfaces.ISubscriptionRepository, gateway interfaces.IPaymentGateway, itemCap int) *SubscriptionSyncJob {
	return &SubscriptionSyncJob{
		tenants:       tenants,
		subscriptions: subscriptions,
		gateway:       gateway,
		itemCap:       itemCap,
		now:           time.Now,
		log:           logger.WithComponent("jobs.subscription_sync"),
	}
}

func (j *SubscriptionSyncJob) Name() entities.JobName { return entities.JobSubscriptionSync }

func (j *SubscriptionSyncJob) Run(ctx context.Context) (entities.JobReport, error) {
	return forEachTenant(ctx, j.tenants, j.syncTenant)
}

func (j *SubscriptionSyncJob) syncTenant(ctx context.Context, t entities.Tenant, tl *tally) {
	subs, err := j.subscriptions.ListByTenant(ctx, t.ID, j.itemCap)
	if err != nil {
		tl.tenantFailure(err)
		return
	}

	for _, s := range subs {
		if !s.Status.ActiveLike() || s.GatewaySubscriptionID == "" {
			tl.skip()
			continue
		}

		gs, err := j.gateway.GetSubscription(ctx, s.GatewaySubscriptionID)
		if err != nil {
			j.log.Warn().Err(err).Str("tenant_id", t.ID).Str("subscription_id", s.ID).Msg("subscription sync failed")
			if perr := j.subscriptions.UpdateSyncState(ctx, s.ID, s.Status, j.now().UTC(), err.Error()); perr != nil {
				j.log.Error().Err(perr).Str("subscription_id", s.ID).Msg("failed to store sync error")
			}
			tl.fail(s.ID, err)
			continue
		}

		status := entities.MapGatewaySubscriptionStatus(gs.Status, s.Status)
		if err := j.subscriptions.UpdateSyncState(ctx, s.ID, status, j.now().UTC(), ""); err != nil {
			tl.fail(s.ID, err)
			continue
		}
		if status != s.Status {
			j.log.Info().Str("subscription_id", s.ID).Str("from", string(s.Status)).Str("to", string(status)).Msg("subscription status changed")
		}
		tl.ok()
	}
}
