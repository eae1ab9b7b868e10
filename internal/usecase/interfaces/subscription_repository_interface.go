package interfaces

import (
	"context"
	"time"

	"eldercare_billing/internal/domain/entities"
)

// ISubscriptionRepository reads subscriptions and writes their sync bookkeeping.
type ISubscriptionRepository interface {
	GetByID(ctx context.Context, id string) (entities.Subscription, error)
	GetByGatewayID(ctx context.Context, gatewaySubscriptionID string) (entities.Subscription, error)
	// ListByTenant returns up to limit subscriptions, newest first. limit <= 0 means all.
	ListByTenant(ctx context.Context, tenantID string, limit int) ([]entities.Subscription, error)
	UpdateSyncState(ctx context.Context, id string, status entities.SubscriptionStatus, syncedAt time.Time, syncError string) error
}

// ITenantRepository reads tenants and stores their gateway customer id.
type ITenantRepository interface {
	GetByID(ctx context.Context, id string) (entities.Tenant, error)
	ListActive(ctx context.Context) ([]entities.Tenant, error)
	UpdateGatewayCustomerID(ctx context.Context, id string, customerID string) error
}

// IPlanRepository reads the plan catalog.
type IPlanRepository interface {
	GetByID(ctx context.Context, id string) (entities.Plan, error)
}
