package entities

import (
	"time"
	_ "time/tzdata"

	"github.com/shopspring/decimal"
)

type SubscriptionStatus string

const (
	SubscriptionStatusTrialing SubscriptionStatus = "trialing"
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusPastDue  SubscriptionStatus = "past_due"
	SubscriptionStatusCanceled SubscriptionStatus = "canceled"
)

// ActiveLike reports whether the subscription is still billable.
func (s SubscriptionStatus) ActiveLike() bool {
	switch s {
	case SubscriptionStatusTrialing, SubscriptionStatusActive, SubscriptionStatusPastDue:
		return true
	}
	return false
}

// MapGatewaySubscriptionStatus maps a gateway subscription status onto the
// local one. Unknown statuses keep the current local status.
func MapGatewaySubscriptionStatus(gatewayStatus string, current SubscriptionStatus) SubscriptionStatus {
	switch gatewayStatus {
	case GatewaySubscriptionActive:
		return SubscriptionStatusActive
	case GatewaySubscriptionInactive, GatewaySubscriptionExpired:
		return SubscriptionStatusCanceled
	default:
		return current
	}
}

// Subscription ties a tenant to a plan. Billing terms are owned by the
// subscription management module; billing only touches status and sync fields.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI tenant_id-created_at-index: tenant_id, created_at
type Subscription struct {
	ID                     string             `json:"id"`
	TenantID               string             `json:"tenant_id"`
	PlanID                 string             `json:"plan_id"`
	Status                 SubscriptionStatus `json:"status"`
	BillingCycle           BillingCycle       `json:"billing_cycle"`
	CustomPrice            *decimal.Decimal   `json:"custom_price,omitempty"`
	DiscountPercent        *decimal.Decimal   `json:"discount_percent,omitempty"`
	DiscountReason         string             `json:"discount_reason,omitempty"`
	PreferredPaymentMethod BillingType        `json:"preferred_payment_method,omitempty"`
	GatewaySubscriptionID  string             `json:"gateway_subscription_id,omitempty"`
	CurrentPeriodStart     time.Time          `json:"current_period_start"`
	TrialEndsAt            *time.Time         `json:"trial_ends_at,omitempty"`
	LastSyncedAt           *time.Time         `json:"last_synced_at,omitempty"`
	LastSyncError          string             `json:"last_sync_error,omitempty"`
	CreatedAt              time.Time          `json:"created_at"`
	UpdatedAt              time.Time          `json:"updated_at"`
}

// HasOverride reports whether the subscription carries its own price terms.
func (s Subscription) HasOverride() bool {
	return s.CustomPrice != nil || (s.DiscountPercent != nil && s.DiscountPercent.IsPositive())
}

// IsAnniversaryMonth reports whether month is the month the subscription
// period started, in loc.
func (s Subscription) IsAnniversaryMonth(at time.Time, loc *time.Location) bool {
	return s.CurrentPeriodStart.In(loc).Month() == at.In(loc).Month()
}

// FirstInvoiceBillingType restricts the preferred method to boleto or card.
func (s Subscription) FirstInvoiceBillingType() BillingType {
	if s.PreferredPaymentMethod == BillingTypeCreditCard {
		return BillingTypeCreditCard
	}
	return BillingTypeBoleto
}

// Plan is a catalog entry. Price is monthly.
type Plan struct {
	ID                    string          `json:"id"`
	Name                  string          `json:"name"`
	DisplayName           string          `json:"display_name"`
	Price                 decimal.Decimal `json:"price"`
	AnnualDiscountPercent decimal.Decimal `json:"annual_discount_percent"`
}

// PriceQuote is the amount to charge for one billing event.
type PriceQuote struct {
	Amount          decimal.Decimal
	OriginalAmount  *decimal.Decimal
	DiscountPercent *decimal.Decimal
	DiscountReason  string
}

// QuoteSubscription prices one billing event: custom price first, then the
// subscription discount, then the plan price. Annual cycles charge twelve
// months and get the plan's annual discount only without an override.
func QuoteSubscription(sub Subscription, plan Plan) PriceQuote {
	base := plan.Price
	if sub.BillingCycle == BillingCycleAnnual {
		base = plan.Price.Mul(decimal.NewFromInt(12))
	}
	base = RoundMoney(base)

	switch {
	case sub.CustomPrice != nil:
		q := PriceQuote{Amount: RoundMoney(*sub.CustomPrice), DiscountReason: sub.DiscountReason}
		if !q.Amount.Equal(base) {
			orig := base
			q.OriginalAmount = &orig
		}
		return q
	case sub.DiscountPercent != nil && sub.DiscountPercent.IsPositive():
		orig := base
		pct := *sub.DiscountPercent
		return PriceQuote{
			Amount:          ApplyDiscount(base, pct),
			OriginalAmount:  &orig,
			DiscountPercent: &pct,
			DiscountReason:  sub.DiscountReason,
		}
	case sub.BillingCycle == BillingCycleAnnual && plan.AnnualDiscountPercent.IsPositive():
		orig := base
		pct := plan.AnnualDiscountPercent
		return PriceQuote{
			Amount:          ApplyDiscount(base, pct),
			OriginalAmount:  &orig,
			DiscountPercent: &pct,
			DiscountReason:  "Desconto plano anual",
		}
	default:
		return PriceQuote{Amount: base}
	}
}

type TenantStatus string

const (
	TenantStatusActive    TenantStatus = "ACTIVE"
	TenantStatusSuspended TenantStatus = "SUSPENDED"
	TenantStatusCanceled  TenantStatus = "CANCELED"
)

// DefaultTimezone is used for tenants without one.
const DefaultTimezone = "America/Sao_Paulo"

// Tenant is a subscribing facility.
type Tenant struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	TaxID             string       `json:"tax_id"`
	Email             string       `json:"email"`
	Phone             string       `json:"phone,omitempty"`
	Timezone          string       `json:"timezone,omitempty"`
	GatewayCustomerID string       `json:"gateway_customer_id,omitempty"`
	Status            TenantStatus `json:"status"`
}

// Location returns the tenant's time zone, falling back to DefaultTimezone.
func (t Tenant) Location() *time.Location {
	name := t.Timezone
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		loc, err = time.LoadLocation(DefaultTimezone)
		if err != nil {
			return time.UTC
		}
	}
	return loc
}
