package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"eldercare_billing/internal/domain/entities"
	"eldercare_billing/internal/logger"
	"eldercare_billing/internal/usecase/interfaces"

	"cloud.google.com/go/civil"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

const (
	invoiceDueDays          = 40
	firstInvoiceDueDays     = 7
	defaultInvoicePageLimit = 10
	maxInvoicePageLimit     = 100
)

// GenerateInvoiceInput describes one ad-hoc or scheduled charge.
type GenerateInvoiceInput struct {
	TenantID        string               `validate:"required"`
	SubscriptionID  string               `validate:"required"`
	Amount          decimal.Decimal      `validate:"-"`
	OriginalAmount  *decimal.Decimal     `validate:"-"`
	DiscountPercent *decimal.Decimal     `validate:"-"`
	DiscountReason  string               `validate:"max=255"`
	BillingType     entities.BillingType `validate:"omitempty,oneof=UNDEFINED BOLETO CREDIT_CARD DEBIT_CARD PIX TRANSFER"`
}

type ListInvoicesFilter struct {
	Status entities.InvoiceStatus
	Limit  int
	Offset int
}

type InvoicePage struct {
	Items   []entities.Invoice `json:"items"`
	Total   int                `json:"total"`
	Limit   int                `json:"limit"`
	Offset  int                `json:"offset"`
	HasMore bool               `json:"has_more"`
}

// IInvoiceUseCase drives the invoice lifecycle against the payment gateway.
//
// Operations that take only an invoice id do not check tenant ownership;
// callers scoped to a tenant resolve the invoice with Get first.
type IInvoiceUseCase interface {
	Generate(ctx context.Context, in GenerateInvoiceInput) (entities.Invoice, error)
	CreateFirstInvoiceAfterTrial(ctx context.Context, subscriptionID string) (entities.Invoice, error)
	Sync(ctx context.Context, invoiceID string) (entities.Invoice, error)
	MarkAsPaid(ctx context.Context, invoiceID string) (entities.Invoice, error)
	Cancel(ctx context.Context, invoiceID string) (entities.Invoice, error)
	Get(ctx context.Context, tenantID, invoiceID string) (entities.Invoice, error)
	List(ctx context.Context, tenantID string, filter ListInvoicesFilter) (InvoicePage, error)
	GetPixQrCode(ctx context.Context, tenantID, invoiceID string) (entities.PixQrCode, error)
	// CreateFromGatewayPayment stores an invoice for a payment the gateway
	// generated on its own (recurring subscriptions). created is false when the
	// payment is unknown to local subscriptions or already has an invoice.
	CreateFromGatewayPayment(ctx context.Context, gateway entities.Gateway, p entities.GatewayPayment) (inv entities.Invoice, created bool, err error)
}

type InvoiceUseCase struct {
	invoices      interfaces.IInvoiceRepository
	numbers       interfaces.IInvoiceNumberSequence
	subscriptions interfaces.ISubscriptionRepository
	tenants       interfaces.ITenantRepository
	plans         interfaces.IPlanRepository
	gateways      *GatewayRegistry

	customers singleflight.Group
	now       func() time.Time
	loc       *time.Location
	log       zerolog.Logger
}

var _ IInvoiceUseCase = (*InvoiceUseCase)(nil)

func NewInvoiceUseCase(
	invoices interfaces.IInvoiceRepository,
	numbers interfaces.IInvoiceNumberSequence,
	subscriptions interfaces.ISubscriptionRepository,
	tenants interfaces.ITenantRepository,
	plans interfaces.IPlanRepository,
	gateways *GatewayRegistry,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		invoices:      invoices,
		numbers:       numbers,
		subscriptions: subscriptions,
		tenants:       tenants,
		plans:         plans,
		gateways:      gateways,
		now:           time.Now,
		loc:           entities.Tenant{}.Location(),
		log:           logger.WithComponent("invoice.usecase"),
	}
}

func (u *InvoiceUseCase) Generate(ctx context.Context, in GenerateInvoiceInput) (entities.Invoice, error) {
	in.TenantID = strings.TrimSpace(in.TenantID)
	in.SubscriptionID = strings.TrimSpace(in.SubscriptionID)
	if err := validate.Struct(in); err != nil {
		return entities.Invoice{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !in.Amount.IsPositive() {
		return entities.Invoice{}, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if in.DiscountPercent != nil && (in.DiscountPercent.IsNegative() || in.DiscountPercent.GreaterThan(decimal.NewFromInt(100))) {
		return entities.Invoice{}, fmt.Errorf("%w: discount percent must be between 0 and 100", ErrInvalidInput)
	}

	sub, err := u.subscriptions.GetByID(ctx, in.SubscriptionID)
	if err != nil {
		return entities.Invoice{}, err
	}
	if sub.ID == "" || sub.TenantID != in.TenantID {
		return entities.Invoice{}, ErrSubscriptionNotFound
	}

	tenant, plan, err := u.loadTenantAndPlan(ctx, sub)
	if err != nil {
		return entities.Invoice{}, err
	}

	billingType := in.BillingType
	if billingType == "" {
		billingType = entities.BillingTypeUndefined
	}
	return u.issue(ctx, issueRequest{
		tenant:      tenant,
		sub:         sub,
		plan:        plan,
		billingType: billingType,
		dueInDays:   invoiceDueDays,
		quote: entities.PriceQuote{
			Amount:          entities.RoundMoney(in.Amount),
			OriginalAmount:  in.OriginalAmount,
			DiscountPercent: in.DiscountPercent,
			DiscountReason:  in.DiscountReason,
		},
	})
}

func (u *InvoiceUseCase) CreateFirstInvoiceAfterTrial(ctx context.Context, subscriptionID string) (entities.Invoice, error) {
	subscriptionID = strings.TrimSpace(subscriptionID)
	if subscriptionID == "" {
		return entities.Invoice{}, fmt.Errorf("%w: subscription id is required", ErrInvalidInput)
	}

	sub, err := u.subscriptions.GetByID(ctx, subscriptionID)
	if err != nil {
		return entities.Invoice{}, err
	}
	if sub.ID == "" {
		return entities.Invoice{}, ErrSubscriptionNotFound
	}

	existing, err := u.invoices.CountBySubscription(ctx, sub.ID, time.Time{}, time.Time{})
	if err != nil {
		return entities.Invoice{}, err
	}
	if existing > 0 {
		return entities.Invoice{}, ErrInvoicesAlreadyExist
	}

	tenant, plan, err := u.loadTenantAndPlan(ctx, sub)
	if err != nil {
		return entities.Invoice{}, err
	}
	quote := entities.QuoteSubscription(sub, plan)
	if !quote.Amount.IsPositive() {
		return entities.Invoice{}, fmt.Errorf("%w: subscription price must be positive", ErrInvalidInput)
	}

	return u.issue(ctx, issueRequest{
		tenant:      tenant,
		sub:         sub,
		plan:        plan,
		quote:       quote,
		billingType: sub.FirstInvoiceBillingType(),
		dueInDays:   firstInvoiceDueDays,
	})
}

func (u *InvoiceUseCase) Sync(ctx context.Context, invoiceID string) (entities.Invoice, error) {
	inv, err := u.getByID(ctx, invoiceID)
	if err != nil {
		return entities.Invoice{}, err
	}
	if !inv.LinkedToGateway() {
		return entities.Invoice{}, ErrInvoiceNotLinked
	}

	gw, err := u.gateways.Get(inv.Gateway)
	if err != nil {
		return entities.Invoice{}, err
	}
	gp, err := gw.GetPayment(ctx, inv.ExternalPaymentID)
	if err != nil {
		return entities.Invoice{}, err
	}
	return u.applyGatewayStatus(ctx, inv, gp)
}

func (u *InvoiceUseCase) MarkAsPaid(ctx context.Context, invoiceID string) (entities.Invoice, error) {
	inv, err := u.getByID(ctx, invoiceID)
	if err != nil {
		return entities.Invoice{}, err
	}
	switch inv.Status {
	case entities.InvoiceStatusPaid:
		return inv, nil
	case entities.InvoiceStatusVoid:
		return entities.Invoice{}, ErrInvalidTransition
	}

	paidAt := u.now().UTC()
	updated, err := u.invoices.UpdateStatus(ctx, inv.ID, entities.InvoiceStatusPaid, &paidAt)
	if err != nil {
		return entities.Invoice{}, err
	}
	if updated.ID == "" {
		return entities.Invoice{}, ErrInvoiceNotFound
	}
	u.log.Info().Str("invoice_id", inv.ID).Str("tenant_id", inv.TenantID).Msg("invoice marked as paid")
	return updated, nil
}

func (u *InvoiceUseCase) Cancel(ctx context.Context, invoiceID string) (entities.Invoice, error) {
	inv, err := u.getByID(ctx, invoiceID)
	if err != nil {
		return entities.Invoice{}, err
	}
	switch inv.Status {
	case entities.InvoiceStatusVoid:
		return inv, nil
	case entities.InvoiceStatusPaid:
		return entities.Invoice{}, ErrInvoiceAlreadyPaid
	}

	if inv.LinkedToGateway() {
		if gw, err := u.gateways.Get(inv.Gateway); err != nil {
			u.log.Warn().Err(err).Str("invoice_id", inv.ID).Str("gateway", string(inv.Gateway)).Msg("cannot reach invoice gateway; voiding locally")
		} else if _, err := gw.RefundPayment(ctx, inv.ExternalPaymentID); err != nil {
			u.log.Warn().Err(err).Str("invoice_id", inv.ID).Str("external_payment_id", inv.ExternalPaymentID).Msg("gateway refund failed; voiding locally")
		}
	}

	updated, err := u.invoices.UpdateStatus(ctx, inv.ID, entities.InvoiceStatusVoid, inv.PaidAt)
	if err != nil {
		return entities.Invoice{}, err
	}
	if updated.ID == "" {
		return entities.Invoice{}, ErrInvoiceNotFound
	}
	u.log.Info().Str("invoice_id", inv.ID).Str("tenant_id", inv.TenantID).Msg("invoice canceled")
	return updated, nil
}

func (u *InvoiceUseCase) Get(ctx context.Context, tenantID, invoiceID string) (entities.Invoice, error) {
	inv, err := u.getByID(ctx, invoiceID)
	if err != nil {
		return entities.Invoice{}, err
	}
	if inv.TenantID != tenantID {
		return entities.Invoice{}, ErrInvoiceNotFound
	}
	return inv, nil
}

func (u *InvoiceUseCase) List(ctx context.Context, tenantID string, filter ListInvoicesFilter) (InvoicePage, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultInvoicePageLimit
	}
	if filter.Limit > maxInvoicePageLimit {
		filter.Limit = maxInvoicePageLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	all, err := u.invoices.ListByTenant(ctx, tenantID)
	if err != nil {
		return InvoicePage{}, err
	}
	matched := all[:0:0]
	for _, inv := range all {
		if filter.Status != "" && inv.Status != filter.Status {
			continue
		}
		matched = append(matched, inv)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	page := InvoicePage{Items: []entities.Invoice{}, Total: len(matched), Limit: filter.Limit, Offset: filter.Offset}
	if filter.Offset < len(matched) {
		end := filter.Offset + filter.Limit
		if end > len(matched) {
			end = len(matched)
		}
		page.Items = matched[filter.Offset:end]
		page.HasMore = end < len(matched)
	}
	return page, nil
}

func (u *InvoiceUseCase) GetPixQrCode(ctx context.Context, tenantID, invoiceID string) (entities.PixQrCode, error) {
	inv, err := u.Get(ctx, tenantID, invoiceID)
	if err != nil {
		return entities.PixQrCode{}, err
	}
	if !inv.LinkedToGateway() {
		return entities.PixQrCode{}, ErrInvoiceNotLinked
	}
	gw, err := u.gateways.Get(inv.Gateway)
	if err != nil {
		return entities.PixQrCode{}, err
	}
	return gw.GetPixQrCode(ctx, inv.ExternalPaymentID)
}

func (u *InvoiceUseCase) CreateFromGatewayPayment(ctx context.Context, gateway entities.Gateway, p entities.GatewayPayment) (entities.Invoice, bool, error) {
	if p.ID == "" {
		return entities.Invoice{}, false, fmt.Errorf("%w: payment id is required", ErrInvalidInput)
	}
	existing, err := u.invoices.GetByExternalPaymentID(ctx, gateway, p.ID)
	if err != nil {
		return entities.Invoice{}, false, err
	}
	if existing.ID != "" {
		return existing, false, nil
	}
	if p.SubscriptionID == "" {
		u.log.Info().Str("external_payment_id", p.ID).Msg("gateway payment without subscription; no invoice created")
		return entities.Invoice{}, false, nil
	}

	sub, err := u.subscriptions.GetByGatewayID(ctx, p.SubscriptionID)
	if err != nil {
		return entities.Invoice{}, false, err
	}
	if sub.ID == "" {
		u.log.Info().Str("external_payment_id", p.ID).Str("gateway_subscription_id", p.SubscriptionID).Msg("gateway subscription unknown locally; no invoice created")
		return entities.Invoice{}, false, nil
	}
	tenant, err := u.tenants.GetByID(ctx, sub.TenantID)
	if err != nil {
		return entities.Invoice{}, false, err
	}
	if tenant.ID == "" {
		return entities.Invoice{}, false, ErrTenantNotFound
	}

	now := u.now()
	number, err := u.nextNumber(ctx, now.In(tenant.Location()).Year())
	if err != nil {
		return entities.Invoice{}, false, err
	}
	description := p.Description
	if description == "" {
		description = "Fatura " + number
	}
	dueDate := p.DueDate
	if dueDate.IsZero() {
		dueDate = civil.DateOf(now.In(tenant.Location())).AddDays(invoiceDueDays)
	}

	inv := entities.Invoice{
		ID:                entities.InvoiceIDForGatewayPayment(gateway, p.ID),
		TenantID:          sub.TenantID,
		SubscriptionID:    sub.ID,
		Number:            number,
		Amount:            entities.RoundMoney(p.Value),
		BillingCycle:      sub.BillingCycle,
		Description:       description,
		Currency:          entities.CurrencyBRL,
		Status:            entities.MapGatewayPaymentStatus(p.Status),
		DueDate:           dueDate,
		Gateway:           gateway,
		ExternalPaymentID: p.ID,
		PaymentURL:        p.PaymentURL(),
		CreatedAt:         now.UTC(),
		UpdatedAt:         now.UTC(),
	}
	if inv.Status == entities.InvoiceStatusPaid {
		inv.PaidAt = u.paidAt(p)
	}

	created, err := u.invoices.Create(ctx, inv)
	if errors.Is(err, interfaces.ErrAlreadyExists) {
		stored, getErr := u.invoices.GetByID(ctx, inv.ID)
		if getErr != nil {
			return entities.Invoice{}, false, getErr
		}
		u.log.Info().Str("invoice_id", stored.ID).Str("external_payment_id", p.ID).Str("discarded_number", number).Msg("invoice for gateway payment created concurrently")
		return stored, false, nil
	}
	if err != nil {
		return entities.Invoice{}, false, err
	}
	u.log.Info().Str("invoice_id", created.ID).Str("tenant_id", created.TenantID).Str("number", created.Number).Msg("invoice created from gateway payment")
	return created, true, nil
}

type issueRequest struct {
	tenant      entities.Tenant
	sub         entities.Subscription
	plan        entities.Plan
	quote       entities.PriceQuote
	billingType entities.BillingType
	dueInDays   int
}

// issue charges the quote through the primary gateway and stores the invoice.
func (u *InvoiceUseCase) issue(ctx context.Context, req issueRequest) (entities.Invoice, error) {
	gw := u.gateways.Primary()
	customerID, err := u.resolveCustomer(ctx, gw, req.tenant)
	if err != nil {
		return entities.Invoice{}, err
	}

	now := u.now()
	local := now.In(req.tenant.Location())
	number, err := u.nextNumber(ctx, local.Year())
	if err != nil {
		return entities.Invoice{}, err
	}
	dueDate := civil.DateOf(local).AddDays(req.dueInDays)
	description := fmt.Sprintf("Fatura %s - %s", number, planLabel(req.plan))

	gp, err := gw.CreatePayment(ctx, entities.GatewayPaymentInput{
		CustomerID:        customerID,
		BillingType:       req.billingType,
		Value:             req.quote.Amount,
		DueDate:           dueDate,
		Description:       description,
		ExternalReference: number,
	})
	if err != nil {
		u.log.Error().Err(err).Str("tenant_id", req.tenant.ID).Str("subscription_id", req.sub.ID).Msg("gateway payment creation failed")
		return entities.Invoice{}, err
	}

	inv := entities.Invoice{
		ID:                entities.InvoiceIDForGatewayPayment(gw.Name(), gp.ID),
		TenantID:          req.tenant.ID,
		SubscriptionID:    req.sub.ID,
		Number:            number,
		Amount:            req.quote.Amount,
		OriginalAmount:    req.quote.OriginalAmount,
		DiscountPercent:   req.quote.DiscountPercent,
		DiscountReason:    req.quote.DiscountReason,
		BillingCycle:      req.sub.BillingCycle,
		Description:       description,
		Currency:          entities.CurrencyBRL,
		Status:            entities.MapGatewayPaymentStatus(gp.Status),
		DueDate:           dueDate,
		Gateway:           gw.Name(),
		ExternalPaymentID: gp.ID,
		PaymentURL:        gp.PaymentURL(),
		CreatedAt:         now.UTC(),
		UpdatedAt:         now.UTC(),
	}
	if inv.Status == entities.InvoiceStatusPaid {
		inv.PaidAt = u.paidAt(gp)
	}

	created, err := u.invoices.Create(ctx, inv)
	if errors.Is(err, interfaces.ErrAlreadyExists) {
		// The payment-created webhook stored it first.
		return u.invoices.GetByID(ctx, inv.ID)
	}
	if err != nil {
		// The gateway already holds the charge; the payment-created webhook or
		// the payment sync job will reconcile it.
		u.log.Error().Err(err).Str("external_payment_id", gp.ID).Str("number", number).Msg("invoice persistence failed after gateway charge")
		return entities.Invoice{}, err
	}
	u.log.Info().
		Str("invoice_id", created.ID).
		Str("tenant_id", created.TenantID).
		Str("number", created.Number).
		Str("amount", created.Amount.StringFixed(2)).
		Str("due_date", created.DueDate.String()).
		Msg("invoice generated")
	return created, nil
}

// applyGatewayStatus moves the invoice to the status the gateway reports,
// ignoring transitions the local state machine does not allow.
func (u *InvoiceUseCase) applyGatewayStatus(ctx context.Context, inv entities.Invoice, gp entities.GatewayPayment) (entities.Invoice, error) {
	target := entities.MapGatewayPaymentStatus(gp.Status)
	if target == inv.Status {
		return inv, nil
	}
	if !entities.CanTransition(inv.Status, target) {
		u.log.Warn().
			Str("invoice_id", inv.ID).
			Str("from", string(inv.Status)).
			Str("to", string(target)).
			Str("gateway_status", gp.Status).
			Msg("ignoring gateway status that would be an invalid transition")
		return inv, nil
	}

	paidAt := inv.PaidAt
	if target == entities.InvoiceStatusPaid {
		paidAt = u.paidAt(gp)
	}
	updated, err := u.invoices.UpdateStatus(ctx, inv.ID, target, paidAt)
	if err != nil {
		return entities.Invoice{}, err
	}
	if updated.ID == "" {
		return entities.Invoice{}, ErrInvoiceNotFound
	}
	u.log.Info().Str("invoice_id", inv.ID).Str("from", string(inv.Status)).Str("to", string(target)).Msg("invoice status synced")
	return updated, nil
}

func (u *InvoiceUseCase) paidAt(gp entities.GatewayPayment) *time.Time {
	t := u.now().UTC()
	if !gp.PaymentDate.IsZero() {
		t = gp.PaymentDate.In(u.loc).UTC()
	}
	return &t
}

func (u *InvoiceUseCase) resolveCustomer(ctx context.Context, gw interfaces.IPaymentGateway, tenant entities.Tenant) (string, error) {
	if tenant.GatewayCustomerID != "" {
		return tenant.GatewayCustomerID, nil
	}

	v, err, _ := u.customers.Do(string(gw.Name())+":"+tenant.ID, func() (interface{}, error) {
		if c, found, err := gw.FindCustomerByTaxID(ctx, tenant.TaxID); err == nil && found {
			u.storeCustomerID(ctx, tenant.ID, c.ID)
			return c.ID, nil
		}
		c, err := gw.CreateCustomer(ctx, entities.GatewayCustomerInput{
			Name:              tenant.Name,
			TaxID:             tenant.TaxID,
			Email:             tenant.Email,
			Phone:             tenant.Phone,
			ExternalReference: tenant.ID,
		})
		if err != nil {
			return "", err
		}
		u.storeCustomerID(ctx, tenant.ID, c.ID)
		return c.ID, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (u *InvoiceUseCase) storeCustomerID(ctx context.Context, tenantID, customerID string) {
	if err := u.tenants.UpdateGatewayCustomerID(ctx, tenantID, customerID); err != nil {
		u.log.Warn().Err(err).Str("tenant_id", tenantID).Str("customer_id", customerID).Msg("failed to store gateway customer id")
	}
}

func (u *InvoiceUseCase) nextNumber(ctx context.Context, year int) (string, error) {
	seq, err := u.numbers.Next(ctx, year)
	if err != nil {
		return "", fmt.Errorf("invoice number: %w", err)
	}
	return entities.FormatInvoiceNumber(year, seq), nil
}

func (u *InvoiceUseCase) loadTenantAndPlan(ctx context.Context, sub entities.Subscription) (entities.Tenant, entities.Plan, error) {
	tenant, err := u.tenants.GetByID(ctx, sub.TenantID)
	if err != nil {
		return entities.Tenant{}, entities.Plan{}, err
	}
	if tenant.ID == "" {
		return entities.Tenant{}, entities.Plan{}, ErrTenantNotFound
	}
	plan, err := u.plans.GetByID(ctx, sub.PlanID)
	if err != nil {
		return entities.Tenant{}, entities.Plan{}, err
	}
	if plan.ID == "" {
		return entities.Tenant{}, entities.Plan{}, ErrPlanNotFound
	}
	return tenant, plan, nil
}

func (u *InvoiceUseCase) getByID(ctx context.Context, invoiceID string) (entities.Invoice, error) {
	invoiceID = strings.TrimSpace(invoiceID)
	if invoiceID == "" {
		return entities.Invoice{}, ErrInvoiceNotFound
	}
	inv, err := u.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return entities.Invoice{}, err
	}
	if inv.ID == "" {
		return entities.Invoice{}, ErrInvoiceNotFound
	}
	return inv, nil
}

func planLabel(p entities.Plan) string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	if p.Name != "" {
		return p.Name
	}
	return "Assinatura"
}
