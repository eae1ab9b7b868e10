package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eldercare_billing/internal/adapter/http/handlers"
	"eldercare_billing/internal/adapter/http/routes"
	"eldercare_billing/internal/adapter/persistence/repository"
	"eldercare_billing/internal/config"
	"eldercare_billing/internal/domain/entities"
	"eldercare_billing/internal/infrastructure/database"
	"eldercare_billing/internal/infrastructure/payments"
	"eldercare_billing/internal/infrastructure/scheduler"
	"eldercare_billing/internal/logger"
	"eldercare_billing/internal/usecase"
	"eldercare_billing/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
)

const jobTimeout = 30 * time.Minute

// app is the wired service: stores, gateways, use cases and the HTTP router.
type app struct {
	cfg       *config.Config
	router    *gin.Engine
	jobs      *usecase.JobUseCase
	scheduler *scheduler.Scheduler
	closers   []func() error
}

func buildApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{cfg: cfg}

	ddb, err := database.NewDynamoDBClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("dynamodb: %w", err)
	}

	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		a.closers = append(a.closers, sqlDB.Close)
	}

	rdb, err := database.NewRedisClient(ctx, cfg.RedisAddr(), cfg.RedisPassword)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("redis: %w", err)
	}
	a.closers = append(a.closers, rdb.Close)

	gateways, decoders, err := buildGateways(cfg)
	if err != nil {
		a.close()
		return nil, err
	}
	registry := usecase.NewGatewayRegistry(gateways[0], gateways[1:]...)

	invoiceRepo := repository.NewInvoiceDynamoRepository(ddb)
	numbers := repository.NewInvoiceCounterDynamoRepository(ddb)
	paymentRepo := repository.NewPaymentDynamoRepository(ddb)
	eventRepo := repository.NewWebhookEventDynamoRepository(ddb)
	subscriptionRepo := repository.NewSubscriptionDynamoRepository(ddb)
	tenantRepo := repository.NewTenantDynamoRepository(ddb)
	planRepo := repository.NewPlanDynamoRepository(ddb)
	ledgerRepo := repository.NewLedgerGormRepository(db)
	reportRepo := repository.NewJobReportRedisRepository(rdb, cfg.JobReportTTL)

	loc, err := time.LoadLocation(cfg.SchedulerTimezone)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("timezone: %w", err)
	}

	invoiceUC := usecase.NewInvoiceUseCase(invoiceRepo, numbers, subscriptionRepo, tenantRepo, planRepo, registry)
	paymentUC := usecase.NewPaymentUseCase(paymentRepo, invoiceRepo)
	webhookUC := usecase.NewWebhookUseCase(eventRepo, invoiceRepo, subscriptionRepo, invoiceUC, paymentUC, cfg.WebhookToken, decoders...)
	reconciliationUC := usecase.NewReconciliationUseCase(ledgerRepo, loc)

	a.jobs = usecase.NewJobUseCase(reportRepo, cfg.JobAlertErrorThreshold,
		usecase.NewSubscriptionSyncJob(tenantRepo, subscriptionRepo, subscriptionGateway(registry), cfg.TenantItemCap),
		usecase.NewPaymentSyncJob(tenantRepo, invoiceRepo, invoiceUC, cfg.TenantItemCap),
		usecase.NewInvoiceGenerationJob(tenantRepo, subscriptionRepo, planRepo, invoiceRepo, invoiceUC, cfg.TenantItemCap),
	)

	a.router = routes.NewRouter(routes.Handlers{
		Invoice:        handlers.NewInvoiceHandler(invoiceUC, paymentUC),
		Webhook:        handlers.NewWebhookHandler(webhookUC),
		Reconciliation: handlers.NewReconciliationHandler(reconciliationUC),
		Job:            handlers.NewJobHandler(a.jobs),
	})

	if cfg.SchedulerEnabled {
		a.scheduler = scheduler.New(a.jobs, loc, jobTimeout)
		for name, spec := range map[entities.JobName]string{
			entities.JobSubscriptionSync:  cfg.SubscriptionSyncCron,
			entities.JobPaymentSync:       cfg.PaymentSyncCron,
			entities.JobInvoiceGeneration: cfg.InvoiceGenerationCron,
		} {
			if err := a.scheduler.Register(name, spec); err != nil {
				a.close()
				return nil, err
			}
		}
	}

	return a, nil
}

// buildGateways returns the configured gateways, primary first, and their
// webhook decoders.
func buildGateways(cfg *config.Config) ([]interfaces.IPaymentGateway, []interfaces.IWebhookDecoder, error) {
	var (
		asaas    interfaces.IPaymentGateway
		mp       interfaces.IPaymentGateway
		decoders []interfaces.IWebhookDecoder
	)

	if cfg.AsaasAPIKey != "" {
		g, err := payments.NewAsaasGateway(cfg.AsaasURL(), cfg.AsaasAPIKey)
		if err != nil {
			return nil, nil, fmt.Errorf("asaas gateway: %w", err)
		}
		asaas = g
		decoders = append(decoders, payments.AsaasWebhookDecoder{})
	}
	if cfg.MercadoPagoAccessToken != "" {
		g, err := payments.NewMercadoPagoGateway(cfg.MercadoPagoAccessToken)
		if err != nil {
			return nil, nil, fmt.Errorf("mercado pago gateway: %w", err)
		}
		mp = g
		decoders = append(decoders, payments.NewMercadoPagoWebhookDecoder(g))
	}

	var ordered []interfaces.IPaymentGateway
	switch cfg.PaymentGateway {
	case config.GatewayMercadoPago:
		ordered = appendGateways(ordered, mp, asaas)
	default:
		ordered = appendGateways(ordered, asaas, mp)
	}
	if len(ordered) == 0 || ordered[0].Name() != entities.Gateway(cfg.PaymentGateway) {
		return nil, nil, fmt.Errorf("payment gateway %q is not configured", cfg.PaymentGateway)
	}
	return ordered, decoders, nil
}

func appendGateways(dst []interfaces.IPaymentGateway, gs ...interfaces.IPaymentGateway) []interfaces.IPaymentGateway {
	for _, g := range gs {
		if g != nil {
			dst = append(dst, g)
		}
	}
	return dst
}

// subscriptionGateway picks the gateway that owns recurring subscriptions.
func subscriptionGateway(registry *usecase.GatewayRegistry) interfaces.IPaymentGateway {
	if g, err := registry.Get(entities.GatewayAsaas); err == nil {
		return g
	}
	return registry.Primary()
}

func (a *app) close() {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	if err := errors.Join(errs...); err != nil {
		log := logger.WithComponent("cli")
		log.Warn().Err(err).Msg("closing resources")
	}
}
