package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"eldercare_billing/internal/domain/entities"
	"eldercare_billing/internal/infrastructure/retry"
	"eldercare_billing/internal/logger"
	"eldercare_billing/internal/usecase/interfaces"

	"cloud.google.com/go/civil"
	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/refund"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")

// MercadoPagoGateway implements the payment side of IPaymentGateway on
// sdk-go. Mercado Pago has no customer records for this flow: the payer
// e-mail is the customer id. Subscriptions are not supported.
//
// With PAYMENT_GATEWAY_MOCK enabled the gateway keeps payments in memory
// and never calls Mercado Pago.
type MercadoPagoGateway struct {
	payments payment.Client
	refunds  refund.Client
	policy   retry.Policy
	mockMode bool
	log      zerolog.Logger

	mu    sync.Mutex
	mocks map[string]mpPayment
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(accessToken string) (*MercadoPagoGateway, error) {
	log := logger.WithComponent("gateway.mercadopago")
	if isPaymentGatewayMockEnabled() {
		log.Info().Msg("mock mode enabled")
		return &MercadoPagoGateway{mockMode: true, log: log, mocks: map[string]mpPayment{}}, nil
	}

	if accessToken == "" {
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		log.Error().Err(err).Msg("failed creating sdk config")
		return nil, err
	}
	log.Info().Msg("mercado pago client initialized")

	return &MercadoPagoGateway{
		payments: payment.NewClient(cfg),
		refunds:  refund.NewClient(cfg),
		policy:   retry.DefaultPolicy(),
		log:      log,
	}, nil
}

func (g *MercadoPagoGateway) Name() entities.Gateway {
	return entities.GatewayMercadoPago
}

func (g *MercadoPagoGateway) CreateCustomer(_ context.Context, in entities.GatewayCustomerInput) (entities.GatewayCustomer, error) {
	if strings.TrimSpace(in.Email) == "" {
		return entities.GatewayCustomer{}, &GatewayError{Gateway: entities.GatewayMercadoPago, Operation: "create-customer", StatusCode: 400, Message: "payer e-mail is required"}
	}
	return entities.GatewayCustomer{ID: in.Email, Name: in.Name, TaxID: in.TaxID, Email: in.Email}, nil
}

func (g *MercadoPagoGateway) FindCustomerByTaxID(_ context.Context, _ string) (entities.GatewayCustomer, bool, error) {
	return entities.GatewayCustomer{}, false, nil
}

func (g *MercadoPagoGateway) CreateSubscription(_ context.Context, _ entities.GatewaySubscriptionInput) (entities.GatewaySubscription, error) {
	return entities.GatewaySubscription{}, ErrGatewayOperationUnsupported
}

func (g *MercadoPagoGateway) GetSubscription(_ context.Context, _ string) (entities.GatewaySubscription, error) {
	return entities.GatewaySubscription{}, ErrGatewayOperationUnsupported
}

func (g *MercadoPagoGateway) CancelSubscription(_ context.Context, _ string) error {
	return ErrGatewayOperationUnsupported
}

func (g *MercadoPagoGateway) CreatePayment(ctx context.Context, in entities.GatewayPaymentInput) (entities.GatewayPayment, error) {
	reqMap := map[string]any{
		"transaction_amount": in.Value.InexactFloat64(),
		"description":        in.Description,
		"external_reference": in.ExternalReference,
		"payment_method_id":  mpPaymentMethod(in.BillingType),
		"payer":              map[string]any{"email": in.CustomerID},
	}
	if !in.DueDate.IsZero() {
		reqMap["date_of_expiration"] = mpExpiration(in.DueDate)
	}

	if g.mockMode {
		return g.mockCreate(reqMap), nil
	}
	if g.payments == nil {
		return entities.GatewayPayment{}, ErrMercadoPagoGatewayNotConfigured
	}

	b, err := json.Marshal(reqMap)
	if err != nil {
		return entities.GatewayPayment{}, err
	}
	var req payment.Request
	if err := json.Unmarshal(b, &req); err != nil {
		return entities.GatewayPayment{}, err
	}

	resp, err := retry.Do(ctx, g.policy, func(ctx context.Context) (*payment.Response, error) {
		resp, err := g.payments.Create(ctx, req)
		if err != nil {
			return nil, translateMPError("create-payment", err)
		}
		return resp, nil
	})
	if err != nil {
		g.log.Error().Err(err).Msg("sdk create failed")
		return entities.GatewayPayment{}, err
	}
	return g.decodeResponse("create-payment", resp)
}

func (g *MercadoPagoGateway) GetPayment(ctx context.Context, id string) (entities.GatewayPayment, error) {
	if g.mockMode {
		return g.mockGet(id)
	}
	if g.payments == nil {
		return entities.GatewayPayment{}, ErrMercadoPagoGatewayNotConfigured
	}
	n, err := strconv.Atoi(id)
	if err != nil {
		return entities.GatewayPayment{}, &GatewayError{Gateway: entities.GatewayMercadoPago, Operation: "get-payment", StatusCode: 400, Message: "invalid payment id " + id}
	}
	resp, err := retry.Do(ctx, g.policy, func(ctx context.Context) (*payment.Response, error) {
		resp, err := g.payments.Get(ctx, n)
		if err != nil {
			return nil, translateMPError("get-payment", err)
		}
		return resp, nil
	})
	if err != nil {
		return entities.GatewayPayment{}, err
	}
	return g.decodeResponse("get-payment", resp)
}

func (g *MercadoPagoGateway) RefundPayment(ctx context.Context, id string) (entities.GatewayPayment, error) {
	if g.mockMode {
		g.mu.Lock()
		p, ok := g.mocks[id]
		if ok {
			p.Status = "refunded"
			g.mocks[id] = p
		}
		g.mu.Unlock()
		if !ok {
			return entities.GatewayPayment{}, mpNotFound("refund-payment", id)
		}
		return g.mockGet(id)
	}
	if g.refunds == nil {
		return entities.GatewayPayment{}, ErrMercadoPagoGatewayNotConfigured
	}
	n, err := strconv.Atoi(id)
	if err != nil {
		return entities.GatewayPayment{}, &GatewayError{Gateway: entities.GatewayMercadoPago, Operation: "refund-payment", StatusCode: 400, Message: "invalid payment id " + id}
	}
	if _, err := g.refunds.Create(ctx, n); err != nil {
		return entities.GatewayPayment{}, translateMPError("refund-payment", err)
	}
	return g.GetPayment(ctx, id)
}

func (g *MercadoPagoGateway) GetPixQrCode(ctx context.Context, paymentID string) (entities.PixQrCode, error) {
	p, err := g.GetPayment(ctx, paymentID)
	if err != nil {
		return entities.PixQrCode{}, err
	}
	var mp mpPayment
	if err := json.Unmarshal(p.Raw, &mp); err != nil {
		return entities.PixQrCode{}, err
	}
	td := mp.PointOfInteraction.TransactionData
	if td.QRCode == "" {
		return entities.PixQrCode{}, &GatewayError{Gateway: entities.GatewayMercadoPago, Operation: "get-pix-qrcode", StatusCode: 404, Message: "payment has no pix data"}
	}
	return entities.PixQrCode{EncodedImage: td.QRCodeBase64, Payload: td.QRCode, ExpirationDate: mp.DateOfExpiration}, nil
}

func (g *MercadoPagoGateway) decodeResponse(op string, resp any) (entities.GatewayPayment, error) {
	b, err := json.Marshal(resp)
	if err != nil {
		return entities.GatewayPayment{}, err
	}
	var mp mpPayment
	if err := json.Unmarshal(b, &mp); err != nil {
		return entities.GatewayPayment{}, fmt.Errorf("mercadopago %s: decode payment: %w", op, err)
	}
	p := mp.toEntity(b)
	g.log.Info().Str("op", op).Str("payment_id", p.ID).Str("status", p.Status).Msg("payment call done")
	return p, nil
}

func (g *MercadoPagoGateway) mockCreate(reqMap map[string]any) entities.GatewayPayment {
	id := strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
	amount, _ := reqMap["transaction_amount"].(float64)
	desc, _ := reqMap["description"].(string)
	ref, _ := reqMap["external_reference"].(string)
	method, _ := reqMap["payment_method_id"].(string)
	exp, _ := reqMap["date_of_expiration"].(string)
	payer, _ := reqMap["payer"].(map[string]any)
	email, _ := payer["email"].(string)

	p := mpPayment{
		ID:                json.Number(id),
		Status:            "pending",
		PaymentMethodID:   method,
		TransactionAmount: decimal.NewFromFloat(amount),
		Description:       desc,
		ExternalReference: ref,
		DateOfExpiration:  exp,
		Payer:             mpPayer{Email: email},
	}
	if method == "pix" {
		p.PaymentTypeID = "bank_transfer"
		p.PointOfInteraction.TransactionData.QRCode = "00020126mock" + id
		p.PointOfInteraction.TransactionData.TicketURL = "https://www.mercadopago.com.br/payments/" + id + "/ticket"
	} else {
		p.PaymentTypeID = "ticket"
		p.TransactionDetails.ExternalResourceURL = "https://www.mercadopago.com.br/payments/" + id + "/ticket"
	}

	g.mu.Lock()
	g.mocks[id] = p
	g.mu.Unlock()

	b, _ := json.Marshal(p)
	g.log.Info().Str("payment_id", id).Msg("mock payment created")
	return p.toEntity(b)
}

func (g *MercadoPagoGateway) mockGet(id string) (entities.GatewayPayment, error) {
	g.mu.Lock()
	p, ok := g.mocks[id]
	g.mu.Unlock()
	if !ok {
		return entities.GatewayPayment{}, mpNotFound("get-payment", id)
	}
	b, _ := json.Marshal(p)
	return p.toEntity(b), nil
}

// MockSettle marks a mock payment approved. Only available in mock mode.
func (g *MercadoPagoGateway) MockSettle(id string, at time.Time) error {
	if !g.mockMode {
		return ErrGatewayOperationUnsupported
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	p, ok := g.mocks[id]
	if !ok {
		return mpNotFound("settle-payment", id)
	}
	p.Status = "approved"
	p.DateApproved = at.UTC().Format(time.RFC3339)
	g.mocks[id] = p
	return nil
}

func mpNotFound(op, id string) error {
	return &GatewayError{Gateway: entities.GatewayMercadoPago, Operation: op, StatusCode: 404, Message: "payment not found: " + id}
}

// translateMPError wraps sdk errors, keeping the status when the sdk reports one.
func translateMPError(op string, err error) error {
	gerr := &GatewayError{Gateway: entities.GatewayMercadoPago, Operation: op, StatusCode: 502, Message: err.Error()}
	var body struct {
		Status  int    `json:"status"`
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	msg := err.Error()
	if i := strings.Index(msg, "{"); i >= 0 && json.Unmarshal([]byte(msg[i:]), &body) == nil && body.Status != 0 {
		gerr.StatusCode = body.Status
		gerr.Code = body.Error
		if body.Message != "" {
			gerr.Message = body.Message
		}
	}
	return gerr
}

func mpPaymentMethod(bt entities.BillingType) string {
	if bt == entities.BillingTypePix {
		return "pix"
	}
	return "bolbradesco"
}

// mpExpiration renders the end of the due date in Brasilia time.
func mpExpiration(d civil.Date) string {
	loc, err := time.LoadLocation(entities.DefaultTimezone)
	if err != nil {
		loc = time.UTC
	}
	t := time.Date(d.Year, d.Month, d.Day, 23, 59, 59, 0, loc)
	return t.Format("2006-01-02T15:04:05.000-07:00")
}

func isPaymentGatewayMockEnabled() bool {
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK"} {
		v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
		switch v {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}
