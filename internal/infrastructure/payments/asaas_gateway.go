package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"eldercare_billing/internal/domain/entities"
	"eldercare_billing/internal/infrastructure/retry"
	"eldercare_billing/internal/logger"
	"eldercare_billing/internal/usecase/interfaces"

	"github.com/rs/zerolog"
)

const (
	asaasTimeout      = 30 * time.Second
	asaasMaxBodyBytes = 1 << 20
)

var ErrMissingAsaasAPIKey = errors.New("missing ASAAS_API_KEY")

// AsaasGateway talks to the Asaas v3 REST API.
//
// Every read and create goes through the retry policy; cancel and refund
// run once.
type AsaasGateway struct {
	baseURL string
	apiKey  string
	client  *http.Client
	policy  retry.Policy
	log     zerolog.Logger
}

var _ interfaces.IPaymentGateway = (*AsaasGateway)(nil)

func NewAsaasGateway(baseURL, apiKey string) (*AsaasGateway, error) {
	if apiKey == "" {
		return nil, ErrMissingAsaasAPIKey
	}
	g := &AsaasGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: asaasTimeout},
		policy:  retry.DefaultPolicy(),
		log:     logger.WithComponent("gateway.asaas"),
	}
	g.log.Info().Str("base_url", g.baseURL).Msg("asaas client initialized")
	return g, nil
}

func (g *AsaasGateway) Name() entities.Gateway {
	return entities.GatewayAsaas
}

func (g *AsaasGateway) CreateCustomer(ctx context.Context, in entities.GatewayCustomerInput) (entities.GatewayCustomer, error) {
	body := asaasCustomerRequest{
		Name:              in.Name,
		CpfCnpj:           in.TaxID,
		Email:             in.Email,
		MobilePhone:       in.Phone,
		ExternalReference: in.ExternalReference,
	}
	c, err := retry.Do(ctx, g.policy, func(ctx context.Context) (asaasCustomer, error) {
		var out asaasCustomer
		err := g.do(ctx, "create-customer", http.MethodPost, "/customers", nil, body, &out)
		return out, err
	})
	if err != nil {
		return entities.GatewayCustomer{}, err
	}
	g.log.Info().Str("customer_id", c.ID).Msg("customer created")
	return entities.GatewayCustomer{ID: c.ID, Name: c.Name, TaxID: c.CpfCnpj, Email: c.Email}, nil
}

func (g *AsaasGateway) FindCustomerByTaxID(ctx context.Context, taxID string) (entities.GatewayCustomer, bool, error) {
	q := url.Values{"cpfCnpj": {taxID}}
	list, err := retry.Do(ctx, g.policy, func(ctx context.Context) (asaasList[asaasCustomer], error) {
		var out asaasList[asaasCustomer]
		err := g.do(ctx, "find-customer", http.MethodGet, "/customers", q, nil, &out)
		return out, err
	})
	if err != nil {
		g.log.Warn().Err(err).Msg("customer lookup failed; treating as not found")
		return entities.GatewayCustomer{}, false, nil
	}
	if len(list.Data) == 0 {
		return entities.GatewayCustomer{}, false, nil
	}
	c := list.Data[0]
	return entities.GatewayCustomer{ID: c.ID, Name: c.Name, TaxID: c.CpfCnpj, Email: c.Email}, true, nil
}

func (g *AsaasGateway) CreateSubscription(ctx context.Context, in entities.GatewaySubscriptionInput) (entities.GatewaySubscription, error) {
	body := asaasSubscriptionRequest{
		Customer:          in.CustomerID,
		BillingType:       string(in.BillingType),
		Value:             in.Value.InexactFloat64(),
		NextDueDate:       civilString(in.NextDueDate),
		Cycle:             asaasCycle(in.Cycle),
		Description:       in.Description,
		ExternalReference: in.ExternalReference,
	}
	s, err := retry.Do(ctx, g.policy, func(ctx context.Context) (asaasSubscription, error) {
		var out asaasSubscription
		err := g.do(ctx, "create-subscription", http.MethodPost, "/subscriptions", nil, body, &out)
		return out, err
	})
	if err != nil {
		return entities.GatewaySubscription{}, err
	}
	return s.toEntity(), nil
}

func (g *AsaasGateway) GetSubscription(ctx context.Context, id string) (entities.GatewaySubscription, error) {
	s, err := retry.Do(ctx, g.policy, func(ctx context.Context) (asaasSubscription, error) {
		var out asaasSubscription
		err := g.do(ctx, "get-subscription", http.MethodGet, "/subscriptions/"+url.PathEscape(id), nil, nil, &out)
		return out, err
	})
	if err != nil {
		return entities.GatewaySubscription{}, err
	}
	return s.toEntity(), nil
}

func (g *AsaasGateway) CancelSubscription(ctx context.Context, id string) error {
	return g.do(ctx, "cancel-subscription", http.MethodDelete, "/subscriptions/"+url.PathEscape(id), nil, nil, nil)
}

func (g *AsaasGateway) CreatePayment(ctx context.Context, in entities.GatewayPaymentInput) (entities.GatewayPayment, error) {
	body := asaasPaymentRequest{
		Customer:          in.CustomerID,
		BillingType:       string(in.BillingType),
		Value:             in.Value.InexactFloat64(),
		DueDate:           civilString(in.DueDate),
		Description:       in.Description,
		ExternalReference: in.ExternalReference,
	}
	return g.paymentCall(ctx, "create-payment", http.MethodPost, "/payments", body, true)
}

func (g *AsaasGateway) GetPayment(ctx context.Context, id string) (entities.GatewayPayment, error) {
	return g.paymentCall(ctx, "get-payment", http.MethodGet, "/payments/"+url.PathEscape(id), nil, true)
}

func (g *AsaasGateway) RefundPayment(ctx context.Context, id string) (entities.GatewayPayment, error) {
	return g.paymentCall(ctx, "refund-payment", http.MethodPost, "/payments/"+url.PathEscape(id)+"/refund", nil, false)
}

func (g *AsaasGateway) GetPixQrCode(ctx context.Context, paymentID string) (entities.PixQrCode, error) {
	qr, err := retry.Do(ctx, g.policy, func(ctx context.Context) (asaasPixQrCode, error) {
		var out asaasPixQrCode
		err := g.do(ctx, "get-pix-qrcode", http.MethodGet, "/payments/"+url.PathEscape(paymentID)+"/pixQrCode", nil, nil, &out)
		return out, err
	})
	if err != nil {
		return entities.PixQrCode{}, err
	}
	return entities.PixQrCode{EncodedImage: qr.EncodedImage, Payload: qr.Payload, ExpirationDate: qr.ExpirationDate}, nil
}

func (g *AsaasGateway) paymentCall(ctx context.Context, op, method, path string, body any, withRetry bool) (entities.GatewayPayment, error) {
	call := func(ctx context.Context) (json.RawMessage, error) {
		var raw json.RawMessage
		err := g.do(ctx, op, method, path, nil, body, &raw)
		return raw, err
	}

	var (
		raw json.RawMessage
		err error
	)
	if withRetry {
		raw, err = retry.Do(ctx, g.policy, call)
	} else {
		raw, err = call(ctx)
	}
	if err != nil {
		return entities.GatewayPayment{}, err
	}

	var p asaasPayment
	if err := json.Unmarshal(raw, &p); err != nil {
		return entities.GatewayPayment{}, fmt.Errorf("asaas %s: decode payment: %w", op, err)
	}
	g.log.Debug().Str("op", op).Str("payment_id", p.ID).Str("status", p.Status).Msg("payment call done")
	return p.toEntity(raw), nil
}

// do performs one HTTP exchange. Non-2xx answers become *GatewayError.
func (g *AsaasGateway) do(ctx context.Context, op, method, path string, query url.Values, body any, out any) error {
	endpoint := g.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("asaas %s: encode body: %w", op, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("access_token", g.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "eldercare-billing")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, asaasMaxBodyBytes))
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		gerr := &GatewayError{Gateway: entities.GatewayAsaas, Operation: op, StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var errBody asaasErrorResponse
		if json.Unmarshal(data, &errBody) == nil {
			if len(errBody.Errors) > 0 {
				gerr.Code = errBody.Errors[0].Code
				gerr.Message = errBody.Errors[0].Description
			} else if errBody.Message != "" {
				gerr.Message = errBody.Message
			}
		}
		g.log.Error().Str("op", op).Int("status", resp.StatusCode).Str("code", gerr.Code).Msg(gerr.Message)
		return gerr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if raw, ok := out.(*json.RawMessage); ok {
		*raw = append((*raw)[:0], data...)
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("asaas %s: decode response: %w", op, err)
	}
	return nil
}
