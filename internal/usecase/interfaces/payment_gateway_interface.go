package interfaces

import (
	"context"

	"eldercare_billing/internal/domain/entities"
)

// IPaymentGateway abstracts external payment providers (Asaas, Mercado Pago).
//
// FindCustomerByTaxID reports found=false on a miss; lookup failures are
// treated as a miss by implementations so callers fall through to creation.
type IPaymentGateway interface {
	Name() entities.Gateway
	CreateCustomer(ctx context.Context, in entities.GatewayCustomerInput) (entities.GatewayCustomer, error)
	FindCustomerByTaxID(ctx context.Context, taxID string) (entities.GatewayCustomer, bool, error)
	CreateSubscription(ctx context.Context, in entities.GatewaySubscriptionInput) (entities.GatewaySubscription, error)
	GetSubscription(ctx context.Context, id string) (entities.GatewaySubscription, error)
	CancelSubscription(ctx context.Context, id string) error
	CreatePayment(ctx context.Context, in entities.GatewayPaymentInput) (entities.GatewayPayment, error)
	GetPayment(ctx context.Context, id string) (entities.GatewayPayment, error)
	RefundPayment(ctx context.Context, id string) (entities.GatewayPayment, error)
	GetPixQrCode(ctx context.Context, paymentID string) (entities.PixQrCode, error)
}

// IWebhookDecoder turns a gateway notification body into a WebhookNotification.
type IWebhookDecoder interface {
	Gateway() entities.Gateway
	Decode(ctx context.Context, body []byte) (entities.WebhookNotification, error)
}
