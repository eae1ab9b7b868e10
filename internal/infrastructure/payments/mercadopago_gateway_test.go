package payments

import (
	"context"
	"testing"
	"time"

	"eldercare_billing/internal/domain/entities"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMercadoPagoGateway_MissingToken(t *testing.T) {
	t.Setenv("PAYMENT_GATEWAY_MOCK", "")
	t.Setenv("MERCADOPAGO_MOCK", "")
	_, err := NewMercadoPagoGateway("")
	assert.ErrorIs(t, err, ErrMissingMercadoPagoAccessToken)
}

func TestMercadoPagoGateway_MockLifecycle(t *testing.T) {
	t.Setenv("PAYMENT_GATEWAY_MOCK", "true")
	g, err := NewMercadoPagoGateway("")
	require.NoError(t, err)
	ctx := context.Background()

	cust, err := g.CreateCustomer(ctx, entities.GatewayCustomerInput{Name: "Casa", Email: "financeiro@casa.com.br"})
	require.NoError(t, err)
	assert.Equal(t, "financeiro@casa.com.br", cust.ID)

	p, err := g.CreatePayment(ctx, entities.GatewayPaymentInput{
		CustomerID:  cust.ID,
		BillingType: entities.BillingTypePix,
		Value:       decimal.RequireFromString("300"),
		DueDate:     civil.Date{Year: 2026, Month: time.March, Day: 24},
	})
	require.NoError(t, err)
	assert.Equal(t, entities.GatewayPaymentPending, p.Status)
	assert.Equal(t, entities.BillingTypePix, p.BillingType)
	assert.Equal(t, civil.Date{Year: 2026, Month: time.March, Day: 24}, p.DueDate)

	qr, err := g.GetPixQrCode(ctx, p.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, qr.Payload)

	require.NoError(t, g.MockSettle(p.ID, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)))
	got, err := g.GetPayment(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.GatewayPaymentReceived, got.Status)
	assert.Equal(t, entities.InvoiceStatusPaid, entities.MapGatewayPaymentStatus(got.Status))

	refunded, err := g.RefundPayment(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.GatewayPaymentRefunded, refunded.Status)

	_, err = g.GetSubscription(ctx, "sub_1")
	assert.ErrorIs(t, err, ErrGatewayOperationUnsupported)
}

func TestMPStatus(t *testing.T) {
	cases := map[string]string{
		"approved":     entities.GatewayPaymentReceived,
		"in_process":   entities.GatewayPaymentPending,
		"charged_back": entities.GatewayPaymentRefunded,
		"rejected":     entities.GatewayPaymentCancelled,
	}
	for in, want := range cases {
		assert.Equal(t, want, mpStatus(in), in)
	}
}
