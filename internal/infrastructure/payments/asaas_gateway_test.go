package payments

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"eldercare_billing/internal/domain/entities"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAsaas(t *testing.T, h http.HandlerFunc) (*AsaasGateway, *[]time.Duration) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	g, err := NewAsaasGateway(srv.URL, "test-key")
	require.NoError(t, err)
	waits := &[]time.Duration{}
	g.policy.Sleep = func(d time.Duration) { *waits = append(*waits, d) }
	return g, waits
}

func TestNewAsaasGateway_RequiresKey(t *testing.T) {
	_, err := NewAsaasGateway("https://sandbox.asaas.com/api/v3", "")
	assert.ErrorIs(t, err, ErrMissingAsaasAPIKey)
}

func TestAsaasGateway_CreatePayment(t *testing.T) {
	g, _ := newTestAsaas(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/payments", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("access_token"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "2026-03-24", body["dueDate"])
		assert.Equal(t, "cus_1", body["customer"])
		assert.Equal(t, "UNDEFINED", body["billingType"])
		assert.Equal(t, 450.5, body["value"])

		_, _ = io.WriteString(w, `{"id":"pay_1","customer":"cus_1","status":"PENDING","billingType":"UNDEFINED","value":450.5,"dueDate":"2026-03-24","invoiceUrl":"https://asaas/i/pay_1"}`)
	})

	p, err := g.CreatePayment(context.Background(), entities.GatewayPaymentInput{
		CustomerID:        "cus_1",
		BillingType:       entities.BillingTypeUndefined,
		Value:             decimal.RequireFromString("450.50"),
		DueDate:           civil.Date{Year: 2026, Month: time.March, Day: 24},
		Description:       "Fatura INV-2026-0001 - Plano Essencial",
		ExternalReference: "INV-2026-0001",
	})
	require.NoError(t, err)
	assert.Equal(t, "pay_1", p.ID)
	assert.Equal(t, "PENDING", p.Status)
	assert.True(t, p.Value.Equal(decimal.RequireFromString("450.5")))
	assert.Equal(t, "https://asaas/i/pay_1", p.PaymentURL())
	assert.Equal(t, civil.Date{Year: 2026, Month: time.March, Day: 24}, p.DueDate)
}

func TestAsaasGateway_GetPayment_RetriesTransientFailures(t *testing.T) {
	var calls int32
	g, waits := newTestAsaas(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = io.WriteString(w, `{"id":"pay_1","status":"RECEIVED","paymentDate":"2026-02-10"}`)
	})

	p, err := g.GetPayment(context.Background(), "pay_1")
	require.NoError(t, err)
	assert.Equal(t, "RECEIVED", p.Status)
	assert.Equal(t, civil.Date{Year: 2026, Month: time.February, Day: 10}, p.PaymentDate)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, *waits)
}

func TestAsaasGateway_ErrorTranslation(t *testing.T) {
	var calls int32
	g, waits := newTestAsaas(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"errors":[{"code":"invalid_customer","description":"Cliente inválido"}]}`)
	})

	_, err := g.GetPayment(context.Background(), "pay_1")
	var gerr *GatewayError
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, http.StatusBadRequest, gerr.HTTPStatus())
	assert.Equal(t, "invalid_customer", gerr.Code)
	assert.Equal(t, "Cliente inválido", gerr.Message)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Empty(t, *waits)
}

func TestAsaasGateway_RefundAndCancelRunOnce(t *testing.T) {
	var calls int32
	g, waits := newTestAsaas(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := g.RefundPayment(context.Background(), "pay_1")
	require.Error(t, err)
	err = g.CancelSubscription(context.Background(), "sub_1")
	require.Error(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Empty(t, *waits)
}

func TestAsaasGateway_FindCustomerByTaxID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		g, _ := newTestAsaas(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "12345678000199", r.URL.Query().Get("cpfCnpj"))
			_, _ = io.WriteString(w, `{"data":[{"id":"cus_9","name":"Casa Repouso","cpfCnpj":"12345678000199"}],"totalCount":1}`)
		})
		c, found, err := g.FindCustomerByTaxID(context.Background(), "12345678000199")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "cus_9", c.ID)
	})

	t.Run("lookup failure is a miss", func(t *testing.T) {
		g, _ := newTestAsaas(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
		_, found, err := g.FindCustomerByTaxID(context.Background(), "1")
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestAsaasGateway_GetPixQrCode(t *testing.T) {
	g, _ := newTestAsaas(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payments/pay_1/pixQrCode", r.URL.Path)
		_, _ = io.WriteString(w, `{"encodedImage":"aW1n","payload":"000201","expirationDate":"2026-03-24 23:59:59"}`)
	})
	qr, err := g.GetPixQrCode(context.Background(), "pay_1")
	require.NoError(t, err)
	assert.Equal(t, "000201", qr.Payload)
	assert.Equal(t, "aW1n", qr.EncodedImage)
}

func TestAsaasGateway_GetSubscription(t *testing.T) {
	g, _ := newTestAsaas(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"id":"sub_1","customer":"cus_1","status":"EXPIRED","value":300,"cycle":"MONTHLY","nextDueDate":"2026-04-01"}`)
	})
	s, err := g.GetSubscription(context.Background(), "sub_1")
	require.NoError(t, err)
	assert.Equal(t, entities.GatewaySubscriptionExpired, s.Status)
}
