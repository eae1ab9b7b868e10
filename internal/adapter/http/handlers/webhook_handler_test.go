package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"eldercare_billing/internal/adapter/http/handlers/mocks"
	"eldercare_billing/internal/domain/entities"
	"eldercare_billing/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type failingReadCloser struct{}

func (failingReadCloser) Read(_ []byte) (int, error) { return 0, errors.New("read error") }
func (failingReadCloser) Close() error               { return nil }

const asaasPaymentReceived = `{"id":"evt_1","event":"PAYMENT_RECEIVED","payment":{"id":"pay_1","value":299.9}}`

func TestWebhookHandler_Receive(t *testing.T) {
	gin.SetMode(gin.TestMode)

	setup := func(t *testing.T) (*gin.Engine, *mocks.MockIWebhookUseCase) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIWebhookUseCase(ctrl)
		r := gin.New()
		r.POST("/webhooks/:gateway", NewWebhookHandler(uc).Receive)
		return r, uc
	}

	post := func(r *gin.Engine, gateway, header, token, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/webhooks/"+gateway, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		if header != "" {
			req.Header.Set(header, token)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("unreadable body", func(t *testing.T) {
		r, _ := setup(t)
		req := httptest.NewRequest(http.MethodPost, "/webhooks/asaas", nil)
		req.Body = failingReadCloser{}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("asaas token header", func(t *testing.T) {
		r, uc := setup(t)
		uc.EXPECT().Handle(gomock.Any(), "asaas", "secret", []byte(asaasPaymentReceived)).
			Return(entities.WebhookResult{Status: entities.WebhookProcessed, EventID: "evt_1"}, nil)

		w := post(r, "asaas", HeaderAsaasToken, "secret", asaasPaymentReceived)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "processed", body["status"])
		assert.Equal(t, "evt_1", body["eventId"])
		assert.NotContains(t, body, "error")
	})

	t.Run("generic token header", func(t *testing.T) {
		r, uc := setup(t)
		uc.EXPECT().Handle(gomock.Any(), "mercadopago", "secret", gomock.Any()).
			Return(entities.WebhookResult{Status: entities.WebhookAlreadyProcessed, EventID: "123"}, nil)

		w := post(r, "mercadopago", HeaderWebhookToken, "secret", `{"id":123,"type":"payment","data":{"id":"999"}}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("handler failure is acknowledged", func(t *testing.T) {
		r, uc := setup(t)
		uc.EXPECT().Handle(gomock.Any(), "asaas", "secret", gomock.Any()).
			Return(entities.WebhookResult{Status: entities.WebhookError, EventID: "evt_1", Error: "invoice not found"}, nil)

		w := post(r, "asaas", HeaderAsaasToken, "secret", asaasPaymentReceived)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "error", body["status"])
		assert.Equal(t, "invoice not found", body["error"])
	})

	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"bad token", usecase.ErrInvalidWebhookToken, http.StatusBadRequest, "INVALID_WEBHOOK_TOKEN"},
		{"unknown gateway", fmt.Errorf("%w: stripe", usecase.ErrUnknownGateway), http.StatusNotFound, "GATEWAY_NOT_FOUND"},
		{"malformed body", fmt.Errorf("%w: unexpected EOF", usecase.ErrInvalidWebhookPayload), http.StatusBadRequest, "INVALID_WEBHOOK_PAYLOAD"},
		{"storage failure", errors.New("dynamodb throttled"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, uc := setup(t)
			uc.EXPECT().Handle(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(entities.WebhookResult{}, tc.err)

			w := post(r, "asaas", HeaderAsaasToken, "wrong", asaasPaymentReceived)
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, w.Code)
			}
			assert.Equal(t, tc.code, errorCode(t, w))
		})
	}
}
