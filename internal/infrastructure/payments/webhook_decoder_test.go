package payments

import (
	"context"
	"errors"
	"testing"

	"eldercare_billing/internal/domain/entities"
	mock_interfaces "eldercare_billing/internal/usecase/interfaces/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAsaasWebhookDecoder(t *testing.T) {
	t.Run("payment event", func(t *testing.T) {
		body := []byte(`{"event":"PAYMENT_RECEIVED","id":"evt_1","payment":{"id":"pay_1","subscription":"sub_1","status":"RECEIVED","billingType":"PIX","value":300,"paymentDate":"2026-02-10"}}`)
		n, err := AsaasWebhookDecoder{}.Decode(context.Background(), body)
		require.NoError(t, err)
		assert.Equal(t, entities.EventPaymentReceived, n.EventType)
		assert.Equal(t, "evt_1", n.ExternalEventID)
		require.NotNil(t, n.Payment)
		assert.Equal(t, "pay_1", n.Payment.ID)
		assert.Equal(t, "sub_1", n.Payment.SubscriptionID)
		assert.Equal(t, entities.BillingTypePix, n.Payment.BillingType)
		assert.Nil(t, n.Subscription)
	})

	t.Run("missing id falls back to body hash", func(t *testing.T) {
		body := []byte(`{"event":"SUBSCRIPTION_UPDATED","subscription":{"id":"sub_1","status":"ACTIVE"}}`)
		a, err := AsaasWebhookDecoder{}.Decode(context.Background(), body)
		require.NoError(t, err)
		b, err := AsaasWebhookDecoder{}.Decode(context.Background(), body)
		require.NoError(t, err)
		assert.Equal(t, a.ExternalEventID, b.ExternalEventID)
		assert.Contains(t, a.ExternalEventID, "hash:")
		require.NotNil(t, a.Subscription)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := AsaasWebhookDecoder{}.Decode(context.Background(), []byte(`{`))
		assert.ErrorIs(t, err, ErrInvalidWebhookBody)
		_, err = AsaasWebhookDecoder{}.Decode(context.Background(), []byte(`{"id":"evt_1"}`))
		assert.ErrorIs(t, err, ErrInvalidWebhookBody)
	})
}

func TestMercadoPagoWebhookDecoder(t *testing.T) {
	t.Run("approved payment becomes PAYMENT_RECEIVED", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gw := mock_interfaces.NewMockIPaymentGateway(ctrl)
		gw.EXPECT().GetPayment(gomock.Any(), "999").Return(entities.GatewayPayment{ID: "999", Status: entities.GatewayPaymentReceived}, nil)

		d := NewMercadoPagoWebhookDecoder(gw)
		n, err := d.Decode(context.Background(), []byte(`{"id":12345,"action":"payment.updated","type":"payment","data":{"id":"999"}}`))
		require.NoError(t, err)
		assert.Equal(t, entities.EventPaymentReceived, n.EventType)
		assert.Equal(t, "12345", n.ExternalEventID)
		assert.Equal(t, entities.GatewayMercadoPago, n.Gateway)
	})

	t.Run("non payment topics are passed through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gw := mock_interfaces.NewMockIPaymentGateway(ctrl)

		d := NewMercadoPagoWebhookDecoder(gw)
		n, err := d.Decode(context.Background(), []byte(`{"id":"1","type":"merchant_order","data":{"id":"5"}}`))
		require.NoError(t, err)
		assert.Equal(t, "MP_MERCHANT_ORDER", n.EventType)
		assert.Nil(t, n.Payment)
	})

	t.Run("fetch failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gw := mock_interfaces.NewMockIPaymentGateway(ctrl)
		gw.EXPECT().GetPayment(gomock.Any(), "999").Return(entities.GatewayPayment{}, errors.New("down"))

		d := NewMercadoPagoWebhookDecoder(gw)
		_, err := d.Decode(context.Background(), []byte(`{"id":1,"action":"payment.updated","type":"payment","data":{"id":999}}`))
		require.Error(t, err)
	})
}
