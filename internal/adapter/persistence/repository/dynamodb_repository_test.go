package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"eldercare_billing/internal/domain/entities"
	"eldercare_billing/internal/usecase/interfaces"

	"cloud.google.com/go/civil"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDynamo struct {
	putErr     error
	getItem    map[string]types.AttributeValue
	queryPages [][]map[string]types.AttributeValue
	queryCount []int32
	updateOut  map[string]types.AttributeValue
	updateErr  error

	puts    []*dynamodb.PutItemInput
	gets    []*dynamodb.GetItemInput
	queries []*dynamodb.QueryInput
	updates []*dynamodb.UpdateItemInput
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.puts = append(f.puts, in)
	return &dynamodb.PutItemOutput{}, f.putErr
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.gets = append(f.gets, in)
	return &dynamodb.GetItemOutput{Item: f.getItem}, nil
}

func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.updates = append(f.updates, in)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &dynamodb.UpdateItemOutput{Attributes: f.updateOut}, nil
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	page := len(f.queries)
	f.queries = append(f.queries, in)
	out := &dynamodb.QueryOutput{}
	if page < len(f.queryPages) {
		out.Items = f.queryPages[page]
		out.Count = int32(len(out.Items))
	}
	if page < len(f.queryCount) {
		out.Count = f.queryCount[page]
	}
	pages := len(f.queryPages)
	if len(f.queryCount) > pages {
		pages = len(f.queryCount)
	}
	if page+1 < pages {
		out.LastEvaluatedKey = map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: "page"},
		}
	}
	return out, nil
}

func (f *fakeDynamo) Scan(_ context.Context, _ *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	return &dynamodb.ScanOutput{}, nil
}

func mustMarshal(t *testing.T, v any) map[string]types.AttributeValue {
	t.Helper()
	av, err := attributevalue.MarshalMap(v)
	require.NoError(t, err)
	return av
}

func sampleInvoice() entities.Invoice {
	created := time.Date(2026, 2, 13, 12, 0, 0, 0, time.UTC)
	return entities.Invoice{
		ID:                "inv-1",
		TenantID:          "ten-1",
		SubscriptionID:    "sub-1",
		Number:            "INV-2026-0001",
		Amount:            decimal.RequireFromString("299.90"),
		BillingCycle:      entities.BillingCycleMonthly,
		Description:       "Plano Essencial",
		Currency:          entities.CurrencyBRL,
		Status:            entities.InvoiceStatusOpen,
		DueDate:           civil.Date{Year: 2026, Month: 3, Day: 25},
		Gateway:           entities.GatewayAsaas,
		ExternalPaymentID: "pay_123",
		CreatedAt:         created,
		UpdatedAt:         created,
	}
}

func TestInvoiceDynamoRepository_Create(t *testing.T) {
	t.Run("stores gateway lookup key for linked invoices", func(t *testing.T) {
		ddb := &fakeDynamo{}
		repo := &InvoiceDynamoRepository{ddb: ddb, tableName: "invoices"}

		_, err := repo.Create(context.Background(), sampleInvoice())
		require.NoError(t, err)
		require.Len(t, ddb.puts, 1)

		var it invoiceItem
		require.NoError(t, attributevalue.UnmarshalMap(ddb.puts[0].Item, &it))
		assert.Equal(t, "asaas#pay_123", it.ExternalPaymentKey)
		assert.Equal(t, "299.9", it.Amount)
		assert.Equal(t, "2026-03-25", it.DueDate)
		assert.Equal(t, "attribute_not_exists(#id)", aws.ToString(ddb.puts[0].ConditionExpression))
	})

	t.Run("unlinked invoice has no lookup key", func(t *testing.T) {
		ddb := &fakeDynamo{}
		repo := &InvoiceDynamoRepository{ddb: ddb, tableName: "invoices"}
		inv := sampleInvoice()
		inv.ExternalPaymentID = ""

		_, err := repo.Create(context.Background(), inv)
		require.NoError(t, err)
		_, ok := ddb.puts[0].Item["external_payment_key"]
		assert.False(t, ok)
	})

	t.Run("conditional failure maps to ErrAlreadyExists", func(t *testing.T) {
		ddb := &fakeDynamo{putErr: &types.ConditionalCheckFailedException{}}
		repo := &InvoiceDynamoRepository{ddb: ddb, tableName: "invoices"}

		_, err := repo.Create(context.Background(), sampleInvoice())
		assert.True(t, errors.Is(err, interfaces.ErrAlreadyExists))
	})
}

func TestInvoiceDynamoRepository_GetByID(t *testing.T) {
	t.Run("missing item returns zero invoice", func(t *testing.T) {
		repo := &InvoiceDynamoRepository{ddb: &fakeDynamo{}, tableName: "invoices"}
		inv, err := repo.GetByID(context.Background(), "nope")
		require.NoError(t, err)
		assert.Empty(t, inv.ID)
	})

	t.Run("round trips money and dates", func(t *testing.T) {
		want := sampleInvoice()
		paid := time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC)
		want.PaidAt = &paid
		ddb := &fakeDynamo{getItem: mustMarshal(t, toInvoiceItem(want))}
		repo := &InvoiceDynamoRepository{ddb: ddb, tableName: "invoices"}

		got, err := repo.GetByID(context.Background(), "inv-1")
		require.NoError(t, err)
		assert.True(t, want.Amount.Equal(got.Amount))
		assert.Equal(t, want.DueDate, got.DueDate)
		require.NotNil(t, got.PaidAt)
		assert.True(t, paid.Equal(*got.PaidAt))
		assert.True(t, want.CreatedAt.Equal(got.CreatedAt))
		assert.True(t, aws.ToBool(ddb.gets[0].ConsistentRead))
	})
}

func TestInvoiceDynamoRepository_ListOpenLinkedByTenant(t *testing.T) {
	a := sampleInvoice()
	b := sampleInvoice()
	b.ID = "inv-2"
	c := sampleInvoice()
	c.ID = "inv-3"
	ddb := &fakeDynamo{queryPages: [][]map[string]types.AttributeValue{
		{mustMarshal(t, toInvoiceItem(a)), mustMarshal(t, toInvoiceItem(b))},
		{mustMarshal(t, toInvoiceItem(c))},
	}}
	repo := &InvoiceDynamoRepository{ddb: ddb, tableName: "invoices"}

	got, err := repo.ListOpenLinkedByTenant(context.Background(), "ten-1", 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Len(t, ddb.queries, 1)
	q := ddb.queries[0]
	assert.Equal(t, invoicesTenantIndex, aws.ToString(q.IndexName))
	assert.False(t, aws.ToBool(q.ScanIndexForward))
	assert.Contains(t, aws.ToString(q.FilterExpression), "attribute_exists(external_payment_id)")
	assert.Equal(t, &types.AttributeValueMemberS{Value: "OPEN"}, q.ExpressionAttributeValues[":open"])
}

func TestInvoiceDynamoRepository_CountBySubscription(t *testing.T) {
	ddb := &fakeDynamo{queryCount: []int32{2, 1}}
	repo := &InvoiceDynamoRepository{ddb: ddb, tableName: "invoices"}
	from := time.Date(2026, 2, 1, 3, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 1, 3, 0, 0, 0, time.UTC)

	n, err := repo.CountBySubscription(context.Background(), "sub-1", from, to)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	q := ddb.queries[0]
	assert.Equal(t, types.SelectCount, q.Select)
	assert.Contains(t, aws.ToString(q.KeyConditionExpression), "BETWEEN")
	upper := q.ExpressionAttributeValues[":to"].(*types.AttributeValueMemberS).Value
	assert.Equal(t, "2026-03-01T02:59:59.999999999Z", upper)
}

func TestInvoiceDynamoRepository_UpdateStatus(t *testing.T) {
	t.Run("clearing paid_at removes the attribute", func(t *testing.T) {
		ddb := &fakeDynamo{updateOut: mustMarshal(t, toInvoiceItem(sampleInvoice()))}
		repo := &InvoiceDynamoRepository{ddb: ddb, tableName: "invoices"}

		_, err := repo.UpdateStatus(context.Background(), "inv-1", entities.InvoiceStatusOpen, nil)
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(aws.ToString(ddb.updates[0].UpdateExpression), "REMOVE #paid_at"))
	})

	t.Run("missing invoice returns zero value", func(t *testing.T) {
		ddb := &fakeDynamo{updateErr: &types.ConditionalCheckFailedException{}}
		repo := &InvoiceDynamoRepository{ddb: ddb, tableName: "invoices"}

		paid := time.Now()
		inv, err := repo.UpdateStatus(context.Background(), "inv-1", entities.InvoiceStatusPaid, &paid)
		require.NoError(t, err)
		assert.Empty(t, inv.ID)
	})
}

func TestInvoiceCounterDynamoRepository_Next(t *testing.T) {
	ddb := &fakeDynamo{updateOut: map[string]types.AttributeValue{
		"seq": &types.AttributeValueMemberN{Value: "42"},
	}}
	repo := &InvoiceCounterDynamoRepository{ddb: ddb, tableName: "invoice_counters"}

	seq, err := repo.Next(context.Background(), 2026)
	require.NoError(t, err)
	assert.Equal(t, int64(42), seq)
	assert.Equal(t, &types.AttributeValueMemberS{Value: "invoice#2026"}, ddb.updates[0].Key["id"])
	assert.Equal(t, "ADD #seq :one", aws.ToString(ddb.updates[0].UpdateExpression))
}

func TestPaymentDynamoRepository(t *testing.T) {
	t.Run("create derives id from gateway reference", func(t *testing.T) {
		ddb := &fakeDynamo{}
		repo := &PaymentDynamoRepository{ddb: ddb, tableName: "payments"}

		p, err := repo.Create(context.Background(), entities.Payment{
			InvoiceID:  "inv-1",
			Gateway:    entities.GatewayAsaas,
			ExternalID: "pay_123",
			Amount:     decimal.RequireFromString("10.00"),
			Status:     entities.PaymentStatusSucceeded,
		})
		require.NoError(t, err)
		assert.Equal(t, entities.PaymentID(entities.GatewayAsaas, "pay_123"), p.ID)
	})

	t.Run("duplicate settlement maps to ErrAlreadyExists", func(t *testing.T) {
		ddb := &fakeDynamo{putErr: &types.ConditionalCheckFailedException{}}
		repo := &PaymentDynamoRepository{ddb: ddb, tableName: "payments"}

		_, err := repo.Create(context.Background(), entities.Payment{Gateway: entities.GatewayAsaas, ExternalID: "pay_123"})
		assert.ErrorIs(t, err, interfaces.ErrAlreadyExists)
	})

	t.Run("lookup by gateway id uses deterministic key", func(t *testing.T) {
		ddb := &fakeDynamo{}
		repo := &PaymentDynamoRepository{ddb: ddb, tableName: "payments"}

		_, err := repo.GetByGatewayID(context.Background(), entities.GatewayMercadoPago, "777")
		require.NoError(t, err)
		want := entities.PaymentID(entities.GatewayMercadoPago, "777")
		assert.Equal(t, &types.AttributeValueMemberS{Value: want}, ddb.gets[0].Key["id"])
	})
}

func TestWebhookEventDynamoRepository(t *testing.T) {
	ev := entities.WebhookEvent{
		ID:              entities.WebhookEventID("asaas#PAYMENT_RECEIVED#evt_1"),
		Gateway:         entities.GatewayAsaas,
		EventType:       entities.EventPaymentReceived,
		ExternalEventID: "evt_1",
		Payload:         []byte(`{"event":"PAYMENT_RECEIVED"}`),
		ClaimedAt:       time.Date(2026, 2, 13, 12, 0, 0, 0, time.UTC),
	}
	staleBefore := ev.ClaimedAt.Add(-5 * time.Minute)

	t.Run("claim writes conditionally on the derived id", func(t *testing.T) {
		ddb := &fakeDynamo{}
		repo := &WebhookEventDynamoRepository{ddb: ddb, tableName: "webhook_events"}

		got, ok, err := repo.Claim(context.Background(), ev, staleBefore)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, ev.ID, got.ID)

		put := ddb.puts[0]
		assert.Contains(t, aws.ToString(put.ConditionExpression), "attribute_not_exists(#id)")
		assert.Contains(t, aws.ToString(put.ConditionExpression), "#claimed_at < :stale")
		assert.Equal(t, &types.AttributeValueMemberS{Value: formatTime(staleBefore)}, put.ExpressionAttributeValues[":stale"])
		assert.Equal(t, &types.AttributeValueMemberS{Value: "asaas#PAYMENT_RECEIVED#evt_1"}, put.Item["dedup_key"])
		assert.Empty(t, ddb.gets)
	})

	t.Run("rejected claim returns the stored row", func(t *testing.T) {
		stored := ev
		stored.Processed = true
		ddb := &fakeDynamo{
			putErr:  &types.ConditionalCheckFailedException{},
			getItem: mustMarshal(t, toWebhookEventItem(stored)),
		}
		repo := &WebhookEventDynamoRepository{ddb: ddb, tableName: "webhook_events"}

		got, ok, err := repo.Claim(context.Background(), ev, staleBefore)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.True(t, got.Processed)
		assert.Equal(t, ev.ClaimedAt, got.ClaimedAt)
		assert.JSONEq(t, `{"event":"PAYMENT_RECEIVED"}`, string(got.Payload))
		assert.True(t, aws.ToBool(ddb.gets[0].ConsistentRead))
	})

	t.Run("storage errors pass through", func(t *testing.T) {
		ddb := &fakeDynamo{putErr: errors.New("throttled")}
		repo := &WebhookEventDynamoRepository{ddb: ddb, tableName: "webhook_events"}

		_, ok, err := repo.Claim(context.Background(), ev, staleBefore)
		assert.Error(t, err)
		assert.False(t, ok)
	})

	t.Run("mark failed keeps the error message", func(t *testing.T) {
		ddb := &fakeDynamo{}
		repo := &WebhookEventDynamoRepository{ddb: ddb, tableName: "webhook_events"}

		require.NoError(t, repo.MarkFailed(context.Background(), "ev-1", "boom"))
		assert.Equal(t, &types.AttributeValueMemberS{Value: "boom"}, ddb.updates[0].ExpressionAttributeValues[":error"])
	})
}

func TestSubscriptionDynamoRepository(t *testing.T) {
	t.Run("list honours limit", func(t *testing.T) {
		s1 := entities.Subscription{ID: "sub-1", TenantID: "ten-1", Status: entities.SubscriptionStatusActive}
		s2 := entities.Subscription{ID: "sub-2", TenantID: "ten-1", Status: entities.SubscriptionStatusTrialing}
		ddb := &fakeDynamo{queryPages: [][]map[string]types.AttributeValue{
			{mustMarshal(t, toSubscriptionItem(s1)), mustMarshal(t, toSubscriptionItem(s2))},
		}}
		repo := &SubscriptionDynamoRepository{ddb: ddb, tableName: "subscriptions"}

		got, err := repo.ListByTenant(context.Background(), "ten-1", 1)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "sub-1", got[0].ID)
	})

	t.Run("successful sync clears previous error", func(t *testing.T) {
		ddb := &fakeDynamo{}
		repo := &SubscriptionDynamoRepository{ddb: ddb, tableName: "subscriptions"}

		err := repo.UpdateSyncState(context.Background(), "sub-1", entities.SubscriptionStatusActive, time.Now(), "")
		require.NoError(t, err)
		assert.Contains(t, aws.ToString(ddb.updates[0].UpdateExpression), "REMOVE #last_sync_error")
	})
}
