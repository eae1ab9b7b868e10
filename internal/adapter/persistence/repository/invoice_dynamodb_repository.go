package repository

import (
	"context"
	"strconv"
	"time"

	"eldercare_billing/internal/domain/entities"
	"eldercare_billing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultInvoicesTableName        = "invoices"
	defaultInvoiceCountersTableName = "invoice_counters"
	invoicesTenantIndex             = "tenant_id-created_at-index"
	invoicesSubscriptionIndex       = "subscription_id-created_at-index"
	invoicesExternalPaymentIndex    = "external_payment_key-index"
)

type invoiceItem struct {
	ID                 string `dynamodbav:"id"`
	TenantID           string `dynamodbav:"tenant_id"`
	SubscriptionID     string `dynamodbav:"subscription_id"`
	Number             string `dynamodbav:"number"`
	Amount             string `dynamodbav:"amount"`
	OriginalAmount     string `dynamodbav:"original_amount,omitempty"`
	DiscountPercent    string `dynamodbav:"discount_percent,omitempty"`
	DiscountReason     string `dynamodbav:"discount_reason,omitempty"`
	BillingCycle       string `dynamodbav:"billing_cycle"`
	Description        string `dynamodbav:"description"`
	Currency           string `dynamodbav:"currency"`
	Status             string `dynamodbav:"status"`
	DueDate            string `dynamodbav:"due_date"`
	PaidAt             string `dynamodbav:"paid_at,omitempty"`
	Gateway            string `dynamodbav:"gateway"`
	ExternalPaymentID  string `dynamodbav:"external_payment_id,omitempty"`
	ExternalPaymentKey string `dynamodbav:"external_payment_key,omitempty"`
	PaymentURL         string `dynamodbav:"payment_url,omitempty"`
	CreatedAt          string `dynamodbav:"created_at"`
	UpdatedAt          string `dynamodbav:"updated_at"`
}

// InvoiceDynamoRepository persists Invoice entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: tenant_id-created_at-index (PK: tenant_id, SK: created_at)
//   - GSI: subscription_id-created_at-index (PK: subscription_id, SK: created_at)
//   - GSI: external_payment_key-index (PK: external_payment_key), sparse
type InvoiceDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.IInvoiceRepository = (*InvoiceDynamoRepository)(nil)

func NewInvoiceDynamoRepository(ddb *dynamodb.Client) *InvoiceDynamoRepository {
	return &InvoiceDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("INVOICES_TABLE", defaultInvoicesTableName),
	}
}

func (r *InvoiceDynamoRepository) Create(ctx context.Context, inv entities.Invoice) (entities.Invoice, error) {
	av, err := attributevalue.MarshalMap(toInvoiceItem(inv))
	if err != nil {
		return entities.Invoice{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.Invoice{}, interfaces.ErrAlreadyExists
		}
		return entities.Invoice{}, err
	}
	return inv, nil
}

func (r *InvoiceDynamoRepository) GetByID(ctx context.Context, id string) (entities.Invoice, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Invoice{}, err
	}
	if len(out.Item) == 0 {
		return entities.Invoice{}, nil
	}
	return unmarshalInvoice(out.Item)
}

func (r *InvoiceDynamoRepository) GetByExternalPaymentID(ctx context.Context, gateway entities.Gateway, externalID string) (entities.Invoice, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(invoicesExternalPaymentIndex),
		KeyConditionExpression: aws.String("external_payment_key = :k"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":k": &types.AttributeValueMemberS{Value: externalPaymentKey(gateway, externalID)},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Invoice{}, err
	}
	if len(out.Items) == 0 {
		return entities.Invoice{}, nil
	}
	return unmarshalInvoice(out.Items[0])
}

func (r *InvoiceDynamoRepository) ListByTenant(ctx context.Context, tenantID string) ([]entities.Invoice, error) {
	return r.queryTenant(ctx, tenantID, nil, 0)
}

func (r *InvoiceDynamoRepository) ListOpenLinkedByTenant(ctx context.Context, tenantID string, limit int) ([]entities.Invoice, error) {
	filter := &tenantFilter{
		expr:   "#status = :open AND attribute_exists(external_payment_id)",
		names:  map[string]string{"#status": "status"},
		values: map[string]types.AttributeValue{":open": &types.AttributeValueMemberS{Value: string(entities.InvoiceStatusOpen)}},
	}
	return r.queryTenant(ctx, tenantID, filter, limit)
}

type tenantFilter struct {
	expr   string
	names  map[string]string
	values map[string]types.AttributeValue
}

func (r *InvoiceDynamoRepository) queryTenant(ctx context.Context, tenantID string, filter *tenantFilter, limit int) ([]entities.Invoice, error) {
	in := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(invoicesTenantIndex),
		KeyConditionExpression: aws.String("tenant_id = :tid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":tid": &types.AttributeValueMemberS{Value: tenantID},
		},
		ScanIndexForward: aws.Bool(false),
	}
	if filter != nil {
		in.FilterExpression = aws.String(filter.expr)
		in.ExpressionAttributeNames = filter.names
		for k, v := range filter.values {
			in.ExpressionAttributeValues[k] = v
		}
	}

	var items []entities.Invoice
	p := dynamodb.NewQueryPaginator(r.ddb, in)
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			inv, err := unmarshalInvoice(raw)
			if err != nil {
				return nil, err
			}
			items = append(items, inv)
			if limit > 0 && len(items) >= limit {
				return items, nil
			}
		}
	}
	return items, nil
}

func (r *InvoiceDynamoRepository) CountBySubscription(ctx context.Context, subscriptionID string, from, to time.Time) (int, error) {
	keyCond := "subscription_id = :sid"
	values := map[string]types.AttributeValue{
		":sid": &types.AttributeValueMemberS{Value: subscriptionID},
	}
	if !from.IsZero() || !to.IsZero() {
		if to.IsZero() {
			to = time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC)
		}
		keyCond += " AND created_at BETWEEN :from AND :to"
		values[":from"] = &types.AttributeValueMemberS{Value: formatTime(from)}
		values[":to"] = &types.AttributeValueMemberS{Value: formatTime(to.Add(-time.Nanosecond))}
	}

	total := 0
	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(invoicesSubscriptionIndex),
		KeyConditionExpression:    aws.String(keyCond),
		ExpressionAttributeValues: values,
		Select:                    types.SelectCount,
	})
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return 0, err
		}
		total += int(out.Count)
	}
	return total, nil
}

func (r *InvoiceDynamoRepository) UpdateStatus(ctx context.Context, id string, status entities.InvoiceStatus, paidAt *time.Time) (entities.Invoice, error) {
	now := formatTime(time.Now())
	expr := "SET #status = :status, #updated_at = :updated_at"
	values := map[string]types.AttributeValue{
		":status":     &types.AttributeValueMemberS{Value: string(status)},
		":updated_at": &types.AttributeValueMemberS{Value: now},
	}
	names := map[string]string{
		"#status":     "status",
		"#updated_at": "updated_at",
		"#paid_at":    "paid_at",
	}
	if paidAt != nil {
		expr += ", #paid_at = :paid_at"
		values[":paid_at"] = &types.AttributeValueMemberS{Value: formatTime(*paidAt)}
	} else {
		expr += " REMOVE #paid_at"
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.Invoice{}, nil
		}
		return entities.Invoice{}, err
	}
	return unmarshalInvoice(out.Attributes)
}

// InvoiceCounterDynamoRepository hands out invoice numbers with an atomic
// ADD on one counter item per year.
//
// Table requirements:
//   - PK: id (string), e.g. "invoice#2026"
type InvoiceCounterDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.IInvoiceNumberSequence = (*InvoiceCounterDynamoRepository)(nil)

func NewInvoiceCounterDynamoRepository(ddb *dynamodb.Client) *InvoiceCounterDynamoRepository {
	return &InvoiceCounterDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("INVOICE_COUNTERS_TABLE", defaultInvoiceCountersTableName),
	}
}

func (r *InvoiceCounterDynamoRepository) Next(ctx context.Context, year int) (int64, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: "invoice#" + strconv.Itoa(year)},
		},
		UpdateExpression:         aws.String("ADD #seq :one"),
		ExpressionAttributeNames: map[string]string{"#seq": "seq"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, err
	}
	var counter struct {
		Seq int64 `dynamodbav:"seq"`
	}
	if err := attributevalue.UnmarshalMap(out.Attributes, &counter); err != nil {
		return 0, err
	}
	return counter.Seq, nil
}

func externalPaymentKey(gateway entities.Gateway, externalID string) string {
	return string(gateway) + "#" + externalID
}

func unmarshalInvoice(av map[string]types.AttributeValue) (entities.Invoice, error) {
	var it invoiceItem
	if err := attributevalue.UnmarshalMap(av, &it); err != nil {
		return entities.Invoice{}, err
	}
	return fromInvoiceItem(it), nil
}

func toInvoiceItem(inv entities.Invoice) invoiceItem {
	it := invoiceItem{
		ID:                inv.ID,
		TenantID:          inv.TenantID,
		SubscriptionID:    inv.SubscriptionID,
		Number:            inv.Number,
		Amount:            decimalString(inv.Amount),
		OriginalAmount:    decimalPtrString(inv.OriginalAmount),
		DiscountPercent:   decimalPtrString(inv.DiscountPercent),
		DiscountReason:    inv.DiscountReason,
		BillingCycle:      string(inv.BillingCycle),
		Description:       inv.Description,
		Currency:          inv.Currency,
		Status:            string(inv.Status),
		DueDate:           civilDateString(inv.DueDate),
		PaidAt:            formatTimePtr(inv.PaidAt),
		Gateway:           string(inv.Gateway),
		ExternalPaymentID: inv.ExternalPaymentID,
		PaymentURL:        inv.PaymentURL,
		CreatedAt:         formatTime(inv.CreatedAt),
		UpdatedAt:         formatTime(inv.UpdatedAt),
	}
	if inv.ExternalPaymentID != "" {
		it.ExternalPaymentKey = externalPaymentKey(inv.Gateway, inv.ExternalPaymentID)
	}
	return it
}

func fromInvoiceItem(it invoiceItem) entities.Invoice {
	return entities.Invoice{
		ID:                it.ID,
		TenantID:          it.TenantID,
		SubscriptionID:    it.SubscriptionID,
		Number:            it.Number,
		Amount:            parseDecimal(it.Amount),
		OriginalAmount:    parseDecimalPtr(it.OriginalAmount),
		DiscountPercent:   parseDecimalPtr(it.DiscountPercent),
		DiscountReason:    it.DiscountReason,
		BillingCycle:      entities.BillingCycle(it.BillingCycle),
		Description:       it.Description,
		Currency:          it.Currency,
		Status:            entities.InvoiceStatus(it.Status),
		DueDate:           parseCivilDate(it.DueDate),
		PaidAt:            parseTimePtr(it.PaidAt),
		Gateway:           entities.Gateway(it.Gateway),
		ExternalPaymentID: it.ExternalPaymentID,
		PaymentURL:        it.PaymentURL,
		CreatedAt:         parseTime(it.CreatedAt),
		UpdatedAt:         parseTime(it.UpdatedAt),
	}
}
