package repository

import (
	"context"
	"time"

	"eldercare_billing/internal/domain/entities"
	"eldercare_billing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultPaymentsTableName = "payments"
	paymentsInvoiceIndex     = "invoice_id-index"
)

type paymentItem struct {
	ID         string         `dynamodbav:"id"`
	InvoiceID  string         `dynamodbav:"invoice_id"`
	TenantID   string         `dynamodbav:"tenant_id"`
	Amount     string         `dynamodbav:"amount"`
	Gateway    string         `dynamodbav:"gateway"`
	ExternalID string         `dynamodbav:"external_id"`
	Method     string         `dynamodbav:"method"`
	Status     string         `dynamodbav:"status"`
	PaidAt     string         `dynamodbav:"paid_at"`
	Metadata   map[string]any `dynamodbav:"metadata,omitempty"`
	CreatedAt  string         `dynamodbav:"created_at"`
	UpdatedAt  string         `dynamodbav:"updated_at,omitempty"`
}

// PaymentDynamoRepository persists Payment entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string), deterministic per (gateway, external_id)
//   - GSI: invoice_id-index (PK: invoice_id)
type PaymentDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.IPaymentRepository = (*PaymentDynamoRepository)(nil)

func NewPaymentDynamoRepository(ddb *dynamodb.Client) *PaymentDynamoRepository {
	return &PaymentDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PAYMENTS_TABLE", defaultPaymentsTableName),
	}
}

func (r *PaymentDynamoRepository) Create(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	if p.ID == "" {
		p.ID = entities.PaymentID(p.Gateway, p.ExternalID)
	}
	av, err := attributevalue.MarshalMap(toPaymentItem(p))
	if err != nil {
		return entities.Payment{}, err
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
			return entities.Payment{}, interfaces.ErrAlreadyExists
		}
		return entities.Payment{}, err
	}
	return p, nil
}

func (r *PaymentDynamoRepository) GetByGatewayID(ctx context.Context, gateway entities.Gateway, externalID string) (entities.Payment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: entities.PaymentID(gateway, externalID)},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Payment{}, err
	}
	if len(out.Item) == 0 {
		return entities.Payment{}, nil
	}
	return unmarshalPayment(out.Item)
}

func (r *PaymentDynamoRepository) ListByInvoiceID(ctx context.Context, invoiceID string) ([]entities.Payment, error) {
	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paymentsInvoiceIndex),
		KeyConditionExpression: aws.String("invoice_id = :iid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":iid": &types.AttributeValueMemberS{Value: invoiceID},
		},
	})

	var payments []entities.Payment
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			pay, err := unmarshalPayment(raw)
			if err != nil {
				return nil, err
			}
			payments = append(payments, pay)
		}
	}
	return payments, nil
}

func (r *PaymentDynamoRepository) UpdateStatus(ctx context.Context, id string, status entities.PaymentStatus) (entities.Payment, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET #status = :status, #updated_at = :updated_at"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status":     &types.AttributeValueMemberS{Value: string(status)},
			":updated_at": &types.AttributeValueMemberS{Value: formatTime(time.Now())},
		},
		ExpressionAttributeNames: map[string]string{
			"#id":         "id",
			"#status":     "status",
			"#updated_at": "updated_at",
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.Payment{}, nil
		}
		return entities.Payment{}, err
	}
	return unmarshalPayment(out.Attributes)
}

func unmarshalPayment(av map[string]types.AttributeValue) (entities.Payment, error) {
	var it paymentItem
	if err := attributevalue.UnmarshalMap(av, &it); err != nil {
		return entities.Payment{}, err
	}
	return entities.Payment{
		ID:         it.ID,
		InvoiceID:  it.InvoiceID,
		TenantID:   it.TenantID,
		Amount:     parseDecimal(it.Amount),
		Gateway:    entities.Gateway(it.Gateway),
		ExternalID: it.ExternalID,
		Method:     entities.PaymentMethod(it.Method),
		Status:     entities.PaymentStatus(it.Status),
		PaidAt:     parseTime(it.PaidAt),
		Metadata:   it.Metadata,
		CreatedAt:  parseTime(it.CreatedAt),
	}, nil
}

func toPaymentItem(p entities.Payment) paymentItem {
	return paymentItem{
		ID:         p.ID,
		InvoiceID:  p.InvoiceID,
		TenantID:   p.TenantID,
		Amount:     decimalString(p.Amount),
		Gateway:    string(p.Gateway),
		ExternalID: p.ExternalID,
		Method:     string(p.Method),
		Status:     string(p.Status),
		PaidAt:     formatTime(p.PaidAt),
		Metadata:   p.Metadata,
		CreatedAt:  formatTime(p.CreatedAt),
	}
}
