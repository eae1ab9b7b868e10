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
	defaultTenantsTableName = "tenants"
	defaultPlansTableName   = "plans"
)

type tenantItem struct {
	ID                string `dynamodbav:"id"`
	Name              string `dynamodbav:"name"`
	TaxID             string `dynamodbav:"tax_id"`
	Email             string `dynamodbav:"email"`
	Phone             string `dynamodbav:"phone,omitempty"`
	Timezone          string `dynamodbav:"timezone,omitempty"`
	GatewayCustomerID string `dynamodbav:"gateway_customer_id,omitempty"`
	Status            string `dynamodbav:"status"`
	UpdatedAt         string `dynamodbav:"updated_at,omitempty"`
}

type planItem struct {
	ID                    string `dynamodbav:"id"`
	Name                  string `dynamodbav:"name"`
	DisplayName           string `dynamodbav:"display_name"`
	Price                 string `dynamodbav:"price"`
	AnnualDiscountPercent string `dynamodbav:"annual_discount_percent,omitempty"`
}

// TenantDynamoRepository reads tenants and stores their gateway customer id.
//
// Table requirements:
//   - PK: id (string)
type TenantDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.ITenantRepository = (*TenantDynamoRepository)(nil)

func NewTenantDynamoRepository(ddb *dynamodb.Client) *TenantDynamoRepository {
	return &TenantDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("TENANTS_TABLE", defaultTenantsTableName),
	}
}

func (r *TenantDynamoRepository) GetByID(ctx context.Context, id string) (entities.Tenant, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Tenant{}, err
	}
	if len(out.Item) == 0 {
		return entities.Tenant{}, nil
	}
	return unmarshalTenant(out.Item)
}

// ListActive scans the tenants table. The table is small (one row per
// facility) so a filtered scan is acceptable for the batch jobs.
func (r *TenantDynamoRepository) ListActive(ctx context.Context) ([]entities.Tenant, error) {
	p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{
		TableName:        aws.String(r.tableName),
		FilterExpression: aws.String("#status = :active"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":active": &types.AttributeValueMemberS{Value: string(entities.TenantStatusActive)},
		},
	})

	var tenants []entities.Tenant
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			t, err := unmarshalTenant(raw)
			if err != nil {
				return nil, err
			}
			tenants = append(tenants, t)
		}
	}
	return tenants, nil
}

func (r *TenantDynamoRepository) UpdateGatewayCustomerID(ctx context.Context, id string, customerID string) error {
	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET #customer = :customer, #updated_at = :updated_at"),
		ExpressionAttributeNames: map[string]string{
			"#id":         "id",
			"#customer":   "gateway_customer_id",
			"#updated_at": "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":customer":   &types.AttributeValueMemberS{Value: customerID},
			":updated_at": &types.AttributeValueMemberS{Value: formatTime(time.Now())},
		},
	})
	if err != nil && !isConditionalCheckFailed(err) {
		return err
	}
	return nil
}

func unmarshalTenant(av map[string]types.AttributeValue) (entities.Tenant, error) {
	var it tenantItem
	if err := attributevalue.UnmarshalMap(av, &it); err != nil {
		return entities.Tenant{}, err
	}
	return entities.Tenant{
		ID:                it.ID,
		Name:              it.Name,
		TaxID:             it.TaxID,
		Email:             it.Email,
		Phone:             it.Phone,
		Timezone:          it.Timezone,
		GatewayCustomerID: it.GatewayCustomerID,
		Status:            entities.TenantStatus(it.Status),
	}, nil
}

// PlanDynamoRepository reads the plan catalog.
//
// Table requirements:
//   - PK: id (string)
type PlanDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.IPlanRepository = (*PlanDynamoRepository)(nil)

func NewPlanDynamoRepository(ddb *dynamodb.Client) *PlanDynamoRepository {
	return &PlanDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PLANS_TABLE", defaultPlansTableName),
	}
}

func (r *PlanDynamoRepository) GetByID(ctx context.Context, id string) (entities.Plan, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return entities.Plan{}, err
	}
	if len(out.Item) == 0 {
		return entities.Plan{}, nil
	}
	var it planItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Plan{}, err
	}
	return entities.Plan{
		ID:                    it.ID,
		Name:                  it.Name,
		DisplayName:           it.DisplayName,
		Price:                 parseDecimal(it.Price),
		AnnualDiscountPercent: parseDecimal(it.AnnualDiscountPercent),
	}, nil
}
