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
	defaultSubscriptionsTableName = "subscriptions"
	subscriptionsTenantIndex      = "tenant_id-created_at-index"
	subscriptionsGatewayIDIndex   = "gateway_subscription_id-index"
)

type subscriptionItem struct {
	ID                     string `dynamodbav:"id"`
	TenantID               string `dynamodbav:"tenant_id"`
	PlanID                 string `dynamodbav:"plan_id"`
	Status                 string `dynamodbav:"status"`
	BillingCycle           string `dynamodbav:"billing_cycle"`
	CustomPrice            string `dynamodbav:"custom_price,omitempty"`
	DiscountPercent        string `dynamodbav:"discount_percent,omitempty"`
	DiscountReason         string `dynamodbav:"discount_reason,omitempty"`
	PreferredPaymentMethod string `dynamodbav:"preferred_payment_method,omitempty"`
	GatewaySubscriptionID  string `dynamodbav:"gateway_subscription_id,omitempty"`
	CurrentPeriodStart     string `dynamodbav:"current_period_start"`
	TrialEndsAt            string `dynamodbav:"trial_ends_at,omitempty"`
	LastSyncedAt           string `dynamodbav:"last_synced_at,omitempty"`
	LastSyncError          string `dynamodbav:"last_sync_error,omitempty"`
	CreatedAt              string `dynamodbav:"created_at"`
	UpdatedAt              string `dynamodbav:"updated_at"`
}

// SubscriptionDynamoRepository reads subscriptions owned by the subscription
// management module and writes the sync bookkeeping fields.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: tenant_id-created_at-index (PK: tenant_id, SK: created_at)
//   - GSI: gateway_subscription_id-index (PK: gateway_subscription_id), sparse
type SubscriptionDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.ISubscriptionRepository = (*SubscriptionDynamoRepository)(nil)

func NewSubscriptionDynamoRepository(ddb *dynamodb.Client) *SubscriptionDynamoRepository {
	return &SubscriptionDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("SUBSCRIPTIONS_TABLE", defaultSubscriptionsTableName),
	}
}

func (r *SubscriptionDynamoRepository) GetByID(ctx context.Context, id string) (entities.Subscription, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Subscription{}, err
	}
	if len(out.Item) == 0 {
		return entities.Subscription{}, nil
	}
	return unmarshalSubscription(out.Item)
}

func (r *SubscriptionDynamoRepository) GetByGatewayID(ctx context.Context, gatewaySubscriptionID string) (entities.Subscription, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(subscriptionsGatewayIDIndex),
		KeyConditionExpression: aws.String("gateway_subscription_id = :gid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":gid": &types.AttributeValueMemberS{Value: gatewaySubscriptionID},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Subscription{}, err
	}
	if len(out.Items) == 0 {
		return entities.Subscription{}, nil
	}
	return unmarshalSubscription(out.Items[0])
}

func (r *SubscriptionDynamoRepository) ListByTenant(ctx context.Context, tenantID string, limit int) ([]entities.Subscription, error) {
	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(subscriptionsTenantIndex),
		KeyConditionExpression: aws.String("tenant_id = :tid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":tid": &types.AttributeValueMemberS{Value: tenantID},
		},
		ScanIndexForward: aws.Bool(false),
	})

	var subs []entities.Subscription
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			s, err := unmarshalSubscription(raw)
			if err != nil {
				return nil, err
			}
			subs = append(subs, s)
			if limit > 0 && len(subs) >= limit {
				return subs, nil
			}
		}
	}
	return subs, nil
}

func (r *SubscriptionDynamoRepository) UpdateSyncState(ctx context.Context, id string, status entities.SubscriptionStatus, syncedAt time.Time, syncError string) error {
	expr := "SET #status = :status, #last_synced_at = :synced_at, #updated_at = :updated_at"
	values := map[string]types.AttributeValue{
		":status":     &types.AttributeValueMemberS{Value: string(status)},
		":synced_at":  &types.AttributeValueMemberS{Value: formatTime(syncedAt)},
		":updated_at": &types.AttributeValueMemberS{Value: formatTime(time.Now())},
	}
	if syncError != "" {
		expr += ", #last_sync_error = :sync_error"
		values[":sync_error"] = &types.AttributeValueMemberS{Value: syncError}
	} else {
		expr += " REMOVE #last_sync_error"
	}

	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames: map[string]string{
			"#id":              "id",
			"#status":          "status",
			"#last_synced_at":  "last_synced_at",
			"#last_sync_error": "last_sync_error",
			"#updated_at":      "updated_at",
		},
	})
	if err != nil && !isConditionalCheckFailed(err) {
		return err
	}
	return nil
}

func unmarshalSubscription(av map[string]types.AttributeValue) (entities.Subscription, error) {
	var it subscriptionItem
	if err := attributevalue.UnmarshalMap(av, &it); err != nil {
		return entities.Subscription{}, err
	}
	return entities.Subscription{
		ID:                     it.ID,
		TenantID:               it.TenantID,
		PlanID:                 it.PlanID,
		Status:                 entities.SubscriptionStatus(it.Status),
		BillingCycle:           entities.BillingCycle(it.BillingCycle),
		CustomPrice:            parseDecimalPtr(it.CustomPrice),
		DiscountPercent:        parseDecimalPtr(it.DiscountPercent),
		DiscountReason:         it.DiscountReason,
		PreferredPaymentMethod: entities.BillingType(it.PreferredPaymentMethod),
		GatewaySubscriptionID:  it.GatewaySubscriptionID,
		CurrentPeriodStart:     parseTime(it.CurrentPeriodStart),
		TrialEndsAt:            parseTimePtr(it.TrialEndsAt),
		LastSyncedAt:           parseTimePtr(it.LastSyncedAt),
		LastSyncError:          it.LastSyncError,
		CreatedAt:              parseTime(it.CreatedAt),
		UpdatedAt:              parseTime(it.UpdatedAt),
	}, nil
}

func toSubscriptionItem(s entities.Subscription) subscriptionItem {
	return subscriptionItem{
		ID:                     s.ID,
		TenantID:               s.TenantID,
		PlanID:                 s.PlanID,
		Status:                 string(s.Status),
		BillingCycle:           string(s.BillingCycle),
		CustomPrice:            decimalPtrString(s.CustomPrice),
		DiscountPercent:        decimalPtrString(s.DiscountPercent),
		DiscountReason:         s.DiscountReason,
		PreferredPaymentMethod: string(s.PreferredPaymentMethod),
		GatewaySubscriptionID:  s.GatewaySubscriptionID,
		CurrentPeriodStart:     formatTime(s.CurrentPeriodStart),
		TrialEndsAt:            formatTimePtr(s.TrialEndsAt),
		LastSyncedAt:           formatTimePtr(s.LastSyncedAt),
		LastSyncError:          s.LastSyncError,
		CreatedAt:              formatTime(s.CreatedAt),
		UpdatedAt:              formatTime(s.UpdatedAt),
	}
}
