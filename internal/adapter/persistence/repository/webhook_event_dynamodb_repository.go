package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"eldercare_billing/internal/domain/entities"
	"eldercare_billing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultWebhookEventsTableName = "webhook_events"

type webhookEventItem struct {
	ID              string `dynamodbav:"id"`
	Gateway         string `dynamodbav:"gateway"`
	EventType       string `dynamodbav:"event_type"`
	ExternalEventID string `dynamodbav:"external_event_id"`
	DedupKey        string `dynamodbav:"dedup_key"`
	Payload         string `dynamodbav:"payload"`
	Processed       bool   `dynamodbav:"processed"`
	ProcessedAt     string `dynamodbav:"processed_at,omitempty"`
	Error           string `dynamodbav:"error,omitempty"`
	ClaimedAt       string `dynamodbav:"claimed_at"`
	CreatedAt       string `dynamodbav:"created_at"`
}

// WebhookEventDynamoRepository stores webhook deliveries.
//
// Table requirements:
//   - PK: id (string), derived from dedup_key
//
// One row per logical event. The conditional put in Claim is the only
// idempotency gate.
type WebhookEventDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.IWebhookEventRepository = (*WebhookEventDynamoRepository)(nil)

func NewWebhookEventDynamoRepository(ddb *dynamodb.Client) *WebhookEventDynamoRepository {
	return &WebhookEventDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("WEBHOOK_EVENTS_TABLE", defaultWebhookEventsTableName),
	}
}

func (r *WebhookEventDynamoRepository) Claim(ctx context.Context, e entities.WebhookEvent, staleBefore time.Time) (entities.WebhookEvent, bool, error) {
	av, err := attributevalue.MarshalMap(toWebhookEventItem(e))
	if err != nil {
		return entities.WebhookEvent{}, false, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
		ConditionExpression: aws.String(
			"attribute_not_exists(#id) OR (#processed = :false AND (attribute_exists(#error) OR #claimed_at < :stale))",
		),
		ExpressionAttributeNames: map[string]string{
			"#id":         "id",
			"#processed":  "processed",
			"#error":      "error",
			"#claimed_at": "claimed_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":false": &types.AttributeValueMemberBOOL{Value: false},
			":stale": &types.AttributeValueMemberS{Value: formatTime(staleBefore)},
		},
	})
	if err == nil {
		return e, true, nil
	}
	if !isConditionalCheckFailed(err) {
		return entities.WebhookEvent{}, false, err
	}

	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: e.ID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.WebhookEvent{}, false, err
	}
	if len(out.Item) == 0 {
		return entities.WebhookEvent{}, false, fmt.Errorf("webhook event %s: claim rejected but row missing", e.ID)
	}
	stored, err := unmarshalWebhookEvent(out.Item)
	if err != nil {
		return entities.WebhookEvent{}, false, err
	}
	return stored, false, nil
}

func (r *WebhookEventDynamoRepository) MarkProcessed(ctx context.Context, id string, at time.Time) error {
	return r.update(ctx, id,
		"SET #processed = :true, #processed_at = :at REMOVE #error",
		map[string]types.AttributeValue{
			":true": &types.AttributeValueMemberBOOL{Value: true},
			":at":   &types.AttributeValueMemberS{Value: formatTime(at)},
		},
		map[string]string{
			"#processed":    "processed",
			"#processed_at": "processed_at",
			"#error":        "error",
		},
	)
}

func (r *WebhookEventDynamoRepository) MarkFailed(ctx context.Context, id string, message string) error {
	return r.update(ctx, id,
		"SET #error = :error",
		map[string]types.AttributeValue{
			":error": &types.AttributeValueMemberS{Value: message},
		},
		map[string]string{"#error": "error"},
	)
}

func (r *WebhookEventDynamoRepository) update(ctx context.Context, id, expr string, values map[string]types.AttributeValue, names map[string]string) error {
	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
	})
	if err != nil && !isConditionalCheckFailed(err) {
		return err
	}
	return nil
}

func unmarshalWebhookEvent(av map[string]types.AttributeValue) (entities.WebhookEvent, error) {
	var it webhookEventItem
	if err := attributevalue.UnmarshalMap(av, &it); err != nil {
		return entities.WebhookEvent{}, err
	}
	e := entities.WebhookEvent{
		ID:              it.ID,
		Gateway:         entities.Gateway(it.Gateway),
		EventType:       it.EventType,
		ExternalEventID: it.ExternalEventID,
		DedupKey:        it.DedupKey,
		Processed:       it.Processed,
		ProcessedAt:     parseTimePtr(it.ProcessedAt),
		Error:           it.Error,
		ClaimedAt:       parseTime(it.ClaimedAt),
		CreatedAt:       parseTime(it.CreatedAt),
	}
	if it.Payload != "" {
		e.Payload = json.RawMessage(it.Payload)
	}
	return e, nil
}

func toWebhookEventItem(e entities.WebhookEvent) webhookEventItem {
	dedup := e.DedupKey
	if dedup == "" {
		dedup = entities.WebhookDedupKey(e.Gateway, e.EventType, e.ExternalEventID)
	}
	return webhookEventItem{
		ID:              e.ID,
		Gateway:         string(e.Gateway),
		EventType:       e.EventType,
		ExternalEventID: e.ExternalEventID,
		DedupKey:        dedup,
		Payload:         string(e.Payload),
		Processed:       e.Processed,
		ProcessedAt:     formatTimePtr(e.ProcessedAt),
		Error:           e.Error,
		ClaimedAt:       formatTime(e.ClaimedAt),
		CreatedAt:       formatTime(e.CreatedAt),
	}
}
