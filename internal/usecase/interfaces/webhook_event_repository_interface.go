package interfaces

import (
	"context"
	"time"

	"eldercare_billing/internal/domain/entities"
)

// IWebhookEventRepository stores webhook deliveries for audit and idempotency.
type IWebhookEventRepository interface {
	// Claim atomically writes e under its id unless a row exists that is
	// processed, or unprocessed with no error and claimed at or after
	// staleBefore. It reports whether the caller now owns the event; when it
	// does not, the stored row is returned.
	Claim(ctx context.Context, e entities.WebhookEvent, staleBefore time.Time) (entities.WebhookEvent, bool, error)
	MarkProcessed(ctx context.Context, id string, at time.Time) error
	MarkFailed(ctx context.Context, id string, message string) error
}
