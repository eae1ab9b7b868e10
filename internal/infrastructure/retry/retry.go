package retry

import (
	"context"
	"errors"
	"net/url"
	"time"

	"eldercare_billing/internal/logger"
)

// DefaultRetryableStatus are the HTTP statuses treated as transient.
var DefaultRetryableStatus = []int{429, 500, 502, 503, 504}

// StatusCoder is implemented by errors that carry an HTTP status.
type StatusCoder interface {
	HTTPStatus() int
}

// Policy is a bounded exponential backoff: attempt n waits BaseDelay * 2^n.
type Policy struct {
	MaxRetries      int
	BaseDelay       time.Duration
	RetryableStatus []int
	// Sleep replaces the context-aware wait in tests.
	Sleep func(time.Duration)
}

// DefaultPolicy retries 3 times with a 1s base on 429 and 5xx gateway statuses.
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries:      3,
		BaseDelay:       time.Second,
		RetryableStatus: DefaultRetryableStatus,
	}
}

// Delay returns the wait before retry number attempt (0-based).
func (p Policy) Delay(attempt int) time.Duration {
	return p.BaseDelay * time.Duration(1<<attempt)
}

// Retryable reports whether err is a transient failure under the policy.
// Transport errors without an HTTP status are transient unless they come
// from a canceled or expired context.
func (p Policy) Retryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var sc StatusCoder
	if errors.As(err, &sc) {
		status := sc.HTTPStatus()
		for _, s := range p.RetryableStatus {
			if s == status {
				return true
			}
		}
		return false
	}
	var uerr *url.Error
	return errors.As(err, &uerr)
}

// Do runs op until it succeeds, fails with a non-retryable error, the
// retries are exhausted, or ctx is done. The last error of op is returned
// unchanged.
func Do[T any](ctx context.Context, p Policy, op func(ctx context.Context) (T, error)) (T, error) {
	log := logger.WithComponent("retry")
	wait := func(d time.Duration) {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-ctx.Done():
		case <-t.C:
		}
	}
	if p.Sleep != nil {
		wait = p.Sleep
	}

	var (
		result T
		err    error
	)
	for attempt := 0; ; attempt++ {
		result, err = op(ctx)
		if err == nil {
			return result, nil
		}
		if attempt >= p.MaxRetries || !p.Retryable(err) {
			return result, err
		}
		if ctx.Err() != nil {
			log.Warn().Err(err).Int("attempt", attempt+1).Msg("context done, giving up on gateway call")
			return result, err
		}
		delay := p.Delay(attempt)
		log.Warn().
			Err(err).
			Int("attempt", attempt+1).
			Int("max_retries", p.MaxRetries).
			Dur("delay", delay).
			Msg("retrying gateway call")
		wait(delay)
		if ctx.Err() != nil {
			return result, err
		}
	}
}
