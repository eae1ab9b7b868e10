package retry

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statusErr int

func (e statusErr) Error() string   { return fmt.Sprintf("status %d", int(e)) }
func (e statusErr) HTTPStatus() int { return int(e) }

func recordingPolicy(waits *[]time.Duration) Policy {
	p := DefaultPolicy()
	p.Sleep = func(d time.Duration) { *waits = append(*waits, d) }
	return p
}

func TestDo(t *testing.T) {
	t.Run("succeeds on third attempt after 503s", func(t *testing.T) {
		var waits []time.Duration
		calls := 0
		got, err := Do(context.Background(), recordingPolicy(&waits), func(ctx context.Context) (string, error) {
			calls++
			if calls < 3 {
				return "", statusErr(503)
			}
			return "ok", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "ok", got)
		assert.Equal(t, 3, calls)
		assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, waits)
	})

	t.Run("404 never retries", func(t *testing.T) {
		var waits []time.Duration
		calls := 0
		_, err := Do(context.Background(), recordingPolicy(&waits), func(ctx context.Context) (int, error) {
			calls++
			return 0, statusErr(404)
		})
		var se statusErr
		require.True(t, errors.As(err, &se))
		assert.Equal(t, 404, int(se))
		assert.Equal(t, 1, calls)
		assert.Empty(t, waits)
	})

	t.Run("exhaustion returns last error", func(t *testing.T) {
		var waits []time.Duration
		calls := 0
		_, err := Do(context.Background(), recordingPolicy(&waits), func(ctx context.Context) (int, error) {
			calls++
			if calls == 4 {
				return 0, statusErr(504)
			}
			return 0, statusErr(429)
		})
		var se statusErr
		require.True(t, errors.As(err, &se))
		assert.Equal(t, 504, int(se))
		assert.Equal(t, 4, calls)
		assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, waits)
	})

	t.Run("transport errors are transient", func(t *testing.T) {
		var waits []time.Duration
		calls := 0
		_, err := Do(context.Background(), recordingPolicy(&waits), func(ctx context.Context) (int, error) {
			calls++
			if calls == 1 {
				return 0, &url.Error{Op: "Get", URL: "https://sandbox.asaas.com", Err: errors.New("connection reset")}
			}
			return 1, nil
		})
		require.NoError(t, err)
		assert.Equal(t, []time.Duration{time.Second}, waits)
	})

	t.Run("plain errors are not retried", func(t *testing.T) {
		var waits []time.Duration
		boom := errors.New("boom")
		_, err := Do(context.Background(), recordingPolicy(&waits), func(ctx context.Context) (int, error) {
			return 0, boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Empty(t, waits)
	})

	t.Run("canceled context stops before any wait", func(t *testing.T) {
		var waits []time.Duration
		calls := 0
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := Do(ctx, recordingPolicy(&waits), func(ctx context.Context) (int, error) {
			calls++
			return 0, &url.Error{Op: "Post", URL: "https://api", Err: ctx.Err()}
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
		assert.Empty(t, waits)
	})

	t.Run("context done while retrying a 503 stops the loop", func(t *testing.T) {
		var waits []time.Duration
		calls := 0
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		p := recordingPolicy(&waits)
		p.Sleep = func(d time.Duration) {
			waits = append(waits, d)
			cancel()
		}
		_, err := Do(ctx, p, func(ctx context.Context) (int, error) {
			calls++
			return 0, statusErr(503)
		})
		var se statusErr
		require.True(t, errors.As(err, &se))
		assert.Equal(t, 1, calls)
		assert.Equal(t, []time.Duration{time.Second}, waits)
	})

	t.Run("default wait returns early when the context is done", func(t *testing.T) {
		p := DefaultPolicy()
		p.BaseDelay = time.Hour
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		start := time.Now()
		_, err := Do(ctx, p, func(ctx context.Context) (int, error) {
			return 0, statusErr(502)
		})
		assert.Error(t, err)
		assert.Less(t, time.Since(start), time.Minute)
	})
}

func TestPolicy_Retryable(t *testing.T) {
	p := DefaultPolicy()
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"gateway 503", statusErr(503), true},
		{"gateway 408", statusErr(408), false},
		{"connection reset", &url.Error{Op: "Get", URL: "https://api", Err: errors.New("connection reset")}, true},
		{"canceled transport", &url.Error{Op: "Get", URL: "https://api", Err: context.Canceled}, false},
		{"deadline transport", &url.Error{Op: "Get", URL: "https://api", Err: context.DeadlineExceeded}, false},
		{"bare deadline", fmt.Errorf("asaas: %w", context.DeadlineExceeded), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := p.Retryable(tc.err); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
