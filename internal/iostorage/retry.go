package iostorage

import (
	"context"
	"log/slog"
	"time"

	"github.com/inslake/inslake/pkg/storage"
	"github.com/inslake/inslake/pkg/table"
)

// retryStore decorates a backend with bounded per-call timeouts and
// retries with backoff for transient failures. Non-transient failures
// (not-found, corrupt data, permission denied) propagate immediately.
type retryStore struct {
	base     storage.Store
	attempts int
	timeout  time.Duration
	backoff  time.Duration
}

func newRetry(base storage.Store, attempts, timeoutSec int) storage.Store {
	if attempts < 1 {
		attempts = 1
	}
	if timeoutSec < 1 {
		timeoutSec = 30
	}
	return &retryStore{
		base:     base,
		attempts: attempts,
		timeout:  time.Duration(timeoutSec) * time.Second,
		backoff:  500 * time.Millisecond,
	}
}

func (r *retryStore) Load(
	ctx context.Context, name string,
) (*table.Table, error) {
	var res *table.Table
	err := r.do(ctx, name, "load", func(callCtx context.Context) error {
		var err error
		res, err = r.base.Load(callCtx, name)
		return err
	})
	return res, err
}

func (r *retryStore) Store(
	ctx context.Context, t *table.Table, name string,
) error {
	return r.do(ctx, name, "store", func(callCtx context.Context) error {
		return r.base.Store(callCtx, t, name)
	})
}

func (r *retryStore) do(
	ctx context.Context,
	name, op string,
	fn func(context.Context) error,
) error {
	var err error
	delay := r.backoff
	for attempt := 1; attempt <= r.attempts; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, r.timeout)
		err = fn(callCtx)
		cancel()

		if err == nil || !storage.IsTransient(err) {
			return err
		}
		if attempt == r.attempts {
			break
		}

		slog.Warn("Transient storage failure, retrying",
			"op", op,
			"table", name,
			"attempt", attempt,
			"error", err,
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return err
}
