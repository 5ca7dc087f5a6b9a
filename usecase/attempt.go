package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/satriahrh/gerch/domain"
	"github.com/satriahrh/gerch/utils/log"
	"github.com/satriahrh/gerch/utils/metrics"
)

// attempt runs one provider call under its own timeout and folds every
// outcome, panics included, into a Result. Errors never escape.
func attempt[T any](ctx context.Context, provider string, timeout time.Duration, call func(context.Context) (T, error)) (res domain.Result[T]) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			res = domain.Failed[T](fmt.Sprintf("panic: %v", r))
		}
		metrics.ProviderCalls.WithLabelValues(provider, res.Status.String()).Inc()
		metrics.ProviderLatency.WithLabelValues(provider).Observe(time.Since(start).Seconds())
		if res.Status == domain.StatusFailed {
			log.WithCtx(ctx).Warn("provider call failed",
				zap.String("provider", provider),
				zap.String("reason", res.Reason),
				zap.Duration("elapsed", time.Since(start)))
		}
	}()

	v, err := call(ctx)
	switch {
	case err == nil:
		return domain.Success(v)
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrInvalidInput):
		return domain.Absent[T]()
	case errors.Is(err, context.DeadlineExceeded):
		return domain.Failed[T]("timeout")
	default:
		return domain.Failed[T](err.Error())
	}
}
