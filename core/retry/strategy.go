package retry

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	sethretry "github.com/sethvargo/go-retry"

	"github.com/openjwt/jwtvalidator/core/logger"
)

// Category constants used in Detail.Category.
const (
	CategoryNetwork        = "network"
	Category5xx            = "5xx"
	Category4xx            = "4xx"
	CategoryInvalidContent = "invalid-content"
	CategoryInterrupted    = "interrupted"
)

// Options tunes the exponential-backoff-with-jitter policy. Zero value
// options are replaced by DefaultOptions' fields where unset via
// Options.withDefaults.
type Options struct {
	Enabled           bool
	MaxAttempts       int
	InitialDelay      time.Duration
	MaxDelay          time.Duration
	BackoffMultiplier float64 // informational; go-retry's exponential backoff doubles per step
	JitterFactor      float64 // 0.1 == ±10%

	// Logger receives a warning once all attempts are exhausted. Nil logs
	// nothing.
	Logger *slog.Logger
}

func noopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// DefaultOptions matches spec.md §4.4 and §6's documented defaults.
func DefaultOptions() Options {
	return Options{
		Enabled:           true,
		MaxAttempts:       5,
		InitialDelay:      time.Second,
		MaxDelay:          30 * time.Second,
		BackoffMultiplier: 2.0,
		JitterFactor:      0.1,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = d.MaxAttempts
	}
	if o.InitialDelay <= 0 {
		o.InitialDelay = d.InitialDelay
	}
	if o.MaxDelay <= 0 {
		o.MaxDelay = d.MaxDelay
	}
	if o.JitterFactor <= 0 {
		o.JitterFactor = d.JitterFactor
	}
	if o.Logger == nil {
		o.Logger = noopLogger()
	}
	return o
}

// IsRetryable reports whether a failure of the given category should be
// retried, per spec.md §4.4: network/5xx/generic-IO are retryable; 4xx is
// not retryable except 408 and 429 (callers should pass CategoryNetwork
// for those two codes rather than Category4xx).
func IsRetryable(category string) bool {
	switch category {
	case CategoryNetwork, Category5xx:
		return true
	default:
		return false
	}
}

// errRetryableAttempt is the sentinel error go-retry sees for a failed-but-
// retryable attempt; it never escapes Execute.
var errRetryableAttempt = errors.New("retry: attempt failed, retrying")

// Execute runs op under the exponential-backoff-with-jitter policy
// described by opts. op performs exactly one attempt and returns a
// Result[T]; Execute inspects Result.Detail.Category to decide whether to
// retry. Execute never panics or returns an error itself — every outcome,
// including ctx cancellation, is reported through the returned Result.
func Execute[T any](ctx context.Context, opts Options, op func(context.Context) Result[T]) Result[T] {
	opts = opts.withDefaults()
	start := time.Now()

	if !opts.Enabled {
		res := op(ctx)
		res.ResponseTime = time.Since(start)
		return res
	}

	backoff, err := sethretry.NewExponential(opts.InitialDelay)
	if err != nil {
		// InitialDelay was validated by withDefaults to be positive, so this
		// should not happen; fail closed rather than attempt zero retries.
		res := op(ctx)
		res.ResponseTime = time.Since(start)
		return res
	}
	backoff = sethretry.WithMaxRetries(uint64(opts.MaxAttempts-1), backoff)
	backoff = sethretry.WithCappedDuration(opts.MaxDelay, backoff)
	if opts.JitterFactor > 0 {
		backoff = sethretry.WithJitterPercent(uint64(opts.JitterFactor*100), backoff)
	}

	attempts := 0
	anyFailed := false
	var last Result[T]

	runErr := sethretry.Do(ctx, backoff, func(ctx context.Context) error {
		attempts++
		last = op(ctx)

		if last.State == Error && last.Detail != nil && IsRetryable(last.Detail.Category) {
			anyFailed = true
			return sethretry.RetryableError(errRetryableAttempt)
		}
		return nil
	})

	last.RetryMetrics = &Metrics{Attempts: attempts, TotalElapsed: time.Since(start)}
	last.ResponseTime = time.Since(start)

	if ctx.Err() != nil && last.State == Error {
		last.Detail = &Detail{Category: CategoryInterrupted, Message: ctx.Err().Error()}
		opts.Logger.Warn("retry: interrupted", logger.Attempt(attempts), logger.Error(ctx.Err()))
		return last
	}

	if anyFailed && last.State != Error {
		last.State = Recovered
	}

	if last.State == Error {
		var detail string
		if last.Detail != nil {
			detail = last.Detail.Message
		}
		opts.Logger.Warn("retry: attempts exhausted",
			logger.Attempt(attempts),
			slog.String("category", detailCategory(last.Detail)),
			slog.String("detail", detail))
	}

	_ = runErr // final outcome is always carried by `last`, per package contract
	return last
}

func detailCategory(d *Detail) string {
	if d == nil {
		return ""
	}
	return d.Category
}
