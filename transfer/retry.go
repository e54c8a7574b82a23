package transfer

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryPolicy bounds how often a single part operation (part-URL request plus
// the PUT it authorizes) may be attempted. The zero value and NoRetry() both
// mean one attempt: presigned URLs are short-lived, so a retried part always
// requests a fresh URL rather than replaying a stale one.
type RetryPolicy struct {
	MaxAttempts     uint64
	InitialInterval time.Duration
}

func NoRetry() RetryPolicy { return RetryPolicy{MaxAttempts: 1} }

// Execute runs op under the policy. Context cancellation stops the retry loop
// immediately and is returned as-is.
func (p RetryPolicy) Execute(ctx context.Context, op backoff.Operation) error {
	if p.MaxAttempts <= 1 {
		return op()
	}

	bo := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		bo.InitialInterval = p.InitialInterval
	}
	return backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(bo, p.MaxAttempts-1), ctx))
}
