package ingest

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"time"
)

// StatusError reports a non-2xx response from the catalog source.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d %s", e.Code, http.StatusText(e.Code))
}

// Attempt performs one try. A nil error means success; status is the HTTP status seen, or 0
// when the request never produced a response.
type Attempt func(ctx context.Context) (status int, err error)

// Policy decides how many times an Attempt runs and how long to wait between runs.
type Policy struct {
	Attempts  int
	Backoff   func(attempt int) time.Duration
	Retryable func(status int, err error) bool
	// Sleep waits for d or until ctx is done. Nil uses a timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

// DefaultPolicy makes 3 attempts with 2^i seconds plus up to 800ms of jitter between them,
// retrying rate limits and transport failures.
func DefaultPolicy() Policy {
	return Policy{
		Attempts:  3,
		Backoff:   ExponentialJitter(time.Second, 800*time.Millisecond),
		Retryable: RetryRateLimitedOrTransport,
	}
}

// ExponentialJitter returns base*2^attempt plus a random duration in [0, jitter).
func ExponentialJitter(base, jitter time.Duration) func(int) time.Duration {
	return func(attempt int) time.Duration {
		d := base * time.Duration(1<<attempt)
		if jitter > 0 {
			d += time.Duration(rand.Int63n(int64(jitter)))
		}
		return d
	}
}

// RetryRateLimitedOrTransport retries HTTP 429 and failures that produced no response.
func RetryRateLimitedOrTransport(status int, err error) bool {
	if status == http.StatusTooManyRequests {
		return true
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code == http.StatusTooManyRequests
	}
	return status == 0 && err != nil
}

// Run calls fn until it succeeds, the policy gives up, or ctx is done. It returns how many
// attempts were made with the last status and error. Once ctx is done the error is ctx.Err().
func (p Policy) Run(ctx context.Context, fn Attempt) (attempts, status int, err error) {
	n := p.Attempts
	if n < 1 {
		n = 1
	}
	for i := 0; i < n; i++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return attempts, status, ctxErr
		}
		attempts = i + 1
		status, err = fn(ctx)
		if err == nil {
			return attempts, status, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return attempts, status, ctxErr
		}
		if i == n-1 || !p.retryable(status, err) {
			return attempts, status, err
		}
		if sleepErr := p.sleep(ctx, p.backoff(i)); sleepErr != nil {
			return attempts, status, sleepErr
		}
	}
	return attempts, status, err
}

func (p Policy) retryable(status int, err error) bool {
	if p.Retryable == nil {
		return RetryRateLimitedOrTransport(status, err)
	}
	return p.Retryable(status, err)
}

func (p Policy) backoff(attempt int) time.Duration {
	if p.Backoff == nil {
		return 0
	}
	return p.Backoff(attempt)
}

func (p Policy) sleep(ctx context.Context, d time.Duration) error {
	if p.Sleep != nil {
		return p.Sleep(ctx, d)
	}
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
