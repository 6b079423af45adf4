package catalog

import (
	"context"
	"math"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"
)

// FetchRetryError is returned when every attempt against a supplier endpoint failed.
type FetchRetryError struct {
	URL        string
	Attempts   int
	LastStatus int
	LastError  error
}

func (e *FetchRetryError) Error() string {
	msg := "failed to fetch " + e.URL + " after " + strconv.Itoa(e.Attempts) + " attempts"
	if e.LastStatus != 0 {
		msg += " (HTTP " + strconv.Itoa(e.LastStatus) + ")"
	}
	if e.LastError != nil {
		msg += ": " + e.LastError.Error()
	}
	return msg
}

func (e *FetchRetryError) Unwrap() error { return e.LastError }

// IsRetryableStatus reports whether a response status is worth retrying (429, 5xx).
func IsRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || (status >= 500 && status < 600)
}

// backoff returns the exponential delay for attempt with 0-25% jitter.
func backoff(attempt int, initial, max time.Duration, factor float64) time.Duration {
	delay := float64(initial) * math.Pow(factor, float64(attempt))
	delay = math.Min(delay, float64(max))
	return time.Duration(delay + rand.Float64()*0.25*delay)
}

// retryDelay picks the wait before the next attempt. A 429 honours Retry-After
// in seconds and otherwise backs off faster than a server error.
func retryDelay(attempt int, status int, retryAfter string, cfg HTTPSourceConfig) time.Duration {
	if status == http.StatusTooManyRequests {
		if seconds, err := strconv.Atoi(retryAfter); err == nil && seconds > 0 {
			return time.Duration(seconds)*time.Second + time.Duration(rand.Int64N(int64(time.Second)))
		}
		return backoff(attempt, cfg.InitialBackoff, cfg.MaxBackoff, 3)
	}
	return backoff(attempt, cfg.InitialBackoff, cfg.MaxBackoff, 2)
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
