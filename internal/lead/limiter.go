package lead

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitError tells the submitter when they may try again.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("lead: rate limit exceeded, try again in %s", e.RetryAfter.Round(time.Second))
}

// Limiter throttles submissions per key (typically client IP). Each key gets
// a token bucket of burst submissions refilling one per interval.
type Limiter struct {
	mu       sync.Mutex
	perKey   map[string]*rate.Limiter
	interval time.Duration
	burst    int
}

// NewLimiter creates a per-key limiter allowing burst submissions and then
// one per interval.
func NewLimiter(interval time.Duration, burst int) *Limiter {
	if burst < 1 {
		burst = 1
	}
	return &Limiter{
		perKey:   make(map[string]*rate.Limiter),
		interval: interval,
		burst:    burst,
	}
}

// Allow consumes one submission slot for the key. When the bucket is empty
// it returns a RateLimitError carrying the wait until the next slot.
func (l *Limiter) Allow(key string) error {
	l.mu.Lock()
	lim, ok := l.perKey[key]
	if !ok {
		lim = rate.NewLimiter(rate.Every(l.interval), l.burst)
		l.perKey[key] = lim
	}
	l.mu.Unlock()

	r := lim.Reserve()
	if delay := r.Delay(); delay > 0 {
		r.Cancel()
		return &RateLimitError{RetryAfter: delay}
	}
	return nil
}
