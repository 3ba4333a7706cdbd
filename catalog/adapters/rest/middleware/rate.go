package middleware

import (
	"context"
	"net/http"
	"time"
)

// RateLimiter lets through about rps requests per second; the rest wait for
// a token until their request context ends.
type RateLimiter struct {
	tokens chan struct{}
}

// NewRateLimiter refills tokens until ctx is done.
func NewRateLimiter(ctx context.Context, rps int) *RateLimiter {
	if rps <= 0 {
		rps = 1
	}
	rl := &RateLimiter{
		tokens: make(chan struct{}, 1),
	}
	rl.tokens <- struct{}{}

	interval := time.Second / time.Duration(rps)
	if interval <= 0 {
		interval = time.Nanosecond
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				select {
				case rl.tokens <- struct{}{}:
				default:
				}
			}
		}
	}()

	return rl
}

func (l *RateLimiter) acquire(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case <-l.tokens:
		return true
	}
}

func (l *RateLimiter) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.acquire(r.Context()) {
			http.Error(w, http.StatusText(http.StatusGatewayTimeout), http.StatusGatewayTimeout)
			return
		}
		next.ServeHTTP(w, r)
	})
}
