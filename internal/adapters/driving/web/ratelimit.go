package web

import (
	"math"
	"net/http"
	"strconv"

	"golang.org/x/time/rate"
)

const (
	// DefaultBurst is the bucket size used when throttling without a configured burst.
	DefaultBurst = 20

	// HeaderRetryAfter is the retry-after header (seconds).
	HeaderRetryAfter = "Retry-After"
)

// Limiter throttles requests with a token bucket shared by all clients.
// A nil Limiter admits everything.
type Limiter struct {
	bucket *rate.Limiter
}

// NewLimiter returns a limiter admitting perSecond requests on average with
// bursts of up to burst. It returns nil when perSecond is not positive.
func NewLimiter(perSecond float64, burst int) *Limiter {
	if perSecond <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = DefaultBurst
	}
	return &Limiter{bucket: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

// Allow reports whether a request may proceed now.
func (l *Limiter) Allow() bool {
	if l == nil {
		return true
	}
	return l.bucket.Allow()
}

// retryAfter returns the whole seconds until a token is available.
func (l *Limiter) retryAfter() int {
	secs := 1 / float64(l.bucket.Limit())
	return int(math.Max(1, math.Ceil(secs)))
}

// Middleware rejects requests over the limit with 429 Too Many Requests.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	if l == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow() {
			w.Header().Set(HeaderRetryAfter, strconv.Itoa(l.retryAfter()))
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
