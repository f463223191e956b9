package middleware

import (
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"github.com/contabildrive/drive-server/internal/api/http/handler"
)

// RateLimit applies a per-IP token bucket to every request.
type RateLimit struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

// NewRateLimit creates a per-IP limiter allowing rps requests per second
// with the given burst.
func NewRateLimit(rps float64, burst int) *RateLimit {
	return &RateLimit{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

func (m *RateLimit) limiter(ip string) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.limiters[ip]
	if !ok {
		l = rate.NewLimiter(m.rps, m.burst)
		m.limiters[ip] = l
	}
	return l
}

// Handle rejects requests exceeding the caller's bucket with 429.
func (m *RateLimit) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.limiter(handler.ClientIP(r)).Allow() {
			handler.WriteError(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}
