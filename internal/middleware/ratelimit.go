package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/hongminglow/blogcart-be/internal/http/respond"
)

// RateLimiter throttles requests per client IP. Used on the credential
// endpoints so password guessing cannot run at line rate.
//
// Clients are keyed on the connection's remote address, which assumes the
// server terminates client connections directly. Behind a reverse proxy
// every request shares the proxy's address and collapses into one bucket;
// deployments like that need the proxy to enforce the limit (or forward a
// trusted client-address header and terminate untrusted values) before
// this middleware is useful.
type RateLimiter struct {
	limit rate.Limit
	burst int

	mu       sync.Mutex
	limiters map[string]*clientLimiter
}

type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// NewRateLimiter creates a limiter allowing perMinute requests per client
// with the given burst.
func NewRateLimiter(perMinute, burst int) *RateLimiter {
	return &RateLimiter{
		limit:    rate.Limit(float64(perMinute) / 60.0),
		burst:    burst,
		limiters: make(map[string]*clientLimiter),
	}
}

// Middleware rejects over-limit requests with 429.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(clientIP(r)) {
			respond.Message(w, http.StatusTooManyRequests, "Too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) allow(client string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cl, ok := rl.limiters[client]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.limiters[client] = cl
	}
	cl.lastAccess = time.Now()

	// Opportunistic cleanup keeps the map from growing with one-shot
	// clients.
	if len(rl.limiters) > 10_000 {
		cutoff := time.Now().Add(-10 * time.Minute)
		for key, candidate := range rl.limiters {
			if candidate.lastAccess.Before(cutoff) {
				delete(rl.limiters, key)
			}
		}
	}

	return cl.limiter.Allow()
}

// clientIP keys the bucket on the peer address only. See the RateLimiter
// note about reverse proxies.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
