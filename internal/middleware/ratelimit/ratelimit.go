// Package ratelimit caps requests per caller in fixed one-minute windows.
// The stub gateway uses it to reproduce the backend's quota errors.
package ratelimit

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

type window struct {
	start time.Time
	count int
}

type Limiter struct {
	mu      sync.Mutex
	limit   int
	period  time.Duration
	clients map[string]*window
	now     func() time.Time
}

// NewLimiter allows perMinute requests per key. A non-positive value
// disables limiting.
func NewLimiter(perMinute int) *Limiter {
	return &Limiter{
		limit:   perMinute,
		period:  time.Minute,
		clients: make(map[string]*window),
		now:     time.Now,
	}
}

func (l *Limiter) Allow(key string) bool {
	if l.limit <= 0 {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.clients[key]
	if !ok || now.Sub(w.start) >= l.period {
		l.dropStaleLocked(now)
		l.clients[key] = &window{start: now, count: 1}
		return true
	}
	w.count++
	return w.count <= l.limit
}

func (l *Limiter) ActiveClients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

func (l *Limiter) dropStaleLocked(now time.Time) {
	for key, w := range l.clients {
		if now.Sub(w.start) >= l.period {
			delete(l.clients, key)
		}
	}
}

// Middleware rejects callers over the limit with 429.
func (l *Limiter) Middleware(keyFn func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow(keyFn(r)) {
				w.Header().Set("Retry-After", strconv.Itoa(int(l.period.Seconds())))
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientKey keys GET requests by their user parameter and everything else
// by remote host.
func ClientKey(r *http.Request) string {
	if user := r.URL.Query().Get("user"); user != "" {
		return "user:" + user
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}
