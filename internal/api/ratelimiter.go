package api

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	sessionKeyPrefix = "session:"
	clientKeyPrefix  = "client:"

	// limiterIdleAfter is how long an unused bucket is kept before a sweep
	// drops it.
	limiterIdleAfter = 10 * time.Minute
)

// RateLimiter decides whether a request identified by key may proceed.
type RateLimiter interface {
	Allow(key string) bool
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedLimiter keeps one token bucket per key, so a busy session or client
// does not throttle the others. Session buckets are dropped by ForgetSession
// and every bucket is swept once it has been idle for a while.
type KeyedLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	limit     rate.Limit
	burst     int
	now       func() time.Time
	lastSweep time.Time
}

// NewKeyedLimiter creates a KeyedLimiter. Non-positive values fall back to
// one request per second with a burst of one.
func NewKeyedLimiter(ratePerSecond float64, burst int) *KeyedLimiter {
	if ratePerSecond <= 0 {
		ratePerSecond = 1
	}
	if burst <= 0 {
		burst = 1
	}

	return &KeyedLimiter{
		buckets:   make(map[string]*bucket),
		limit:     rate.Limit(ratePerSecond),
		burst:     burst,
		now:       time.Now,
		lastSweep: time.Now(),
	}
}

// Allow consumes a token from key's bucket.
func (l *KeyedLimiter) Allow(key string) bool {
	if l == nil {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= limiterIdleAfter {
		l.sweepLocked(now)
	}

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1)
}

// ForgetSession drops the bucket of a session that left storage.
func (l *KeyedLimiter) ForgetSession(id string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.buckets, sessionKeyPrefix+id)
}

// Len reports how many buckets are tracked.
func (l *KeyedLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func (l *KeyedLimiter) sweepLocked(now time.Time) {
	l.lastSweep = now
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) >= limiterIdleAfter {
			delete(l.buckets, key)
		}
	}
}

// limiterKey buckets session routes by session id and everything else,
// including session creation, by client address.
func limiterKey(r *http.Request) string {
	if rest, ok := strings.CutPrefix(r.URL.Path, "/api/sessions/"); ok {
		if id, _, _ := strings.Cut(rest, "/"); id != "" {
			return sessionKeyPrefix + id
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return clientKeyPrefix + host
}

func rateLimitMiddleware(limiter RateLimiter, next http.Handler) http.Handler {
	if limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if limiter.Allow(limiterKey(r)) {
			next.ServeHTTP(w, r)
			return
		}
		writeError(w, http.StatusTooManyRequests, "Too many requests", "rate limit exceeded, please retry shortly")
	})
}
