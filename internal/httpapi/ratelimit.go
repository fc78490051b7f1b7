package httpapi

import (
	"context"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitMsg is returned with every 429.
const RateLimitMsg = "Has excedido el número máximo de solicitudes. Por favor, intenta de nuevo más tarde."

type visitor struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP. Each bucket holds max
// tokens and refills continuously at max per window.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	max      int
	window   time.Duration
	now      func() time.Time
}

// NewRateLimiter builds a limiter allowing max requests per window per IP.
func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Every(window / time.Duration(max)),
		max:      max,
		window:   window,
		now:      time.Now,
	}
}

func (rl *RateLimiter) visitorFor(key string, now time.Time) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{lim: rate.NewLimiter(rl.limit, rl.max)}
		rl.visitors[key] = v
	}
	v.lastSeen = now
	return v.lim
}

// Handler enforces the limit and advertises it through RateLimit-* headers.
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		now := rl.now()
		lim := rl.visitorFor(clientIP(r), now)
		h := w.Header()
		h.Set("RateLimit-Limit", strconv.Itoa(rl.max))
		if !lim.AllowN(now, 1) {
			res := lim.ReserveN(now, 1)
			wait := res.DelayFrom(now)
			res.CancelAt(now)
			h.Set("RateLimit-Remaining", "0")
			h.Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			rateLimitedTotal.Inc()
			WriteFail(w, http.StatusTooManyRequests, RateLimitMsg)
			return
		}
		h.Set("RateLimit-Remaining", strconv.Itoa(int(lim.TokensAt(now))))
		next.ServeHTTP(w, r)
	})
}

// Sweep drops buckets idle for longer than one window.
func (rl *RateLimiter) Sweep() {
	cutoff := rl.now().Add(-rl.window)
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for k, v := range rl.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(rl.visitors, k)
		}
	}
}

// Run sweeps once per window until ctx is done.
func (rl *RateLimiter) Run(ctx context.Context) error {
	t := time.NewTicker(rl.window)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			rl.Sweep()
		}
	}
}

func (rl *RateLimiter) size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.visitors)
}

// clientIP is the transport peer. Forwarded headers are client-controlled and ignored.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
