package httpx

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Limiter is satisfied by both the in-process and the Redis backed limiters.
type Limiter interface {
	Middleware() Middleware
}

// RateLimitMessage is the error text sent with 429 responses. The body follows the
// generation proxy's {success, error} shape so callers can show it unchanged.
const RateLimitMessage = "Too many requests, please try again later"

func writeRateLimited(w http.ResponseWriter, retryAfter time.Duration) {
	secs := int(math.Ceil(retryAfter.Seconds()))
	if secs < 1 {
		secs = 1
	}
	w.Header().Set("Retry-After", strconv.Itoa(secs))
	WriteJSON(w, http.StatusTooManyRequests, map[string]any{"success": false, "error": RateLimitMessage})
}

// RateLimiter is a fixed-window limiter keyed by client address for a single instance.
type RateLimiter struct {
	limit   int
	window  time.Duration
	now     func() time.Time
	mu      sync.Mutex
	windows map[string]*window
}

type window struct {
	count   int
	resetAt time.Time
}

func NewRateLimiter(limit int, per time.Duration) *RateLimiter {
	if limit <= 0 {
		limit = 60
	}
	if per <= 0 {
		per = time.Minute
	}
	return &RateLimiter{limit: limit, window: per, now: time.Now, windows: map[string]*window{}}
}

func (rl *RateLimiter) Middleware() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ok, retry := rl.take(clientKey(r)); !ok {
				writeRateLimited(w, retry)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// take counts one request for key and reports whether it fits the current window,
// and if not, how long until the window resets.
func (rl *RateLimiter) take(key string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	win, ok := rl.windows[key]
	if !ok || !now.Before(win.resetAt) {
		rl.expire(now)
		rl.windows[key] = &window{count: 1, resetAt: now.Add(rl.window)}
		return true, 0
	}
	if win.count >= rl.limit {
		return false, win.resetAt.Sub(now)
	}
	win.count++
	return true, 0
}

// expire drops finished windows; caller holds mu.
func (rl *RateLimiter) expire(now time.Time) {
	for k, win := range rl.windows {
		if !now.Before(win.resetAt) {
			delete(rl.windows, k)
		}
	}
}

// clientKey prefers the first X-Forwarded-For hop, since the dashboard is usually
// served behind a proxy.
func clientKey(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
