package api

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// RateLimiter is a per-IP token bucket kept as a theoretical arrival time:
// each request pushes the client's clock forward by window/burst, and a
// request is refused once that clock runs more than a full window ahead.
type RateLimiter struct {
	mu       sync.Mutex
	clients  map[string]time.Time
	interval time.Duration // cost of one request
	window   time.Duration
	now      func() time.Time
	stop     chan struct{}
	once     sync.Once
}

// NewRateLimiter allows burst requests per window per IP, refilling one every
// window/burst. A burst of zero disables limiting. Call Close to stop the
// idle-client sweep.
func NewRateLimiter(burst int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]time.Time),
		window:  window,
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	if burst > 0 && window > 0 {
		rl.interval = window / time.Duration(burst)
	}
	go rl.sweepLoop()
	return rl
}

// Close stops the background sweep.
func (rl *RateLimiter) Close() {
	rl.once.Do(func() { close(rl.stop) })
}

// wait returns how long ip must wait before its next request fits. Caller
// holds mu.
func (rl *RateLimiter) wait(ip string, now time.Time) (tat time.Time, d time.Duration) {
	tat = rl.clients[ip]
	if tat.Before(now) {
		tat = now
	}
	return tat, tat.Add(rl.interval).Sub(now) - rl.window
}

// Allow spends one request for ip, reporting whether it fit.
func (rl *RateLimiter) Allow(ip string) bool {
	if rl.interval <= 0 {
		return true
	}
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	tat, d := rl.wait(ip, now)
	if d > 0 {
		return false
	}
	rl.clients[ip] = tat.Add(rl.interval)
	return true
}

// RetryAfter returns whole seconds until ip may send again.
func (rl *RateLimiter) RetryAfter(ip string) int {
	if rl.interval <= 0 {
		return 0
	}
	rl.mu.Lock()
	defer rl.mu.Unlock()

	_, d := rl.wait(ip, rl.now())
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}

func (rl *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(max(rl.window, time.Minute))
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.sweep()
		case <-rl.stop:
			return
		}
	}
}

// sweep forgets clients whose allowance has fully refilled.
func (rl *RateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for ip, tat := range rl.clients {
		if !tat.After(now) {
			delete(rl.clients, ip)
		}
	}
}

// Middleware rejects over-limit clients with 429. It expects RemoteAddr to
// already hold the client address (chi's RealIP runs first).
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.RemoteAddr
		if host, _, err := net.SplitHostPort(ip); err == nil {
			ip = host
		}

		if !rl.Allow(ip) {
			w.Header().Set("Retry-After", strconv.Itoa(rl.RetryAfter(ip)))
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}
