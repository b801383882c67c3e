package server

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// RateLimiter allows a fixed number of requests per client IP in each
// one-minute window.
type RateLimiter struct {
	mu       sync.Mutex
	clients  map[string]*clientWindow
	rate     int
	window   time.Duration
	cleanup  time.Duration
	now      func() time.Time
	stopOnce sync.Once
	stopChan chan struct{}
}

type clientWindow struct {
	tokens int
	start  time.Time
}

// RateLimiterConfig holds configuration for the rate limiter.
type RateLimiterConfig struct {
	// RequestsPerMinute is the per-client budget. Default: 120.
	RequestsPerMinute int
	// CleanupInterval is how often idle clients are forgotten. Default: 5m.
	CleanupInterval time.Duration
}

// DefaultRateLimiterConfig returns the default rate limiter configuration.
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		RequestsPerMinute: 120,
		CleanupInterval:   5 * time.Minute,
	}
}

// NewRateLimiter creates a limiter and starts its cleanup goroutine.
//
// Parameters:
//   - cfg: Requests allowed per window and the idle eviction interval.
//
// Returns:
//   - *RateLimiter: The running limiter; call Stop to release it.
func NewRateLimiter(cfg RateLimiterConfig) *RateLimiter {
	def := DefaultRateLimiterConfig()
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = def.RequestsPerMinute
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = def.CleanupInterval
	}

	rl := &RateLimiter{
		clients:  make(map[string]*clientWindow),
		rate:     cfg.RequestsPerMinute,
		window:   time.Minute,
		cleanup:  cfg.CleanupInterval,
		now:      time.Now,
		stopChan: make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

// Allow reports whether a request from clientIP fits in its window, and
// counts it if so.
//
// Parameters:
//   - clientIP: The client key, as returned by getClientIP.
//
// Returns:
//   - bool: false once the client exceeded its budget for the window.
func (rl *RateLimiter) Allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	c, ok := rl.clients[clientIP]
	if !ok || now.Sub(c.start) >= rl.window {
		rl.clients[clientIP] = &clientWindow{tokens: rl.rate - 1, start: now}
		return true
	}
	if c.tokens > 0 {
		c.tokens--
		return true
	}
	return false
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.cleanup)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.evictIdle()
		case <-rl.stopChan:
			return
		}
	}
}

func (rl *RateLimiter) evictIdle() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	now := rl.now()
	for ip, c := range rl.clients {
		if now.Sub(c.start) > 2*rl.window {
			delete(rl.clients, ip)
		}
	}
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopChan) })
}

// RateLimitMiddleware rejects requests over budget.
//
// Parameters:
//   - rl: The limiter consulted for every request.
//   - next: The handler reached by admitted requests.
//
// Returns:
//   - http.HandlerFunc: A handler answering 429 with Retry-After when the
//     client is over budget.
func RateLimitMiddleware(rl *RateLimiter, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !rl.Allow(getClientIP(r)) {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "60")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"Too Many Requests","message":"Rate limit exceeded. Please try again later."}`))
			return
		}
		next(w, r)
	}
}

// getClientIP returns the first X-Forwarded-For address, then X-Real-IP,
// then RemoteAddr without its port.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return strings.Trim(r.RemoteAddr, "[]")
	}
	return host
}
