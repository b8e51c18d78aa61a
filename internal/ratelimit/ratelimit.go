package ratelimit

import (
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	clientIdleThreshold = 1 * time.Hour
	cleanupInterval     = 30 * time.Minute
)

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP. Each bucket holds
// perMinute tokens and refills evenly across the minute.
type RateLimiter struct {
	mu          sync.Mutex
	perMinute   int
	clients     map[string]*client
	stopCleanup chan struct{}
	stopOnce    sync.Once
}

// NewRateLimiter returns a limiter allowing perMinute requests per IP.
// perMinute <= 0 disables limiting.
func NewRateLimiter(perMinute int) *RateLimiter {
	rl := &RateLimiter{
		perMinute:   perMinute,
		clients:     make(map[string]*client),
		stopCleanup: make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

func (r *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.cleanup(time.Now())
		case <-r.stopCleanup:
			return
		}
	}
}

func (r *RateLimiter) cleanup(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for ip, c := range r.clients {
		if now.Sub(c.lastSeen) > clientIdleThreshold {
			delete(r.clients, ip)
		}
	}
}

func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.stopCleanup) })
}

func (r *RateLimiter) Allow(ip string) bool {
	if r.perMinute <= 0 {
		return true
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	c, exists := r.clients[ip]
	if !exists {
		c = &client{limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(r.perMinute)), r.perMinute)}
		r.clients[ip] = c
	}
	c.lastSeen = time.Now()

	return c.limiter.Allow()
}

// Middleware rejects requests over the limit with 429
func (r *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ip, _, err := net.SplitHostPort(req.RemoteAddr)
		if err != nil {
			// middleware.RealIP leaves a bare address
			ip = req.RemoteAddr
		}

		if !r.Allow(ip) {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "60")
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": false,
				"error":  "rate limit exceeded",
			})
			return
		}

		next.ServeHTTP(w, req)
	})
}
