package web

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/JonMunkholm/catalog-admin/internal/config"
	"golang.org/x/time/rate"
)

// visitorTTL is how long an idle visitor's buckets are kept.
const visitorTTL = 3 * time.Minute

// rateLimiter keeps two token buckets per client IP: a general one for every
// request and a stricter one for requests that call the catalog API.
type rateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor

	general  rate.Limit
	mutation rate.Limit
	burst    int

	stop     chan struct{}
	stopOnce sync.Once
}

type visitor struct {
	general  *rate.Limiter
	mutation *rate.Limiter
	lastSeen time.Time
}

// newRateLimiter creates a limiter from cfg and starts its cleanup loop.
// Call Stop to end the loop.
func newRateLimiter(cfg config.RateLimitConfig) *rateLimiter {
	rl := &rateLimiter{
		visitors: make(map[string]*visitor),
		general:  perMinute(cfg.RequestsPerMinute),
		mutation: perMinute(cfg.MutationLimit),
		burst:    cfg.Burst,
		stop:     make(chan struct{}),
	}
	go rl.cleanup()
	return rl
}

func perMinute(n int) rate.Limit {
	return rate.Limit(float64(n) / 60)
}

// Stop ends the cleanup goroutine. Safe to call more than once.
func (rl *rateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// cleanup removes visitors that have been idle longer than visitorTTL.
func (rl *rateLimiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.mu.Lock()
			for ip, v := range rl.visitors {
				if time.Since(v.lastSeen) > visitorTTL {
					delete(rl.visitors, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}

func (rl *rateLimiter) visitor(ip string) *visitor {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{
			general:  rate.NewLimiter(rl.general, rl.burst),
			mutation: rate.NewLimiter(rl.mutation, max(1, rl.burst/4)),
		}
		rl.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v
}

// middleware limits every request by client IP.
func (rl *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.visitor(clientIP(r)).general.Allow() {
			rl.reject(w, r, rl.general)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// mutationMiddleware additionally limits routes that call the catalog API.
func (rl *rateLimiter) mutationMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.visitor(clientIP(r)).mutation.Allow() {
			rl.reject(w, r, rl.mutation)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *rateLimiter) reject(w http.ResponseWriter, r *http.Request, limit rate.Limit) {
	retry := 60
	if limit > 0 {
		retry = max(1, int(1/float64(limit)))
	}
	w.Header().Set("Retry-After", strconv.Itoa(retry))
	respondError(w, r, errRateLimited, http.StatusTooManyRequests)
}

// clientIP returns the host part of RemoteAddr, which TrustedRealIP has
// already rewritten for trusted proxies.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
