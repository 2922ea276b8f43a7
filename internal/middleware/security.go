package middleware

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/afetlink/afetlink-backend/pkg/clientip"
)

// SecurityHeaders sets security-related response headers.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'self'")
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		next.ServeHTTP(w, r)
	})
}

// --- Sign-in rate limiting (per-IP token bucket, 1 req/5s, burst 3) ---

var (
	signInEntries    = make(map[string]*limiterEntry)
	signInEntriesMu  sync.Mutex
	signInCleanupRun bool
)

const (
	signInRateLimitEvery  = 5 * time.Second
	signInRateLimitBurst  = 3
	signInCleanupInterval = 5 * time.Minute
	signInLimiterTTL      = 30 * time.Minute
)

type limiterEntry struct {
	limiter *rate.Limiter
	lastUse time.Time
}

func getSignInLimiter(ip string) *rate.Limiter {
	signInEntriesMu.Lock()
	defer signInEntriesMu.Unlock()
	startSignInCleanupOnce()
	e, ok := signInEntries[ip]
	if !ok {
		e = &limiterEntry{
			limiter: rate.NewLimiter(rate.Every(signInRateLimitEvery), signInRateLimitBurst),
			lastUse: time.Now(),
		}
		signInEntries[ip] = e
	}
	e.lastUse = time.Now()
	return e.limiter
}

func startSignInCleanupOnce() {
	if signInCleanupRun {
		return
	}
	signInCleanupRun = true
	go func() {
		ticker := time.NewTicker(signInCleanupInterval)
		defer ticker.Stop()
		for range ticker.C {
			signInEntriesMu.Lock()
			now := time.Now()
			for ip, e := range signInEntries {
				if now.Sub(e.lastUse) > signInLimiterTTL {
					delete(signInEntries, ip)
				}
			}
			signInEntriesMu.Unlock()
		}
	}()
}

// SignInRateLimit applies a stricter limit to the sign-in route only, slowing
// credential-stuffing against staff accounts. Use after RateLimitMiddleware.
func SignInRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/sign-in" {
			next.ServeHTTP(w, r)
			return
		}
		ip := clientip.RealClientIP(r)
		if !getSignInLimiter(ip).Allow() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"message":"Too many sign-in attempts. Please try again later."}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}
