package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimit throttles requests per client IP with a token bucket. Meant for
// the auth endpoints so a single host cannot hammer signup with code
// requests. Idle buckets are evicted after an hour so the map does not grow
// without bound.
func RateLimit(limit rate.Limit, burst int) gin.HandlerFunc {
	type bucket struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}

	var (
		mu      sync.Mutex
		buckets = make(map[string]*bucket)
	)

	const idleTTL = time.Hour

	take := func(ip string) bool {
		mu.Lock()
		defer mu.Unlock()

		now := time.Now()
		b, ok := buckets[ip]
		if !ok {
			b = &bucket{limiter: rate.NewLimiter(limit, burst)}
			buckets[ip] = b

			for key, old := range buckets {
				if now.Sub(old.lastSeen) > idleTTL {
					delete(buckets, key)
				}
			}
		}
		b.lastSeen = now
		return b.limiter.Allow()
	}

	return func(c *gin.Context) {
		if !take(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			c.Abort()
			return
		}
		c.Next()
	}
}
