package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// clientLimiter tracks one token bucket per caller, keyed by client IP.
// Stale entries are pruned inline on lookup so the map does not grow
// without bound and no background goroutine is needed.
type clientLimiter struct {
	mu        sync.Mutex
	clients   map[string]*clientEntry
	rps       rate.Limit
	burst     int
	lifetime  time.Duration
	lastSweep time.Time
}

type clientEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newClientLimiter(rps rate.Limit, burst int) *clientLimiter {
	return &clientLimiter{
		clients:   make(map[string]*clientEntry),
		rps:       rps,
		burst:     burst,
		lifetime:  3 * time.Minute,
		lastSweep: time.Now(),
	}
}

func (cl *clientLimiter) get(key string) *rate.Limiter {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	now := time.Now()
	if now.Sub(cl.lastSweep) > time.Minute {
		for k, entry := range cl.clients {
			if now.Sub(entry.lastSeen) > cl.lifetime {
				delete(cl.clients, k)
			}
		}
		cl.lastSweep = now
	}

	entry, ok := cl.clients[key]
	if !ok {
		entry = &clientEntry{limiter: rate.NewLimiter(cl.rps, cl.burst)}
		cl.clients[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

// RateLimitMiddleware rejects callers that exceed rps requests per second
// (with the given burst allowance) with 429.
func RateLimitMiddleware(rps float64, burst int) gin.HandlerFunc {
	cl := newClientLimiter(rate.Limit(rps), burst)

	return func(c *gin.Context) {
		if !cl.get(c.ClientIP()).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			c.Abort()
			return
		}
		c.Next()
	}
}
