package middleware

import (
	"net/http"
	"sync"
	"time"

	"blogapi/internal/apperr"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	sweepInterval = time.Minute
	idleEviction  = 3 * time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit caps requests per client IP. Idle clients are swept from the
// map on the request path, at most once per sweepInterval, so the map does
// not grow without bound and no background goroutine is needed.
func RateLimit(limit rate.Limit, burst int) gin.HandlerFunc {
	var mu sync.Mutex
	clients := make(map[string]*clientLimiter)
	lastSweep := time.Now()

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		mu.Lock()
		if now.Sub(lastSweep) > sweepInterval {
			for key, cl := range clients {
				if now.Sub(cl.lastSeen) > idleEviction {
					delete(clients, key)
				}
			}
			lastSweep = now
		}
		cl, ok := clients[ip]
		if !ok {
			cl = &clientLimiter{limiter: rate.NewLimiter(limit, burst)}
			clients[ip] = cl
		}
		cl.lastSeen = now
		mu.Unlock()

		if !cl.limiter.Allow() {
			abort(c, apperr.New("Too many requests from this IP, please try again in an hour!", http.StatusTooManyRequests))
			return
		}
		c.Next()
	}
}
