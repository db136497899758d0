package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/paperly/paperly/internal/pkg/response"
)

// RateLimit enforces a minimum interval between calls to the wrapped route,
// keyed per caller. Authenticated requests key on the user id so one user
// behind a NAT cannot starve the rest of it.
func RateLimit(minInterval time.Duration) gin.HandlerFunc {
	var mu sync.Mutex
	last := make(map[string]time.Time)
	return func(c *gin.Context) {
		key := c.ClientIP()
		if uid := c.GetString(ContextUserIDKey); uid != "" {
			key = uid
		}
		key += "|" + c.FullPath()

		mu.Lock()
		now := time.Now()
		prev, seen := last[key]
		if seen && now.Sub(prev) < minInterval {
			mu.Unlock()
			response.Error(c, http.StatusTooManyRequests, "too_many_requests", "slow down")
			c.Abort()
			return
		}
		last[key] = now
		if len(last) > 8192 {
			for k, t := range last {
				if now.Sub(t) > minInterval {
					delete(last, k)
				}
			}
		}
		mu.Unlock()
		c.Next()
	}
}
