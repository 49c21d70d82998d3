package auth

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// rateLimiter keeps a token bucket per user.
type rateLimiter struct {
	mu       sync.Mutex
	limiters map[uint]*rate.Limiter
	rate     rate.Limit
	burst    int
}

func (rl *rateLimiter) getLimiter(userID uint) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	// Bound memory under churn; buckets refill quickly enough that a reset
	// only grants one extra burst.
	if len(rl.limiters) > 10000 {
		rl.limiters = make(map[uint]*rate.Limiter)
	}

	limiter, exists := rl.limiters[userID]
	if !exists {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters[userID] = limiter
	}

	return limiter
}

// RateLimitMiddleware limits bursts of requests per authenticated user.
// It must be used AFTER AuthMiddleware.
func RateLimitMiddleware(requestsPerSecond float64, burst int) gin.HandlerFunc {
	rl := &rateLimiter{
		limiters: make(map[uint]*rate.Limiter),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
	}

	return func(c *gin.Context) {
		userID, exists := c.Get("userID")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		if !rl.getLimiter(userID.(uint)).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			return
		}

		c.Next()
	}
}
