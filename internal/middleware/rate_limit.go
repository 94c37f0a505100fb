package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/fastcrm/fastcrm/internal/constants"
	"github.com/fastcrm/fastcrm/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimiter is an in-memory sliding window limiter keyed by client
// ip. Good enough for a single instance; multi-instance deployments
// would move this into redis.
type RateLimiter struct {
	tokens     map[string][]time.Time
	maxRequest int
	duration   time.Duration
	mu         sync.Mutex
}

func NewRateLimiter(maxRequest int, duration time.Duration) *RateLimiter {
	return &RateLimiter{
		tokens:     make(map[string][]time.Time),
		maxRequest: maxRequest,
		duration:   duration,
	}
}

// Allow records an attempt for the key and reports whether it fits in
// the window. The second return value is the remaining allowance.
func (rl *RateLimiter) Allow(key string, now time.Time) (bool, int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.cleanup(now)

	tokens := rl.tokens[key]
	if len(tokens) >= rl.maxRequest {
		return false, 0
	}

	rl.tokens[key] = append(tokens, now)
	return true, rl.maxRequest - len(tokens) - 1
}

func (rl *RateLimiter) cleanup(now time.Time) {
	for key, tokens := range rl.tokens {
		var valid []time.Time
		for _, t := range tokens {
			if now.Sub(t) <= rl.duration {
				valid = append(valid, t)
			}
		}
		if len(valid) > 0 {
			rl.tokens[key] = valid
		} else {
			delete(rl.tokens, key)
		}
	}
}

// RateLimit limits requests per client ip within a sliding window.
// Applied to the credential endpoints to slow brute forcing.
func RateLimit(maxRequest int, duration time.Duration) gin.HandlerFunc {
	limiter := NewRateLimiter(maxRequest, duration)

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		ok, remaining := limiter.Allow(ip, now)
		if !ok {
			logger.GetLogger().Warn("rate limit exceeded",
				zap.String("client_ip", ip),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Int("max_requests", maxRequest),
				zap.Duration("window", duration),
			)

			c.Header("Retry-After", fmt.Sprintf("%d", int(duration.Seconds())))
			c.AbortWithStatusJSON(
				http.StatusTooManyRequests,
				constants.BuildErrorResponse("rate limit exceeded", gin.H{
					"retry_after": duration.Seconds(),
				}),
			)
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", maxRequest))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", now.Add(duration).Unix()))

		c.Next()
	}
}
