// internal/middleware/rate_limit.go
package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/javajoker/library-shop/internal/utils"
)

const visitorIdleTimeout = 3 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type RateLimiter struct {
	visitors map[string]*visitor
	mtx      sync.Mutex
	rate     rate.Limit
	burst    int
}

func NewRateLimiter(r rate.Limit, b int) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     r,
		burst:    b,
	}
}

// Run removes idle visitors every minute until ctx is done.
func (rl *RateLimiter) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.cleanupVisitors(time.Now())
		}
	}
}

func (rl *RateLimiter) cleanupVisitors(now time.Time) {
	rl.mtx.Lock()
	defer rl.mtx.Unlock()
	for ip, v := range rl.visitors {
		if now.Sub(v.lastSeen) > visitorIdleTimeout {
			delete(rl.visitors, ip)
		}
	}
}

func (rl *RateLimiter) getVisitor(ip string) *rate.Limiter {
	rl.mtx.Lock()
	defer rl.mtx.Unlock()

	v, exists := rl.visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(rl.rate, rl.burst)
		rl.visitors[ip] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		limiter := rl.getVisitor(ip)

		if !limiter.Allow() {
			utils.TooManyRequestsResponse(c)
			c.Abort()
			return
		}

		c.Next()
	}
}

// RateLimiters holds the general limiter and the stricter one in front of model calls.
type RateLimiters struct {
	General   *RateLimiter
	Inference *RateLimiter
}

func NewRateLimiters(requestsPerSecond float64, burst, inferencePerMinute, inferenceBurst int) *RateLimiters {
	return &RateLimiters{
		General:   NewRateLimiter(rate.Limit(requestsPerSecond), burst),
		Inference: NewRateLimiter(rate.Every(time.Minute/time.Duration(inferencePerMinute)), inferenceBurst),
	}
}

// Run cleans up both limiters until ctx is done.
func (r *RateLimiters) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, rl := range []*RateLimiter{r.General, r.Inference} {
		wg.Add(1)
		go func(rl *RateLimiter) {
			defer wg.Done()
			rl.Run(ctx)
		}(rl)
	}
	wg.Wait()
}

func (r *RateLimiters) GeneralRateLimit() gin.HandlerFunc {
	return r.General.Middleware()
}

func (r *RateLimiters) InferenceRateLimit() gin.HandlerFunc {
	return r.Inference.Middleware()
}
