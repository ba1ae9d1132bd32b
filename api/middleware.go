package api

import (
	"net/http"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	limiterCleanupInterval = 5 * time.Minute
	limiterMaxIdle         = 10 * time.Minute
)

// clientLimiter holds a rate limiter and its last accessed time
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64 // Unix nanoseconds
}

// CORS allows cross-origin requests from the given origins; "*" allows any
func CORS(allowedOrigins []string) gin.HandlerFunc {
	allowAll := len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		switch {
		case allowAll:
			c.Header("Access-Control-Allow-Origin", "*")
		case origin != "" && slices.Contains(allowedOrigins, origin):
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Accept, Cache-Control")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// RequestSizeLimit caps request bodies at 1 MB
func RequestSizeLimit() gin.HandlerFunc {
	return RequestSizeLimitWithSize(1024 * 1024)
}

// RequestSizeLimitWithSize caps POST, PUT and PATCH bodies at maxBytes
func RequestSizeLimitWithSize(maxBytes int64) gin.HandlerFunc {
	if maxBytes <= 0 {
		maxBytes = 1024 * 1024
	}
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodPost ||
			c.Request.Method == http.MethodPut ||
			c.Request.Method == http.MethodPatch {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

// PerClientRateLimit applies a token bucket per client IP. Idle limiters are
// pruned in the background until cleanupStop is closed.
func PerClientRateLimit(rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once, rps int, burst int) gin.HandlerFunc {
	cleanupInitialized.Do(func() {
		go cleanupOldRateLimiters(rateLimiters, cleanupStop)
	})

	if rps <= 0 {
		rps = 1
	}
	if burst <= 0 {
		burst = rps
	}

	return func(c *gin.Context) {
		clientIP := c.ClientIP()

		value, ok := rateLimiters.Load(clientIP)
		if !ok {
			value, _ = rateLimiters.LoadOrStore(clientIP, &clientLimiter{
				limiter: rate.NewLimiter(rate.Limit(rps), burst),
			})
		}

		cl := value.(*clientLimiter)
		cl.lastSeen.Store(time.Now().UnixNano())

		if !cl.limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"status":  "error",
				"message": "Rate limit exceeded. Please slow down your requests.",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

func cleanupOldRateLimiters(rateLimiters *sync.Map, cleanupStop chan struct{}) {
	ticker := time.NewTicker(limiterCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			pruneRateLimiters(rateLimiters, now, limiterMaxIdle)
		case <-cleanupStop:
			return
		}
	}
}

// pruneRateLimiters drops limiters not used within maxIdle of now
func pruneRateLimiters(rateLimiters *sync.Map, now time.Time, maxIdle time.Duration) int {
	removed := 0
	rateLimiters.Range(func(key, value interface{}) bool {
		cl, ok := value.(*clientLimiter)
		if !ok || now.Sub(time.Unix(0, cl.lastSeen.Load())) > maxIdle {
			rateLimiters.Delete(key)
			removed++
		}
		return true
	})
	return removed
}
