package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		allowed        []string
		method         string
		origin         string
		expectedStatus int
		expectedOrigin string
	}{
		{
			name:           "preflight allows any origin",
			allowed:        []string{"*"},
			method:         http.MethodOptions,
			origin:         "https://example.com",
			expectedStatus: http.StatusNoContent,
			expectedOrigin: "*",
		},
		{
			name:           "no configured origins allows any",
			allowed:        nil,
			method:         http.MethodGet,
			origin:         "https://example.com",
			expectedStatus: http.StatusOK,
			expectedOrigin: "*",
		},
		{
			name:           "listed origin is echoed",
			allowed:        []string{"https://movies.example"},
			method:         http.MethodGet,
			origin:         "https://movies.example",
			expectedStatus: http.StatusOK,
			expectedOrigin: "https://movies.example",
		},
		{
			name:           "unlisted origin gets no allow header",
			allowed:        []string{"https://movies.example"},
			method:         http.MethodGet,
			origin:         "https://evil.example",
			expectedStatus: http.StatusOK,
			expectedOrigin: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(CORS(tt.allowed))
			router.Any("/test", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"message": "success"})
			})

			req := httptest.NewRequest(tt.method, "/test", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedOrigin, w.Header().Get("Access-Control-Allow-Origin"))
			assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PUT")
		})
	}
}

func TestRequestSizeLimitWithSize(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		limit          int64
		method         string
		bodySize       int
		expectedStatus int
	}{
		{"small body", 1024, http.MethodPost, 100, http.StatusOK},
		{"body at limit", 1024, http.MethodPut, 1024, http.StatusOK},
		{"body over limit", 1024, http.MethodPost, 2048, http.StatusRequestEntityTooLarge},
		{"GET is not limited", 10, http.MethodGet, 100, http.StatusOK},
		{"non-positive limit falls back to 1 MB", 0, http.MethodPost, 2048, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(RequestSizeLimitWithSize(tt.limit))
			router.Handle(tt.method, "/test", func(c *gin.Context) {
				var body []byte
				var err error
				if c.Request.Body != nil {
					body, err = c.GetRawData()
				}
				if err != nil {
					c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
					return
				}
				c.JSON(http.StatusOK, gin.H{"size": len(body)})
			})

			req := httptest.NewRequest(tt.method, "/test", strings.NewReader(strings.Repeat("a", tt.bodySize)))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestPerClientRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name              string
		requestCount      int
		requestsPerSecond int
		burstSize         int
		expectSomeBlocked bool
		waitBetween       time.Duration
	}{
		{"requests under rate limit", 3, 10, 5, false, 0},
		{"burst requests", 6, 2, 3, true, 0},
		{"spaced requests", 5, 10, 2, false, 150 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rateLimiters := &sync.Map{}
			cleanupStop := make(chan struct{})
			defer close(cleanupStop)

			router := gin.New()
			router.Use(PerClientRateLimit(rateLimiters, cleanupStop, &sync.Once{}, tt.requestsPerSecond, tt.burstSize))
			router.GET("/test", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"message": "success"})
			})

			successCount, blockedCount := 0, 0
			for i := 0; i < tt.requestCount; i++ {
				if tt.waitBetween > 0 && i > 0 {
					time.Sleep(tt.waitBetween)
				}

				req := httptest.NewRequest(http.MethodGet, "/test", nil)
				req.RemoteAddr = "127.0.0.1:12345"
				w := httptest.NewRecorder()
				router.ServeHTTP(w, req)

				switch w.Code {
				case http.StatusOK:
					successCount++
				case http.StatusTooManyRequests:
					blockedCount++
				}
			}

			if tt.expectSomeBlocked {
				assert.Greater(t, blockedCount, 0, "Expected some requests to be blocked")
			} else {
				assert.Equal(t, 0, blockedCount, "Expected no requests to be blocked")
				assert.Equal(t, tt.requestCount, successCount)
			}
		})
	}
}

func TestPerClientRateLimit_DifferentClients(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rateLimiters := &sync.Map{}
	cleanupStop := make(chan struct{})
	defer close(cleanupStop)

	router := gin.New()
	router.Use(PerClientRateLimit(rateLimiters, cleanupStop, &sync.Once{}, 1, 1))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.RemoteAddr = "127.0.0.1:12345"
		router.ServeHTTP(httptest.NewRecorder(), req)
	}

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = "192.168.1.1:54321"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPruneRateLimiters(t *testing.T) {
	now := time.Now()
	rateLimiters := &sync.Map{}

	fresh := &clientLimiter{}
	fresh.lastSeen.Store(now.Add(-time.Minute).UnixNano())
	stale := &clientLimiter{}
	stale.lastSeen.Store(now.Add(-time.Hour).UnixNano())

	rateLimiters.Store("fresh", fresh)
	rateLimiters.Store("stale", stale)
	rateLimiters.Store("garbage", "not a limiter")

	removed := pruneRateLimiters(rateLimiters, now, limiterMaxIdle)
	assert.Equal(t, 2, removed)

	_, ok := rateLimiters.Load("fresh")
	assert.True(t, ok)
	_, ok = rateLimiters.Load("stale")
	assert.False(t, ok)
}
