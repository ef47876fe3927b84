package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/nutrichat/backend/internal/middleware"
	"github.com/pageza/nutrichat/backend/internal/testhelpers"
)

func limitedRouter(limiter *middleware.RateLimiter, userID uuid.UUID) *gin.Engine {
	router := gin.New()
	router.POST("/send", func(c *gin.Context) {
		if userID != uuid.Nil {
			c.Set(middleware.UserIDKey, userID)
		}
		c.Next()
	}, limiter.RateLimitMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	return router
}

func send(router *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/send", nil))
	return w
}

func TestChatRateLimiter(t *testing.T) {
	client := testhelpers.SetupRedis(t)
	limiter := middleware.NewChatRateLimiter(client, 3, time.Hour, nil)
	router := limitedRouter(limiter, uuid.New())

	for i := range 3 {
		w := send(router)
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "3", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, strconv.Itoa(2-i), w.Header().Get("X-RateLimit-Remaining"))
	}

	w := send(router)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// counters are per user
	other := limitedRouter(limiter, uuid.New())
	assert.Equal(t, http.StatusCreated, send(other).Code)
}

func TestRateLimiterRequiresUser(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	t.Cleanup(func() { _ = client.Close() })
	router := limitedRouter(middleware.NewChatRateLimiter(client, 1, time.Minute, nil), uuid.Nil)

	assert.Equal(t, http.StatusUnauthorized, send(router).Code)
}

func TestRateLimiterFailsOpen(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	router := limitedRouter(middleware.NewChatRateLimiter(client, 1, time.Minute, nil), uuid.New())

	w := send(router)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "rate limit check failed", w.Header().Get("X-RateLimit-Error"))
}
