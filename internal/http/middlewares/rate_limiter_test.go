package middlewares_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/midcare/pflegedoc/internal/http/middlewares"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeCounter struct {
	count int64
	err   error
}

func (f *fakeCounter) IncrWindow(ctx context.Context, key string, window time.Duration) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}

	f.count++

	return f.count, nil
}

func limiterRouter(counter middlewares.WindowCounter, limit int64) *gin.Engine {
	r := gin.New()

	rl := middlewares.NewRateLimiter(counter, limit, time.Minute)

	r.POST("/login", rl.RateLimiterMiddleware(middlewares.KeyByIP), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return r
}

func TestRateLimiterBlocksOverLimit(t *testing.T) {
	r := limiterRouter(&fakeCounter{}, 3)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("request %d got %d, want 200", i+1, w.Code)
		}
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))

	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("got %d, want 429", w.Code)
	}

	if w.Header().Get("Retry-After") == "" {
		t.Fatal("missing Retry-After header")
	}
}

func TestRateLimiterFailsOpen(t *testing.T) {
	r := limiterRouter(&fakeCounter{err: errors.New("redis down")}, 1)

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("counter outage must not block requests, got %d", w.Code)
		}
	}
}
