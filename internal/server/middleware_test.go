package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/sehatmu/amalan/internal/observability"
	"github.com/sehatmu/amalan/internal/ratelimit"
)

// denyAllBucket refuses every request with a fixed retry delay.
type denyAllBucket struct{}

func (denyAllBucket) Allow(context.Context, string, float64, int) (*ratelimit.Result, error) {
	return &ratelimit.Result{Allowed: false, RetryAfter: 3 * time.Second}, nil
}

func TestRateLimited_DeniedRequestGets429(t *testing.T) {
	engine := NewEngine(observability.Config{Environment: "test"})
	srv := NewServer(ServerParam{
		Engine:  engine,
		Limiter: ratelimit.NewReportLimiterWithBucket(denyAllBucket{}, 1, 1),
	})
	srv.RegisterAPIRoutes()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees/EMP-1/progress?month=2026-03", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "4", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "rate_limited")
}

func TestRateLimited_NilLimiterPassesThrough(t *testing.T) {
	engine := NewEngine(observability.Config{Environment: "test"})
	srv := NewServer(ServerParam{Engine: engine})

	called := false
	engine.GET("/guarded", srv.rateLimited, func(c *gin.Context) {
		called = true
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
