package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/sehatmu/amalan/internal/config"
)

const keyReport = "report:%s:%s"

// Bucket is the throttle backend consulted per request.
type Bucket interface {
	Allow(ctx context.Context, key string, rate float64, burst int) (*Result, error)
}

// ReportLimiter throttles report computations per caller and route. A
// nil limiter (rate limiting disabled) allows everything.
type ReportLimiter struct {
	enabled bool

	bucket Bucket
	rate   float64
	burst  int
}

func NewReportLimiter(cfg config.Config) (*ReportLimiter, error) {
	limitCfg := cfg.RateLimit
	if !limitCfg.Enabled {
		return nil, nil
	}

	addr := strings.TrimSpace(limitCfg.RedisAddr)
	if addr == "" {
		return nil, errors.New("rate limit redis addr is required")
	}
	if limitCfg.ReportRate <= 0 || limitCfg.ReportBurst <= 0 {
		return nil, errors.New("report rate limit must be positive")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	return NewReportLimiterWithBucket(NewTokenBucket(client), limitCfg.ReportRate, limitCfg.ReportBurst), nil
}

// NewReportLimiterWithBucket wires an explicit backend, bypassing config.
func NewReportLimiterWithBucket(bucket Bucket, rate float64, burst int) *ReportLimiter {
	return &ReportLimiter{
		enabled: true,
		bucket:  bucket,
		rate:    rate,
		burst:   burst,
	}
}

func (l *ReportLimiter) Enabled() bool {
	return l != nil && l.enabled
}

// Allow checks the bucket for one caller on one route. Redis outages
// fail open: a broken limiter must not take the dashboards down.
func (l *ReportLimiter) Allow(ctx context.Context, route, caller string) (bool, time.Duration) {
	if !l.Enabled() {
		return true, 0
	}
	key := fmt.Sprintf(keyReport, strings.TrimSpace(route), strings.TrimSpace(caller))
	res, err := l.bucket.Allow(ctx, key, l.rate, l.burst)
	if err != nil {
		return true, 0
	}
	return res.Allowed, res.RetryAfter
}
