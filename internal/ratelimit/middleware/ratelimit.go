package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"passprove/internal/ratelimit/metrics"
	"passprove/internal/ratelimit/models"
	"passprove/pkg/platform/httputil"
	"passprove/pkg/requestcontext"
)

// BucketStore admits or rejects one request against a keyed window.
type BucketStore interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.RateLimitResult, error)
}

type Middleware struct {
	buckets  BucketStore
	limits   map[models.EndpointClass]models.Limit
	logger   *slog.Logger
	metrics  *metrics.Metrics
	disabled bool
}

type Option func(*Middleware)

// WithDisabled turns every check into a pass-through.
func WithDisabled(disabled bool) Option {
	return func(m *Middleware) {
		m.disabled = disabled
	}
}

func WithMetrics(metrics *metrics.Metrics) Option {
	return func(m *Middleware) {
		m.metrics = metrics
	}
}

func New(buckets BucketStore, limits map[models.EndpointClass]models.Limit, logger *slog.Logger, opts ...Option) *Middleware {
	m := &Middleware{
		buckets: buckets,
		limits:  limits,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.disabled {
		logger.Info("rate limiting disabled")
	}
	return m
}

// RateLimit limits requests per client IP within class. Store failures let
// the request through.
func (m *Middleware) RateLimit(class models.EndpointClass) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		limit, ok := m.limits[class]
		if m.disabled || !ok || limit.RequestsPerWindow <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ip := requestcontext.ClientIP(ctx)

			result, err := m.buckets.Allow(ctx, models.NewIPKey(class, ip), limit.RequestsPerWindow, limit.Window)
			if err != nil {
				m.logger.ErrorContext(ctx, "failed to check IP rate limit",
					"request_id", requestcontext.RequestID(ctx),
					"class", class,
					"ip_prefix", anonymizeIP(ip),
					"error", err,
				)
				if m.metrics != nil {
					m.metrics.IncCheckError()
				}
				next.ServeHTTP(w, r)
				return
			}

			addRateLimitHeaders(w, result)
			if !result.Allowed {
				if m.metrics != nil {
					m.metrics.IncRejected(string(class))
				}
				writeRateLimitExceeded(w, result)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func addRateLimitHeaders(w http.ResponseWriter, result *models.RateLimitResult) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
}

func writeRateLimitExceeded(w http.ResponseWriter, result *models.RateLimitResult) {
	w.Header().Set("Retry-After", strconv.Itoa(result.RetryAfter))
	httputil.WriteJSON(w, http.StatusTooManyRequests, &models.RateLimitExceededResponse{
		Error:      "Too many requests",
		RetryAfter: result.RetryAfter,
	})
}

// anonymizeIP keeps the network part of an address for logs.
func anonymizeIP(ip string) string {
	if i := strings.LastIndexAny(ip, ".:"); i > 0 {
		return ip[:i]
	}
	return ip
}
