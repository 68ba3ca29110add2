package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"net/netip"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"passprove/internal/platform/metrics"
	"passprove/pkg/platform/httputil"
	"passprove/pkg/platform/middleware/metadata"
	"passprove/pkg/platform/middleware/requestid"
	"passprove/pkg/platform/middleware/requestlog"
	"passprove/pkg/platform/middleware/requesttime"
)

// Registrar is implemented by bounded-context handlers.
type Registrar interface {
	Register(r chi.Router)
}

// HealthCheck reports a dependency's health for GET /health.
type HealthCheck func(ctx context.Context) error

// Options configures the router.
type Options struct {
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	// Checks are named dependency checks; any failure turns /health into 503.
	Checks map[string]HealthCheck
	// TrustedProxies may set X-Forwarded-For and X-Real-IP. Empty means the
	// connection address is the client.
	TrustedProxies []netip.Prefix
}

// NewRouter wires the middleware chain, operational endpoints and every
// registered handler.
func NewRouter(opts Options, handlers ...Registrar) http.Handler {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(requesttime.Middleware)
	r.Use(metadata.NewResolver(opts.TrustedProxies).Middleware)
	r.Use(requestlog.Middleware(opts.Logger))
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
	}
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", healthHandler(opts.Checks))
	r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))

	for _, h := range handlers {
		h.Register(r)
	}
	return r
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func healthHandler(checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{Status: "ok"}
		status := http.StatusOK
		if len(checks) > 0 {
			resp.Checks = make(map[string]string, len(checks))
		}
		for name, check := range checks {
			if err := check(r.Context()); err != nil {
				resp.Checks[name] = err.Error()
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}
		httputil.WriteJSON(w, status, resp)
	}
}
