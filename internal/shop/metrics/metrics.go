package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the shop directory.
type Metrics struct {
	CacheHits        prometheus.Counter
	CacheMisses      prometheus.Counter
	CacheErrors      prometheus.Counter
	LookupDuration   prometheus.Histogram
	MethodPolicyDeny *prometheus.CounterVec
}

// New registers shop metrics on the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		CacheHits: f.NewCounter(prometheus.CounterOpts{
			Name: "passprove_shop_cache_hits_total",
			Help: "Shop lookups served from Redis",
		}),
		CacheMisses: f.NewCounter(prometheus.CounterOpts{
			Name: "passprove_shop_cache_misses_total",
			Help: "Shop lookups that fell through to the database",
		}),
		CacheErrors: f.NewCounter(prometheus.CounterOpts{
			Name: "passprove_shop_cache_errors_total",
			Help: "Redis failures while reading or filling the shop cache",
		}),
		LookupDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "passprove_shop_lookup_duration_seconds",
			Help:    "Duration of API key lookups",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),
		MethodPolicyDeny: f.NewCounterVec(prometheus.CounterOpts{
			Name: "passprove_shop_method_denied_total",
			Help: "Method policy checks that returned false, by method",
		}, []string{"method"}),
	}
}

func (m *Metrics) IncCacheHit()   { m.CacheHits.Inc() }
func (m *Metrics) IncCacheMiss()  { m.CacheMisses.Inc() }
func (m *Metrics) IncCacheError() { m.CacheErrors.Inc() }

// ObserveLookup records the duration of an API key lookup started at start.
func (m *Metrics) ObserveLookup(start time.Time) {
	m.LookupDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncMethodDenied(method string) {
	m.MethodPolicyDeny.WithLabelValues(method).Inc()
}
