package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Rejected    *prometheus.CounterVec
	CheckErrors prometheus.Counter
}

func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Rejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "passprove_ratelimit_rejected_total",
			Help: "Requests rejected by the per-IP rate limit, by endpoint class",
		}, []string{"class"}),
		CheckErrors: f.NewCounter(prometheus.CounterOpts{
			Name: "passprove_ratelimit_check_errors_total",
			Help: "Rate limit checks that failed and let the request through",
		}),
	}
}

func (m *Metrics) IncRejected(class string) {
	m.Rejected.WithLabelValues(class).Inc()
}

func (m *Metrics) IncCheckError() {
	m.CheckErrors.Inc()
}
