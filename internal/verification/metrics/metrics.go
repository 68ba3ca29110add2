package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the verification session flow.
type Metrics struct {
	SessionsInitiated      prometheus.Counter
	MethodsSelected        *prometheus.CounterVec
	SessionsCompleted      *prometheus.CounterVec
	SavedVerifications     prometheus.Counter
	AuxiliaryWriteFailures *prometheus.CounterVec
	Validations            *prometheus.CounterVec
	OperationDuration      *prometheus.HistogramVec
}

// New registers verification metrics on the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		SessionsInitiated: f.NewCounter(prometheus.CounterOpts{
			Name: "passprove_verification_sessions_initiated_total",
			Help: "Verification sessions created",
		}),
		MethodsSelected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "passprove_verification_methods_selected_total",
			Help: "Method selections applied, by method",
		}, []string{"method"}),
		SessionsCompleted: f.NewCounterVec(prometheus.CounterOpts{
			Name: "passprove_verification_sessions_completed_total",
			Help: "Sessions completed, by method and final status",
		}, []string{"method", "status"}),
		SavedVerifications: f.NewCounter(prometheus.CounterOpts{
			Name: "passprove_verification_saved_total",
			Help: "Saved verifications persisted",
		}),
		AuxiliaryWriteFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "passprove_verification_auxiliary_write_failures_total",
			Help: "Best-effort writes that failed after a successful completion, by record",
		}, []string{"record"}),
		Validations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "passprove_verification_validations_total",
			Help: "Saved verification validations, by outcome",
		}, []string{"outcome"}),
		OperationDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "passprove_verification_operation_duration_seconds",
			Help:    "Duration of verification service operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),
	}
}

func (m *Metrics) IncInitiated() { m.SessionsInitiated.Inc() }

func (m *Metrics) IncMethodSelected(method string) {
	m.MethodsSelected.WithLabelValues(method).Inc()
}

func (m *Metrics) IncCompleted(method, status string) {
	m.SessionsCompleted.WithLabelValues(method, status).Inc()
}

func (m *Metrics) IncSaved() { m.SavedVerifications.Inc() }

// IncAuxiliaryFailure counts a dropped best-effort write; record is
// "saved_verification" or "verification_result".
func (m *Metrics) IncAuxiliaryFailure(record string) {
	m.AuxiliaryWriteFailures.WithLabelValues(record).Inc()
}

func (m *Metrics) IncValidation(valid bool) {
	outcome := "invalid"
	if valid {
		outcome = "valid"
	}
	m.Validations.WithLabelValues(outcome).Inc()
}

// ObserveOperation records the duration of operation started at start.
func (m *Metrics) ObserveOperation(operation string, start time.Time) {
	m.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
