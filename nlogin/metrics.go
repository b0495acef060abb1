package nlogin

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus instruments for this library. All methods
// are nil-safe so an unconfigured Service costs nothing.
type Metrics struct {
	registrations *prometheus.CounterVec
	verifications *prometheus.CounterVec
	storeOutages  prometheus.Counter
}

// NewMetrics creates and registers the library's collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nlogin_registrations_total",
			Help: "Registration attempts by outcome (insert, update, rejected, error).",
		}, []string{"outcome"}),
		verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nlogin_password_verifications_total",
			Help: "Password verifications by result (match, mismatch, unverifiable, error).",
		}, []string{"result"}),
		storeOutages: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nlogin_store_unavailable_total",
			Help: "Operations aborted because the account store was unreachable.",
		}),
	}
	reg.MustRegister(m.registrations, m.verifications, m.storeOutages)
	return m
}

func (m *Metrics) registration(outcome string) {
	if m == nil {
		return
	}
	m.registrations.WithLabelValues(outcome).Inc()
}

func (m *Metrics) verification(result string) {
	if m == nil {
		return
	}
	m.verifications.WithLabelValues(result).Inc()
}

func (m *Metrics) storeOutage() {
	if m == nil {
		return
	}
	m.storeOutages.Inc()
}
