package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// TrackingMetrics records order tracking simulator activity.
type TrackingMetrics struct {
	transitions *prometheus.CounterVec
	sessions    prometheus.Counter
	catalogLoad *prometheus.HistogramVec
}

// NewTrackingMetrics registers the simulator metrics on the provided
// registerer. A nil registerer yields a no-op collector.
func NewTrackingMetrics(reg prometheus.Registerer) *TrackingMetrics {
	if reg == nil {
		return &TrackingMetrics{}
	}
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_transitions",
		Help: "Order status transitions by target stage.",
	}, []string{"stage"})
	sessions := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tracking_sessions_started",
		Help: "Tracking sessions opened.",
	})
	catalogLoad := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_load_duration_seconds",
		Help:    "Duration of catalog file loads in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"shop"})
	reg.MustRegister(transitions, sessions, catalogLoad)
	return &TrackingMetrics{
		transitions: transitions,
		sessions:    sessions,
		catalogLoad: catalogLoad,
	}
}

// IncTransition counts one transition into the named stage.
func (m *TrackingMetrics) IncTransition(stage string) {
	if m == nil || m.transitions == nil {
		return
	}
	m.transitions.WithLabelValues(normalizeLabel(stage)).Inc()
}

// IncSession counts one opened tracking session.
func (m *TrackingMetrics) IncSession() {
	if m == nil || m.sessions == nil {
		return
	}
	m.sessions.Inc()
}

// ObserveCatalogLoad records the duration of one catalog load.
func (m *TrackingMetrics) ObserveCatalogLoad(shop string, duration time.Duration) {
	if m == nil || m.catalogLoad == nil {
		return
	}
	m.catalogLoad.WithLabelValues(normalizeLabel(shop)).Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
