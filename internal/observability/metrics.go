package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "skillswap_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// SwapTransitions counts swap request state transitions by target status.
	SwapTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillswap_swap_transitions_total",
		Help: "Total number of swap request state transitions by target status",
	}, []string{"status"})

	// FeedbackSubmitted counts accepted feedback entries by rating.
	FeedbackSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillswap_feedback_submitted_total",
		Help: "Total number of feedback entries accepted by rating value",
	}, []string{"rating"})

	// UsersBanned counts admin ban and unban actions.
	UsersBanned = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillswap_users_banned_total",
		Help: "Total number of admin ban/unban actions",
	}, []string{"action"})
)

// DatabaseMetrics wraps DB access for recording query latency.
type DatabaseMetrics struct {
	db *gorm.DB
}

// NewDatabaseMetrics returns a new DatabaseMetrics instance.
func NewDatabaseMetrics(db *gorm.DB) *DatabaseMetrics {
	return &DatabaseMetrics{db: db}
}

// ObserveQuery records the latency of a database query.
func (m *DatabaseMetrics) ObserveQuery(operation, table string, start time.Time) {
	latency := time.Since(start).Seconds()
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(latency)
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func (m *DatabaseMetrics) TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		m.ObserveQuery(operation, table, start)
	}
}

// RecordSwapTransition increments the transition counter for the target status.
func RecordSwapTransition(status string) {
	SwapTransitions.WithLabelValues(status).Inc()
}

// RecordFeedback increments the feedback counter for the given rating.
func RecordFeedback(rating string) {
	FeedbackSubmitted.WithLabelValues(rating).Inc()
}
