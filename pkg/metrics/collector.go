package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/lnpeers/tplbot/internal/order"
	"github.com/lnpeers/tplbot/internal/wizard"
)

var (
	botUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_updates_total",
			Help: "Total number of bot updates handled, labeled by action and status",
		},
		[]string{"action", "status"},
	)
	updateDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "update_duration_seconds",
			Help:    "Duration of bot update handling in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"action"},
	)
	wizardTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wizard_transitions_total",
			Help: "Total number of wizard state transitions",
		},
		[]string{"from", "to"},
	)
	publishesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "template_publishes_total",
			Help: "Total number of template publish attempts by outcome",
		},
		[]string{"outcome"},
	)
	errorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "errors_total",
			Help: "Total number of errors split by code and severity",
		},
		[]string{"code", "severity"},
	)
	activeSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "wizard_active_sessions",
			Help: "Current number of active wizard sessions",
		},
	)
	sessionsByState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "wizard_sessions_by_state",
			Help: "Number of wizard sessions per state",
		},
		[]string{"state"},
	)
)

func init() {
	wizard.RegisterTransitionRecorder(RecordTransition)
	order.RegisterPublishRecorder(RecordPublish)
}

// RecordUpdate increments update counters and records duration.
func RecordUpdate(action, status string, duration time.Duration) {
	if action == "" {
		action = "unknown"
	}
	if status == "" {
		status = "unknown"
	}

	botUpdatesTotal.WithLabelValues(action, status).Inc()
	updateDurationSeconds.WithLabelValues(action).Observe(duration.Seconds())
}

// RecordTransition tracks wizard state transitions.
func RecordTransition(from, to string) {
	if from == "" {
		from = "none"
	}
	if to == "" {
		to = "unknown"
	}

	wizardTransitionsTotal.WithLabelValues(from, to).Inc()
}

// RecordPublish tracks publish attempt outcomes.
func RecordPublish(outcome string) {
	if outcome == "" {
		outcome = "unknown"
	}

	publishesTotal.WithLabelValues(outcome).Inc()
}

// RecordError increments error counters with metadata.
func RecordError(code, severity string) {
	if code == "" {
		code = "unknown"
	}
	if severity == "" {
		severity = "unknown"
	}

	errorsTotal.WithLabelValues(code, severity).Inc()
}

// SessionCollector periodically gathers wizard session counts and emits gauge metrics.
type SessionCollector struct {
	sessions *wizard.Store
}

// NewSessionCollector builds a metrics collector bound to the provided session store.
func NewSessionCollector(sessions *wizard.Store) *SessionCollector {
	return &SessionCollector{sessions: sessions}
}

// Run polls the session store every 10 seconds until ctx is cancelled.
func (c *SessionCollector) Run(ctx context.Context) {
	if c == nil || c.sessions == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	for {
		c.collect()

		select {
		case <-ctx.Done():
			return
		case <-time.After(10 * time.Second):
		}
	}
}

func (c *SessionCollector) collect() {
	counts := c.sessions.StateCounts()

	total := 0
	sessionsByState.Reset()
	for state, count := range counts {
		total += count
		sessionsByState.WithLabelValues(string(state)).Set(float64(count))
	}

	activeSessions.Set(float64(total))
}
