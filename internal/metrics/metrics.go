package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "carebook",
			Name:      "http_requests_total",
			Help:      "Count of HTTP API requests by handler.",
		},
		[]string{"handler"},
	)

	conflictChecks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "carebook",
			Name:      "conflict_checks_total",
			Help:      "Count of availability conflict checks run.",
		},
	)

	conflictsDetected = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "carebook",
			Name:      "conflicts_detected_total",
			Help:      "Count of individual conflicts reported.",
		},
	)

	savesBlocked = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "carebook",
			Name:      "availability_saves_blocked_total",
			Help:      "Count of availability saves rejected due to conflicts.",
		},
	)

	availabilitySaved = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "carebook",
			Name:      "availability_saved_total",
			Help:      "Count of persisted availability snapshots by mode.",
		},
		[]string{"mode"},
	)

	taskToggles = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "carebook",
			Name:      "task_toggles_total",
			Help:      "Count of task completion toggle attempts by result.",
		},
		[]string{"result"},
	)

	remindersSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "carebook",
			Name:      "reminders_sent_total",
			Help:      "Count of booking reminders by outcome.",
		},
		[]string{"status"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			httpRequests,
			conflictChecks,
			conflictsDetected,
			savesBlocked,
			availabilitySaved,
			taskToggles,
			remindersSent,
		)
	})
}

func IncHTTP(handler string) {
	httpRequests.WithLabelValues(handler).Inc()
}

func IncConflictCheck(found int) {
	conflictChecks.Inc()
	conflictsDetected.Add(float64(found))
}

func IncSaveBlocked() {
	savesBlocked.Inc()
}

func IncAvailabilitySaved(mode string) {
	availabilitySaved.WithLabelValues(mode).Inc()
}

func IncTaskToggle(result string) {
	taskToggles.WithLabelValues(result).Inc()
}

func IncReminderSent(status string) {
	remindersSent.WithLabelValues(status).Inc()
}
