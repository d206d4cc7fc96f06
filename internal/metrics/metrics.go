package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	turnsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dentassist_turns_total",
		Help: "Chat turns processed, by resolved intent.",
	}, []string{"intent"})

	escalationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dentassist_escalations_total",
		Help: "Turns that ended in a human handoff.",
	})

	sessionsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dentassist_sessions_started_total",
		Help: "New conversation sessions created.",
	})
)

func ObserveTurn(intent string, escalated bool) {
	turnsTotal.WithLabelValues(intent).Inc()
	if escalated {
		escalationsTotal.Inc()
	}
}

func ObserveSessionStart() {
	sessionsStarted.Inc()
}
