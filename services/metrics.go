package services

import "github.com/prometheus/client_golang/prometheus"

const (
	resultApplied = "applied"
	resultStale   = "stale"
	resultInvalid = "invalid"
)

// Metrics counts tournament lifecycle events. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	tournamentsGenerated prometheus.Counter
	tournamentsCompleted prometheus.Counter
	matchesSelected      prometheus.Counter
	matchResults         *prometheus.CounterVec
	corruptRecoveries    prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		tournamentsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bracket",
			Name:      "tournaments_generated_total",
			Help:      "Brackets generated from a player list.",
		}),
		tournamentsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bracket",
			Name:      "tournaments_completed_total",
			Help:      "Tournaments whose final was decided.",
		}),
		matchesSelected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bracket",
			Name:      "matches_selected_total",
			Help:      "Matches handed to the game engine.",
		}),
		matchResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bracket",
			Name:      "match_results_total",
			Help:      "Match results received, by outcome.",
		}, []string{"outcome"}),
		corruptRecoveries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bracket",
			Name:      "corrupt_state_recoveries_total",
			Help:      "Persisted blobs discarded because they could not be decoded.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.tournamentsGenerated, m.tournamentsCompleted, m.matchesSelected, m.matchResults, m.corruptRecoveries)
	}
	return m
}

func (m *Metrics) generated() {
	if m != nil {
		m.tournamentsGenerated.Inc()
	}
}

func (m *Metrics) completed() {
	if m != nil {
		m.tournamentsCompleted.Inc()
	}
}

func (m *Metrics) selected() {
	if m != nil {
		m.matchesSelected.Inc()
	}
}

func (m *Metrics) result(outcome string) {
	if m != nil {
		m.matchResults.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) corrupt() {
	if m != nil {
		m.corruptRecoveries.Inc()
	}
}
