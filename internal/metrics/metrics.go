package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the counters the gameplay service reports. Register one
// instance per process; tests pass their own registry.
type Metrics struct {
	SessionsCreated prometheus.Counter
	GamesStarted    prometheus.Counter
	GamesRestarted  prometheus.Counter
	MovesTotal      *prometheus.CounterVec
	GamesFinished   *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SessionsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tictactoe_sessions_created_total",
			Help: "Total number of sessions created",
		}),
		GamesStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tictactoe_games_started_total",
			Help: "Total number of games started",
		}),
		GamesRestarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tictactoe_games_restarted_total",
			Help: "Total number of games restarted after a finish",
		}),
		MovesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tictactoe_moves_total",
			Help: "Total number of move attempts by outcome",
		}, []string{"outcome"}),
		GamesFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tictactoe_games_finished_total",
			Help: "Total number of finished games by result",
		}, []string{"result"}),
	}

	reg.MustRegister(
		m.SessionsCreated,
		m.GamesStarted,
		m.GamesRestarted,
		m.MovesTotal,
		m.GamesFinished,
	)

	return m
}
