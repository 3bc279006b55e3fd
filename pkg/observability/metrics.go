package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors fed by the engine hooks.
type Metrics struct {
	Conversions *prometheus.CounterVec
	StageStates *prometheus.HistogramVec
	Simulations *prometheus.CounterVec
	Duration    *prometheus.HistogramVec
	Steps       *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Conversions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_conversions_total",
				Help: "Total number of construction stages run",
			},
			[]string{"stage", "to"},
		),
		StageStates: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "automata_stage_states",
				Help:    "Number of states produced by a construction stage",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"stage"},
		),
		Simulations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_simulations_total",
				Help: "Total number of runs by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "automata_operation_duration_seconds",
				Help:    "Duration of construction stages and runs",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
			[]string{"operation"},
		),
		Steps: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "automata_simulation_steps",
				Help:    "Steps taken by a run",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
			[]string{"kind"},
		),
	}
	for _, c := range []prometheus.Collector{m.Conversions, m.StageStates, m.Simulations, m.Duration, m.Steps} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks records every event on the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnConvert: func(ctx context.Context, e *domain.ConversionEvent) {
			m.Conversions.WithLabelValues(e.Stage, string(e.To)).Inc()
			m.StageStates.WithLabelValues(e.Stage).Observe(float64(e.States))
			m.Duration.WithLabelValues(e.Stage).Observe(e.Duration.Seconds())
		},
		OnSimulate: func(ctx context.Context, e *domain.SimulationEvent) {
			m.Simulations.WithLabelValues(string(e.Kind), Outcome(e)).Inc()
			m.Steps.WithLabelValues(string(e.Kind)).Observe(float64(e.Steps))
			m.Duration.WithLabelValues("simulate").Observe(e.Duration.Seconds())
		},
	}
}

// Outcome classifies a finished run: "accepted", "rejected", "output" for transducers,
// or "error" when the run stopped early.
func Outcome(e *domain.SimulationEvent) string {
	switch {
	case e.Err != nil:
		return "error"
	case e.Kind.Transducer():
		return "output"
	case e.Accepted:
		return "accepted"
	}
	return "rejected"
}

// LogHooks writes one record per event.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnConvert: func(ctx context.Context, e *domain.ConversionEvent) {
			logger.InfoContext(ctx, "stage_done",
				"stage", e.Stage,
				"from", e.From,
				"to", e.To,
				"states", e.States,
				"duration", e.Duration,
			)
		},
		OnSimulate: func(ctx context.Context, e *domain.SimulationEvent) {
			level := slog.LevelInfo
			if e.Err != nil {
				level = slog.LevelWarn
			}
			logger.Log(ctx, level, "simulation_done",
				"automaton", e.Automaton,
				"kind", e.Kind,
				"outcome", Outcome(e),
				"steps", e.Steps,
				"duration", e.Duration,
				"error", e.Err,
			)
		},
	}
}

// Chain calls every set of hooks in order.
func Chain(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnConvert: func(ctx context.Context, e *domain.ConversionEvent) {
			for _, h := range hooks {
				if h.OnConvert != nil {
					h.OnConvert(ctx, e)
				}
			}
		},
		OnSimulate: func(ctx context.Context, e *domain.SimulationEvent) {
			for _, h := range hooks {
				if h.OnSimulate != nil {
					h.OnSimulate(ctx, e)
				}
			}
		},
	}
}
