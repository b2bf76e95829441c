package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/tableau/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors fed by engine lifecycle hooks.
type Metrics struct {
	DragsStarted *prometheus.CounterVec
	StackSize    prometheus.Histogram
	Drops        *prometheus.CounterVec
	Layouts      *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil registerer leaves them unregistered, which is handy in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		DragsStarted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tableau_drags_started_total",
				Help: "Total number of drag sessions started",
			},
			[]string{"slot_id"},
		),
		StackSize: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "tableau_drag_stack_size",
				Help:    "Number of cards lifted per drag session",
				Buckets: []float64{1, 2, 3, 5, 8, 13},
			},
		),
		Drops: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tableau_drops_total",
				Help: "Total number of drag sessions ended, by outcome",
			},
			[]string{"outcome", "reason"},
		),
		Layouts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tableau_layouts_total",
				Help: "Total number of slot layout passes",
			},
			[]string{"slot_type"},
		),
	}

	if reg != nil {
		reg.MustRegister(m.DragsStarted, m.StackSize, m.Drops, m.Layouts)
	}
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnDragStart: func(_ context.Context, e *domain.DragEvent) {
			m.DragsStarted.WithLabelValues(e.SlotID).Inc()
			m.StackSize.Observe(float64(len(e.Stack)))
		},
		OnDrop: func(_ context.Context, e *domain.DropEvent) {
			m.Drops.WithLabelValues(string(e.Result.Outcome), string(e.Result.Reason)).Inc()
		},
		OnLayout: func(_ context.Context, e *domain.LayoutEvent) {
			m.Layouts.WithLabelValues(e.SlotType.String()).Inc()
		},
	}
}

// LogHooks returns lifecycle hooks that write one structured line per event.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnDragStart: func(ctx context.Context, e *domain.DragEvent) {
			logger.InfoContext(ctx, "drag_start",
				"card_id", e.CardID,
				"slot_id", e.SlotID,
				"origin_index", e.OriginIndex,
				"stack", e.Stack,
			)
		},
		OnDrop: func(ctx context.Context, e *domain.DropEvent) {
			logger.InfoContext(ctx, "drop",
				"card_id", e.CardID,
				"outcome", e.Result.Outcome,
				"reason", e.Result.Reason,
				"target", e.Result.TargetSlotID,
			)
		},
		OnLayout: func(ctx context.Context, e *domain.LayoutEvent) {
			logger.DebugContext(ctx, "layout", "slot_id", e.SlotID, "count", e.Count)
		},
	}
}
