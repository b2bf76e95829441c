package runtime

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/tableau/internal/logging"
	"github.com/aretw0/tableau/pkg/domain"
	"github.com/aretw0/tableau/pkg/ports"
)

// Engine runs drag sessions and keeps slots laid out.
//
// It is not safe for concurrent use: every call is expected to happen on the
// host's event thread, one pointer event at a time.
type Engine struct {
	projector ports.Projector
	hitTester ports.HitTester
	settings  *domain.Settings
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	now       func() time.Time
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithSettings sets the layout parameters. A nil value disables layout.
func WithSettings(s *domain.Settings) EngineOption {
	return func(e *Engine) {
		e.settings = s
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithClock overrides the time source used for event timestamps.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates a new engine with its collaborators.
// The hit tester may be nil when drops are always assigned explicitly.
func NewEngine(projector ports.Projector, hitTester ports.HitTester, opts ...EngineOption) *Engine {
	e := &Engine{
		projector: projector,
		hitTester: hitTester,
		logger:    logging.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Settings returns the active layout settings (may be nil).
func (e *Engine) Settings() *domain.Settings {
	return e.settings
}

// Relayout lays out s and notifies the layout hook.
func (e *Engine) Relayout(ctx context.Context, s *domain.Slot) {
	if s == nil {
		return
	}
	if !Layout(s, e.settings) {
		return
	}
	if e.hooks.OnLayout != nil {
		e.hooks.OnLayout(ctx, &domain.LayoutEvent{
			EventBase: e.base(domain.EventLayout),
			SlotID:    s.ID,
			SlotType:  s.Type,
			Count:     s.Len(),
		})
	}
}

// RelayoutAll lays out every slot of the table.
func (e *Engine) RelayoutAll(ctx context.Context, t *domain.Table) {
	for _, s := range t.Slots() {
		e.Relayout(ctx, s)
	}
}

func (e *Engine) base(typ domain.EventType) domain.EventBase {
	return domain.EventBase{Timestamp: e.now(), Type: typ}
}

func slotID(s *domain.Slot) string {
	if s == nil {
		return ""
	}
	return s.ID
}
