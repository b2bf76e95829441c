package tableau

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/tableau/internal/runtime"
	"github.com/aretw0/tableau/pkg/adapters/ortho"
	"github.com/aretw0/tableau/pkg/adapters/scene"
	"github.com/aretw0/tableau/pkg/config"
	"github.com/aretw0/tableau/pkg/domain"
	"github.com/aretw0/tableau/pkg/ports"
	"github.com/aretw0/tableau/pkg/setup"
)

// Table is the high-level entry point for the Tableau library.
// It owns one play surface and routes gestures to the internal engine.
//
// A Table is not safe for concurrent use; adapters serialize access through
// table.Manager.
type Table struct {
	table   *domain.Table
	engine  *runtime.Engine
	pointer *runtime.Pointer
	cfg     *config.Config
	logger  *slog.Logger
}

type options struct {
	cfg       *config.Config
	table     *domain.Table
	projector ports.Projector
	hitTester ports.HitTester
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
}

// Option defines a functional option for configuring the Table.
type Option func(*options)

// WithConfig sets the layout configuration (default: config.Default()).
func WithConfig(cfg *config.Config) Option {
	return func(o *options) {
		o.cfg = cfg
	}
}

// WithTable uses a prebuilt table instead of building one from the configuration.
func WithTable(t *domain.Table) Option {
	return func(o *options) {
		o.table = t
	}
}

// WithProjector injects a custom Projector, bypassing the default orthographic camera.
func WithProjector(p ports.Projector) Option {
	return func(o *options) {
		o.projector = p
	}
}

// WithHitTester injects a custom HitTester, bypassing the default rectangle scene.
func WithHitTester(h ports.HitTester) Option {
	return func(o *options) {
		o.hitTester = h
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(o *options) {
		o.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// New initializes a new Table.
// By default it builds the classic layout from config.Default(), deals the
// deck, and lays out every slot.
func New(id string, opts ...Option) (*Table, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if o.cfg == nil {
		o.cfg = config.Default()
	}

	if o.table == nil {
		t, err := setup.BuildTable(id, o.cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to build table: %w", err)
		}
		o.table = t
	}

	if o.projector == nil {
		o.projector = ortho.New(
			domain.Vec2{X: o.cfg.Camera.OriginX, Y: o.cfg.Camera.OriginY},
			o.cfg.Camera.Scale,
		)
	}

	if o.hitTester == nil {
		o.hitTester = scene.New(o.table, o.projector, o.cfg.Card.Width, o.cfg.Card.Height)
	}

	// Ensure logger is initialized (so we don't pass nil to runtime)
	if o.logger == nil {
		o.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	o.logger = o.logger.With("table", o.table.ID)

	engine := runtime.NewEngine(o.projector, o.hitTester,
		runtime.WithSettings(o.cfg.Settings()),
		runtime.WithLifecycleHooks(o.hooks),
		runtime.WithLogger(o.logger),
	)

	t := &Table{
		table:   o.table,
		engine:  engine,
		pointer: runtime.NewPointer(engine),
		cfg:     o.cfg,
		logger:  o.logger,
	}

	engine.RelayoutAll(context.Background(), o.table)
	return t, nil
}

// ID returns the table identifier.
func (t *Table) ID() string {
	return t.table.ID
}

// Domain returns the underlying table model.
func (t *Table) Domain() *domain.Table {
	return t.table
}

// Config returns the configuration the table was built with.
func (t *Table) Config() *config.Config {
	return t.cfg
}

// Pointer feeds one raw pointer event through the gesture router.
// The result is non-nil when the event ended a drag.
func (t *Table) Pointer(ctx context.Context, ev domain.PointerEvent) *domain.DropResult {
	return t.pointer.Handle(ctx, ev)
}

// Move drags cardID (and the cards above it) onto slotID in a single step,
// as if the user released the pointer over that slot.
func (t *Table) Move(ctx context.Context, cardID, slotID string) (domain.DropResult, error) {
	card, err := t.table.Card(cardID)
	if err != nil {
		return domain.DropResult{}, err
	}
	slot, err := t.table.Slot(slotID)
	if err != nil {
		return domain.DropResult{}, err
	}
	if card.Dragging() {
		return domain.DropResult{}, fmt.Errorf("%w: %q", domain.ErrCardDragging, cardID)
	}

	t.engine.BeginDrag(ctx, card, domain.Vec2{})
	if result := t.engine.Drop(ctx, slot, card); result != nil {
		return *result, nil
	}
	result, ok := t.engine.EndDrag(ctx, card, domain.PointerEvent{})
	if !ok {
		return domain.DropResult{}, fmt.Errorf("drag for %q did not start", cardID)
	}
	return result, nil
}

// Revert cancels the drag started by cardID, if any.
func (t *Table) Revert(ctx context.Context, cardID string) (domain.DropResult, bool, error) {
	card, err := t.table.Card(cardID)
	if err != nil {
		return domain.DropResult{}, false, err
	}
	result, ok := t.engine.Revert(ctx, card)
	if ok {
		t.pointer.Forget(card)
	}
	return result, ok, nil
}

// Snapshot captures the current layout.
func (t *Table) Snapshot() domain.Snapshot {
	return t.table.Snapshot()
}
