package runtime_test

import (
	"context"
	"testing"

	"github.com/aretw0/tableau/internal/runtime"
	"github.com/aretw0/tableau/internal/testutils"
	"github.com/aretw0/tableau/pkg/domain"
	"github.com/aretw0/tableau/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndDrag_CommitsOntoEmptyTableau(t *testing.T) {
	var b *domain.Slot
	e := newEngine(ports.HitTesterFunc(func(domain.PointerEvent) []ports.SceneObject {
		return []ports.SceneObject{b}
	}))
	a, cards := tableau(t, e, "A", domain.Vec3{}, "C1", "C2", "C3")
	b, _ = tableau(t, e, "B", domain.Vec3{X: 5})
	ctx := context.Background()

	e.BeginDrag(ctx, cards[1], domain.Vec2{})
	assert.Equal(t, []string{"C1"}, testutils.IDs(a))

	result, ok := e.EndDrag(ctx, cards[1], domain.PointerEvent{Phase: domain.PointerUp})
	require.True(t, ok)

	assert.Equal(t, domain.DropResult{
		Outcome:      domain.OutcomeCommitted,
		OriginSlotID: "A",
		TargetSlotID: "B",
		Cards:        []string{"C2", "C3"},
	}, result)
	assertFanned(t, a, "C1")
	assertFanned(t, b, "C2", "C3")
	assert.Nil(t, cards[1].Session())

	// Future drags start from the new placement.
	slot, index := cards[2].LastPlacement()
	assert.Same(t, b, slot)
	assert.Equal(t, 1, index)
}

func TestEndDrag_AppendsAfterExistingCards(t *testing.T) {
	var b *domain.Slot
	e := newEngine(ports.HitTesterFunc(func(domain.PointerEvent) []ports.SceneObject {
		return []ports.SceneObject{b}
	}))
	_, cards := tableau(t, e, "A", domain.Vec3{}, "C1", "C2", "C3")
	b, _ = tableau(t, e, "B", domain.Vec3{X: 5}, "B1", "B2")
	ctx := context.Background()

	e.BeginDrag(ctx, cards[0], domain.Vec2{})
	result, ok := e.EndDrag(ctx, cards[0], domain.PointerEvent{})
	require.True(t, ok)
	assert.True(t, result.Committed())

	assertFanned(t, b, "B1", "B2", "C1", "C2", "C3")
	for i, c := range cards {
		_, index := c.LastPlacement()
		assert.Equal(t, 2+i, index)
	}
}

func TestEndDrag_NoTargetReverts(t *testing.T) {
	rec := &testutils.Recorder{}
	e := newEngine(testutils.NoHits, runtime.WithLifecycleHooks(rec.Hooks()))
	a, cards := tableau(t, e, "A", domain.Vec3{X: 1, Y: 2}, "C1", "C2", "C3")
	ctx := context.Background()

	before := make([]domain.Vec3, len(cards))
	for i, c := range cards {
		before[i] = c.World()
	}

	e.BeginDrag(ctx, cards[1], domain.Vec2{})
	e.Drag(ctx, cards[1], domain.Vec2{X: 40, Y: -7})

	result, ok := e.EndDrag(ctx, cards[1], domain.PointerEvent{})
	require.True(t, ok)
	assert.Equal(t, domain.OutcomeReverted, result.Outcome)
	assert.Equal(t, domain.ReasonNoTarget, result.Reason)
	assert.Empty(t, result.TargetSlotID)

	assertFanned(t, a, "C1", "C2", "C3")
	for i, c := range cards {
		assert.True(t, c.World().ApproxEqual(before[i], 1e-9), "card %s at %+v", c.ID, c.World())
	}

	require.Len(t, rec.Drops, 1)
	assert.Equal(t, result, rec.Drops[0].Result)
}

func TestEndDrag_ExplicitTargetWins(t *testing.T) {
	var hit *domain.Slot
	e := newEngine(ports.HitTesterFunc(func(domain.PointerEvent) []ports.SceneObject {
		return []ports.SceneObject{hit}
	}))
	_, cards := tableau(t, e, "A", domain.Vec3{}, "C1", "C2")
	claimed, _ := tableau(t, e, "claimed", domain.Vec3{X: 3})
	hit, _ = tableau(t, e, "hit", domain.Vec3{X: 6})
	ctx := context.Background()

	e.BeginDrag(ctx, cards[1], domain.Vec2{})
	cards[1].Session().Target = claimed

	result, ok := e.EndDrag(ctx, cards[1], domain.PointerEvent{})
	require.True(t, ok)
	assert.Equal(t, "claimed", result.TargetSlotID)
	assert.Equal(t, []string{"C2"}, testutils.IDs(claimed))
	assert.Zero(t, hit.Len())
}

func TestEndDrag_SkipsNonSlotHits(t *testing.T) {
	var b *domain.Slot
	blocker := domain.NewCard("blocker")
	e := newEngine(ports.HitTesterFunc(func(domain.PointerEvent) []ports.SceneObject {
		return []ports.SceneObject{blocker, b}
	}))
	_, cards := tableau(t, e, "A", domain.Vec3{}, "C1")
	b, _ = tableau(t, e, "B", domain.Vec3{X: 5})

	e.BeginDrag(context.Background(), cards[0], domain.Vec2{})
	result, ok := e.EndDrag(context.Background(), cards[0], domain.PointerEvent{})
	require.True(t, ok)
	assert.Equal(t, "B", result.TargetSlotID)
}

func TestEndDrag_ReceiverSingleCardRule(t *testing.T) {
	tests := []struct {
		name      string
		grab      int
		committed bool
	}{
		{name: "single card commits", grab: 2, committed: true},
		{name: "two cards revert", grab: 1, committed: false},
		{name: "whole column reverts", grab: 0, committed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recv := domain.NewSlot("R", domain.SlotReceiver, domain.Vec3{X: 9})
			e := newEngine(testutils.Hits(recv))
			a, cards := tableau(t, e, "A", domain.Vec3{}, "C1", "C2", "C3")
			ctx := context.Background()

			e.BeginDrag(ctx, cards[tt.grab], domain.Vec2{})
			result, ok := e.EndDrag(ctx, cards[tt.grab], domain.PointerEvent{})
			require.True(t, ok)

			if tt.committed {
				assert.True(t, result.Committed())
				assert.Equal(t, []string{"C3"}, testutils.IDs(recv))
				assert.Equal(t, domain.Vec3{}, cards[2].Position)
				assertFanned(t, a, "C1", "C2")
				return
			}
			assert.Equal(t, domain.ReasonReceiverSingleCard, result.Reason)
			assert.Zero(t, recv.Len())
			assertFanned(t, a, "C1", "C2", "C3")
		})
	}
}

func TestEndDrag_OntoOwnSlot(t *testing.T) {
	rec := &testutils.Recorder{}
	var a *domain.Slot
	e := newEngine(ports.HitTesterFunc(func(domain.PointerEvent) []ports.SceneObject {
		return []ports.SceneObject{a}
	}), runtime.WithLifecycleHooks(rec.Hooks()))
	a, cards := tableau(t, e, "A", domain.Vec3{}, "C1", "C2", "C3")
	ctx := context.Background()
	rec.Layouts = nil

	e.BeginDrag(ctx, cards[1], domain.Vec2{})
	result, ok := e.EndDrag(ctx, cards[1], domain.PointerEvent{})
	require.True(t, ok)

	assert.True(t, result.Committed())
	assertFanned(t, a, "C1", "C2", "C3")
	assert.Len(t, rec.Layouts, 1, "the slot is laid out once")
}

func TestEndDrag_WithoutSession(t *testing.T) {
	e := newEngine(testutils.NoHits)
	_, cards := tableau(t, e, "A", domain.Vec3{}, "C1", "C2")

	_, ok := e.EndDrag(context.Background(), cards[0], domain.PointerEvent{})
	assert.False(t, ok)

	// A non-primary stack card does not own the session.
	e.BeginDrag(context.Background(), cards[0], domain.Vec2{})
	_, ok = e.EndDrag(context.Background(), cards[1], domain.PointerEvent{})
	assert.False(t, ok)
	assert.NotNil(t, cards[0].Session())
}

func TestEndDrag_WithoutHitTester(t *testing.T) {
	e := runtime.NewEngine(testutils.IdentityProjector, nil)
	a, cards := testutils.SlotWithCards(t, "A", domain.SlotTableau, domain.Vec3{}, "C1")

	e.BeginDrag(context.Background(), cards[0], domain.Vec2{})
	result, ok := e.EndDrag(context.Background(), cards[0], domain.PointerEvent{})
	require.True(t, ok)
	assert.Equal(t, domain.ReasonNoTarget, result.Reason)
	assert.Equal(t, []string{"C1"}, testutils.IDs(a))
}
