package testutils

import (
	"context"
	"sync"
	"testing"

	"github.com/aretw0/tableau/pkg/domain"
	"github.com/aretw0/tableau/pkg/ports"
	"github.com/stretchr/testify/require"
)

// IdentityProjector maps screen (x, y) to surface (x, y, 0).
var IdentityProjector = ports.ProjectorFunc(func(screen domain.Vec2) domain.Vec3 {
	return domain.Vec3{X: screen.X, Y: screen.Y}
})

// Hits returns a HitTester that reports objs for every event.
func Hits(objs ...ports.SceneObject) ports.HitTester {
	return ports.HitTesterFunc(func(domain.PointerEvent) []ports.SceneObject {
		return objs
	})
}

// NoHits is a HitTester that never finds anything.
var NoHits = Hits()

// SlotWithCards creates a slot holding fresh cards with the given IDs, bottom first.
// Each card remembers the slot as its initial placement.
func SlotWithCards(t *testing.T, id string, typ domain.SlotType, origin domain.Vec3, cardIDs ...string) (*domain.Slot, []*domain.Card) {
	t.Helper()
	slot := domain.NewSlot(id, typ, origin)
	cards := make([]*domain.Card, 0, len(cardIDs))
	for _, cid := range cardIDs {
		c := domain.NewCard(cid)
		slot.Append(c)
		c.Initialize(slot)
		cards = append(cards, c)
	}
	require.Equal(t, len(cardIDs), slot.Len())
	return slot, cards
}

// IDs returns the IDs of the slot's cards, bottom first.
func IDs(s *domain.Slot) []string {
	ids := make([]string, 0, s.Len())
	for _, c := range s.Cards() {
		ids = append(ids, c.ID)
	}
	return ids
}

// Recorder captures lifecycle events for assertions.
type Recorder struct {
	mu      sync.Mutex
	Drags   []domain.DragEvent
	Drops   []domain.DropEvent
	Layouts []domain.LayoutEvent
}

// Hooks returns lifecycle hooks that append to the recorder.
func (r *Recorder) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnDragStart: func(_ context.Context, e *domain.DragEvent) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.Drags = append(r.Drags, *e)
		},
		OnDrop: func(_ context.Context, e *domain.DropEvent) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.Drops = append(r.Drops, *e)
		},
		OnLayout: func(_ context.Context, e *domain.LayoutEvent) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.Layouts = append(r.Layouts, *e)
		},
	}
}
