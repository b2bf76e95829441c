package runtime_test

import (
	"context"
	"testing"

	"github.com/aretw0/tableau/internal/runtime"
	"github.com/aretw0/tableau/internal/testutils"
	"github.com/aretw0/tableau/pkg/domain"
	"github.com/aretw0/tableau/pkg/ports"
	"github.com/stretchr/testify/assert"
)

const spacing = 0.3

func newEngine(hits ports.HitTester, opts ...runtime.EngineOption) *runtime.Engine {
	opts = append([]runtime.EngineOption{runtime.WithSettings(&domain.Settings{TableauOffset: spacing})}, opts...)
	return runtime.NewEngine(testutils.IdentityProjector, hits, opts...)
}

// tableau creates a laid out Tableau slot holding the given cards.
func tableau(t *testing.T, e *runtime.Engine, id string, origin domain.Vec3, cardIDs ...string) (*domain.Slot, []*domain.Card) {
	t.Helper()
	s, cards := testutils.SlotWithCards(t, id, domain.SlotTableau, origin, cardIDs...)
	e.Relayout(context.Background(), s)
	return s, cards
}

func assertFanned(t *testing.T, s *domain.Slot, ids ...string) {
	t.Helper()
	assert.Equal(t, ids, testutils.IDs(s))
	for i, c := range s.Cards() {
		assert.InDelta(t, 0, c.Position.X, 1e-9, "card %s x", c.ID)
		assert.InDelta(t, -spacing*float64(i), c.Position.Y, 1e-9, "card %s y", c.ID)
		assert.Equal(t, i, c.DrawOrder, "card %s draw order", c.ID)
		assert.True(t, c.HitTestable, "card %s hit-testable", c.ID)
		assert.False(t, c.Dragging(), "card %s dragging", c.ID)
	}
}
