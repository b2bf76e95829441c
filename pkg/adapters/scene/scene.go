// Package scene implements hit-testing over the rectangles of a table's slots
// and cards, the way a host's physics raycast would.
package scene

import (
	"sort"

	"github.com/aretw0/tableau/pkg/domain"
	"github.com/aretw0/tableau/pkg/ports"
)

// Scene hit-tests pointer events against a table.
//
// Cards are rectangles of CardSize centered on their world position; a slot's
// hit area is its own bounds extended by the cards it holds, so releasing over
// any card of a column hits that column.
type Scene struct {
	table     *domain.Table
	projector ports.Projector
	cardW     float64
	cardH     float64
}

// New creates a scene for table, projecting pointers with projector.
func New(table *domain.Table, projector ports.Projector, cardW, cardH float64) *Scene {
	return &Scene{table: table, projector: projector, cardW: cardW, cardH: cardH}
}

// CardRect returns the card's hit area on the surface.
func (s *Scene) CardRect(c *domain.Card) domain.Rect {
	return domain.CenteredRect(c.World(), s.cardW, s.cardH)
}

// SlotRect returns the slot's hit area on the surface.
func (s *Scene) SlotRect(slot *domain.Slot) domain.Rect {
	area := slot.Bounds.Translate(slot.Origin)
	for _, c := range slot.Cards() {
		area = area.Union(s.CardRect(c))
	}
	return area
}

// HitTest implements ports.HitTester. Hit-testable cards come first, topmost
// draw order first, followed by slots in table order.
func (s *Scene) HitTest(ev domain.PointerEvent) []ports.SceneObject {
	p := s.projector.Project(ev.Screen)

	var cards []*domain.Card
	for _, slot := range s.table.Slots() {
		for _, c := range slot.Cards() {
			if c.HitTestable && s.CardRect(c).Contains(p) {
				cards = append(cards, c)
			}
		}
	}
	for _, c := range s.table.Detached() {
		if c.HitTestable && s.CardRect(c).Contains(p) {
			cards = append(cards, c)
		}
	}
	sort.SliceStable(cards, func(i, j int) bool {
		return cards[i].DrawOrder > cards[j].DrawOrder
	})

	hits := make([]ports.SceneObject, 0, len(cards)+1)
	for _, c := range cards {
		hits = append(hits, c)
	}
	for _, slot := range s.table.Slots() {
		if s.SlotRect(slot).Contains(p) {
			hits = append(hits, slot)
		}
	}
	return hits
}
