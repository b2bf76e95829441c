package dsl

import (
	"fmt"

	"github.com/aretw0/tableau/pkg/domain"
)

// Builder manages the table construction.
type Builder struct {
	id    string
	order []string
	slots map[string]*SlotBuilder
}

// New creates a new table builder.
func New(id string) *Builder {
	return &Builder{
		id:    id,
		slots: make(map[string]*SlotBuilder),
	}
}

// Add creates a new slot in the table.
// If the slot already exists, it returns the existing builder.
func (b *Builder) Add(id string, typ domain.SlotType) *SlotBuilder {
	if sb, ok := b.slots[id]; ok {
		return sb
	}
	sb := &SlotBuilder{id: id, typ: typ, builder: b}
	b.slots[id] = sb
	b.order = append(b.order, id)
	return sb
}

// Deck adds a Deck slot.
func (b *Builder) Deck(id string) *SlotBuilder {
	return b.Add(id, domain.SlotDeck)
}

// Tableau adds a Tableau slot.
func (b *Builder) Tableau(id string) *SlotBuilder {
	return b.Add(id, domain.SlotTableau)
}

// Receiver adds a Receiver slot.
func (b *Builder) Receiver(id string) *SlotBuilder {
	return b.Add(id, domain.SlotReceiver)
}

// Build creates the table. Slots keep the order they were added in.
func (b *Builder) Build() (*domain.Table, error) {
	table := domain.NewTable(b.id)
	for _, id := range b.order {
		sb := b.slots[id]
		slot := domain.NewSlot(sb.id, sb.typ, sb.origin)
		slot.Bounds = sb.bounds
		for _, cardID := range sb.cards {
			c := domain.NewCard(cardID)
			slot.Append(c)
			c.Initialize(slot)
		}
		if err := table.AddSlot(slot); err != nil {
			return nil, fmt.Errorf("failed to build table %q: %w", b.id, err)
		}
	}
	return table, nil
}

// SlotBuilder provides a fluent API for configuring a slot.
type SlotBuilder struct {
	id      string
	typ     domain.SlotType
	origin  domain.Vec3
	bounds  domain.Rect
	cards   []string
	builder *Builder
}

// At places the slot's origin on the surface.
func (s *SlotBuilder) At(x, y float64) *SlotBuilder {
	s.origin = domain.Vec3{X: x, Y: y}
	return s
}

// Size sets the slot's own hit area, centered on its origin.
func (s *SlotBuilder) Size(w, h float64) *SlotBuilder {
	s.bounds = domain.CenteredRect(domain.Vec3{}, w, h)
	return s
}

// Cards appends cards to the slot, bottom first.
func (s *SlotBuilder) Cards(ids ...string) *SlotBuilder {
	s.cards = append(s.cards, ids...)
	return s
}

// Table returns the parent builder, to chain the next slot.
func (s *SlotBuilder) Table() *Builder {
	return s.builder
}
