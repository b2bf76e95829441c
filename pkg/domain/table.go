package domain

import (
	"fmt"
	"sort"
)

// Table is a named set of slots together with an index of every card it holds.
// It is the unit adapters address; the drag engine itself only sees slots and cards.
type Table struct {
	ID string

	slots     []*Slot
	slotIndex map[string]*Slot
	cards     map[string]*Card
}

// NewTable creates an empty table.
func NewTable(id string) *Table {
	return &Table{
		ID:        id,
		slotIndex: make(map[string]*Slot),
		cards:     make(map[string]*Card),
	}
}

// AddSlot registers a slot and every card it already holds.
func (t *Table) AddSlot(s *Slot) error {
	if _, exists := t.slotIndex[s.ID]; exists {
		return fmt.Errorf("%w: slot %q", ErrDuplicateID, s.ID)
	}
	for _, c := range s.cards {
		if err := t.AddCard(c); err != nil {
			return err
		}
	}
	t.slots = append(t.slots, s)
	t.slotIndex[s.ID] = s
	return nil
}

// AddCard registers a card for lookup by ID.
func (t *Table) AddCard(c *Card) error {
	if _, exists := t.cards[c.ID]; exists {
		return fmt.Errorf("%w: card %q", ErrDuplicateID, c.ID)
	}
	t.cards[c.ID] = c
	return nil
}

// Slots returns the slots in registration order.
func (t *Table) Slots() []*Slot {
	out := make([]*Slot, len(t.slots))
	copy(out, t.slots)
	return out
}

// Slot looks up a slot by ID.
func (t *Table) Slot(id string) (*Slot, error) {
	s, ok := t.slotIndex[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSlotNotFound, id)
	}
	return s, nil
}

// Card looks up a card by ID.
func (t *Table) Card(id string) (*Card, error) {
	c, ok := t.cards[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrCardNotFound, id)
	}
	return c, nil
}

// Detached returns the registered cards that are not owned by any slot, sorted by draw order.
func (t *Table) Detached() []*Card {
	var out []*Card
	for _, c := range t.cards {
		if c.slot == nil {
			out = append(out, c)
		}
	}
	sortByDrawOrder(out)
	return out
}

func sortByDrawOrder(cards []*Card) {
	sort.Slice(cards, func(i, j int) bool {
		if cards[i].DrawOrder != cards[j].DrawOrder {
			return cards[i].DrawOrder < cards[j].DrawOrder
		}
		return cards[i].ID < cards[j].ID
	})
}

// CardView is the serializable view of a card.
type CardView struct {
	ID          string `json:"id"`
	Index       int    `json:"index"`
	Position    Vec3   `json:"position"`
	World       Vec3   `json:"world"`
	DrawOrder   int    `json:"draw_order"`
	HitTestable bool   `json:"hit_testable"`
}

// SlotView is the serializable view of a slot.
type SlotView struct {
	ID     string     `json:"id"`
	Type   SlotType   `json:"type"`
	Origin Vec3       `json:"origin"`
	Cards  []CardView `json:"cards"`
}

// Snapshot is a point-in-time view of a table.
type Snapshot struct {
	TableID  string     `json:"table_id"`
	Slots    []SlotView `json:"slots"`
	Detached []CardView `json:"detached,omitempty"`
}

// Snapshot captures the current layout of the table.
func (t *Table) Snapshot() Snapshot {
	snap := Snapshot{TableID: t.ID, Slots: make([]SlotView, 0, len(t.slots))}
	for _, s := range t.slots {
		view := SlotView{ID: s.ID, Type: s.Type, Origin: s.Origin, Cards: make([]CardView, 0, len(s.cards))}
		for i, c := range s.cards {
			view.Cards = append(view.Cards, viewOf(c, i))
		}
		snap.Slots = append(snap.Slots, view)
	}
	for _, c := range t.Detached() {
		snap.Detached = append(snap.Detached, viewOf(c, -1))
	}
	return snap
}

func viewOf(c *Card, index int) CardView {
	return CardView{
		ID:          c.ID,
		Index:       index,
		Position:    c.Position,
		World:       c.World(),
		DrawOrder:   c.DrawOrder,
		HitTestable: c.HitTestable,
	}
}
