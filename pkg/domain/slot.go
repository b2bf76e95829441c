package domain

import (
	"fmt"
	"strings"
)

// SlotType decides how a slot lays out its cards and which drops it accepts.
type SlotType int

const (
	// SlotDeck stacks cards on one spot and never accepts dropped cards.
	SlotDeck SlotType = iota
	// SlotTableau fans cards downwards with a fixed vertical spacing.
	SlotTableau
	// SlotReceiver stacks cards on one spot and accepts single cards only.
	SlotReceiver
)

var slotTypeNames = map[SlotType]string{
	SlotDeck:     "deck",
	SlotTableau:  "tableau",
	SlotReceiver: "receiver",
}

func (t SlotType) String() string {
	if name, ok := slotTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("SlotType(%d)", int(t))
}

// ParseSlotType converts a case-insensitive name into a SlotType.
func ParseSlotType(name string) (SlotType, error) {
	for t, n := range slotTypeNames {
		if strings.EqualFold(strings.TrimSpace(name), n) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSlotType, name)
}

// MarshalText implements encoding.TextMarshaler.
func (t SlotType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *SlotType) UnmarshalText(b []byte) error {
	parsed, err := ParseSlotType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Slot is an ordered container of cards. Index 0 is the bottom card.
type Slot struct {
	ID   string
	Type SlotType

	// Origin is the world position of the slot's frame.
	Origin Vec3

	// Bounds is the slot's own hit area, in local coordinates.
	Bounds Rect

	cards []*Card
}

// NewSlot creates an empty slot.
func NewSlot(id string, typ SlotType, origin Vec3) *Slot {
	return &Slot{ID: id, Type: typ, Origin: origin}
}

// SceneID implements ports.SceneObject.
func (s *Slot) SceneID() string {
	return s.ID
}

// Len returns the number of cards owned by the slot.
func (s *Slot) Len() int {
	return len(s.cards)
}

// Cards returns a copy of the ordered children.
func (s *Slot) Cards() []*Card {
	out := make([]*Card, len(s.cards))
	copy(out, s.cards)
	return out
}

// At returns the card at index i.
func (s *Slot) At(i int) *Card {
	return s.cards[i]
}

// IndexOf returns the index of c, or -1 when the slot does not own it.
func (s *Slot) IndexOf(c *Card) int {
	for i, card := range s.cards {
		if card == c {
			return i
		}
	}
	return -1
}

// Append attaches c at the end of the slot, detaching it from any previous owner.
// The card keeps its world position.
func (s *Slot) Append(c *Card) {
	if c.slot != nil {
		c.slot.Remove(c)
	}
	world := c.World()
	s.cards = append(s.cards, c)
	c.slot = s
	c.SetWorld(world)
}

// Remove detaches c from the slot. The card keeps its world position.
// It reports whether the slot owned the card.
func (s *Slot) Remove(c *Card) bool {
	i := s.IndexOf(c)
	if i < 0 {
		return false
	}
	world := c.World()
	s.cards = append(s.cards[:i], s.cards[i+1:]...)
	c.slot = nil
	c.Position = world
	return true
}

// MoveTo moves an owned card to index, shifting the others. The index is
// clamped to the slot's bounds.
func (s *Slot) MoveTo(c *Card, index int) {
	from := s.IndexOf(c)
	if from < 0 {
		return
	}
	index = Clamp(index, 0, len(s.cards)-1)
	if from == index {
		return
	}
	s.cards = append(s.cards[:from], s.cards[from+1:]...)
	s.cards = append(s.cards[:index], append([]*Card{c}, s.cards[index:]...)...)
}

// Suffix returns the cards from index i to the top, in order.
func (s *Slot) Suffix(i int) []*Card {
	if i < 0 || i >= len(s.cards) {
		return nil
	}
	out := make([]*Card, len(s.cards)-i)
	copy(out, s.cards[i:])
	return out
}
