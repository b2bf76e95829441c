package domain

// Card is a single card on the play surface.
//
// While owned by a Slot, Position is local to the slot's frame. While detached
// (mid-drag, or never placed) Position is a surface (world) position.
type Card struct {
	ID string

	// Position is the card's offset in its owner's frame, or its world position when detached.
	Position Vec3

	// DrawOrder decides rendering order; higher values render on top.
	DrawOrder int

	// HitTestable is false while the card is part of an active drag.
	HitTestable bool

	slot *Slot

	// lastSlot and lastIndex remember where the card was last placed,
	// so a detached card still has an origin to revert to.
	lastSlot  *Slot
	lastIndex int

	held *DragSession
}

// NewCard creates a detached, hit-testable card.
func NewCard(id string) *Card {
	return &Card{ID: id, HitTestable: true}
}

// SceneID implements ports.SceneObject.
func (c *Card) SceneID() string {
	return c.ID
}

// Slot returns the owning slot, or nil when the card is detached.
func (c *Card) Slot() *Slot {
	return c.slot
}

// Index returns the card's index within its owning slot, or -1 when detached.
func (c *Card) Index() int {
	if c.slot == nil {
		return -1
	}
	return c.slot.IndexOf(c)
}

// World returns the card's position on the surface.
func (c *Card) World() Vec3 {
	if c.slot == nil {
		return c.Position
	}
	return c.slot.Origin.Add(c.Position)
}

// SetWorld moves the card so that its surface position equals p.
func (c *Card) SetWorld(p Vec3) {
	if c.slot == nil {
		c.Position = p
		return
	}
	c.Position = p.Sub(c.slot.Origin)
}

// Initialize records slot as the card's last known placement.
func (c *Card) Initialize(slot *Slot) {
	c.lastSlot = slot
	c.lastIndex = 0
	if slot != nil {
		if i := slot.IndexOf(c); i >= 0 {
			c.lastIndex = i
		}
	}
}

// LastPlacement returns the slot and index the card was last placed at.
func (c *Card) LastPlacement() (*Slot, int) {
	return c.lastSlot, c.lastIndex
}

// Remember records a placement for future drags.
func (c *Card) Remember(slot *Slot, index int) {
	c.lastSlot = slot
	c.lastIndex = index
}

// Session returns the drag session owned by this card, if it started one.
func (c *Card) Session() *DragSession {
	if c.held == nil || c.held.Primary() != c {
		return nil
	}
	return c.held
}

// Dragging reports whether the card is part of any active drag session.
func (c *Card) Dragging() bool {
	return c.held != nil
}

// Hold marks the card as carried by s. A nil s releases it.
func (c *Card) Hold(s *DragSession) {
	c.held = s
}
