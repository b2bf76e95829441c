package runtime

import (
	"context"

	"github.com/aretw0/tableau/pkg/domain"
)

// BeginDrag lifts card, and every card stacked above it, off its slot.
//
// The captured stack is detached from the slot, excluded from hit-testing and
// raised above static content. Calling BeginDrag for a card that is already
// part of an active session does nothing.
func (e *Engine) BeginDrag(ctx context.Context, card *domain.Card, pointer domain.Vec2) {
	if card == nil || card.Dragging() {
		return
	}

	session := &domain.DragSession{}

	if slot := card.Slot(); slot != nil {
		i := slot.IndexOf(card)
		session.Origin = slot
		session.OriginIndex = i
		session.Stack = slot.Suffix(i)
	} else {
		last, _ := card.LastPlacement()
		session.Origin = last
		session.OriginIndex = 0
		session.Stack = []*domain.Card{card}
	}

	primary := card.World()
	session.Offsets = make([]domain.Vec3, len(session.Stack))
	for i, c := range session.Stack {
		session.Offsets[i] = c.World().Sub(primary)
	}

	for i, c := range session.Stack {
		if owner := c.Slot(); owner != nil {
			owner.Remove(c)
		}
		c.HitTestable = false
		c.DrawOrder = domain.DragSortingOffset + i
		c.Hold(session)
	}

	session.Anchor = primary.Sub(e.projector.Project(pointer))

	e.logger.Debug("drag started",
		"card_id", card.ID,
		"slot_id", slotID(session.Origin),
		"origin_index", session.OriginIndex,
		"stack_size", session.Size(),
	)

	if e.hooks.OnDragStart != nil {
		e.hooks.OnDragStart(ctx, &domain.DragEvent{
			EventBase:   e.base(domain.EventDragStart),
			CardID:      card.ID,
			SlotID:      slotID(session.Origin),
			OriginIndex: session.OriginIndex,
			Stack:       session.CardIDs(),
		})
	}
}

// Drag moves the stack owned by card so it follows the pointer, keeping the
// stack's relative geometry. It does nothing without an active session.
func (e *Engine) Drag(ctx context.Context, card *domain.Card, pointer domain.Vec2) {
	session := card.Session()
	if session == nil {
		return
	}
	target := e.projector.Project(pointer).Add(session.Anchor)
	for i, c := range session.Stack {
		c.Position = target.Add(session.Offsets[i])
	}
}
