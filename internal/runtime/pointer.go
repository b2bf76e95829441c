package runtime

import (
	"context"

	"github.com/aretw0/tableau/pkg/domain"
)

// Pointer routes raw pointer events to the engine, the way a host input
// system would: down starts a drag on the topmost card under the pointer,
// move updates it, up delivers the drop notification to the slot under the
// pointer and then resolves the drop.
//
// Each pointer ID drives at most one drag at a time.
type Pointer struct {
	engine *Engine
	active map[int]*domain.Card
}

// NewPointer creates a router bound to engine.
func NewPointer(engine *Engine) *Pointer {
	return &Pointer{
		engine: engine,
		active: make(map[int]*domain.Card),
	}
}

// Dragging returns the card currently dragged by pointerID, if any.
func (p *Pointer) Dragging(pointerID int) *domain.Card {
	return p.active[pointerID]
}

// Forget unbinds any pointer driving card, e.g. after the host reverted the
// drag directly.
func (p *Pointer) Forget(card *domain.Card) {
	for id, c := range p.active {
		if c == card {
			delete(p.active, id)
		}
	}
}

// Handle dispatches ev by phase. The result is non-nil only when an up event
// ended a drag.
func (p *Pointer) Handle(ctx context.Context, ev domain.PointerEvent) *domain.DropResult {
	switch ev.Phase {
	case domain.PointerDown:
		p.Down(ctx, ev)
	case domain.PointerMove:
		p.Move(ctx, ev)
	case domain.PointerUp:
		return p.Up(ctx, ev)
	}
	return nil
}

// Down starts a drag on the frontmost hit-testable card under the pointer.
// It reports whether a drag started.
func (p *Pointer) Down(ctx context.Context, ev domain.PointerEvent) bool {
	if _, busy := p.active[ev.PointerID]; busy {
		return false
	}
	card := p.cardUnder(ev)
	if card == nil || card.Dragging() {
		return false
	}
	p.engine.BeginDrag(ctx, card, ev.Screen)
	if card.Session() == nil {
		return false
	}
	p.active[ev.PointerID] = card
	return true
}

// Move updates the drag owned by the event's pointer.
func (p *Pointer) Move(ctx context.Context, ev domain.PointerEvent) {
	if card, ok := p.active[ev.PointerID]; ok {
		p.engine.Drag(ctx, card, ev.Screen)
	}
}

// Up ends the drag owned by the event's pointer.
func (p *Pointer) Up(ctx context.Context, ev domain.PointerEvent) *domain.DropResult {
	card, ok := p.active[ev.PointerID]
	if !ok {
		return nil
	}
	delete(p.active, ev.PointerID)

	p.engine.Drag(ctx, card, ev.Screen)

	if slot := p.slotUnder(ev); slot != nil {
		if result := p.engine.Drop(ctx, slot, card); result != nil {
			return result
		}
	}
	result, ok := p.engine.EndDrag(ctx, card, ev)
	if !ok {
		return nil
	}
	return &result
}

func (p *Pointer) cardUnder(ev domain.PointerEvent) *domain.Card {
	if p.engine.hitTester == nil {
		return nil
	}
	for _, obj := range p.engine.hitTester.HitTest(ev) {
		if card, ok := obj.(*domain.Card); ok && card.HitTestable {
			return card
		}
	}
	return nil
}

func (p *Pointer) slotUnder(ev domain.PointerEvent) *domain.Slot {
	return p.engine.resolveTarget(ev)
}
