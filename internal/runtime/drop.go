package runtime

import (
	"context"

	"github.com/aretw0/tableau/pkg/domain"
)

// Drop handles a drop notification delivered by the input layer when the
// pointer is released over slot while card is being dragged.
//
// A Deck never accepts cards and a Receiver only accepts single cards; in
// both cases the stack is reverted right away and the result is returned.
// Any other slot claims the drop: it becomes the session's explicit target
// and the following EndDrag commits onto it. The returned pointer is nil in
// that case, and also when card owns no active session.
func (e *Engine) Drop(ctx context.Context, slot *domain.Slot, card *domain.Card) *domain.DropResult {
	session := card.Session()
	if session == nil || slot == nil {
		return nil
	}

	switch {
	case slot.Type == domain.SlotDeck:
		result := e.revert(ctx, card, domain.ReasonDeckRejects)
		return &result
	case slot.Type == domain.SlotReceiver && session.Size() > 1:
		result := e.revert(ctx, card, domain.ReasonReceiverSingleCard)
		return &result
	}

	// The target is laid out by the commit in EndDrag.
	session.Target = slot
	return nil
}
