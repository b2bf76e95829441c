package runtime

import (
	"context"

	"github.com/aretw0/tableau/pkg/domain"
)

// Revert sends the stack owned by card back to the slot it was lifted from,
// at its recorded index and in its original order, and ends the session.
// It does nothing when card owns no active session.
func (e *Engine) Revert(ctx context.Context, card *domain.Card) (domain.DropResult, bool) {
	if card.Session() == nil {
		return domain.DropResult{}, false
	}
	return e.revert(ctx, card, domain.ReasonRequested), true
}

func (e *Engine) revert(ctx context.Context, card *domain.Card, reason domain.RevertReason) domain.DropResult {
	session := card.Session()
	origin := session.Origin

	if origin == nil {
		// Nowhere to go back to: the stack stays detached.
		for _, c := range session.Stack {
			if owner := c.Slot(); owner != nil {
				owner.Remove(c)
			}
			c.HitTestable = true
		}
	} else {
		start := domain.Clamp(session.OriginIndex, 0, origin.Len())
		for i, c := range session.Stack {
			origin.Append(c)
			index := domain.Clamp(start+i, 0, origin.Len()-1)
			origin.MoveTo(c, index)
			c.HitTestable = true
			c.Remember(origin, index)
		}
	}

	result := e.finish(card, domain.DropResult{
		Outcome:      domain.OutcomeReverted,
		Reason:       reason,
		OriginSlotID: slotID(origin),
	})

	e.Relayout(ctx, origin)

	e.logger.Debug("drop reverted",
		"card_id", card.ID,
		"slot_id", slotID(origin),
		"reason", string(reason),
		"stack_size", len(result.Cards),
	)
	e.notifyDrop(ctx, card, result)
	return result
}
