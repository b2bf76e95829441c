package runtime

import (
	"context"

	"github.com/aretw0/tableau/pkg/domain"
)

// EndDrag resolves where the stack owned by card lands.
//
// An explicitly assigned target (see Drop) wins over hit-testing; otherwise
// the first slot under the pointer is used. Without a target, or when a
// multi-card stack meets a Receiver, the stack reverts to its origin.
// Otherwise the stack is appended to the target in its original order.
//
// The second return value is false when card owns no active session.
func (e *Engine) EndDrag(ctx context.Context, card *domain.Card, ev domain.PointerEvent) (domain.DropResult, bool) {
	session := card.Session()
	if session == nil {
		return domain.DropResult{}, false
	}

	target := session.Target
	if target == nil {
		target = e.resolveTarget(ev)
	}

	if target == nil {
		return e.revert(ctx, card, domain.ReasonNoTarget), true
	}
	if target.Type == domain.SlotReceiver && session.Size() > 1 {
		return e.revert(ctx, card, domain.ReasonReceiverSingleCard), true
	}
	return e.commit(ctx, card, target), true
}

func (e *Engine) resolveTarget(ev domain.PointerEvent) *domain.Slot {
	if e.hitTester == nil {
		return nil
	}
	for _, obj := range e.hitTester.HitTest(ev) {
		if slot, ok := obj.(*domain.Slot); ok {
			return slot
		}
	}
	return nil
}

func (e *Engine) commit(ctx context.Context, card *domain.Card, target *domain.Slot) domain.DropResult {
	session := card.Session()
	origin := session.Origin

	insertIndex := target.Len()
	for i, c := range session.Stack {
		target.Append(c)
		index := domain.Clamp(insertIndex+i, 0, target.Len()-1)
		target.MoveTo(c, index)
		c.HitTestable = true
		c.Remember(target, index)
	}

	result := e.finish(card, domain.DropResult{
		Outcome:      domain.OutcomeCommitted,
		OriginSlotID: slotID(origin),
		TargetSlotID: target.ID,
	})

	if origin != target {
		e.Relayout(ctx, origin)
	}
	e.Relayout(ctx, target)

	e.logger.Debug("drop committed",
		"card_id", card.ID,
		"slot_id", target.ID,
		"stack_size", len(result.Cards),
	)
	e.notifyDrop(ctx, card, result)
	return result
}

// finish releases the session's cards and fills in the stack IDs.
func (e *Engine) finish(card *domain.Card, result domain.DropResult) domain.DropResult {
	session := card.Session()
	result.Cards = session.CardIDs()
	for _, c := range session.Stack {
		c.Hold(nil)
	}
	return result
}

func (e *Engine) notifyDrop(ctx context.Context, card *domain.Card, result domain.DropResult) {
	if e.hooks.OnDrop != nil {
		e.hooks.OnDrop(ctx, &domain.DropEvent{
			EventBase: e.base(domain.EventDrop),
			CardID:    card.ID,
			Result:    result,
		})
	}
}
