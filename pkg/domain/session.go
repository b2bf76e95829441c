package domain

// DragSession is the transient state of one in-progress drag gesture.
// It is owned by the primary card (the card under the pointer at drag start).
type DragSession struct {
	// Origin is the slot the stack was lifted from; nil if the card had no slot.
	Origin *Slot
	// OriginIndex is the index of the primary card within Origin at drag start.
	OriginIndex int

	// Stack holds the dragged cards in their original relative order.
	Stack []*Card
	// Offsets holds, per stack card, its position relative to the primary card.
	Offsets []Vec3

	// Anchor is the vector from the projected pointer to the primary card at drag start.
	Anchor Vec3

	// Target is a drop target explicitly claimed by a slot before resolution.
	Target *Slot
}

// Primary returns the card that started the session.
func (s *DragSession) Primary() *Card {
	if len(s.Stack) == 0 {
		return nil
	}
	return s.Stack[0]
}

// Size returns the number of cards being dragged.
func (s *DragSession) Size() int {
	return len(s.Stack)
}

// CardIDs returns the IDs of the stack cards, bottom first.
func (s *DragSession) CardIDs() []string {
	ids := make([]string, len(s.Stack))
	for i, c := range s.Stack {
		ids[i] = c.ID
	}
	return ids
}

// DropOutcome tells whether a gesture placed its stack or sent it back.
type DropOutcome string

const (
	OutcomeCommitted DropOutcome = "committed"
	OutcomeReverted  DropOutcome = "reverted"
)

// RevertReason explains why a stack went back to its origin.
type RevertReason string

const (
	ReasonNone RevertReason = ""
	// ReasonNoTarget means no slot was assigned nor found under the pointer.
	ReasonNoTarget RevertReason = "no_target"
	// ReasonReceiverSingleCard means a multi-card stack was dropped on a Receiver.
	ReasonReceiverSingleCard RevertReason = "receiver_single_card"
	// ReasonDeckRejects means the stack was dropped on a Deck.
	ReasonDeckRejects RevertReason = "deck_rejects"
	// ReasonRequested means the host asked for the revert directly.
	ReasonRequested RevertReason = "requested"
)

// DropResult describes how a drag session ended.
type DropResult struct {
	Outcome DropOutcome  `json:"outcome"`
	Reason  RevertReason `json:"reason,omitempty"`

	// OriginSlotID is empty when the stack had no origin slot.
	OriginSlotID string `json:"origin_slot_id,omitempty"`
	// TargetSlotID is the slot that received the stack; empty on revert.
	TargetSlotID string `json:"target_slot_id,omitempty"`

	Cards []string `json:"cards"`
}

// Committed reports whether the stack was placed on a new slot.
func (r DropResult) Committed() bool {
	return r.Outcome == OutcomeCommitted
}
