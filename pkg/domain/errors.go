package domain

import "errors"

// ErrTableNotFound is returned when a table ID cannot be found in the manager.
var ErrTableNotFound = errors.New("table not found")

// ErrSlotNotFound is returned when a slot ID does not exist on a table.
var ErrSlotNotFound = errors.New("slot not found")

// ErrCardNotFound is returned when a card ID does not exist on a table.
var ErrCardNotFound = errors.New("card not found")

// ErrDuplicateID is returned when a slot or card is registered twice on a table.
var ErrDuplicateID = errors.New("duplicate id")

// ErrUnknownSlotType is returned when parsing a slot type name fails.
var ErrUnknownSlotType = errors.New("unknown slot type")

// ErrCardDragging is returned when a move is requested for a card that is already being dragged.
var ErrCardDragging = errors.New("card is being dragged")
