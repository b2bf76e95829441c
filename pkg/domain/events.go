package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventDragStart EventType = "drag_start"
	EventDrop      EventType = "drop"
	EventLayout    EventType = "layout"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// DragEvent is emitted when a stack is lifted from its slot.
type DragEvent struct {
	EventBase
	CardID      string   `json:"card_id"`
	SlotID      string   `json:"slot_id,omitempty"`
	OriginIndex int      `json:"origin_index"`
	Stack       []string `json:"stack"`
}

// DropEvent is emitted when a drag session ends, committed or reverted.
type DropEvent struct {
	EventBase
	CardID string     `json:"card_id"`
	Result DropResult `json:"result"`
}

// LayoutEvent is emitted after a slot's children were laid out.
type LayoutEvent struct {
	EventBase
	SlotID   string   `json:"slot_id"`
	SlotType SlotType `json:"slot_type"`
	Count    int      `json:"count"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnDragStart func(context.Context, *DragEvent)
	OnDrop      func(context.Context, *DropEvent)
	OnLayout    func(context.Context, *LayoutEvent)
}

// MergeHooks returns hooks that call each of the given hooks in order.
func MergeHooks(all ...LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnDragStart: func(ctx context.Context, e *DragEvent) {
			for _, h := range all {
				if h.OnDragStart != nil {
					h.OnDragStart(ctx, e)
				}
			}
		},
		OnDrop: func(ctx context.Context, e *DropEvent) {
			for _, h := range all {
				if h.OnDrop != nil {
					h.OnDrop(ctx, e)
				}
			}
		},
		OnLayout: func(ctx context.Context, e *LayoutEvent) {
			for _, h := range all {
				if h.OnLayout != nil {
					h.OnLayout(ctx, e)
				}
			}
		},
	}
}
