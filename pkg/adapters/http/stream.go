package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/aretw0/tableau/pkg/domain"
)

// Message is one engine event queued for SSE delivery.
type Message struct {
	Type domain.EventType
	Data []byte
}

// StreamManager handles active SSE connections
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- Message]struct{} // TableID -> Set of Channels
}

func NewStreamManager() *StreamManager {
	return &StreamManager{
		subscribers: make(map[string]map[chan<- Message]struct{}),
	}
}

func (sm *StreamManager) Subscribe(tableID string) (chan Message, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan Message, 32)
	if _, ok := sm.subscribers[tableID]; !ok {
		sm.subscribers[tableID] = make(map[chan<- Message]struct{})
	}
	sm.subscribers[tableID][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[tableID]; ok {
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, tableID)
			}
		}
	}
}

func (sm *StreamManager) Broadcast(tableID string, msg Message) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	subs, ok := sm.subscribers[tableID]
	if !ok {
		return
	}
	slog.Debug("StreamManager: Broadcasting", "table", tableID, "type", msg.Type, "subscribers", len(subs))
	for ch := range subs {
		select {
		case ch <- msg:
		default:
			// Drop message if channel is full (slow client)
			slog.Warn("SSE: Client buffer full, dropping message", "table", tableID)
		}
	}
}

// Hooks returns lifecycle hooks that publish every engine event of tableID.
func (sm *StreamManager) Hooks(tableID string) domain.LifecycleHooks {
	publish := func(t domain.EventType, v any) {
		data, err := json.Marshal(v)
		if err != nil {
			slog.Error("StreamManager: event encode failed", "error", err)
			return
		}
		sm.Broadcast(tableID, Message{Type: t, Data: data})
	}
	return domain.LifecycleHooks{
		OnDragStart: func(_ context.Context, e *domain.DragEvent) { publish(e.Type, e) },
		OnDrop:      func(_ context.Context, e *domain.DropEvent) { publish(e.Type, e) },
		OnLayout:    func(_ context.Context, e *domain.LayoutEvent) { publish(e.Type, e) },
	}
}
