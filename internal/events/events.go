package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event types published by the scheduling service.
const (
	TypeAvailabilitySaved = "availability.saved"
	TypeTaskToggled       = "task.toggled"
)

// Event represents a lightweight domain event.
type Event struct {
	ID        string
	Type      string
	Payload   []byte
	CreatedAt time.Time
}

// EventHandler reacts to an event.
type EventHandler func(event Event) error

// Bus provides in-process pub/sub for events.
type Bus struct {
	subscribers map[string][]EventHandler
	mu          sync.RWMutex
}

// NewBus constructs an empty bus.
func NewBus() *Bus {
	return &Bus{subscribers: make(map[string][]EventHandler)}
}

// Subscribe registers a handler for a given event type.
func (b *Bus) Subscribe(eventType string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// Publish notifies subscribers of the event type.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	handlers := append([]EventHandler(nil), b.subscribers[event.Type]...)
	b.mu.RUnlock()

	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	for _, handler := range handlers {
		// Handlers run synchronously; caller decides concurrency model.
		_ = handler(event)
	}
}

// AvailabilitySaved is the payload for TypeAvailabilitySaved.
type AvailabilitySaved struct {
	CaregiverID string `json:"caregiver_id"`
	Mode        string `json:"mode"` // "initial_setup" or "update"
}

// TaskToggled is the payload for TypeTaskToggled.
type TaskToggled struct {
	BookingID string `json:"booking_id"`
	TaskID    string `json:"task_id"`
	Completed bool   `json:"completed"`
}
