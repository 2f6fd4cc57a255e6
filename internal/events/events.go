package events

import (
	"encoding/json"
	"sync"
	"time"
)

const (
	EventRoomCreated    = "room_created"
	EventRoomUpdated    = "room_updated"
	EventRoomDeleted    = "room_deleted"
	EventBookingCreated = "booking_created"
	EventBookingDeleted = "booking_deleted"
	// EventBookingPaid is the booking-success notification of the creation flow.
	EventBookingPaid = "booking_paid"
)

// BookingEventPayload describes the booking snapshot for event consumers.
type BookingEventPayload struct {
	BookingID      int64  `json:"booking_id,omitempty"`
	ClientFullName string `json:"client_full_name,omitempty"`
	Date           string `json:"date,omitempty"`
	HeureDebut     string `json:"heure_debut,omitempty"`
	HeureFin       string `json:"heure_fin,omitempty"`
	RoomID         int64  `json:"room_id,omitempty"`
	RoomType       string `json:"room_type,omitempty"`
	PaymentMethod  string `json:"payment_method,omitempty"`
	Receipt        string `json:"receipt,omitempty"`
}

// RoomEventPayload describes a room mutation.
type RoomEventPayload struct {
	RoomID   int64  `json:"room_id,omitempty"`
	RoomType string `json:"room_type,omitempty"`
}

// Event represents a lightweight domain event.
type Event struct {
	Type      string
	Payload   []byte
	CreatedAt time.Time
}

// EventHandler reacts to an event.
type EventHandler func(event *Event) error

// EventBus provides in-process pub/sub for events.
type EventBus struct {
	subscribers map[string][]EventHandler
	mu          sync.RWMutex
}

// NewEventBus constructs an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{subscribers: make(map[string][]EventHandler)}
}

// Subscribe registers a handler for a given event type.
func (b *EventBus) Subscribe(eventType string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// Publish notifies subscribers of the event type.
func (b *EventBus) Publish(event *Event) {
	b.mu.RLock()
	handlers := append([]EventHandler(nil), b.subscribers[event.Type]...)
	b.mu.RUnlock()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	for _, handler := range handlers {
		// Handlers run synchronously; caller decides concurrency model.
		_ = handler(event)
	}
}

// PublishJSON serializes the payload and publishes an event.
func (b *EventBus) PublishJSON(eventType string, payload interface{}) error {
	if b == nil {
		return nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	b.Publish(&Event{Type: eventType, Payload: raw, CreatedAt: time.Now()})
	return nil
}

// Decode unmarshals the event payload into out.
func (e *Event) Decode(out interface{}) error {
	return json.Unmarshal(e.Payload, out)
}
