package domain

import (
	"context"
	"time"

	"coworking/internal/models"
)

type RoomStore interface {
	ListRooms(ctx context.Context) ([]models.Room, error)
	CreateRoom(ctx context.Context, room models.RoomCreate) error
	UpdateRoom(ctx context.Context, id int64, update models.RoomUpdate) error
	DeleteRoom(ctx context.Context, id int64) error
}

type BookingStore interface {
	ListBookings(ctx context.Context) ([]models.Booking, error)
	DeleteBooking(ctx context.Context, id int64) error
	// CreateBooking returns the backend's confirmation message.
	CreateBooking(ctx context.Context, roomID int64, req models.BookingRequest) (string, error)
}

type CredentialProvider interface {
	Token(ctx context.Context) (string, error)
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

type PaymentProcessor interface {
	Process(ctx context.Context, method models.PaymentMethod, bankIdentifier string) (models.PaymentOutcome, error)
}

// Printer hands a rendered document to the platform print surface.
type Printer interface {
	Print(ctx context.Context, document string) error
}

// Confirmer asks the operator a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// Cache stores JSON-serializable values by key. Get reports whether the key
// was found.
type Cache interface {
	Get(ctx context.Context, key string, out interface{}) (bool, error)
	Set(ctx context.Context, key string, val interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
