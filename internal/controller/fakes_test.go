package controller

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"coworking/internal/api"
	"coworking/internal/models"

	"github.com/stretchr/testify/mock"
)

// memoryRooms is an in-memory RoomStore that records what it was sent.
type memoryRooms struct {
	mu      sync.Mutex
	rooms   []models.Room
	nextID  int64
	updates []models.RoomUpdate
	deletes []int64
	calls   []string

	listErr   error
	createErr error
	updateErr error
	deleteErr error
	// deleteGate, when set, blocks DeleteRoom until closed.
	deleteGate chan struct{}
}

func newMemoryRooms(rooms ...models.Room) *memoryRooms {
	s := &memoryRooms{nextID: 1}
	for _, r := range rooms {
		s.rooms = append(s.rooms, r)
		if r.ID >= s.nextID {
			s.nextID = r.ID + 1
		}
	}
	return s
}

func (s *memoryRooms) ListRooms(_ context.Context) ([]models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, "list")
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]models.Room(nil), s.rooms...), nil
}

func (s *memoryRooms) CreateRoom(_ context.Context, room models.RoomCreate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, "create")
	if s.createErr != nil {
		return s.createErr
	}
	s.rooms = append(s.rooms, models.Room{ID: s.nextID, RoomType: room.RoomType, PricePerHour: room.PricePerHour})
	s.nextID++
	return nil
}

func (s *memoryRooms) UpdateRoom(_ context.Context, id int64, update models.RoomUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, "update")
	s.updates = append(s.updates, update)
	if s.updateErr != nil {
		return s.updateErr
	}
	for i := range s.rooms {
		if s.rooms[i].ID == id {
			if update.RoomType != nil {
				s.rooms[i].RoomType = *update.RoomType
			}
			if update.PricePerHour != nil {
				s.rooms[i].PricePerHour = *update.PricePerHour
			}
			return nil
		}
	}
	return notFound("update_room")
}

func (s *memoryRooms) DeleteRoom(_ context.Context, id int64) error {
	if s.deleteGate != nil {
		<-s.deleteGate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, "delete")
	s.deletes = append(s.deletes, id)
	if s.deleteErr != nil {
		return s.deleteErr
	}
	for i := range s.rooms {
		if s.rooms[i].ID == id {
			s.rooms = append(s.rooms[:i], s.rooms[i+1:]...)
			return nil
		}
	}
	return notFound("delete_room")
}

func (s *memoryRooms) callLog() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func notFound(op string) error {
	return &api.ServerError{Op: op, StatusCode: http.StatusNotFound, Body: "not found"}
}

// memoryBookings is an in-memory BookingStore.
type memoryBookings struct {
	mu       sync.Mutex
	bookings []models.Booking
	nextID   int64
	requests []models.BookingRequest

	listErr   error
	deleteErr error
	createErr error
	// createGate, when set, blocks CreateBooking until closed.
	createGate chan struct{}
}

func (s *memoryBookings) ListBookings(_ context.Context) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]models.Booking(nil), s.bookings...), nil
}

func (s *memoryBookings) DeleteBooking(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	for i := range s.bookings {
		if s.bookings[i].ID == id {
			s.bookings = append(s.bookings[:i], s.bookings[i+1:]...)
			return nil
		}
	}
	return notFound("delete_booking")
}

func (s *memoryBookings) CreateBooking(_ context.Context, roomID int64, req models.BookingRequest) (string, error) {
	if s.createGate != nil {
		<-s.createGate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
	if s.createErr != nil {
		return "", s.createErr
	}
	s.nextID++
	code := fmt.Sprintf("CODE%d", s.nextID)
	s.bookings = append(s.bookings, models.Booking{
		ID:                      s.nextID,
		Date:                    models.DateValue{Text: req.Date},
		HeureDebut:              models.TimeValue{Text: req.HeureDebut},
		HeureFin:                models.TimeValue{Text: req.HeureFin},
		ClientFullName:          req.ClientFullName,
		BookingConfirmationCode: code,
		RoomID:                  roomID,
	})
	return "Room booked successfully, Your booking confirmation code is :" + code, nil
}

type mockConfirmer struct {
	mock.Mock
}

func (m *mockConfirmer) Confirm(ctx context.Context, prompt string) bool {
	return m.Called(ctx, prompt).Bool(0)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishJSON(eventType string, payload interface{}) error {
	return m.Called(eventType, payload).Error(0)
}

type mockPrinter struct {
	mock.Mock
}

func (m *mockPrinter) Print(ctx context.Context, document string) error {
	return m.Called(ctx, document).Error(0)
}

// instantPayments succeeds immediately unless gated.
type instantPayments struct {
	gate  chan struct{}
	err   error
	calls int
	mu    sync.Mutex
}

func (p *instantPayments) Process(ctx context.Context, method models.PaymentMethod, _ string) (models.PaymentOutcome, error) {
	if p.gate != nil {
		select {
		case <-p.gate:
		case <-ctx.Done():
			return models.PaymentOutcome{}, ctx.Err()
		}
	}
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()
	if p.err != nil {
		return models.PaymentOutcome{}, p.err
	}
	return models.PaymentOutcome{Method: method, Message: "ok", ProcessedAt: time.Now()}, nil
}

var errBoom = errors.New("boom")
