package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"coworking/internal/models"
)

// BookingStore talks to the /bookings endpoints. Every call is protected
// and nothing is cached.
type BookingStore struct {
	client *Client
}

func NewBookingStore(client *Client) *BookingStore {
	return &BookingStore{client: client}
}

func (s *BookingStore) ListBookings(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := s.client.doGet(ctx, "list_bookings", "/bookings/all-bookings", true, &bookings); err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return bookings, nil
}

// DeleteBooking succeeds only on 200.
func (s *BookingStore) DeleteBooking(ctx context.Context, id int64) error {
	return s.client.doDelete(ctx, "delete_booking", fmt.Sprintf("/bookings/delete-booking/%d", id), http.StatusOK)
}

// CreateBooking returns the confirmation text sent back by the backend.
func (s *BookingStore) CreateBooking(ctx context.Context, roomID int64, req models.BookingRequest) (string, error) {
	body, err := s.client.doPostJSON(ctx, "create_booking", fmt.Sprintf("/bookings/room/%d/booking", roomID), req)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(body)), nil
}
