package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"coworking/internal/config"
	"coworking/internal/models"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type backend struct {
	mu       sync.Mutex
	rooms    []models.Room
	bookings []models.Booking
	deleted  []string
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/rooms/all-rooms":
		_ = json.NewEncoder(w).Encode(b.rooms)
	case r.Method == http.MethodGet && r.URL.Path == "/bookings/all-bookings":
		_ = json.NewEncoder(w).Encode(b.bookings)
	case r.Method == http.MethodPost && r.URL.Path == "/rooms/add/new-room":
		_ = r.ParseMultipartForm(1 << 20)
		b.rooms = append(b.rooms, models.Room{
			ID:           int64(len(b.rooms) + 1),
			RoomType:     r.FormValue("roomType"),
			PricePerHour: decimal.RequireFromString(r.FormValue("pricePerHour")),
		})
		w.WriteHeader(http.StatusCreated)
	case r.Method == http.MethodPost && r.URL.Path == "/bookings/room/1/booking":
		_, _ = io.WriteString(w, "Room booked successfully, Your booking confirmation code is :XYZ")
	case r.Method == http.MethodDelete:
		b.deleted = append(b.deleted, r.URL.Path)
		w.WriteHeader(http.StatusOK)
	default:
		http.NotFound(w, r)
	}
}

func newTestApp(t *testing.T, b *backend, input string) (*app, *bytes.Buffer) {
	t.Helper()
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		App:     config.AppConfig{Name: "coworking"},
		API:     config.APIConfig{BaseURL: srv.URL, TimeoutSeconds: 5},
		Auth:    config.AuthConfig{Token: "token"},
		Booking: config.BookingConfig{PaymentDelayMillis: 1, NoticeSeconds: 6},
		Exports: config.ExportConfig{Path: t.TempDir()},
	}
	logger := zerolog.New(io.Discard)
	out := &bytes.Buffer{}
	return newApp(cfg, &logger, nil, strings.NewReader(input), out), out
}

func TestDispatch_Rooms(t *testing.T) {
	b := &backend{rooms: []models.Room{{ID: 1, RoomType: "Open Desk", PricePerHour: decimal.NewFromInt(10)}}}
	a, out := newTestApp(t, b, "")

	require.NoError(t, a.dispatch(context.Background(), []string{"rooms"}))
	assert.Contains(t, out.String(), "Open Desk")
	assert.Contains(t, out.String(), "10.00")
}

func TestDispatch_AddRoom(t *testing.T) {
	b := &backend{}
	a, out := newTestApp(t, b, "")

	require.NoError(t, a.dispatch(context.Background(), []string{"add-room", "Meeting Room", "25"}))
	assert.Contains(t, out.String(), `Room "Meeting Room" created.`)
	assert.Contains(t, out.String(), "25.00")
}

func TestDispatch_DeleteRoomConfirmation(t *testing.T) {
	ctx := context.Background()
	rooms := []models.Room{{ID: 1, RoomType: "Open Desk"}}

	b := &backend{rooms: rooms}
	a, out := newTestApp(t, b, "n\n")
	require.NoError(t, a.dispatch(ctx, []string{"delete-room", "1"}))
	assert.Contains(t, out.String(), "Cancelled.")
	assert.Empty(t, b.deleted)

	b = &backend{rooms: rooms}
	a, _ = newTestApp(t, b, "y\n")
	require.NoError(t, a.dispatch(ctx, []string{"delete-room", "1"}))
	assert.Equal(t, []string{"/rooms/delete/room/1"}, b.deleted)
}

func TestDispatch_Book(t *testing.T) {
	b := &backend{rooms: []models.Room{{ID: 1, RoomType: "Open Desk"}}}
	a, out := newTestApp(t, b, "")

	err := a.dispatch(context.Background(), []string{"book", "1", "Jane Doe", "2024-06-01", "09:00", "10:00"})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "confirmation code is :XYZ")
	assert.Contains(t, text, "Room: Open Desk")
	assert.Contains(t, text, "On-site payment succeeded")
	assert.Contains(t, text, "Payment: processed")
	assert.Contains(t, text, "Booking for Jane Doe on 2024-06-01 is complete.")
	assert.Equal(t, 1, strings.Count(text, "is complete."))
}

func TestDispatch_BookOnlineWithoutBank(t *testing.T) {
	b := &backend{rooms: []models.Room{{ID: 1, RoomType: "Open Desk"}}}
	a, out := newTestApp(t, b, "")

	err := a.dispatch(context.Background(), []string{"book", "1", "Jane Doe", "2024-06-01", "09:00", "10:00", "online"})
	require.Error(t, err)
	assert.Contains(t, out.String(), "bankIdentifier: is required for online payment")
	assert.NotContains(t, out.String(), "is complete.")
}

func TestDispatch_Bookings(t *testing.T) {
	b := &backend{bookings: []models.Booking{{
		ID:             3,
		Date:           models.DateValue{Parts: []int{2024, 6, 1}},
		HeureDebut:     models.TimeValue{Parts: []int{9, 0}},
		HeureFin:       models.TimeValue{Parts: []int{10, 0}},
		ClientFullName: "Jane Doe",
	}}}
	a, out := newTestApp(t, b, "y\n")
	ctx := context.Background()

	require.NoError(t, a.dispatch(ctx, []string{"bookings"}))
	assert.Contains(t, out.String(), "01/06/2024")
	assert.Contains(t, out.String(), "09:00")

	require.NoError(t, a.dispatch(ctx, []string{"delete-booking", "3"}))
	assert.Equal(t, []string{"/bookings/delete-booking/3"}, b.deleted)
	assert.Contains(t, out.String(), "Booking deleted successfully")
}

func TestDispatch_Usage(t *testing.T) {
	a, _ := newTestApp(t, &backend{}, "")
	assert.ErrorIs(t, a.dispatch(context.Background(), []string{"nope"}), errUsage)
	assert.ErrorIs(t, a.dispatch(context.Background(), []string{"delete-room", "x"}), errUsage)
	assert.ErrorIs(t, run(nil), errUsage)
}
