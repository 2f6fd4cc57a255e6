package api

import (
	"context"
	"fmt"
	"net/http"

	"coworking/internal/models"
)

// RoomStore talks to the /rooms endpoints.
type RoomStore struct {
	client *Client
}

func NewRoomStore(client *Client) *RoomStore {
	return &RoomStore{client: client}
}

// ListRooms is public; it is served from cache when one is configured.
func (s *RoomStore) ListRooms(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	if s.client.readCache(ctx, models.RoomsCacheKey, &rooms) {
		return rooms, nil
	}

	if err := s.client.doGet(ctx, "list_rooms", "/rooms/all-rooms", false, &rooms); err != nil {
		return nil, err
	}
	if rooms == nil {
		rooms = []models.Room{}
	}
	s.client.writeCache(ctx, models.RoomsCacheKey, rooms)
	return rooms, nil
}

func (s *RoomStore) CreateRoom(ctx context.Context, room models.RoomCreate) error {
	fields := []multipartField{
		{name: "roomType", value: room.RoomType},
		{name: "pricePerHour", value: room.PricePerHour.String()},
	}
	err := s.client.doMultipart(ctx, "create_room", http.MethodPost, "/rooms/add/new-room", fields, room.Photo)
	if err == nil {
		s.client.invalidate(ctx, models.RoomsCacheKey)
	}
	return err
}

// UpdateRoom sends only the fields set in update.
func (s *RoomStore) UpdateRoom(ctx context.Context, id int64, update models.RoomUpdate) error {
	var fields []multipartField
	if update.RoomType != nil {
		fields = append(fields, multipartField{name: "roomType", value: *update.RoomType})
	}
	if update.PricePerHour != nil {
		fields = append(fields, multipartField{name: "pricePerHour", value: update.PricePerHour.String()})
	}
	path := fmt.Sprintf("/rooms/update/%d", id)
	err := s.client.doMultipart(ctx, "update_room", http.MethodPut, path, fields, update.Photo)
	if err == nil {
		s.client.invalidate(ctx, models.RoomsCacheKey)
	}
	return err
}

// DeleteRoom returns a *ServerError with IsNotFound for an id that is
// already gone; the cached listing is dropped in that case too.
func (s *RoomStore) DeleteRoom(ctx context.Context, id int64) error {
	err := s.client.doDelete(ctx, "delete_room", fmt.Sprintf("/rooms/delete/room/%d", id), 0)
	if err == nil || IsNotFound(err) {
		s.client.invalidate(ctx, models.RoomsCacheKey)
	}
	return err
}
