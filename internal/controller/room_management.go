package controller

import (
	"context"
	"strings"
	"sync"

	"coworking/internal/api"
	"coworking/internal/domain"
	"coworking/internal/events"
	"coworking/internal/models"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// RoomView is a snapshot of the room management screen.
type RoomView struct {
	Rooms []models.Room

	AddOpen  bool
	AddDraft models.RoomDraft

	// EditingID is the room shown in edit mode, zero when none.
	EditingID int64
	EditDraft models.RoomDraft

	// DeleteCandidate is the room awaiting delete confirmation.
	DeleteCandidate *models.Room

	Error string
}

// RoomManagementController drives the room inventory screen: listing,
// the add form, inline edit and two-step delete.
type RoomManagementController struct {
	store  domain.RoomStore
	events domain.EventPublisher
	logger *zerolog.Logger

	mu        sync.Mutex
	rooms     []models.Room
	addOpen   bool
	addDraft  models.RoomDraft
	editID    int64
	editDraft models.RoomDraft
	candidate *models.Room
	lastErr   error
}

func NewRoomManagementController(store domain.RoomStore, publisher domain.EventPublisher, logger *zerolog.Logger) *RoomManagementController {
	return &RoomManagementController{
		store:  store,
		events: publisher,
		logger: nopLogger(logger),
	}
}

// ListRooms fetches the inventory. On failure the previous list is kept.
func (c *RoomManagementController) ListRooms(ctx context.Context) ([]models.Room, error) {
	rooms, err := c.store.ListRooms(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.lastErr = err
		c.logger.Error().Err(err).Msg("Failed to list rooms")
		return nil, err
	}
	c.rooms = rooms
	c.lastErr = nil
	return cloneRooms(rooms), nil
}

// refresh runs after a successful mutation. A failure here is recorded but
// does not undo the mutation's success.
func (c *RoomManagementController) refresh(ctx context.Context) {
	_, _ = c.ListRooms(ctx)
}

func (c *RoomManagementController) OpenAddForm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.addOpen = true
	c.addDraft = models.RoomDraft{}
	c.editID = 0
	c.editDraft = models.RoomDraft{}
}

func (c *RoomManagementController) CancelAdd() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.addOpen = false
	c.addDraft = models.RoomDraft{}
}

// SubmitAdd creates a room from draft. The form stays open on any failure.
func (c *RoomManagementController) SubmitAdd(ctx context.Context, draft models.RoomDraft) error {
	c.mu.Lock()
	if !c.addOpen {
		c.mu.Unlock()
		return ErrInvalidTransition
	}
	c.addDraft = draft
	create, err := roomCreateFromDraft(draft)
	if err != nil {
		c.lastErr = err
		c.mu.Unlock()
		return err
	}
	c.mu.Unlock()

	if err := c.store.CreateRoom(ctx, create); err != nil {
		c.fail(err, "Failed to create room")
		return err
	}

	c.mu.Lock()
	c.addOpen = false
	c.addDraft = models.RoomDraft{}
	c.lastErr = nil
	c.mu.Unlock()

	c.logger.Info().Str("room_type", create.RoomType).Msg("Room created")
	publish(c.events, c.logger, events.EventRoomCreated, events.RoomEventPayload{RoomType: create.RoomType})
	c.refresh(ctx)
	return nil
}

// OpenEdit switches room into edit mode. The stored photo is only shown as
// a preview; no file is pre-selected.
func (c *RoomManagementController) OpenEdit(room models.Room) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.addOpen = false
	c.addDraft = models.RoomDraft{}
	c.editID = room.ID
	c.editDraft = models.RoomDraft{
		RoomType:     room.RoomType,
		PricePerHour: room.PricePerHour.String(),
		PhotoPreview: room.Photo,
	}
}

func (c *RoomManagementController) CancelEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editID = 0
	c.editDraft = models.RoomDraft{}
}

// SubmitEdit sends the non-empty fields of draft as a partial update. The
// row stays in edit mode on failure.
func (c *RoomManagementController) SubmitEdit(ctx context.Context, id int64, draft models.RoomDraft) error {
	c.mu.Lock()
	if c.editID == 0 || c.editID != id {
		c.mu.Unlock()
		return ErrInvalidTransition
	}
	c.editDraft = draft
	update, err := roomUpdateFromDraft(draft)
	if err != nil {
		c.lastErr = err
		c.mu.Unlock()
		return err
	}
	if update.Empty() {
		c.editID = 0
		c.editDraft = models.RoomDraft{}
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	if err := c.store.UpdateRoom(ctx, id, update); err != nil {
		c.fail(err, "Failed to update room")
		return err
	}

	c.mu.Lock()
	if c.editID == id {
		c.editID = 0
		c.editDraft = models.RoomDraft{}
	}
	c.lastErr = nil
	c.mu.Unlock()

	c.logger.Info().Int64("room_id", id).Msg("Room updated")
	payload := events.RoomEventPayload{RoomID: id}
	if update.RoomType != nil {
		payload.RoomType = *update.RoomType
	}
	publish(c.events, c.logger, events.EventRoomUpdated, payload)
	c.refresh(ctx)
	return nil
}

// RequestDelete stages room for deletion; nothing is sent yet.
func (c *RoomManagementController) RequestDelete(room models.Room) {
	c.mu.Lock()
	defer c.mu.Unlock()
	staged := room
	c.candidate = &staged
}

func (c *RoomManagementController) CancelDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.candidate = nil
}

// ConfirmDelete deletes the staged room. A room the backend no longer has
// counts as deleted, and a confirmation with nothing staged is a no-op, so
// repeated confirmations are harmless.
func (c *RoomManagementController) ConfirmDelete(ctx context.Context) error {
	c.mu.Lock()
	if c.candidate == nil {
		c.mu.Unlock()
		return nil
	}
	room := *c.candidate
	c.mu.Unlock()

	err := c.store.DeleteRoom(ctx, room.ID)
	if err != nil && !api.IsNotFound(err) {
		c.fail(err, "Failed to delete room")
		return err
	}

	c.mu.Lock()
	if c.candidate != nil && c.candidate.ID == room.ID {
		c.candidate = nil
	}
	if c.editID == room.ID {
		c.editID = 0
		c.editDraft = models.RoomDraft{}
	}
	c.lastErr = nil
	c.mu.Unlock()

	if err == nil {
		c.logger.Info().Int64("room_id", room.ID).Msg("Room deleted")
		publish(c.events, c.logger, events.EventRoomDeleted, events.RoomEventPayload{RoomID: room.ID, RoomType: room.RoomType})
	}
	c.refresh(ctx)
	return nil
}

// View returns a copy of the current screen state.
func (c *RoomManagementController) View() RoomView {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := RoomView{
		Rooms:     cloneRooms(c.rooms),
		AddOpen:   c.addOpen,
		AddDraft:  c.addDraft,
		EditingID: c.editID,
		EditDraft: c.editDraft,
		Error:     UserMessage(c.lastErr),
	}
	if c.candidate != nil {
		staged := *c.candidate
		v.DeleteCandidate = &staged
	}
	return v
}

// Err returns the last recorded failure.
func (c *RoomManagementController) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

func (c *RoomManagementController) fail(err error, msg string) {
	c.mu.Lock()
	c.lastErr = err
	c.mu.Unlock()
	c.logger.Error().Err(err).Msg(msg)
}

func roomCreateFromDraft(d models.RoomDraft) (models.RoomCreate, error) {
	if ve := validateRoomAdd(d); ve.HasErrors() {
		return models.RoomCreate{}, ve
	}
	price, err := parsePrice(d.PricePerHour)
	if err != nil {
		return models.RoomCreate{}, err
	}
	return models.RoomCreate{
		RoomType:     strings.TrimSpace(d.RoomType),
		PricePerHour: price,
		Photo:        d.Photo,
	}, nil
}

func roomUpdateFromDraft(d models.RoomDraft) (models.RoomUpdate, error) {
	if ve := validateRoomEdit(d); ve.HasErrors() {
		return models.RoomUpdate{}, ve
	}
	var u models.RoomUpdate
	if rt := strings.TrimSpace(d.RoomType); rt != "" {
		u.RoomType = &rt
	}
	if p := strings.TrimSpace(d.PricePerHour); p != "" {
		price, err := parsePrice(p)
		if err != nil {
			return models.RoomUpdate{}, err
		}
		u.PricePerHour = &price
	}
	u.Photo = d.Photo
	return u, nil
}

func parsePrice(s string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		ve := &ValidationError{}
		ve.add("pricePerHour", "must be a number")
		return decimal.Decimal{}, ve
	}
	if price.IsNegative() {
		ve := &ValidationError{}
		ve.add("pricePerHour", "must not be negative")
		return decimal.Decimal{}, ve
	}
	return price, nil
}

func cloneRooms(rooms []models.Room) []models.Room {
	if rooms == nil {
		return nil
	}
	return append([]models.Room(nil), rooms...)
}
