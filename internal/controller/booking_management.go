package controller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"coworking/internal/domain"
	"coworking/internal/events"
	"coworking/internal/export"
	"coworking/internal/format"
	"coworking/internal/models"

	"github.com/rs/zerolog"
)

const deleteSuccessText = "Booking deleted successfully"

// Notice is a banner shown above the bookings table. A zero ExpiresAt means
// it stays until dismissed.
type Notice struct {
	Text      string
	Error     bool
	ExpiresAt time.Time
}

// BookingRow is one display line of the bookings table.
type BookingRow struct {
	ID               int64
	Date             string
	Start            string
	End              string
	ClientFullName   string
	ConfirmationCode string
	RoomID           int64
}

// BookingView is a snapshot of the bookings screen. When LoadError is set
// Rows is always empty.
type BookingView struct {
	Loading   bool
	Rows      []BookingRow
	LoadError string
	Notice    *Notice
}

// BookingManagementController lists and deletes bookings.
type BookingManagementController struct {
	store     domain.BookingStore
	confirmer domain.Confirmer
	events    domain.EventPublisher
	formatter format.Formatter
	noticeTTL time.Duration
	logger    *zerolog.Logger
	now       func() time.Time

	mu       sync.Mutex
	loading  bool
	bookings []models.Booking
	loadErr  error
	notice   *Notice
}

// BookingManagementOptions carries the optional collaborators.
type BookingManagementOptions struct {
	Events    domain.EventPublisher
	Formatter format.Formatter
	NoticeTTL time.Duration
	Logger    *zerolog.Logger
}

func NewBookingManagementController(store domain.BookingStore, confirmer domain.Confirmer, opts BookingManagementOptions) *BookingManagementController {
	ttl := opts.NoticeTTL
	if ttl <= 0 {
		ttl = models.DefaultNoticeTTL
	}
	return &BookingManagementController{
		store:     store,
		confirmer: confirmer,
		events:    opts.Events,
		formatter: opts.Formatter,
		noticeTTL: ttl,
		logger:    nopLogger(opts.Logger),
		now:       time.Now,
	}
}

// ListBookings loads the table. A failure replaces the rows with an error
// view; calling ListBookings again is the retry.
func (c *BookingManagementController) ListBookings(ctx context.Context) error {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	bookings, err := c.store.ListBookings(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.bookings = nil
		c.loadErr = err
		c.logger.Error().Err(err).Msg("Failed to list bookings")
		return err
	}
	c.bookings = bookings
	c.loadErr = nil
	return nil
}

// DeleteBooking asks for confirmation first. A failed delete keeps the
// current rows and shows a persistent error notice.
func (c *BookingManagementController) DeleteBooking(ctx context.Context, id int64) error {
	if c.confirmer == nil || !c.confirmer.Confirm(ctx, fmt.Sprintf("Delete booking #%d?", id)) {
		return ErrNotConfirmed
	}

	if err := c.store.DeleteBooking(ctx, id); err != nil {
		c.mu.Lock()
		c.notice = &Notice{Text: "Failed to delete booking: " + UserMessage(err), Error: true}
		c.mu.Unlock()
		c.logger.Error().Err(err).Int64("booking_id", id).Msg("Failed to delete booking")
		return err
	}

	c.mu.Lock()
	c.notice = &Notice{Text: deleteSuccessText, ExpiresAt: c.now().Add(c.noticeTTL)}
	c.mu.Unlock()

	c.logger.Info().Int64("booking_id", id).Msg("Booking deleted")
	publish(c.events, c.logger, events.EventBookingDeleted, events.BookingEventPayload{BookingID: id})
	_ = c.ListBookings(ctx)
	return nil
}

// Notice returns the active notice, dropping it once expired.
func (c *BookingManagementController) Notice() *Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeNotice()
}

func (c *BookingManagementController) activeNotice() *Notice {
	if c.notice == nil {
		return nil
	}
	if !c.notice.ExpiresAt.IsZero() && !c.now().Before(c.notice.ExpiresAt) {
		c.notice = nil
		return nil
	}
	n := *c.notice
	return &n
}

func (c *BookingManagementController) DismissNotice() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notice = nil
}

// FormatDate renders a booking date; it never fails.
func (c *BookingManagementController) FormatDate(v any) string {
	return c.formatter.Date(v)
}

// FormatTime renders a booking time; it never fails.
func (c *BookingManagementController) FormatTime(v any) string {
	return c.formatter.Time(v)
}

// View returns a copy of the current screen state.
func (c *BookingManagementController) View() BookingView {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := BookingView{
		Loading: c.loading,
		Notice:  c.activeNotice(),
	}
	if c.loadErr != nil {
		v.LoadError = UserMessage(c.loadErr)
		return v
	}
	v.Rows = make([]BookingRow, 0, len(c.bookings))
	for _, b := range c.bookings {
		v.Rows = append(v.Rows, BookingRow{
			ID:               b.ID,
			Date:             c.formatter.Date(b.Date),
			Start:            c.formatter.Time(b.HeureDebut),
			End:              c.formatter.Time(b.HeureFin),
			ClientFullName:   b.ClientFullName,
			ConfirmationCode: b.BookingConfirmationCode,
			RoomID:           b.RoomID,
		})
	}
	return v
}

// Export writes the loaded bookings to an xlsx file. It is refused while the
// error view is shown.
func (c *BookingManagementController) Export(path string) error {
	c.mu.Lock()
	if c.loadErr != nil {
		c.mu.Unlock()
		return ErrInvalidTransition
	}
	bookings := append([]models.Booking(nil), c.bookings...)
	c.mu.Unlock()

	if err := export.BookingsXLSX(bookings, c.formatter, path); err != nil {
		c.logger.Error().Err(err).Str("path", path).Msg("Failed to export bookings")
		return err
	}
	c.logger.Info().Str("file_path", path).Int("count", len(bookings)).Msg("Bookings exported")
	return nil
}
