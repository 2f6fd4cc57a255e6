package controller

import (
	"context"
	"sync"

	"coworking/internal/domain"
	"coworking/internal/events"
	"coworking/internal/models"
	"coworking/internal/receipt"

	"github.com/rs/zerolog"
)

// State is the booking modal state.
type State int

const (
	StateClosed State = iota
	StateEditing
	StateSubmitting
	StateReceipted
	StateAwaitingPayment
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateEditing:
		return "editing"
	case StateSubmitting:
		return "submitting"
	case StateReceipted:
		return "receipted"
	case StateAwaitingPayment:
		return "awaiting_payment"
	}
	return "unknown"
}

// PaymentResult is handed back when payment completes and the modal closes.
type PaymentResult struct {
	Draft        models.BookingDraft
	Outcome      models.PaymentOutcome
	Receipt      receipt.Receipt
	Confirmation string
}

// BookingCreationController is the booking modal: draft entry, submission,
// receipt and simulated payment.
type BookingCreationController struct {
	store     domain.BookingStore
	processor domain.PaymentProcessor
	events    domain.EventPublisher
	printer   domain.Printer
	logger    *zerolog.Logger

	mu           sync.Mutex
	state        State
	generation   uint64
	rooms        []models.Room
	draft        models.BookingDraft
	receipt      *receipt.Receipt
	reference    string
	confirmation string
	lastErr      error
}

// BookingCreationOptions carries the optional collaborators.
type BookingCreationOptions struct {
	Events  domain.EventPublisher
	Printer domain.Printer
	Logger  *zerolog.Logger
}

func NewBookingCreationController(store domain.BookingStore, processor domain.PaymentProcessor, opts BookingCreationOptions) *BookingCreationController {
	return &BookingCreationController{
		store:     store,
		processor: processor,
		events:    opts.Events,
		printer:   opts.Printer,
		logger:    nopLogger(opts.Logger),
	}
}

// Open shows the modal with the rooms the caller already has.
func (c *BookingCreationController) Open(rooms []models.Room) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateClosed {
		return ErrInvalidTransition
	}
	c.reset()
	c.state = StateEditing
	c.rooms = cloneRooms(rooms)
	return nil
}

// Close discards the draft and receipt from any state. Calls still in
// flight resolve to ErrFlowClosed.
func (c *BookingCreationController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}

func (c *BookingCreationController) reset() {
	c.generation++
	c.state = StateClosed
	c.rooms = nil
	c.draft = models.NewBookingDraft()
	c.receipt = nil
	c.reference = ""
	c.confirmation = ""
	c.lastErr = nil
}

// UpdateDraft applies form input. Allowed while editing or after the
// receipt is shown, so the payment method can still be changed.
func (c *BookingCreationController) UpdateDraft(fn func(*models.BookingDraft)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateEditing && c.state != StateReceipted {
		return ErrInvalidTransition
	}
	fn(&c.draft)
	return nil
}

// Submit creates the booking. Any failure returns the modal to editing
// with the error recorded; the operator may resubmit.
func (c *BookingCreationController) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateEditing {
		c.mu.Unlock()
		return ErrInvalidTransition
	}
	draft := trimBookingDraft(c.draft)
	if ve := validateBookingDraft(draft); ve.HasErrors() {
		c.lastErr = ve
		c.mu.Unlock()
		return ve
	}
	c.state = StateSubmitting
	c.lastErr = nil
	gen := c.generation
	c.mu.Unlock()

	confirmation, err := c.store.CreateBooking(ctx, draft.SelectedRoomID, draft.Request())

	c.mu.Lock()
	if c.generation != gen {
		c.mu.Unlock()
		return ErrFlowClosed
	}
	if err != nil {
		c.state = StateEditing
		c.lastErr = err
		c.mu.Unlock()
		c.logger.Error().Err(err).Int64("room_id", draft.SelectedRoomID).Msg("Failed to create booking")
		return err
	}

	room := c.findRoom(draft.SelectedRoomID)
	c.reference = receipt.NewReference()
	rec := receipt.Generate(c.reference, draft, room, false)
	c.receipt = &rec
	c.confirmation = confirmation
	c.state = StateReceipted
	c.mu.Unlock()

	c.logger.Info().
		Str("client", draft.ClientFullName).
		Int64("room_id", draft.SelectedRoomID).
		Msg("Booking created")
	publish(c.events, c.logger, events.EventBookingCreated, bookingPayload(draft, room, ""))
	return nil
}

// Pay runs the simulated payment. On success the receipt is regenerated as
// processed, booking_paid is published once and the modal closes.
func (c *BookingCreationController) Pay(ctx context.Context) (PaymentResult, error) {
	c.mu.Lock()
	prev := c.state
	if prev != StateEditing && prev != StateReceipted {
		c.mu.Unlock()
		return PaymentResult{}, ErrInvalidTransition
	}
	draft := trimBookingDraft(c.draft)
	ve := validatePayment(draft)
	if prev == StateEditing {
		for f, msg := range validateBookingDraft(draft).FieldErrors {
			ve.add(f, msg)
		}
	}
	if ve.HasErrors() {
		c.lastErr = ve
		c.mu.Unlock()
		return PaymentResult{}, ve
	}
	c.state = StateAwaitingPayment
	c.lastErr = nil
	gen := c.generation
	c.mu.Unlock()

	outcome, err := c.processor.Process(ctx, draft.PaymentMethod, draft.BankIdentifier)

	c.mu.Lock()
	if c.generation != gen {
		c.mu.Unlock()
		return PaymentResult{}, ErrFlowClosed
	}
	if err != nil {
		c.state = prev
		c.lastErr = err
		c.mu.Unlock()
		c.logger.Error().Err(err).Msg("Payment failed")
		return PaymentResult{}, err
	}

	room := c.findRoom(draft.SelectedRoomID)
	if c.reference == "" {
		c.reference = receipt.NewReference()
	}
	result := PaymentResult{
		Draft:        draft,
		Outcome:      outcome,
		Receipt:      receipt.Generate(c.reference, draft, room, true),
		Confirmation: c.confirmation,
	}
	c.reset()
	c.mu.Unlock()

	c.logger.Info().
		Str("client", draft.ClientFullName).
		Str("method", string(outcome.Method)).
		Msg("Booking paid")
	publish(c.events, c.logger, events.EventBookingPaid, bookingPayload(draft, room, result.Receipt.Text))
	return result, nil
}

// ReceiptView returns the receipt once the booking was accepted.
func (c *BookingCreationController) ReceiptView() (receipt.Receipt, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.receipt == nil {
		return receipt.Receipt{}, false
	}
	return *c.receipt, true
}

// Print sends the current receipt to the printer. State is left untouched
// whatever the outcome.
func (c *BookingCreationController) Print(ctx context.Context) error {
	rec, ok := c.ReceiptView()
	if !ok {
		return ErrInvalidTransition
	}
	if c.printer == nil {
		return nil
	}
	if err := c.printer.Print(ctx, receipt.Document(rec)); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to print receipt")
		return err
	}
	return nil
}

// SelectedRoom returns the room picked in the draft, for the read-only
// details panel.
func (c *BookingCreationController) SelectedRoom() (models.Room, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	room := c.findRoom(c.draft.SelectedRoomID)
	if room == nil {
		return models.Room{}, false
	}
	return *room, true
}

func (c *BookingCreationController) Rooms() []models.Room {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneRooms(c.rooms)
}

func (c *BookingCreationController) Draft() models.BookingDraft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

func (c *BookingCreationController) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Confirmation is the backend's message for the accepted booking.
func (c *BookingCreationController) Confirmation() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.confirmation
}

func (c *BookingCreationController) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

func (c *BookingCreationController) findRoom(id int64) *models.Room {
	for i := range c.rooms {
		if c.rooms[i].ID == id {
			room := c.rooms[i]
			return &room
		}
	}
	return nil
}

func bookingPayload(d models.BookingDraft, room *models.Room, receiptText string) events.BookingEventPayload {
	p := events.BookingEventPayload{
		ClientFullName: d.ClientFullName,
		Date:           d.Date,
		HeureDebut:     d.HeureDebut,
		HeureFin:       d.HeureFin,
		RoomID:         d.SelectedRoomID,
		PaymentMethod:  string(d.PaymentMethod),
		Receipt:        receiptText,
	}
	if room != nil {
		p.RoomType = room.RoomType
	}
	return p
}
