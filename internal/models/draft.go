package models

import "time"

// BookingDraft is the unsaved booking held by the creation modal.
// BankIdentifier is checked only at the payment step.
type BookingDraft struct {
	ClientFullName string        `json:"clientFullName" validate:"required"`
	Date           string        `json:"date" validate:"required"`
	HeureDebut     string        `json:"heureDebut" validate:"required"`
	HeureFin       string        `json:"heureFin" validate:"required"`
	SelectedRoomID int64         `json:"selectedRoomId" validate:"required"`
	PaymentMethod  PaymentMethod `json:"paymentMethod" validate:"oneof=on-site online"`
	BankIdentifier string        `json:"bankIdentifier"`
}

// NewBookingDraft returns an empty draft with the default payment method.
func NewBookingDraft() BookingDraft {
	return BookingDraft{PaymentMethod: PaymentOnSite}
}

// Request converts the draft to the create-booking body.
func (d BookingDraft) Request() BookingRequest {
	return BookingRequest{
		ClientFullName: d.ClientFullName,
		Date:           d.Date,
		HeureDebut:     d.HeureDebut,
		HeureFin:       d.HeureFin,
	}
}

// PaymentOutcome is the result of a simulated payment.
type PaymentOutcome struct {
	Method      PaymentMethod `json:"method"`
	Message     string        `json:"message"`
	ProcessedAt time.Time     `json:"processed_at"`
}
