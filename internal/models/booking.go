package models

import (
	"bytes"
	"encoding/json"
)

// Booking is the backend's booking record as listed by the admin endpoints.
type Booking struct {
	ID                      int64     `json:"id"`
	Date                    DateValue `json:"date"`
	HeureDebut              TimeValue `json:"heureDebut"`
	HeureFin                TimeValue `json:"heureFin"`
	ClientFullName          string    `json:"clientFullName"`
	BookingConfirmationCode string    `json:"bookingConfirmationCode,omitempty"`
	RoomID                  int64     `json:"roomId,omitempty"`
}

// BookingRequest is the JSON body of the create-booking call.
type BookingRequest struct {
	ClientFullName string `json:"clientFullName"`
	Date           string `json:"date"`
	HeureDebut     string `json:"heureDebut"`
	HeureFin       string `json:"heureFin"`
}

// DateValue holds a calendar date in whichever shape the backend sent it:
// a [year, month, day] array or a string.
type DateValue struct {
	Parts []int
	Text  string
}

func (d *DateValue) UnmarshalJSON(data []byte) error {
	parts, text := decodeLoose(data)
	d.Parts, d.Text = parts, text
	return nil
}

func (d DateValue) MarshalJSON() ([]byte, error) {
	if d.Parts != nil {
		return json.Marshal(d.Parts)
	}
	return json.Marshal(d.Text)
}

// TimeValue holds a time of day: a [hour, minute(, second)] array or a string.
type TimeValue struct {
	Parts []int
	Text  string
}

func (t *TimeValue) UnmarshalJSON(data []byte) error {
	parts, text := decodeLoose(data)
	t.Parts, t.Text = parts, text
	return nil
}

func (t TimeValue) MarshalJSON() ([]byte, error) {
	if t.Parts != nil {
		return json.Marshal(t.Parts)
	}
	return json.Marshal(t.Text)
}

// decodeLoose never fails: unknown shapes are kept verbatim in text so that
// display code can degrade them to a placeholder.
func decodeLoose(data []byte) ([]int, string) {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		return nil, ""
	}
	var parts []int
	if err := json.Unmarshal(trimmed, &parts); err == nil {
		return parts, ""
	}
	var text string
	if err := json.Unmarshal(trimmed, &text); err == nil {
		return nil, text
	}
	return nil, string(trimmed)
}
