package models

import "github.com/shopspring/decimal"

// Room is the backend's room record. Photo is the base64 payload the backend
// returns for display.
type Room struct {
	ID           int64           `json:"id"`
	RoomType     string          `json:"roomType"`
	PricePerHour decimal.Decimal `json:"pricePerHour"`
	Photo        string          `json:"photo,omitempty"`
}

// Photo is an image file selected for upload.
type Photo struct {
	FileName string
	Data     []byte
}

// RoomCreate is the body of a create request. RoomType and PricePerHour are
// always sent.
type RoomCreate struct {
	RoomType     string
	PricePerHour decimal.Decimal
	Photo        *Photo
}

// RoomUpdate carries only the fields the operator changed; nil fields are
// left out of the request.
type RoomUpdate struct {
	RoomType     *string
	PricePerHour *decimal.Decimal
	Photo        *Photo
}

// Empty reports whether the update would change nothing.
func (u RoomUpdate) Empty() bool {
	return u.RoomType == nil && u.PricePerHour == nil && u.Photo == nil
}

// RoomDraft is the form state of the add and edit forms. PricePerHour stays
// a string until submit so half-typed input is representable.
type RoomDraft struct {
	RoomType     string `json:"roomType" validate:"required"`
	PricePerHour string `json:"pricePerHour" validate:"required,numeric"`
	Photo        *Photo `json:"-"`
	// PhotoPreview is the stored photo shown next to the edit form; it is
	// never uploaded back.
	PhotoPreview string `json:"-"`
}
