package models

import "time"

// PaymentMethod is the way a client settles a booking.
type PaymentMethod string

const (
	PaymentOnSite PaymentMethod = "on-site"
	PaymentOnline PaymentMethod = "online"
)

// Label is the human-readable name printed on receipts.
func (m PaymentMethod) Label() string {
	if m == PaymentOnline {
		return "Online payment (with bank identifier)"
	}
	return "On-site payment"
}

// Valid reports whether m is one of the supported methods.
func (m PaymentMethod) Valid() bool {
	return m == PaymentOnSite || m == PaymentOnline
}

const (
	// DefaultRequestTimeout ограничивает один HTTP-запрос к бэкенду
	DefaultRequestTimeout = 10 * time.Second

	// DefaultPaymentDelay имитация задержки платёжного шлюза
	DefaultPaymentDelay = time.Second

	// DefaultNoticeTTL время показа уведомления об успехе
	DefaultNoticeTTL = 6 * time.Second

	DefaultDateLayout = "02/01/2006"
	DefaultTimeLayout = "15:04"

	// RoomsCacheKey ключ кэша публичного списка комнат
	RoomsCacheKey = "rooms:all"
)
