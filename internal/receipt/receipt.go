package receipt

import (
	"fmt"
	"html"
	"strings"

	"coworking/internal/models"

	"github.com/google/uuid"
)

const width = 40

// Receipt is the client-side booking confirmation. It is never sent to the
// backend.
type Receipt struct {
	Reference string
	Processed bool
	Text      string
}

// NewReference returns a short reference printed on the receipt. It stays
// the same when the receipt is regenerated after payment.
func NewReference() string {
	return strings.ToUpper(uuid.NewString()[:8])
}

// Generate builds the receipt for a submitted draft. room may be nil when
// the selected id is not in the list the modal was opened with.
func Generate(reference string, draft models.BookingDraft, room *models.Room, processed bool) Receipt {
	roomType := "N/A"
	if room != nil && room.RoomType != "" {
		roomType = room.RoomType
	}

	var lines []string
	lines = append(lines, strings.Repeat("=", width))
	lines = append(lines, "Booking confirmed")
	lines = append(lines, strings.Repeat("=", width))
	if reference != "" {
		lines = append(lines, fmt.Sprintf("Reference: %s", reference))
	}
	lines = append(lines, fmt.Sprintf("Name: %s", draft.ClientFullName))
	lines = append(lines, fmt.Sprintf("Date: %s", draft.Date))
	lines = append(lines, fmt.Sprintf("Time: %s - %s", draft.HeureDebut, draft.HeureFin))
	lines = append(lines, fmt.Sprintf("Room: %s", roomType))
	if room != nil {
		lines = append(lines, fmt.Sprintf("Price per hour: %s", room.PricePerHour.StringFixed(2)))
	}
	lines = append(lines, strings.Repeat("-", width))
	lines = append(lines, fmt.Sprintf("Payment method: %s", draft.PaymentMethod.Label()))
	if processed {
		lines = append(lines, "Payment: processed")
	} else {
		lines = append(lines, "Payment: pending")
	}
	lines = append(lines, strings.Repeat("=", width))

	return Receipt{
		Reference: reference,
		Processed: processed,
		Text:      strings.Join(lines, "\n"),
	}
}

// Document wraps the receipt in a minimal printable HTML page.
func Document(r Receipt) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	b.WriteString("<title>Booking Receipt</title>\n</head>\n<body>\n")
	b.WriteString("<h1>Booking Receipt</h1>\n<pre>")
	b.WriteString(html.EscapeString(r.Text))
	b.WriteString("</pre>\n</body>\n</html>\n")
	return b.String()
}
