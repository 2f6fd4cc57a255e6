package receipt

import (
	"context"
	"os"
	"testing"

	"coworking/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDraft() models.BookingDraft {
	d := models.NewBookingDraft()
	d.ClientFullName = "Jane Doe"
	d.Date = "2024-06-01"
	d.HeureDebut = "09:00"
	d.HeureFin = "10:00"
	d.SelectedRoomID = 1
	return d
}

func TestGenerate(t *testing.T) {
	room := &models.Room{ID: 1, RoomType: "Open Desk", PricePerHour: decimal.RequireFromString("12.5")}

	t.Run("Pending", func(t *testing.T) {
		r := Generate("ABCD1234", testDraft(), room, false)
		assert.Contains(t, r.Text, "Name: Jane Doe")
		assert.Contains(t, r.Text, "Date: 2024-06-01")
		assert.Contains(t, r.Text, "Time: 09:00 - 10:00")
		assert.Contains(t, r.Text, "Room: Open Desk")
		assert.Contains(t, r.Text, "Price per hour: 12.50")
		assert.Contains(t, r.Text, "Payment method: On-site payment")
		assert.Contains(t, r.Text, "Payment: pending")
		assert.Contains(t, r.Text, "Reference: ABCD1234")
		assert.False(t, r.Processed)
	})

	t.Run("ProcessedOnline", func(t *testing.T) {
		d := testDraft()
		d.PaymentMethod = models.PaymentOnline
		d.BankIdentifier = "FR76"
		r := Generate("ABCD1234", d, room, true)
		assert.Contains(t, r.Text, "Payment method: Online payment (with bank identifier)")
		assert.Contains(t, r.Text, "Payment: processed")
		assert.NotContains(t, r.Text, "FR76")
		assert.True(t, r.Processed)
	})

	t.Run("UnknownRoom", func(t *testing.T) {
		r := Generate("", testDraft(), nil, false)
		assert.Contains(t, r.Text, "Room: N/A")
		assert.NotContains(t, r.Text, "Reference:")
		assert.NotContains(t, r.Text, "Price per hour")
	})

	t.Run("Deterministic", func(t *testing.T) {
		assert.Equal(t, Generate("R", testDraft(), room, false), Generate("R", testDraft(), room, false))
	})
}

func TestNewReference(t *testing.T) {
	ref := NewReference()
	assert.Len(t, ref, 8)
	assert.NotEqual(t, ref, NewReference())
}

func TestDocument(t *testing.T) {
	d := testDraft()
	d.ClientFullName = "<script>alert(1)</script>"
	doc := Document(Generate("R", d, nil, false))

	assert.Contains(t, doc, "<title>Booking Receipt</title>")
	assert.Contains(t, doc, "<pre>")
	assert.Contains(t, doc, "&lt;script&gt;")
	assert.NotContains(t, doc, "<script>")
}

func TestFilePrinter(t *testing.T) {
	dir := t.TempDir()
	p := NewFilePrinter(dir, nil)

	require.NoError(t, p.Print(context.Background(), "<html></html>"))
	require.NotEmpty(t, p.LastPath())

	data, err := os.ReadFile(p.LastPath())
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(data))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, p.Print(ctx, "x"))
}
