package export

import (
	"fmt"
	"os"
	"path/filepath"

	"coworking/internal/format"
	"coworking/internal/models"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Bookings"

var headers = []string{"ID", "Date", "Start", "End", "Client", "Confirmation code", "Room ID"}

// BookingsXLSX writes bookings to an Excel file at path and creates the
// parent directory when needed.
func BookingsXLSX(bookings []models.Booking, f format.Formatter, path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("error creating export directory: %w", err)
		}
	}

	file := excelize.NewFile()
	defer file.Close()

	index, err := file.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("error creating sheet: %w", err)
	}
	file.SetActiveSheet(index)

	headerStyle, _ := file.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = file.SetCellValue(sheetName, cell, h)
		_ = file.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for i, b := range bookings {
		row := i + 2
		values := []any{
			b.ID,
			f.Date(b.Date),
			f.Time(b.HeureDebut),
			f.Time(b.HeureFin),
			b.ClientFullName,
			b.BookingConfirmationCode,
			b.RoomID,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = file.SetCellValue(sheetName, cell, v)
		}
	}

	_ = file.SetColWidth(sheetName, "A", "A", 8)
	_ = file.SetColWidth(sheetName, "B", "D", 14)
	_ = file.SetColWidth(sheetName, "E", "F", 28)
	_ = file.DeleteSheet("Sheet1")

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("error saving file: %w", err)
	}
	return nil
}
