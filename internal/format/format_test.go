package format

import (
	"testing"
	"time"

	"coworking/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestTime(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"pair", []int{9, 5}, "09:05"},
		{"with seconds", []int{14, 30, 15}, "14:30"},
		{"float pair from json", []any{float64(9), float64(5)}, "09:05"},
		{"float slice", []float64{23, 59}, "23:59"},
		{"time value", models.TimeValue{Parts: []int{7, 0}}, "07:00"},
		{"time value pointer", &models.TimeValue{Parts: []int{0, 0}}, "00:00"},
		{"garbage string", "garbage", InvalidTime},
		{"nil", nil, InvalidTime},
		{"iso string", "09:05", InvalidTime},
		{"text time value", models.TimeValue{Text: "09:05"}, InvalidTime},
		{"single element", []int{9}, InvalidTime},
		{"too many", []int{9, 5, 0, 0}, InvalidTime},
		{"hour out of range", []int{24, 0}, InvalidTime},
		{"minute out of range", []int{9, 60}, InvalidTime},
		{"negative", []int{-1, 0}, InvalidTime},
		{"fraction", []float64{9.5, 0}, InvalidTime},
		{"string element", []any{"9", "5"}, InvalidTime},
		{"nil pointer", (*models.TimeValue)(nil), InvalidTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Time(tt.in))
		})
	}
}

func TestDate(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"iso date", "2024-05-01", "01/05/2024"},
		{"rfc3339", "2024-05-01T10:00:00Z", "01/05/2024"},
		{"local datetime", "2024-05-01T10:00:00", "01/05/2024"},
		{"parts", models.DateValue{Parts: []int{2024, 5, 1}}, "01/05/2024"},
		{"text value", models.DateValue{Text: "2024-06-01"}, "01/06/2024"},
		{"int slice", []int{2024, 12, 31}, "31/12/2024"},
		{"time", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), "01/05/2024"},
		{"not a date", "not-a-date", InvalidDate},
		{"empty", "", InvalidDate},
		{"nil", nil, InvalidDate},
		{"impossible day", models.DateValue{Parts: []int{2024, 2, 30}}, InvalidDate},
		{"short parts", []int{2024, 5}, InvalidDate},
		{"zero time", time.Time{}, InvalidDate},
		{"number", 20240501, InvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Date(tt.in))
		})
	}
}

func TestFormatterLayouts(t *testing.T) {
	f := New("2006-01-02", "3:04 PM")
	assert.Equal(t, "2024-05-01", f.Date("2024-05-01"))
	assert.Equal(t, "9:05 AM", f.Time([]int{9, 5}))

	var zero Formatter
	assert.Equal(t, "01/05/2024", zero.Date("2024-05-01"))
	assert.Equal(t, "09:05", zero.Time([]int{9, 5}))
}
