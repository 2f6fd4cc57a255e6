package format

import (
	"math"
	"strings"
	"time"

	"coworking/internal/models"
)

const (
	InvalidDate = "Invalid Date"
	InvalidTime = "Invalid Time Format"
)

var dateInputLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// Formatter renders backend dates and times for display. Both methods are
// total: any input they cannot read becomes a fixed placeholder.
type Formatter struct {
	DateLayout string
	TimeLayout string
}

// New returns a Formatter, falling back to the default layouts for empty
// arguments.
func New(dateLayout, timeLayout string) Formatter {
	if dateLayout == "" {
		dateLayout = models.DefaultDateLayout
	}
	if timeLayout == "" {
		timeLayout = models.DefaultTimeLayout
	}
	return Formatter{DateLayout: dateLayout, TimeLayout: timeLayout}
}

var std = New("", "")

// Date formats v with the default layout.
func Date(v any) string { return std.Date(v) }

// Time formats v with the default layout.
func Time(v any) string { return std.Time(v) }

// Date accepts an ISO date string, a time.Time or a [year, month, day] value.
func (f Formatter) Date(v any) string {
	t, ok := parseDate(v)
	if !ok {
		return InvalidDate
	}
	return t.Format(f.layoutDate())
}

// Time accepts only an [hour, minute] pair; a trailing seconds element is
// tolerated and ignored.
func (f Formatter) Time(v any) string {
	parts, ok := timeParts(v)
	if !ok || len(parts) < 2 || len(parts) > 3 {
		return InvalidTime
	}
	h, m := parts[0], parts[1]
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return InvalidTime
	}
	return time.Date(2000, 1, 1, h, m, 0, 0, time.UTC).Format(f.layoutTime())
}

func (f Formatter) layoutDate() string {
	if f.DateLayout == "" {
		return models.DefaultDateLayout
	}
	return f.DateLayout
}

func (f Formatter) layoutTime() string {
	if f.TimeLayout == "" {
		return models.DefaultTimeLayout
	}
	return f.TimeLayout
}

func parseDate(v any) (time.Time, bool) {
	switch d := v.(type) {
	case string:
		return parseDateString(d)
	case time.Time:
		return d, !d.IsZero()
	case *time.Time:
		if d == nil {
			return time.Time{}, false
		}
		return *d, !d.IsZero()
	case models.DateValue:
		if d.Parts != nil {
			return dateFromParts(d.Parts)
		}
		return parseDateString(d.Text)
	case *models.DateValue:
		if d == nil {
			return time.Time{}, false
		}
		return parseDate(*d)
	case []int:
		return dateFromParts(d)
	}
	return time.Time{}, false
}

func parseDateString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateInputLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func dateFromParts(p []int) (time.Time, bool) {
	if len(p) != 3 {
		return time.Time{}, false
	}
	t := time.Date(p[0], time.Month(p[1]), p[2], 0, 0, 0, 0, time.UTC)
	// time.Date normalizes out-of-range values; reject them instead.
	if t.Year() != p[0] || int(t.Month()) != p[1] || t.Day() != p[2] {
		return time.Time{}, false
	}
	return t, true
}

func timeParts(v any) ([]int, bool) {
	switch t := v.(type) {
	case models.TimeValue:
		return t.Parts, t.Parts != nil
	case *models.TimeValue:
		if t == nil {
			return nil, false
		}
		return t.Parts, t.Parts != nil
	case []int:
		return t, true
	case []float64:
		out := make([]int, len(t))
		for i, f := range t {
			n, ok := integral(f)
			if !ok {
				return nil, false
			}
			out[i] = n
		}
		return out, true
	case []any:
		out := make([]int, len(t))
		for i, e := range t {
			switch n := e.(type) {
			case int:
				out[i] = n
			case int64:
				out[i] = int(n)
			case float64:
				v, ok := integral(n)
				if !ok {
					return nil, false
				}
				out[i] = v
			default:
				return nil, false
			}
		}
		return out, true
	}
	return nil, false
}

func integral(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
