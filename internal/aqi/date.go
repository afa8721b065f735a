package aqi

import (
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// DateKey indexes a region's AQI series. Always in dd/mm/yyyy form.
type DateKey string

const dateLayout = "02/01/2006"

var ErrInvalidDate = goerr.New("invalid date")

// KeyOf formats t as a date key.
func KeyOf(t time.Time) DateKey {
	return DateKey(t.Format(dateLayout))
}

// Time parses the key back into a UTC midnight time.
func (k DateKey) Time() (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, string(k), time.UTC)
	if err != nil {
		return time.Time{}, goerr.Wrap(ErrInvalidDate, "failed to parse date key", goerr.V("key", string(k)))
	}
	return t, nil
}

func (k DateKey) String() string { return string(k) }

// ParseDate accepts d/m/yyyy, dd-mm-yyyy and yyyy-mm-dd and returns a normalized key.
func ParseDate(s string) (DateKey, error) {
	s = strings.TrimSpace(s)
	var parts []string
	iso := false
	switch {
	case strings.Contains(s, "/"):
		parts = strings.Split(s, "/")
	case strings.Count(s, "-") == 2:
		parts = strings.Split(s, "-")
		iso = len(parts[0]) == 4
	default:
		return "", goerr.Wrap(ErrInvalidDate, "unrecognized date format", goerr.V("date", s))
	}
	if len(parts) != 3 {
		return "", goerr.Wrap(ErrInvalidDate, "date needs three fields", goerr.V("date", s))
	}
	if iso {
		parts[0], parts[2] = parts[2], parts[0]
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return "", goerr.Wrap(ErrInvalidDate, "non-numeric date field", goerr.V("date", s))
		}
		nums[i] = n
	}
	day, month, year := nums[0], nums[1], nums[2]
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month || t.Year() != year || year < 1000 || year > 9999 {
		return "", goerr.Wrap(ErrInvalidDate, "date out of range", goerr.V("date", s))
	}
	return KeyOf(t), nil
}

// Range is an inclusive calendar window for date selection.
type Range struct {
	Min time.Time
	Max time.Time
}

// DefaultRange mirrors the calendar window of the bundled 2023 dataset.
func DefaultRange() Range {
	return Range{
		Min: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		Max: time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
	}
}

// Clamp keeps t inside the range. A zero bound is open.
func (r Range) Clamp(t time.Time) time.Time {
	if !r.Min.IsZero() && t.Before(r.Min) {
		return r.Min
	}
	if !r.Max.IsZero() && t.After(r.Max) {
		return r.Max
	}
	return t
}
