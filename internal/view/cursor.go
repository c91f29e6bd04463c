package view

import (
	"fmt"
	"time"

	"github.com/username/booking-calendar/pkg/dateutil"
)

// Cursor is the displayed month. Month is 0-based (0 = January).
type Cursor struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// CursorFor returns the cursor of the month containing date
func CursorFor(date time.Time) Cursor {
	return Cursor{Year: date.Year(), Month: int(date.Month()) - 1}
}

// Valid reports whether Month is within 0..11
func (c Cursor) Valid() bool {
	return c.Month >= 0 && c.Month <= 11
}

// TimeMonth returns the month as time.Month
func (c Cursor) TimeMonth() time.Month {
	return time.Month(c.Month + 1)
}

// First returns the first day of the month
func (c Cursor) First() time.Time {
	return dateutil.StartOfMonth(c.Year, c.TimeMonth())
}

// Next returns the following month
func (c Cursor) Next() Cursor {
	return CursorFor(c.First().AddDate(0, 1, 0))
}

// Prev returns the previous month
func (c Cursor) Prev() Cursor {
	return CursorFor(c.First().AddDate(0, -1, 0))
}

// Title returns a heading such as "July 2025"
func (c Cursor) Title() string {
	return fmt.Sprintf("%s %d", c.TimeMonth(), c.Year)
}
