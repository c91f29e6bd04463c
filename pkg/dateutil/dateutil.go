package dateutil

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates (YYYY-MM-DD)
const DateLayout = "2006-01-02"

// Date returns a naive calendar date (midnight UTC).
// All booking and holiday arithmetic happens on these values so that
// DST transitions never shift a day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// StartOfDay returns the calendar date of t, dropping time and location
func StartOfDay(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// StartOfMonth returns the first day of the month
func StartOfMonth(year int, month time.Month) time.Time {
	return Date(year, month, 1)
}

// DaysInMonth returns the number of days in the month
func DaysInMonth(year int, month time.Month) int {
	return Date(year, month+1, 0).Day()
}

// AddDays shifts a calendar date by n days
func AddDays(date time.Time, n int) time.Time {
	return StartOfDay(date).AddDate(0, 0, n)
}

// DaysBetween returns the whole number of days from a to b (b - a)
func DaysBetween(a, b time.Time) int {
	return int(StartOfDay(b).Sub(StartOfDay(a)).Hours() / 24)
}

// IsSameDay returns true if two dates are on the same day
func IsSameDay(date1, date2 time.Time) bool {
	return date1.Year() == date2.Year() &&
		date1.Month() == date2.Month() &&
		date1.Day() == date2.Day()
}

// InRange reports whether date lies in [from, to], both ends inclusive
func InRange(date, from, to time.Time) bool {
	d := StartOfDay(date)
	return !d.Before(StartOfDay(from)) && !d.After(StartOfDay(to))
}

// IsWeekend returns true if the date is Saturday or Sunday
func IsWeekend(date time.Time) bool {
	weekday := date.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// Format renders a date as YYYY-MM-DD
func Format(date time.Time) string {
	return date.Format(DateLayout)
}

// ParseDate parses date string in various formats and returns the calendar date
func ParseDate(dateStr string) (time.Time, error) {
	formats := []string{
		DateLayout,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04:05Z07:00",
		"01/02/2006",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return StartOfDay(t), nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date %q", dateStr)
}

// Today returns today's date (local calendar, naive)
func Today() time.Time {
	return StartOfDay(time.Now())
}
