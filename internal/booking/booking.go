package booking

import (
	"time"

	"github.com/username/booking-calendar/pkg/dateutil"
)

// Booking represents one reservation as delivered by the backend.
//
// EndDate is exclusive: it is the first free day, the day guests check out.
// The last occupied night is EndDate minus one day.
type Booking struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Category  string `json:"category,omitempty"`
	Available bool   `json:"available"`
}

// Interval returns the half-open [start, end) range of the booking.
// ok is false for malformed dates or a booking without any night.
func (b Booking) Interval() (start, end time.Time, ok bool) {
	start, err := dateutil.ParseDate(b.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, err = dateutil.ParseDate(b.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// LastNight returns the final occupied night
func (b Booking) LastNight() (time.Time, bool) {
	_, end, ok := b.Interval()
	if !ok {
		return time.Time{}, false
	}
	return dateutil.AddDays(end, -1), true
}

// Contains reports whether the night of date is occupied by the booking
func (b Booking) Contains(date time.Time) bool {
	start, end, ok := b.Interval()
	if !ok {
		return false
	}
	d := dateutil.StartOfDay(date)
	return !d.Before(start) && d.Before(end)
}

// Nights returns the number of occupied nights
func (b Booking) Nights() int {
	start, end, ok := b.Interval()
	if !ok {
		return 0
	}
	return dateutil.DaysBetween(start, end)
}

// Snapshot is an immutable booking set for one year
type Snapshot struct {
	Year      int
	Bookings  []Booking
	FetchedAt time.Time
}
