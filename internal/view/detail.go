package view

import (
	"errors"
	"fmt"
	"time"

	"github.com/username/booking-calendar/internal/booking"
	"github.com/username/booking-calendar/internal/classifier"
)

// Fixed presentation times; they are not part of the booking data
const (
	CheckinHour  = 15
	CheckoutHour = 10
)

const longDateLayout = "Monday, January 2, 2006"

// ErrInvalidBooking is returned for bookings whose dates cannot be presented
var ErrInvalidBooking = errors.New("booking has no valid interval")

// Detail is the popup content for one booking
type Detail struct {
	Title        string    `json:"title"`
	Category     string    `json:"category"`
	Color        string    `json:"color"`
	CheckinAt    time.Time `json:"checkinAt"`
	CheckoutAt   time.Time `json:"checkoutAt"`
	CheckinText  string    `json:"checkinText"`
	CheckoutText string    `json:"checkoutText"`
	Nights       int       `json:"nights"`
	NightsText   string    `json:"nightsText"`
}

// NewDetail builds the detail view. Check-out is shown on EndDate, the day
// guests leave; nights is the day count between check-in and check-out.
func NewDetail(b booking.Booking) (Detail, error) {
	start, end, ok := b.Interval()
	if !ok {
		return Detail{}, fmt.Errorf("%w: %s..%s", ErrInvalidBooking, b.StartDate, b.EndDate)
	}

	title := b.Category
	if title == "" {
		title = "Reservation"
	}
	category := b.Category
	if category == "" {
		category = "Booking"
	}

	checkinAt := time.Date(start.Year(), start.Month(), start.Day(), CheckinHour, 0, 0, 0, time.Local)
	checkoutAt := time.Date(end.Year(), end.Month(), end.Day(), CheckoutHour, 0, 0, 0, time.Local)
	nights := b.Nights()

	return Detail{
		Title:        title,
		Category:     category,
		Color:        classifier.Color(b.Category),
		CheckinAt:    checkinAt,
		CheckoutAt:   checkoutAt,
		CheckinText:  fmt.Sprintf("%s (%s)", checkinAt.Format(longDateLayout), checkinAt.Format("3:04 PM")),
		CheckoutText: fmt.Sprintf("%s (%s)", checkoutAt.Format(longDateLayout), checkoutAt.Format("3:04 PM")),
		Nights:       nights,
		NightsText:   pluralNights(nights),
	}, nil
}

func pluralNights(n int) string {
	if n == 1 {
		return "1 night"
	}
	return fmt.Sprintf("%d nights", n)
}
