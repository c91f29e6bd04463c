package classifier

import (
	"time"

	"github.com/username/booking-calendar/internal/booking"
	"github.com/username/booking-calendar/internal/holiday"
	"github.com/username/booking-calendar/pkg/dateutil"
	"go.uber.org/zap"
)

// DisplayKind is the resolved visual state of a day
type DisplayKind string

const (
	DisplaySplit            DisplayKind = "split"
	DisplayCheckout         DisplayKind = "checkout"
	DisplayCheckin          DisplayKind = "checkin"
	DisplayOccupied         DisplayKind = "occupied"
	DisplayPremiumAvailable DisplayKind = "premium-available"
	DisplayAvailable        DisplayKind = "available"
)

// Display carries the category (or categories, for a split day) shown in a cell
type Display struct {
	Kind DisplayKind `json:"kind"`
	// Category is the slug of the occupying, departing or (checkin only) arriving booking
	Category string `json:"category"`
	// SecondaryCategory is the arriving booking's slug on a split day
	SecondaryCategory string `json:"secondaryCategory,omitempty"`
}

// DayState is the classification of one calendar date
type DayState struct {
	Date          time.Time        `json:"-"`
	Occupant      *booking.Booking `json:"occupiedBy,omitempty"`
	Checkout      *booking.Booking `json:"checkout,omitempty"`
	Checkin       *booking.Booking `json:"checkin,omitempty"`
	IsCheckoutDay bool             `json:"isCheckoutDay"`
	IsCheckinDay  bool             `json:"isCheckinDay"`
	Holiday       *holiday.Holiday `json:"holiday,omitempty"`
	IsBusySeason  bool             `json:"isBusySeason"`
	Display       Display          `json:"display"`
}

// Clickable reports whether the day has a booking to present
func (s DayState) Clickable() bool {
	return s.Occupant != nil || s.Checkout != nil || s.Checkin != nil
}

// IsTurnover reports a back-to-back day: one booking leaves, another arrives
func (s DayState) IsTurnover() bool {
	return s.Display.Kind == DisplaySplit
}

// Classifier resolves bookings, holidays and busy season into per-day states.
// It works on one immutable booking set; build a new one after every fetch.
type Classifier struct {
	bookings []booking.Booking
	holidays holiday.Provider
	logger   *zap.Logger
}

// New creates a classifier over a booking set
func New(bookings []booking.Booking, holidays holiday.Provider, logger *zap.Logger) *Classifier {
	return &Classifier{
		bookings: bookings,
		holidays: holidays,
		logger:   logger,
	}
}

// Occupant returns the booking occupying the night of date.
// When bookings overlap the first one in sequence wins.
func (c *Classifier) Occupant(date time.Time) *booking.Booking {
	var found *booking.Booking
	extra := 0

	for i := range c.bookings {
		if !c.bookings[i].Contains(date) {
			continue
		}
		if found == nil {
			found = &c.bookings[i]
			continue
		}
		extra++
	}

	if extra > 0 {
		c.logger.Warn("Overlapping bookings on one date, using the first",
			zap.String("date", dateutil.Format(date)),
			zap.String("chosen_start", found.StartDate),
			zap.Int("ignored", extra))
	}

	return found
}

// CheckoutBooking returns the booking whose last occupied night is date
func (c *Classifier) CheckoutBooking(date time.Time) *booking.Booking {
	return c.checkoutExcept(date, nil)
}

// checkoutExcept prefers a departing booking other than skip. skip is
// returned only when it is the sole booking ending on date.
func (c *Classifier) checkoutExcept(date time.Time, skip *booking.Booking) *booking.Booking {
	var fallback *booking.Booking
	for i := range c.bookings {
		last, ok := c.bookings[i].LastNight()
		if !ok || !dateutil.IsSameDay(last, date) {
			continue
		}
		if &c.bookings[i] != skip {
			return &c.bookings[i]
		}
		fallback = &c.bookings[i]
	}
	return fallback
}

// CheckinBooking returns the booking starting on date
func (c *Classifier) CheckinBooking(date time.Time) *booking.Booking {
	for i := range c.bookings {
		start, _, ok := c.bookings[i].Interval()
		if ok && dateutil.IsSameDay(start, date) {
			return &c.bookings[i]
		}
	}
	return nil
}

// Classify computes the state of one date
func (c *Classifier) Classify(date time.Time) DayState {
	day := dateutil.StartOfDay(date)

	state := DayState{
		Date:         day,
		Occupant:     c.Occupant(day),
		Checkin:      c.CheckinBooking(day),
		IsBusySeason: holiday.IsBusySeason(c.holidays, day),
	}
	state.Checkout = c.checkoutExcept(day, state.Checkin)
	state.IsCheckoutDay = state.Checkout != nil
	state.IsCheckinDay = state.Checkin != nil

	if h, ok := holiday.On(c.holidays, day); ok {
		state.Holiday = &h
	}

	state.Display = resolveDisplay(state)
	return state
}

func resolveDisplay(state DayState) Display {
	checkout, checkin := state.Checkout, state.Checkin

	// A one-night stay arrives and spends its last night on the same day
	if checkout != nil && checkin != nil && checkout == checkin {
		checkout = nil
	}

	switch {
	case checkout != nil && checkin != nil:
		return Display{
			Kind:              DisplaySplit,
			Category:          Slug(checkout.Category),
			SecondaryCategory: Slug(checkin.Category),
		}
	case checkout != nil:
		return Display{Kind: DisplayCheckout, Category: Slug(checkout.Category)}
	case checkin != nil:
		return Display{Kind: DisplayCheckin, Category: Slug(checkin.Category)}
	case state.Occupant != nil:
		return Display{Kind: DisplayOccupied, Category: Slug(state.Occupant.Category)}
	case state.IsBusySeason:
		return Display{Kind: DisplayPremiumAvailable, Category: string(DisplayPremiumAvailable)}
	default:
		return Display{Kind: DisplayAvailable, Category: string(DisplayAvailable)}
	}
}

// ResolveClick picks the booking to present for a click at (x, y) inside a
// cell of the given width. On a turnover day the cell is split along its
// diagonal: x+y < width selects the departing booking, anything else the
// arriving one.
func ResolveClick(state DayState, x, y, width float64) *booking.Booking {
	if !state.Clickable() {
		return nil
	}

	if state.IsTurnover() {
		if x+y < width {
			return state.Checkout
		}
		return state.Checkin
	}

	switch {
	case state.Occupant != nil:
		return state.Occupant
	case state.Checkin != nil:
		return state.Checkin
	default:
		return state.Checkout
	}
}
