package classifier

import (
	"testing"
	"time"

	"github.com/username/booking-calendar/internal/booking"
	"github.com/username/booking-calendar/internal/holiday"
	"github.com/username/booking-calendar/pkg/dateutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func d(month time.Month, day int) time.Time {
	return dateutil.Date(2025, month, day)
}

func newClassifier(bookings ...booking.Booking) *Classifier {
	return New(bookings, holiday.NewComputedProvider(), zap.NewNop())
}

func TestClassify_SingleBookingScenario(t *testing.T) {
	c := newClassifier(booking.Booking{StartDate: "2025-07-04", EndDate: "2025-07-07", Category: "Guest Reservation"})

	tests := []struct {
		day          int
		wantOccupied bool
		wantCheckin  bool
		wantCheckout bool
		wantKind     DisplayKind
	}{
		{3, false, false, false, DisplayPremiumAvailable},
		{4, true, true, false, DisplayCheckin},
		{5, true, false, false, DisplayOccupied},
		{6, true, false, true, DisplayCheckout},
		{7, false, false, false, DisplayPremiumAvailable},
	}

	for _, tt := range tests {
		t.Run(dateutil.Format(d(time.July, tt.day)), func(t *testing.T) {
			state := c.Classify(d(time.July, tt.day))

			if (state.Occupant != nil) != tt.wantOccupied {
				t.Errorf("occupied = %v, want %v", state.Occupant != nil, tt.wantOccupied)
			}
			if state.IsCheckinDay != tt.wantCheckin {
				t.Errorf("IsCheckinDay = %v, want %v", state.IsCheckinDay, tt.wantCheckin)
			}
			if state.IsCheckoutDay != tt.wantCheckout {
				t.Errorf("IsCheckoutDay = %v, want %v", state.IsCheckoutDay, tt.wantCheckout)
			}
			if state.Display.Kind != tt.wantKind {
				t.Errorf("Display.Kind = %s, want %s", state.Display.Kind, tt.wantKind)
			}
		})
	}

	if got := c.Classify(d(time.July, 5)).Display.Category; got != "guest-reservation" {
		t.Errorf("occupied category = %q, want guest-reservation", got)
	}
}

func TestClassify_BackToBackSplit(t *testing.T) {
	a := booking.Booking{StartDate: "2025-07-05", EndDate: "2025-07-11", Category: "Guest Reservation"}
	b := booking.Booking{StartDate: "2025-07-10", EndDate: "2025-07-14", Category: "Golf Reservation"}
	c := newClassifier(a, b)

	state := c.Classify(d(time.July, 10))

	if state.Display.Kind != DisplaySplit {
		t.Fatalf("Display.Kind = %s, want split", state.Display.Kind)
	}
	if state.Display.Category != "guest-reservation" || state.Display.SecondaryCategory != "golf-reservation" {
		t.Errorf("split categories = %q / %q", state.Display.Category, state.Display.SecondaryCategory)
	}
	if Color(state.Checkout.Category) != ColorGuest || Color(state.Checkin.Category) != ColorGolf {
		t.Error("split colors do not carry both bookings")
	}

	width := 100.0
	if got := ResolveClick(state, 10, 20, width); got == nil || got.StartDate != a.StartDate {
		t.Errorf("click in upper-left triangle resolved to %+v, want departing booking", got)
	}
	if got := ResolveClick(state, 60, 50, width); got == nil || got.StartDate != b.StartDate {
		t.Errorf("click in lower-right triangle resolved to %+v, want arriving booking", got)
	}
	if got := ResolveClick(state, 50, 50, width); got == nil || got.StartDate != b.StartDate {
		t.Errorf("click on the diagonal resolved to %+v, want arriving booking", got)
	}
}

func TestClassify_Precedence(t *testing.T) {
	tests := []struct {
		name     string
		bookings []booking.Booking
		date     time.Time
		want     DisplayKind
	}{
		{
			name:     "checkout beats occupant",
			bookings: []booking.Booking{{StartDate: "2025-03-01", EndDate: "2025-03-05", Category: "Guest"}},
			date:     d(time.March, 4),
			want:     DisplayCheckout,
		},
		{
			name:     "one night stay is a checkin",
			bookings: []booking.Booking{{StartDate: "2025-03-01", EndDate: "2025-03-02", Category: "Guest"}},
			date:     d(time.March, 1),
			want:     DisplayCheckin,
		},
		{
			name:     "occupied in busy season stays occupied",
			bookings: []booking.Booking{{StartDate: "2025-07-01", EndDate: "2025-07-20"}},
			date:     d(time.July, 10),
			want:     DisplayOccupied,
		},
		{
			name: "free busy-season day is premium",
			date: d(time.August, 15),
			want: DisplayPremiumAvailable,
		},
		{
			name: "free off-season day is available",
			date: d(time.October, 15),
			want: DisplayAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := newClassifier(tt.bookings...).Classify(tt.date)
			if state.Display.Kind != tt.want {
				t.Errorf("Display.Kind = %s, want %s", state.Display.Kind, tt.want)
			}
		})
	}
}

func TestClassify_DefaultCategory(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	c := New([]booking.Booking{{StartDate: "2025-02-01", EndDate: "2025-02-10"}}, holiday.NewComputedProvider(), zap.New(core))

	for day := 1; day <= 10; day++ {
		c.Classify(d(time.February, day))
	}

	if state := c.Classify(d(time.February, 5)); state.Display.Category != DefaultCategory {
		t.Errorf("category = %q, want %q", state.Display.Category, DefaultCategory)
	}
	if logs.Len() != 0 {
		t.Errorf("classification logged %d warnings, want none", logs.Len())
	}
}

func TestClassify_SplitIndependentOfOrder(t *testing.T) {
	stay := booking.Booking{StartDate: "2025-07-05", EndDate: "2025-07-11", Category: "Guest Reservation"}
	oneNight := booking.Booking{StartDate: "2025-07-10", EndDate: "2025-07-11", Category: "Golf Reservation"}

	tests := []struct {
		name     string
		bookings []booking.Booking
	}{
		{"long stay first", []booking.Booking{stay, oneNight}},
		{"one night first", []booking.Booking{oneNight, stay}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := newClassifier(tt.bookings...).Classify(d(time.July, 10))

			if state.Display.Kind != DisplaySplit {
				t.Fatalf("Display.Kind = %s, want split", state.Display.Kind)
			}
			if state.Display.Category != "guest-reservation" || state.Display.SecondaryCategory != "golf-reservation" {
				t.Errorf("split categories = %q / %q", state.Display.Category, state.Display.SecondaryCategory)
			}
			if got := ResolveClick(state, 10, 10, 100); got == nil || got.StartDate != stay.StartDate {
				t.Errorf("departing half resolved to %+v, want the long stay", got)
			}
			if got := ResolveClick(state, 90, 90, 100); got == nil || got.StartDate != oneNight.StartDate {
				t.Errorf("arriving half resolved to %+v, want the one-night stay", got)
			}
		})
	}
}

func TestOccupant_OverlapFirstWins(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	first := booking.Booking{StartDate: "2025-02-01", EndDate: "2025-02-10", Category: "Guest"}
	second := booking.Booking{StartDate: "2025-02-05", EndDate: "2025-02-15", Category: "Owner"}
	c := New([]booking.Booking{first, second}, holiday.NewComputedProvider(), zap.New(core))

	got := c.Occupant(d(time.February, 7))
	if got == nil || got.StartDate != first.StartDate {
		t.Fatalf("Occupant() = %+v, want first booking", got)
	}
	if logs.FilterMessageSnippet("Overlapping").Len() != 1 {
		t.Error("overlap was not logged")
	}
}

func TestOccupant_MalformedExcluded(t *testing.T) {
	c := newClassifier(
		booking.Booking{StartDate: "2025-02-xx", EndDate: "2025-02-10", Category: "Guest"},
		booking.Booking{StartDate: "2025-02-01", EndDate: "2025-02-10", Category: "Owner"},
	)

	got := c.Occupant(d(time.February, 3))
	if got == nil || got.Category != "Owner" {
		t.Errorf("Occupant() = %+v, want the well-formed booking", got)
	}
	if c.CheckinBooking(d(time.February, 1)).Category != "Owner" {
		t.Error("malformed booking leaked into checkin lookup")
	}
}

func TestIdentities(t *testing.T) {
	bookings := []booking.Booking{
		{StartDate: "2025-01-03", EndDate: "2025-01-08", Category: "Guest"},
		{StartDate: "2025-02-14", EndDate: "2025-02-15", Category: "Owner"},
		{StartDate: "2025-06-28", EndDate: "2025-07-06", Category: "OTA Booking"},
		{StartDate: "2025-12-29", EndDate: "2026-01-02", Category: "Complimentary"},
	}
	c := newClassifier(bookings...)

	for _, b := range bookings {
		start, end, _ := b.Interval()
		last, _ := b.LastNight()

		if got := c.CheckinBooking(start); got == nil || got.StartDate != b.StartDate {
			t.Errorf("CheckinBooking(%s) = %+v", b.StartDate, got)
		}
		if got := c.CheckoutBooking(last); got == nil || got.StartDate != b.StartDate {
			t.Errorf("CheckoutBooking(%s) = %+v", dateutil.Format(last), got)
		}
		for day := start; day.Before(end); day = day.AddDate(0, 0, 1) {
			if got := c.Occupant(day); got == nil || got.StartDate != b.StartDate {
				t.Errorf("Occupant(%s) = %+v, want booking starting %s", dateutil.Format(day), got, b.StartDate)
			}
		}
		if c.Occupant(end) != nil {
			t.Errorf("Occupant(%s) set on the checkout day", dateutil.Format(end))
		}
	}
}

func TestClassify_HolidayOverlay(t *testing.T) {
	c := newClassifier(booking.Booking{StartDate: "2025-07-01", EndDate: "2025-07-10", Category: "Guest"})

	state := c.Classify(d(time.July, 4))
	if state.Holiday == nil || state.Holiday.Kind != holiday.KindIndependenceDay {
		t.Fatalf("Holiday = %+v, want Independence Day", state.Holiday)
	}
	if state.Display.Kind != DisplayOccupied {
		t.Errorf("holiday must not change display kind, got %s", state.Display.Kind)
	}
}

func TestClassify_BusySeasonFailSafe(t *testing.T) {
	c := New(nil, holiday.NewTableProvider(zap.NewNop()), zap.NewNop())

	state := c.Classify(dateutil.Date(2040, time.July, 4))
	if state.IsBusySeason || state.Display.Kind != DisplayAvailable {
		t.Errorf("uncovered year: busy=%v kind=%s, want not busy / available", state.IsBusySeason, state.Display.Kind)
	}
}

func TestResolveClick_NonSplit(t *testing.T) {
	c := newClassifier(booking.Booking{StartDate: "2025-03-01", EndDate: "2025-03-05", Category: "Guest"})

	if got := ResolveClick(c.Classify(d(time.March, 4)), 0, 0, 100); got == nil {
		t.Error("checkout day must be clickable")
	}
	if got := ResolveClick(c.Classify(d(time.March, 20)), 0, 0, 100); got != nil {
		t.Errorf("free day resolved to %+v", got)
	}
}

func TestSlugAndColor(t *testing.T) {
	tests := []struct {
		category  string
		wantSlug  string
		wantColor string
	}{
		{"Guest Reservation", "guest-reservation", ColorGuest},
		{"Guest Reservation Awaiting Payment", "guest-reservation-awaiting-payment", ColorGuest},
		{"Golf Reservation", "golf-reservation", ColorGolf},
		{"OTA Booking", "ota-booking", ColorOTA},
		{"Owner Referral", "owner-referral", ColorOwnerReferral},
		{"Owner Reservation", "owner-reservation", ColorOwner},
		{"Complimentary", "complimentary", ColorComplimentary},
		{"", DefaultCategory, ColorOwner},
		{"Booked", "booked", ColorAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.wantSlug, func(t *testing.T) {
			if got := Slug(tt.category); got != tt.wantSlug {
				t.Errorf("Slug(%q) = %q, want %q", tt.category, got, tt.wantSlug)
			}
			if got := Color(tt.category); got != tt.wantColor {
				t.Errorf("Color(%q) = %q, want %q", tt.category, got, tt.wantColor)
			}
		})
	}
}
