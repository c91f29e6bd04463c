package booking

import (
	"testing"

	"github.com/username/booking-calendar/pkg/dateutil"
)

func TestBooking_Interval(t *testing.T) {
	tests := []struct {
		name   string
		b      Booking
		wantOK bool
	}{
		{"Valid", Booking{StartDate: "2025-07-04", EndDate: "2025-07-07"}, true},
		{"One night", Booking{StartDate: "2025-07-04", EndDate: "2025-07-05"}, true},
		{"Zero nights", Booking{StartDate: "2025-07-04", EndDate: "2025-07-04"}, false},
		{"Reversed", Booking{StartDate: "2025-07-07", EndDate: "2025-07-04"}, false},
		{"Malformed start", Booking{StartDate: "07-04", EndDate: "2025-07-07"}, false},
		{"Malformed end", Booking{StartDate: "2025-07-04", EndDate: ""}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, ok := tt.b.Interval(); ok != tt.wantOK {
				t.Errorf("Interval() ok = %v, want %v", ok, tt.wantOK)
			}
		})
	}
}

func TestBooking_ExclusiveEnd(t *testing.T) {
	b := Booking{StartDate: "2025-07-04", EndDate: "2025-07-07"}

	tests := []struct {
		day  int
		want bool
	}{
		{3, false},
		{4, true},
		{5, true},
		{6, true},
		{7, false},
	}

	for _, tt := range tests {
		date := dateutil.Date(2025, 7, tt.day)
		if got := b.Contains(date); got != tt.want {
			t.Errorf("Contains(%s) = %v, want %v", dateutil.Format(date), got, tt.want)
		}
	}

	last, ok := b.LastNight()
	if !ok || dateutil.Format(last) != "2025-07-06" {
		t.Errorf("LastNight() = %s, %v; want 2025-07-06", dateutil.Format(last), ok)
	}

	if n := b.Nights(); n != 3 {
		t.Errorf("Nights() = %d, want 3", n)
	}
}

func TestBooking_MalformedNeverMatches(t *testing.T) {
	b := Booking{StartDate: "2025-07-04", EndDate: "not-a-date"}

	if b.Contains(dateutil.Date(2025, 7, 4)) {
		t.Error("malformed booking must not contain any day")
	}
	if _, ok := b.LastNight(); ok {
		t.Error("malformed booking must not have a last night")
	}
	if b.Nights() != 0 {
		t.Error("malformed booking must report zero nights")
	}
}
