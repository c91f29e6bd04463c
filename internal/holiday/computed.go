package holiday

import (
	"sort"
	"time"

	"github.com/username/booking-calendar/pkg/dateutil"
)

// juneteenthFirstYear is the first year Juneteenth was a federal holiday
const juneteenthFirstYear = 2021

// ComputedProvider derives US federal holidays analytically
type ComputedProvider struct{}

// NewComputedProvider creates a rule-based holiday provider
func NewComputedProvider() *ComputedProvider {
	return &ComputedProvider{}
}

// Name returns the provider identifier
func (p *ComputedProvider) Name() string {
	return "computed"
}

// HolidaysForYear returns the observed holidays of the year ordered by date
func (p *ComputedProvider) HolidaysForYear(year int) []Holiday {
	holidays := []Holiday{
		New(KindNewYearsDay, Observed(dateutil.Date(year, time.January, 1))),
		New(KindMLKDay, NthWeekday(year, time.January, time.Monday, 3)),
		New(KindPresidentsDay, NthWeekday(year, time.February, time.Monday, 3)),
		New(KindEaster, Easter(year)),
		New(KindMemorialDay, LastWeekday(year, time.May, time.Monday)),
		New(KindIndependenceDay, Observed(dateutil.Date(year, time.July, 4))),
		New(KindLaborDay, NthWeekday(year, time.September, time.Monday, 1)),
		New(KindVeteransDay, Observed(dateutil.Date(year, time.November, 11))),
		New(KindThanksgiving, NthWeekday(year, time.November, time.Thursday, 4)),
		New(KindChristmas, Observed(dateutil.Date(year, time.December, 25))),
	}

	if year >= juneteenthFirstYear {
		holidays = append(holidays, New(KindJuneteenth, Observed(dateutil.Date(year, time.June, 19))))
	}

	sort.SliceStable(holidays, func(i, j int) bool {
		return holidays[i].Date.Before(holidays[j].Date)
	})

	return holidays
}

// NthWeekday returns the n-th occurrence of weekday in the month (n >= 1)
func NthWeekday(year int, month time.Month, weekday time.Weekday, n int) time.Time {
	first := dateutil.StartOfMonth(year, month)
	offset := (int(weekday) - int(first.Weekday()) + 7) % 7
	return first.AddDate(0, 0, offset+(n-1)*7)
}

// LastWeekday returns the last occurrence of weekday in the month
func LastWeekday(year int, month time.Month, weekday time.Weekday) time.Time {
	last := dateutil.Date(year, month, dateutil.DaysInMonth(year, month))
	offset := (int(last.Weekday()) - int(weekday) + 7) % 7
	return last.AddDate(0, 0, -offset)
}

// Easter calculates Easter Sunday using the anonymous Gregorian algorithm
// (Meeus/Jones/Butcher)
func Easter(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1

	return dateutil.Date(year, time.Month(month), day)
}

// Observed applies the federal observance rule to a fixed-date holiday:
// Saturday moves to the preceding Friday, Sunday to the following Monday
func Observed(date time.Time) time.Time {
	switch date.Weekday() {
	case time.Saturday:
		return date.AddDate(0, 0, -1)
	case time.Sunday:
		return date.AddDate(0, 0, 1)
	default:
		return date
	}
}
