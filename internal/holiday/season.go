package holiday

import (
	"time"

	"github.com/username/booking-calendar/pkg/dateutil"
)

// Season is the busy-season range of one year, both ends inclusive
type Season struct {
	Start time.Time
	End   time.Time
}

// BusySeasonFor returns [Memorial Day, Labor Day] for the year.
// ok is false when the provider lacks either boundary.
func BusySeasonFor(p Provider, year int) (Season, bool) {
	holidays := p.HolidaysForYear(year)

	memorial, ok := Find(holidays, KindMemorialDay)
	if !ok {
		return Season{}, false
	}
	labor, ok := Find(holidays, KindLaborDay)
	if !ok {
		return Season{}, false
	}

	return Season{Start: memorial.Date, End: labor.Date}, true
}

// Contains reports whether date falls inside the season
func (s Season) Contains(date time.Time) bool {
	return dateutil.InRange(date, s.Start, s.End)
}

// IsBusySeason reports whether date is in the busy season of its year
func IsBusySeason(p Provider, date time.Time) bool {
	season, ok := BusySeasonFor(p, date.Year())
	if !ok {
		return false
	}
	return season.Contains(date)
}
