package holiday

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/username/booking-calendar/pkg/dateutil"
)

// Kind identifies a holiday independently of its display name
type Kind string

const (
	KindNewYearsDay     Kind = "new-years-day"
	KindMLKDay          Kind = "mlk-day"
	KindPresidentsDay   Kind = "presidents-day"
	KindEaster          Kind = "easter"
	KindMemorialDay     Kind = "memorial-day"
	KindJuneteenth      Kind = "juneteenth"
	KindIndependenceDay Kind = "independence-day"
	KindLaborDay        Kind = "labor-day"
	KindVeteransDay     Kind = "veterans-day"
	KindThanksgiving    Kind = "thanksgiving"
	KindChristmas       Kind = "christmas"
)

// Holiday represents a single observed holiday. It encodes to JSON with
// its date as YYYY-MM-DD.
type Holiday struct {
	Date  time.Time
	Name  string
	Emoji string
	Kind  Kind
}

type holidayJSON struct {
	Date  string `json:"date"`
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
	Kind  Kind   `json:"kind"`
}

// DateString returns the holiday date as YYYY-MM-DD
func (h Holiday) DateString() string {
	return dateutil.Format(h.Date)
}

func (h Holiday) MarshalJSON() ([]byte, error) {
	return json.Marshal(holidayJSON{
		Date:  h.DateString(),
		Name:  h.Name,
		Emoji: h.Emoji,
		Kind:  h.Kind,
	})
}

func (h *Holiday) UnmarshalJSON(b []byte) error {
	var v holidayJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	date, err := dateutil.ParseDate(v.Date)
	if err != nil {
		return fmt.Errorf("holiday %q: %w", v.Kind, err)
	}
	*h = Holiday{Date: date, Name: v.Name, Emoji: v.Emoji, Kind: v.Kind}
	return nil
}

// Provider supplies the holidays observed in a year
type Provider interface {
	// Name returns the provider identifier used in configuration
	Name() string

	// HolidaysForYear returns the holidays of the year ordered by date.
	// An uncovered year yields an empty slice.
	HolidaysForYear(year int) []Holiday
}

type kindInfo struct {
	name  string
	emoji string
}

var kinds = map[Kind]kindInfo{
	KindNewYearsDay:     {"New Year's Day", "🎊"},
	KindMLKDay:          {"Martin Luther King, Jr. Day", "✊"},
	KindPresidentsDay:   {"Presidents Day", "🎩"},
	KindEaster:          {"Easter Sunday", "🐣"},
	KindMemorialDay:     {"Memorial Day", "🎖️"},
	KindJuneteenth:      {"Juneteenth National Independence Day", "✊🏿"},
	KindIndependenceDay: {"Independence Day", "🎆"},
	KindLaborDay:        {"Labour Day", "⚒️"},
	KindVeteransDay:     {"Veterans Day", "🇺🇸"},
	KindThanksgiving:    {"Thanksgiving Day", "🦃"},
	KindChristmas:       {"Christmas Day", "🎄"},
}

// ParseKind validates a kind identifier
func ParseKind(s string) (Kind, bool) {
	k := Kind(s)
	_, ok := kinds[k]
	return k, ok
}

// New builds a holiday with the default name and emoji of its kind
func New(kind Kind, date time.Time) Holiday {
	info := kinds[kind]
	return Holiday{
		Date:  dateutil.StartOfDay(date),
		Name:  info.name,
		Emoji: info.emoji,
		Kind:  kind,
	}
}

// Find returns the first holiday of the given kind
func Find(holidays []Holiday, kind Kind) (Holiday, bool) {
	for _, h := range holidays {
		if h.Kind == kind {
			return h, true
		}
	}
	return Holiday{}, false
}

// On returns the holiday observed on date, if any.
// The following year is searched too because an observed New Year's Day
// can fall on December 31 of the previous year.
func On(p Provider, date time.Time) (Holiday, bool) {
	day := dateutil.StartOfDay(date)
	for _, year := range []int{day.Year(), day.Year() + 1} {
		for _, h := range p.HolidaysForYear(year) {
			if h.Date.Equal(day) {
				return h, true
			}
		}
	}
	return Holiday{}, false
}
