package view

import (
	"fmt"

	"github.com/username/booking-calendar/internal/classifier"
	"github.com/username/booking-calendar/pkg/dateutil"
)

// Cell colors
const (
	ColorNone             = "#e5e7eb"
	ColorAvailableStart   = "#84fab0"
	ColorAvailableEnd     = "#8fd3f4"
	ColorPremiumStart     = "#ffd700"
	ColorPremiumEnd       = "#ffed4e"
	checkoutTimeLabelHint = "10 AM"
	checkinTimeLabelHint  = "3 PM"
)

// Badge is a small category label inside a cell
type Badge struct {
	Text  string `json:"text"`
	Title string `json:"title,omitempty"`
}

// Marker is the holiday glyph shown in a corner of the cell
type Marker struct {
	Emoji string `json:"emoji"`
	Title string `json:"title"`
}

// Cell holds the display primitives of one grid position
type Cell struct {
	Blank               bool                 `json:"blank,omitempty"`
	Day                 int                  `json:"day,omitempty"`
	Date                string               `json:"date,omitempty"`
	State               *classifier.DayState `json:"state,omitempty"`
	Classes             []string             `json:"classes"`
	CheckoutColor       string               `json:"checkoutColor,omitempty"`
	CheckinColor        string               `json:"checkinColor,omitempty"`
	AvailableColorStart string               `json:"availableColorStart,omitempty"`
	AvailableColorEnd   string               `json:"availableColorEnd,omitempty"`
	Badges              []Badge              `json:"badges,omitempty"`
	StatusText          string               `json:"statusText,omitempty"`
	Holiday             *Marker              `json:"holiday,omitempty"`
	Clickable           bool                 `json:"clickable"`
}

// MonthGrid is a rendered month: leading blanks for the weekdays before the
// 1st (weeks start on Sunday) followed by one cell per day
type MonthGrid struct {
	Cursor        Cursor `json:"cursor"`
	Title         string `json:"title"`
	LeadingBlanks int    `json:"leadingBlanks"`
	Cells         []Cell `json:"cells"`
}

// Days returns only the non-blank cells
func (g MonthGrid) Days() []Cell {
	return g.Cells[g.LeadingBlanks:]
}

// RenderMonth classifies every day of the cursor month and turns the states into cells
func RenderMonth(c *classifier.Classifier, cursor Cursor) MonthGrid {
	first := cursor.First()
	blanks := int(first.Weekday())
	numDays := dateutil.DaysInMonth(cursor.Year, cursor.TimeMonth())

	grid := MonthGrid{
		Cursor:        cursor,
		Title:         cursor.Title(),
		LeadingBlanks: blanks,
		Cells:         make([]Cell, 0, blanks+numDays),
	}

	for i := 0; i < blanks; i++ {
		grid.Cells = append(grid.Cells, Cell{Blank: true, Classes: []string{"calendar-day", "empty"}})
	}

	for day := 1; day <= numDays; day++ {
		state := c.Classify(dateutil.Date(cursor.Year, cursor.TimeMonth(), day))
		grid.Cells = append(grid.Cells, RenderDay(state))
	}

	return grid
}

// RenderDay turns a day state into display primitives
func RenderDay(state classifier.DayState) Cell {
	cell := Cell{
		Day:                 state.Date.Day(),
		Date:                dateutil.Format(state.Date),
		State:               &state,
		CheckoutColor:       ColorNone,
		CheckinColor:        ColorNone,
		AvailableColorStart: ColorAvailableStart,
		AvailableColorEnd:   ColorAvailableEnd,
		Clickable:           state.Clickable(),
	}

	if state.IsBusySeason {
		cell.AvailableColorStart = ColorPremiumStart
		cell.AvailableColorEnd = ColorPremiumEnd
	}

	cell.Classes = []string{"calendar-day"}

	switch state.Display.Kind {
	case classifier.DisplaySplit:
		cell.Classes = append(cell.Classes, "split-day-both")
		cell.CheckoutColor = classifier.Color(state.Checkout.Category)
		cell.CheckinColor = classifier.Color(state.Checkin.Category)
		cell.Badges = []Badge{
			checkoutBadge(state.Checkout.Category),
			checkinBadge(state.Checkin.Category),
		}
	case classifier.DisplayCheckout:
		cell.Classes = append(cell.Classes, "split-day-checkout")
		cell.CheckoutColor = classifier.Color(state.Checkout.Category)
		cell.Badges = []Badge{checkoutBadge(state.Checkout.Category)}
	case classifier.DisplayCheckin:
		cell.Classes = append(cell.Classes, "split-day-checkin")
		cell.CheckinColor = classifier.Color(state.Checkin.Category)
		cell.Badges = []Badge{checkinBadge(state.Checkin.Category)}
	case classifier.DisplayOccupied:
		cell.Classes = append(cell.Classes, state.Display.Category)
		text := state.Occupant.Category
		if text == "" {
			text = "Owner Reservation"
		}
		cell.Badges = []Badge{{Text: text}}
	default:
		cell.Classes = append(cell.Classes, state.Display.Category)
		cell.StatusText = "Available"
	}

	if state.Holiday != nil {
		cell.Holiday = &Marker{Emoji: state.Holiday.Emoji, Title: state.Holiday.Name}
	}
	if dateutil.IsWeekend(state.Date) {
		cell.Classes = append(cell.Classes, "weekend")
	}

	if cell.Clickable {
		cell.Classes = append(cell.Classes, "clickable")
	}

	return cell
}

func checkoutBadge(category string) Badge {
	label := classifier.Label(category)
	return Badge{Text: label, Title: fmt.Sprintf("%s checkout (%s)", label, checkoutTimeLabelHint)}
}

func checkinBadge(category string) Badge {
	label := classifier.Label(category)
	return Badge{Text: label, Title: fmt.Sprintf("%s checkin (%s)", label, checkinTimeLabelHint)}
}
