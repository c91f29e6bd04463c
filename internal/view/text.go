package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/username/booking-calendar/internal/classifier"
)

const cellWidth = 5

var weekdayHeader = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Terminal glyphs per display kind
var kindGlyphs = map[classifier.DisplayKind]string{
	classifier.DisplaySplit:            "X",
	classifier.DisplayCheckout:         ">",
	classifier.DisplayCheckin:          "<",
	classifier.DisplayOccupied:         "#",
	classifier.DisplayPremiumAvailable: "+",
	classifier.DisplayAvailable:        ".",
}

// WriteText renders the grid as a plain-text month calendar
func WriteText(w io.Writer, grid MonthGrid) error {
	var sb strings.Builder

	sb.WriteString(centered(grid.Title, cellWidth*7))
	sb.WriteString("\n")
	for _, name := range weekdayHeader {
		sb.WriteString(fmt.Sprintf("%-*s", cellWidth, name))
	}
	sb.WriteString("\n")

	for i, cell := range grid.Cells {
		sb.WriteString(fmt.Sprintf("%-*s", cellWidth, cellText(cell)))
		if (i+1)%7 == 0 {
			sb.WriteString("\n")
		}
	}
	if len(grid.Cells)%7 != 0 {
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString("< checkin  > checkout  X turnover  # occupied  + premium  . available  * holiday\n")

	var holidays []string
	for _, cell := range grid.Days() {
		if cell.Holiday != nil {
			holidays = append(holidays, fmt.Sprintf("%2d %s %s", cell.Day, cell.Holiday.Emoji, cell.Holiday.Title))
		}
	}
	if len(holidays) > 0 {
		sb.WriteString("\n")
		for _, h := range holidays {
			sb.WriteString(h)
			sb.WriteString("\n")
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteDetail renders a booking detail as text
func WriteDetail(w io.Writer, d Detail) error {
	_, err := fmt.Fprintf(w, "%s\n  Category:  %s\n  Check-in:  %s\n  Check-out: %s\n  Duration:  %s\n",
		d.Title, d.Category, d.CheckinText, d.CheckoutText, d.NightsText)
	return err
}

func cellText(cell Cell) string {
	if cell.Blank {
		return ""
	}
	text := fmt.Sprintf("%2d", cell.Day)
	if cell.State != nil {
		text += kindGlyphs[cell.State.Display.Kind]
	}
	if cell.Holiday != nil {
		text += "*"
	}
	return text
}

func centered(s string, width int) string {
	if len(s) >= width {
		return s
	}
	pad := (width - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}
