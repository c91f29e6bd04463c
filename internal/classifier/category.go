package classifier

import "strings"

// DefaultCategory is used for bookings delivered without a category
const DefaultCategory = "owner-reservation"

// Category colors
const (
	ColorGuest         = "#1976d2"
	ColorGolf          = "#8BC34A"
	ColorOTA           = "#FF9800"
	ColorOwnerReferral = "#E91E63"
	ColorOwner         = "#9C27B0"
	ColorComplimentary = "#FFC107"
	ColorAvailable     = "#84fab0"
)

// Slug turns a category into a class-like identifier ("Guest Reservation" -> "guest-reservation")
func Slug(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return DefaultCategory
	}
	return strings.ReplaceAll(strings.ToLower(category), " ", "-")
}

// Color maps a category to its display color by keyword
func Color(category string) string {
	if strings.TrimSpace(category) == "" {
		return ColorOwner
	}

	c := strings.ToLower(category)
	switch {
	case strings.Contains(c, "guest"):
		return ColorGuest
	case strings.Contains(c, "golf"):
		return ColorGolf
	case strings.Contains(c, "ota"):
		return ColorOTA
	case strings.Contains(c, "owner") && strings.Contains(c, "referral"):
		return ColorOwnerReferral
	case strings.Contains(c, "owner"):
		return ColorOwner
	case strings.Contains(c, "complimentary"):
		return ColorComplimentary
	default:
		return ColorAvailable
	}
}

// Label returns the badge text of a category
func Label(category string) string {
	if strings.TrimSpace(category) == "" {
		return "Owner"
	}
	return category
}
