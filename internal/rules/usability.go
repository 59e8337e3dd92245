package rules

import "github.com/platescan/platescan/internal/model"

// Usability point values.
const (
	usabilityOrderingPoints    = 8
	usabilityReservationPoints = 5
	usabilitySocialPoints      = 4
	usabilityTelLinkPoints     = 4
	usabilityMapsPoints        = 4
)

// evaluateUsability scores the Usability category: online ordering,
// reservations, social links, clickable phone numbers, and maps.
func evaluateUsability(in Input) (int, []model.Issue) {
	var points int
	issues := make([]model.Issue, 0)

	add := func(severity model.Severity, text string) {
		issues = append(issues, model.Issue{Type: severity, Text: text, Category: model.CategoryUsability})
	}

	if in.Signals.Ordering {
		points += usabilityOrderingPoints
	} else {
		add(model.SeverityError, "No online ordering found - you may be losing sales")
	}

	if in.Signals.Reservation {
		points += usabilityReservationPoints
	} else {
		add(model.SeverityInfo, "No reservation option found")
	}

	if in.Signals.Social {
		points += usabilitySocialPoints
	} else {
		add(model.SeverityWarning, "No social media links found")
	}

	// A tel: link earns the points. A number that only appears as
	// text draws a warning; no number at all already drew a Content
	// warning, so Usability stays silent.
	switch {
	case in.Signals.TelLink:
		points += usabilityTelLinkPoints
	case in.Signals.PhoneText:
		add(model.SeverityWarning, "Phone number is not clickable on mobile")
	}

	if in.Signals.Maps {
		points += usabilityMapsPoints
	} else {
		add(model.SeverityInfo, "No embedded map found")
	}

	return points, issues
}
