package rules

import (
	"fmt"
	"math"

	"github.com/platescan/platescan/internal/model"
)

// Content point values and thresholds.
const (
	contentMenuPoints    = 8
	contentPDFMenuPoints = 2
	contentHoursPoints   = 5
	contentAddressPoints = 4
	contentPhonePoints   = 4
	contentImagePoints   = 4
	contentMinImages     = 5
	contentMinAltRatio   = 0.5
)

// evaluateContent scores the Content category: menu, opening hours,
// address, phone number, and food photography.
func evaluateContent(in Input) (int, []model.Issue) {
	var points int
	issues := make([]model.Issue, 0)

	add := func(severity model.Severity, text string) {
		issues = append(issues, model.Issue{Type: severity, Text: text, Category: model.CategoryContent})
	}

	// Menu. A PDF-only menu is worse than a proper page: search
	// engines can't index it well and phones render it badly, so it
	// earns token points and an error.
	switch {
	case in.Signals.PDFMenu:
		points += contentPDFMenuPoints
		add(model.SeverityError, "Menu is a PDF, which is bad for SEO and mobile users")
	case in.Signals.Menu:
		points += contentMenuPoints
	default:
		add(model.SeverityWarning, "No menu found on the page")
	}

	if in.Signals.Hours {
		points += contentHoursPoints
	} else {
		add(model.SeverityError, "Opening hours not found")
	}

	if in.Signals.Address {
		points += contentAddressPoints
	} else {
		add(model.SeverityWarning, "Address not found on the page")
	}

	if in.Signals.HasPhone() {
		points += contentPhonePoints
	} else {
		add(model.SeverityWarning, "Phone number not found")
	}

	// Photos: enough of them earns the points, but poor alt coverage
	// still draws a warning on top.
	if in.Signals.ImageCount >= contentMinImages {
		points += contentImagePoints
		if coverage := in.Signals.AltCoverage(); coverage < contentMinAltRatio {
			add(model.SeverityWarning, fmt.Sprintf("Only %d%% of images have alt text", int(math.Round(coverage*100))))
		}
	} else {
		add(model.SeverityInfo, "Consider adding more food photos")
	}

	return points, issues
}
