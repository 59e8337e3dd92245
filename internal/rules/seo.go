package rules

import (
	"fmt"

	"github.com/platescan/platescan/internal/model"
)

// SEO point values and thresholds. The character ranges are empirical
// constants (what search engines display without truncation) and are
// replicated exactly; do not tune them.
const (
	seoTitlePoints        = 8
	seoTitlePartial       = 4
	seoTitleMinLength     = 30
	seoTitleMaxLength     = 60
	seoDescriptionPoints  = 8
	seoDescriptionPartial = 4
	seoDescriptionMin     = 120
	seoDescriptionMax     = 160
	seoH1Points           = 6
	seoH1Partial          = 3
	seoCanonicalPoints    = 4
	seoOGTitlePoints      = 4
)

// evaluateSEO scores the SEO category: title and description length,
// H1 structure, canonical link, and Open Graph title.
func evaluateSEO(in Input) (int, []model.Issue) {
	var points int
	issues := make([]model.Issue, 0)

	add := func(severity model.Severity, text string) {
		issues = append(issues, model.Issue{Type: severity, Text: text, Category: model.CategorySEO})
	}

	// Title: full points inside the display-safe range, partial
	// credit for having one at all.
	titleLen := len([]rune(in.Signals.Title))
	switch {
	case titleLen == 0:
		add(model.SeverityError, "Missing page title")
	case titleLen >= seoTitleMinLength && titleLen <= seoTitleMaxLength:
		points += seoTitlePoints
	default:
		points += seoTitlePartial
		add(model.SeverityWarning, fmt.Sprintf("Page title is %d characters (aim for %d-%d)", titleLen, seoTitleMinLength, seoTitleMaxLength))
	}

	// Meta description.
	descLen := len([]rune(in.Signals.Description))
	switch {
	case descLen == 0:
		add(model.SeverityError, "Missing meta description")
	case descLen >= seoDescriptionMin && descLen <= seoDescriptionMax:
		points += seoDescriptionPoints
	default:
		points += seoDescriptionPartial
		add(model.SeverityWarning, fmt.Sprintf("Meta description is %d characters (aim for %d-%d)", descLen, seoDescriptionMin, seoDescriptionMax))
	}

	// Exactly one H1 is the ideal document outline.
	switch {
	case in.Signals.H1Count == 1:
		points += seoH1Points
	case in.Signals.H1Count == 0:
		add(model.SeverityError, "Missing H1 heading")
	default:
		points += seoH1Partial
		add(model.SeverityWarning, fmt.Sprintf("Multiple H1 headings found (%d)", in.Signals.H1Count))
	}

	if in.Signals.Canonical {
		points += seoCanonicalPoints
	} else {
		add(model.SeverityInfo, "Missing canonical link")
	}

	if in.Signals.OGTitle {
		points += seoOGTitlePoints
	} else {
		add(model.SeverityWarning, "Missing Open Graph title tag")
	}

	return points, issues
}
