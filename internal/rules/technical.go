package rules

import (
	"fmt"

	"github.com/platescan/platescan/internal/model"
)

// Technical point values and load-time cutoffs. The raw points can
// reach 22; the category is clamped at its 20-point maximum, so the
// fast-load bonus only compensates for one small miss elsewhere.
const (
	technicalViewportPoints       = 6
	technicalHTTPSPoints          = 5
	technicalFaviconPoints        = 3
	technicalStructuredDataPoints = 6
	technicalFastLoadPoints       = 2
	technicalFastLoadMs           = 2000
	technicalSlowLoadMs           = 5000
)

// evaluateTechnical scores the Technical category: mobile viewport,
// HTTPS, favicon, structured data, and load time.
func evaluateTechnical(in Input) (int, []model.Issue) {
	var points int
	issues := make([]model.Issue, 0)

	add := func(severity model.Severity, text string) {
		issues = append(issues, model.Issue{Type: severity, Text: text, Category: model.CategoryTechnical})
	}

	if in.Signals.Viewport {
		points += technicalViewportPoints
	} else {
		add(model.SeverityError, "Missing viewport meta tag - site is not mobile-friendly")
	}

	if in.Signals.HTTPS {
		points += technicalHTTPSPoints
	} else {
		add(model.SeverityError, "Site does not use HTTPS")
	}

	if in.Signals.Favicon {
		points += technicalFaviconPoints
	} else {
		add(model.SeverityInfo, "Missing favicon")
	}

	if in.Signals.StructuredData {
		points += technicalStructuredDataPoints
	} else {
		add(model.SeverityWarning, "No structured data (JSON-LD) found")
	}

	// Load time: a bonus under 2s, a warning over 5s, and the band
	// between earns nothing and says nothing.
	switch {
	case in.LoadTimeMs < technicalFastLoadMs:
		points += technicalFastLoadPoints
	case in.LoadTimeMs > technicalSlowLoadMs:
		add(model.SeverityWarning, fmt.Sprintf("Slow load time (%.1fs)", float64(in.LoadTimeMs)/1000))
	}

	return points, issues
}
