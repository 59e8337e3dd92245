package model

import (
	"encoding/json"
	"fmt"
)

// Severity represents how serious an audit issue is.
// Lower values sort first: errors are shown before warnings,
// warnings before informational notes.
//
// Design decision: We use iota-based constants rather than string
// constants so that sorting issues by severity is a plain integer
// comparison. JSON marshalling converts to the lowercase string form
// that API clients expect.
type Severity int

const (
	// SeverityError indicates a problem that actively costs the site
	// visitors or revenue (missing title, no HTTPS, no online ordering).
	SeverityError Severity = iota

	// SeverityWarning indicates an issue worth fixing but not urgent
	// (title length out of range, missing social links).
	SeverityWarning

	// SeverityInfo indicates an optional improvement
	// (missing canonical link, no embedded map).
	SeverityInfo
)

// String returns the lowercase string form used in JSON output.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the severity as its lowercase string form.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a severity from its lowercase string form.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch str {
	case "error":
		*s = SeverityError
	case "warning":
		*s = SeverityWarning
	case "info":
		*s = SeverityInfo
	default:
		return fmt.Errorf("unknown severity %q", str)
	}
	return nil
}

// Category is one of the four fixed-weight scoring buckets.
type Category string

const (
	// CategorySEO covers title, meta description, headings, canonical
	// and Open Graph tags. Worth 30 of 100 points.
	CategorySEO Category = "SEO"

	// CategoryContent covers menu, hours, address, phone, and photos.
	// Worth 25 of 100 points.
	CategoryContent Category = "Content"

	// CategoryUsability covers ordering, reservations, social links,
	// clickable phone numbers, and maps. Worth 25 of 100 points.
	CategoryUsability Category = "Usability"

	// CategoryTechnical covers mobile-friendliness, HTTPS, favicon,
	// structured data, and load time. Worth 20 of 100 points.
	CategoryTechnical Category = "Technical"
)

// categoryMaxScores holds the fixed point ceiling for each category.
// The maxima sum to 100 so the blended total equals the raw point sum.
// These weights are empirical constants carried over from the scoring
// design; they are deliberately not configurable.
var categoryMaxScores = map[Category]int{
	CategorySEO:       30,
	CategoryContent:   25,
	CategoryUsability: 25,
	CategoryTechnical: 20,
}

// MaxScore returns the fixed point ceiling for the category.
// Unknown categories return 0.
func (c Category) MaxScore() int {
	return categoryMaxScores[c]
}

// Categories returns the four categories in evaluation order.
// This order is load-bearing: issue sorting preserves it within
// equal severity, so it must remain stable.
func Categories() []Category {
	return []Category{CategorySEO, CategoryContent, CategoryUsability, CategoryTechnical}
}
