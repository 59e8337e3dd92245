package model

// Signals is the flat record of facts derived from one page.
// The extractor fills everything except HTTPS, which is derived from
// the normalized request URL because a pure HTML parse cannot see the
// scheme the page was served over.
//
// Design decision: We keep this a flat struct of booleans and counters
// rather than nesting per-category sub-structs because the rule engine
// reads across categories (e.g. the phone signals feed both Content
// and Usability) and a flat record keeps evaluators trivial to test.
type Signals struct {
	// === Markup signals ===

	// Title is the raw <title> text, untruncated.
	Title string

	// Description is the meta description content.
	Description string

	// H1Count is the number of <h1> elements.
	H1Count int

	// Canonical is true when a rel="canonical" link is present.
	Canonical bool

	// OGTitle is true when an og:title Open Graph tag is present.
	OGTitle bool

	// Viewport is true when a viewport meta tag is present.
	Viewport bool

	// Favicon is true when a favicon link is present.
	Favicon bool

	// StructuredData is true when a JSON-LD script tag is present.
	StructuredData bool

	// HTTPS is true when the page was fetched over https.
	HTTPS bool

	// === Image signals ===

	// ImageCount is the number of <img> elements with a src.
	ImageCount int

	// ImagesWithAlt is the number of those images with non-empty alt text.
	ImagesWithAlt int

	// === Business signals ===
	// Detected by the extractor's predicate table from visible text
	// and link/attribute inspection.

	// Menu is true when a food menu is referenced on the page.
	Menu bool

	// PDFMenu is true when the menu is only offered as a linked PDF.
	PDFMenu bool

	// Hours is true when opening hours are stated.
	Hours bool

	// Address is true when a street address appears.
	Address bool

	// PhoneText is true when a phone number appears in visible text.
	PhoneText bool

	// TelLink is true when a clickable tel: link is present.
	TelLink bool

	// Ordering is true when online ordering is offered, either by text
	// phrase or by a link to a known delivery platform.
	Ordering bool

	// Reservation is true when table reservations are offered.
	Reservation bool

	// Social is true when any social platform is linked.
	Social bool

	// Maps is true when a map is embedded or linked.
	Maps bool
}

// AltCoverage returns the fraction of images carrying alt text,
// or 1.0 when the page has no images (nothing to cover).
func (s Signals) AltCoverage() float64 {
	if s.ImageCount == 0 {
		return 1.0
	}
	return float64(s.ImagesWithAlt) / float64(s.ImageCount)
}

// HasPhone reports whether a phone number was found in any form.
func (s Signals) HasPhone() bool {
	return s.PhoneText || s.TelLink
}
