package extractor

import (
	"regexp"
	"strings"

	"github.com/platescan/platescan/internal/model"
)

// Business signal names. These key the predicate table and keep the
// extractor's vocabulary aligned with the Signals record.
const (
	SignalMenu        = "menu"
	SignalPDFMenu     = "pdf_menu"
	SignalHours       = "hours"
	SignalAddress     = "address"
	SignalPhoneText   = "phone_text"
	SignalTelLink     = "tel_link"
	SignalOrdering    = "ordering"
	SignalReservation = "reservation"
	SignalSocial      = "social"
	SignalMaps        = "maps"
)

// Predicate is one named, independently testable business-signal check.
type Predicate struct {
	// Name is the signal this predicate detects.
	Name string

	// Match reports whether the signal is present in the document.
	Match func(d *Document) bool
}

// BusinessPredicates is the declarative table of business-signal
// detectors. Each entry combines case-insensitive text matching
// against the lower-cased body text with link and attribute
// inspection.
//
// Design decision: A table of named predicates rather than inline
// string matching inside the rule engine, so the engine stays
// data-driven and each detector can be unit-tested on its own.
var BusinessPredicates = []Predicate{
	{Name: SignalMenu, Match: hasMenu},
	{Name: SignalPDFMenu, Match: hasPDFMenu},
	{Name: SignalHours, Match: hasHours},
	{Name: SignalAddress, Match: hasAddress},
	{Name: SignalPhoneText, Match: hasPhoneText},
	{Name: SignalTelLink, Match: hasTelLink},
	{Name: SignalOrdering, Match: hasOrdering},
	{Name: SignalReservation, Match: hasReservation},
	{Name: SignalSocial, Match: hasSocial},
	{Name: SignalMaps, Match: hasMaps},
}

// Extract derives the flat signal record from a parsed document.
// The HTTPS signal is left false here; it comes from the request URL,
// not the markup, and is filled in by the caller.
func Extract(d *Document) model.Signals {
	detected := make(map[string]bool, len(BusinessPredicates))
	for _, p := range BusinessPredicates {
		detected[p.Name] = p.Match(d)
	}

	return model.Signals{
		Title:          d.Title,
		Description:    d.Description,
		H1Count:        d.H1Count,
		Canonical:      d.Canonical,
		OGTitle:        d.OGTitle,
		Viewport:       d.Viewport,
		Favicon:        d.Favicon,
		StructuredData: d.StructuredData,
		ImageCount:     d.ImageCount,
		ImagesWithAlt:  d.ImagesWithAlt,
		Menu:           detected[SignalMenu],
		PDFMenu:        detected[SignalPDFMenu],
		Hours:          detected[SignalHours],
		Address:        detected[SignalAddress],
		PhoneText:      detected[SignalPhoneText],
		TelLink:        detected[SignalTelLink],
		Ordering:       detected[SignalOrdering],
		Reservation:    detected[SignalReservation],
		Social:         detected[SignalSocial],
		Maps:           detected[SignalMaps],
	}
}

// orderingDomains are known online-ordering and delivery platforms.
var orderingDomains = []string{
	"doordash.com",
	"ubereats.com",
	"grubhub.com",
	"postmates.com",
	"seamless.com",
	"toasttab.com",
	"chownow.com",
	"slicelife.com",
	"order.online",
}

// reservationDomains are known table-reservation platforms.
var reservationDomains = []string{
	"opentable.com",
	"resy.com",
	"sevenrooms.com",
	"tock.com",
	"thefork.com",
}

// socialDomains are social platforms whose presence counts as a
// social link.
var socialDomains = []string{
	"facebook.com",
	"instagram.com",
	"twitter.com",
	"x.com",
	"tiktok.com",
	"youtube.com",
	"yelp.com",
}

// phoneRegex matches common North American and international phone
// formats in visible text. Permissive on purpose: a false positive
// only grants a few points, while a false negative nags an owner who
// already lists a number.
var phoneRegex = regexp.MustCompile(`\(?\d{3}\)?[\s.-]\d{3}[\s.-]\d{4}|\+\d{1,3}[\s.-]?\d{1,4}[\s.-]?\d{3,4}[\s.-]?\d{3,4}`)

// timeRangeRegex matches opening-hour ranges like "11am - 9pm" or
// "11:30 AM to 10 PM" in the lower-cased body text.
var timeRangeRegex = regexp.MustCompile(`\d{1,2}(:\d{2})?\s*(am|pm)\s*(-|–|to)\s*\d{1,2}(:\d{2})?\s*(am|pm)`)

// streetSuffixes indicate a postal address in visible text.
var streetSuffixes = []string{
	" street", " st.", " avenue", " ave", " road", " rd.",
	" boulevard", " blvd", " lane", " drive", " dr.", " suite", " plaza",
}

func hasMenu(d *Document) bool {
	if strings.Contains(d.BodyText, "menu") {
		return true
	}
	return anyLink(d, func(l Link) bool {
		return strings.Contains(l.Text, "menu") || strings.Contains(l.Href, "menu")
	})
}

func hasPDFMenu(d *Document) bool {
	return anyLink(d, func(l Link) bool {
		if !strings.Contains(l.Href, ".pdf") {
			return false
		}
		return strings.Contains(l.Href, "menu") || strings.Contains(l.Text, "menu")
	})
}

func hasHours(d *Document) bool {
	for _, kw := range []string{"hours", "open daily", "opening times", "we're open", "we are open"} {
		if strings.Contains(d.BodyText, kw) {
			return true
		}
	}
	return timeRangeRegex.MatchString(d.BodyText)
}

func hasAddress(d *Document) bool {
	for _, suffix := range streetSuffixes {
		if strings.Contains(d.BodyText, suffix) {
			return true
		}
	}
	return strings.Contains(d.BodyText, "address")
}

func hasPhoneText(d *Document) bool {
	return phoneRegex.MatchString(d.BodyText)
}

func hasTelLink(d *Document) bool {
	return anyLink(d, func(l Link) bool {
		return strings.HasPrefix(l.Href, "tel:")
	})
}

func hasOrdering(d *Document) bool {
	for _, kw := range []string{"order online", "order now", "order ahead", "order delivery", "online ordering"} {
		if strings.Contains(d.BodyText, kw) {
			return true
		}
	}
	return anyLink(d, func(l Link) bool {
		return containsAnyDomain(l.Href, orderingDomains)
	})
}

func hasReservation(d *Document) bool {
	for _, kw := range []string{"reservation", "reserve a table", "book a table", "book now"} {
		if strings.Contains(d.BodyText, kw) {
			return true
		}
	}
	return anyLink(d, func(l Link) bool {
		return containsAnyDomain(l.Href, reservationDomains)
	})
}

func hasSocial(d *Document) bool {
	return anyLink(d, func(l Link) bool {
		return containsAnyDomain(l.Href, socialDomains)
	})
}

func hasMaps(d *Document) bool {
	mapHosts := []string{"google.com/maps", "maps.google.", "goo.gl/maps", "maps.app.goo.gl", "openstreetmap.org"}
	for _, src := range d.IframeSrcs {
		if containsAnyDomain(src, mapHosts) {
			return true
		}
	}
	return anyLink(d, func(l Link) bool {
		return containsAnyDomain(l.Href, mapHosts)
	})
}

// anyLink reports whether any anchor satisfies the match function.
func anyLink(d *Document, match func(Link) bool) bool {
	for _, l := range d.Links {
		if match(l) {
			return true
		}
	}
	return false
}

// containsAnyDomain reports whether the value mentions any of the
// given domains.
func containsAnyDomain(value string, domains []string) bool {
	for _, domain := range domains {
		if strings.Contains(value, domain) {
			return true
		}
	}
	return false
}
