package extractor

import (
	"strings"

	"golang.org/x/net/html"
)

// Document is the queryable structure extracted from one page.
// All text and attribute values are lower-cased at parse time so the
// signal predicates can do plain substring matching.
//
// Design decision: We parse once into this intermediate form rather
// than letting each predicate walk the DOM because:
//  1. A single parsing pass is cheaper than one per predicate
//  2. Predicates become pure functions over plain strings, trivially testable
//  3. The signal table stays independent of the HTML library
type Document struct {
	// Title is the raw <title> text (original case, trimmed).
	Title string

	// Description is the meta description content (original case).
	Description string

	// H1Count is the number of <h1> elements.
	H1Count int

	// Canonical is true when a rel="canonical" link is present.
	Canonical bool

	// OGTitle is true when a property="og:title" meta tag is present.
	OGTitle bool

	// Viewport is true when a name="viewport" meta tag is present.
	Viewport bool

	// Favicon is true when a rel="icon" or "shortcut icon" link is present.
	Favicon bool

	// StructuredData is true when a JSON-LD script tag is present.
	StructuredData bool

	// ImageCount is the number of <img> elements with a src attribute.
	ImageCount int

	// ImagesWithAlt counts images with non-empty alt text.
	ImagesWithAlt int

	// Links holds every anchor, lower-cased.
	Links []Link

	// IframeSrcs holds iframe src attributes, lower-cased.
	IframeSrcs []string

	// BodyText is the visible page text, lower-cased, whitespace
	// joined with single spaces. Script and style contents excluded.
	BodyText string
}

// Link is an anchor element reduced to what the predicates inspect.
type Link struct {
	// Href is the lower-cased href attribute.
	Href string

	// Text is the lower-cased visible text inside the anchor.
	Text string
}

// Parse builds a Document from raw markup. It never fails: html.Parse
// repairs malformed markup, and anything unreadable simply leaves the
// corresponding field at its zero value.
func Parse(rawHTML string) *Document {
	doc := &Document{
		Links:      make([]Link, 0),
		IframeSrcs: make([]string, 0),
	}

	root, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		// html.Parse only errors on reader failure, which cannot
		// happen with a strings.Reader. Return the empty document
		// anyway to keep the never-fails contract honest.
		return doc
	}

	var text strings.Builder

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			doc.processElement(n)

			// Script and style contents are not visible text.
			if n.Data == "script" || n.Data == "style" || n.Data == "noscript" {
				return
			}
		case html.TextNode:
			if trimmed := strings.TrimSpace(n.Data); trimmed != "" {
				text.WriteString(trimmed)
				text.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(root)

	doc.BodyText = strings.ToLower(strings.TrimSpace(text.String()))
	return doc
}

// processElement records whatever signal the element carries.
func (d *Document) processElement(n *html.Node) {
	switch n.Data {
	case "title":
		if d.Title == "" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
			d.Title = strings.TrimSpace(n.FirstChild.Data)
		}

	case "h1":
		d.H1Count++

	case "meta":
		name := strings.ToLower(getAttr(n, "name"))
		property := strings.ToLower(getAttr(n, "property"))
		switch {
		case name == "description":
			d.Description = getAttr(n, "content")
		case name == "viewport":
			d.Viewport = true
		case property == "og:title":
			d.OGTitle = true
		}

	case "link":
		rel := strings.ToLower(getAttr(n, "rel"))
		switch rel {
		case "canonical":
			d.Canonical = true
		case "icon", "shortcut icon", "apple-touch-icon":
			d.Favicon = true
		}

	case "script":
		if strings.ToLower(getAttr(n, "type")) == "application/ld+json" {
			d.StructuredData = true
		}

	case "img":
		if getAttr(n, "src") == "" {
			return
		}
		d.ImageCount++
		if strings.TrimSpace(getAttr(n, "alt")) != "" {
			d.ImagesWithAlt++
		}

	case "a":
		href := strings.ToLower(strings.TrimSpace(getAttr(n, "href")))
		if href == "" {
			return
		}
		d.Links = append(d.Links, Link{
			Href: href,
			Text: strings.ToLower(nodeText(n)),
		})

	case "iframe":
		if src := strings.ToLower(getAttr(n, "src")); src != "" {
			d.IframeSrcs = append(d.IframeSrcs, src)
		}
	}
}

// nodeText collects the visible text inside an element's subtree.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return strings.TrimSpace(b.String())
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if strings.EqualFold(attr.Key, key) {
			return attr.Val
		}
	}
	return ""
}
