// Package main provides the entry point for the platescan CLI.
//
// platescan audits restaurant and small-business websites: it fetches
// a page, scores it across SEO, Content, Usability, and Technical
// categories, lists the issues found, and optionally adds AI-generated
// improvement advice.
//
// Usage:
//
//	platescan serve
//	platescan scan <url> [<url>...]
//
// See --help for all available options.
package main

// main is the entry point for platescan.
func main() {
	Execute()
}
