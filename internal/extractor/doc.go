// Package extractor parses page markup into a queryable document and
// derives the flat signal record the rule engine scores. Parsing is
// lenient and pure: malformed markup never fails, it simply yields
// default or empty values for whatever could not be read.
package extractor
