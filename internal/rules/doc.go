// Package rules maps extracted page signals to category scores and a
// severity-ordered issue list. Every evaluator is a pure function:
// identical signals, URL, and load time always produce byte-identical
// breakdowns and issue ordering.
package rules
