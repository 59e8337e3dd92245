// Package model defines the core data structures for website audits.
// It contains the severity and category enums, extracted page signals,
// audit issues, category score breakdowns, and the final report types
// shared across the fetcher, rule engine, insight generator, and servers.
package model
