package insight

import "regexp"

// Generative models are told to reply with raw JSON, but in practice
// they still wrap replies in markdown fences or leave trailing commas.
// These patterns clean that up before strict parsing.
var (
	// fencedJSONPattern matches a JSON object inside a markdown code
	// block, with or without a "json" language tag.
	fencedJSONPattern = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(\\{.*\\})\\s*```")

	// jsonObjectPattern matches the outermost JSON object (greedy fallback).
	jsonObjectPattern = regexp.MustCompile(`(?s)\{[\s\S]*\}`)

	// trailingCommaPattern matches trailing commas before ] or }.
	trailingCommaPattern = regexp.MustCompile(`,\s*([}\]])`)
)

// extractJSON pulls a JSON object out of a model reply, stripping any
// markdown fence and trailing commas. Returns "" when no object is
// present at all.
func extractJSON(content string) string {
	raw := ""
	if matches := fencedJSONPattern.FindStringSubmatch(content); len(matches) > 1 {
		raw = matches[1]
	} else if match := jsonObjectPattern.FindString(content); match != "" {
		raw = match
	}
	if raw == "" {
		return ""
	}
	return trailingCommaPattern.ReplaceAllString(raw, "$1")
}
