package insight

import (
	"fmt"
	"strings"

	"github.com/platescan/platescan/internal/model"
)

// selfTestPrompt is the trivial prompt used to verify that a model
// identifier is reachable with the configured credential.
const selfTestPrompt = "Reply with the single word OK."

// buildPrompt renders the fixed audit prompt for a scored report.
// The reply contract is strict: raw JSON only, no markdown fencing,
// matching the AIInsights shape. Models routinely violate the fencing
// part anyway, which extractJSON tolerates.
func buildPrompt(report *model.AuditReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are a marketing consultant for local restaurants.\n")
	fmt.Fprintf(&b, "A website audit of %s (%q) scored %d/100 with a load time of %dms.\n\n",
		report.URL, report.Title, report.Score, report.LoadTimeMs)

	b.WriteString("Issues found:\n")
	if len(report.Issues) == 0 {
		b.WriteString("- none\n")
	}
	for _, issue := range report.Issues {
		fmt.Fprintf(&b, "- [%s/%s] %s\n", issue.Type, issue.Category, issue.Text)
	}

	b.WriteString(`
Respond with raw JSON only. No markdown, no code fences, no commentary.
The JSON must have exactly this shape:
{
  "summary": "two-sentence overall assessment in plain language",
  "topPriority": "the single most impactful fix",
  "quickWins": ["three", "low-effort", "improvements"],
  "competitorTip": "one way to stand out from nearby restaurants",
  "estimatedImpact": "what fixing these issues is likely worth"
}
The quickWins array must contain exactly 3 strings.`)

	return b.String()
}
