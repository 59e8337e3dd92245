package model

import "errors"

// QuickWinCount is the exact number of quick wins an insight reply
// must contain. Replies with any other count are rejected and the
// model fallback chain advances.
const QuickWinCount = 3

// AIInsights holds the narrative insights produced by a generative
// model. All fields are free text written for the site owner.
type AIInsights struct {
	// Summary is a short overall assessment of the site.
	Summary string `json:"summary"`

	// TopPriority names the single most impactful fix.
	TopPriority string `json:"topPriority"`

	// QuickWins lists exactly three low-effort improvements.
	QuickWins []string `json:"quickWins"`

	// CompetitorTip suggests how to stand out locally.
	CompetitorTip string `json:"competitorTip"`

	// EstimatedImpact describes the expected effect of the fixes.
	EstimatedImpact string `json:"estimatedImpact"`
}

// Insight validation errors.
var (
	// ErrEmptySummary is returned when the model reply lacks a summary.
	ErrEmptySummary = errors.New("insights missing summary")

	// ErrQuickWinCount is returned when the reply does not contain
	// exactly three quick wins.
	ErrQuickWinCount = errors.New("insights must contain exactly 3 quick wins")
)

// Validate checks that a parsed model reply satisfies the insight
// shape contract. A reply failing validation is treated the same as a
// JSON parse failure: logged and skipped in favor of the next model.
func (a *AIInsights) Validate() error {
	if a.Summary == "" {
		return ErrEmptySummary
	}
	if len(a.QuickWins) != QuickWinCount {
		return ErrQuickWinCount
	}
	return nil
}
