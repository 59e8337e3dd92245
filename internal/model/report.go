package model

import (
	"math"
	"sort"
)

// maxTitleLength is the longest title echoed in a report before truncation.
const maxTitleLength = 60

// Issue is a single audit finding attributed to a category.
type Issue struct {
	// Type is the severity of the finding.
	Type Severity `json:"type"`

	// Text is the human-readable explanation.
	Text string `json:"text"`

	// Category is the scoring bucket the finding belongs to.
	Category Category `json:"category"`
}

// CategoryScore holds the points earned in one category.
type CategoryScore struct {
	// Score is the points earned, never above MaxScore.
	Score int `json:"score"`

	// MaxScore is the fixed ceiling for the category.
	MaxScore int `json:"maxScore"`

	// Percentage is round(Score/MaxScore*100).
	Percentage int `json:"percentage"`
}

// NewCategoryScore builds a CategoryScore for the given category,
// clamping the raw score at the category maximum.
func NewCategoryScore(category Category, score int) CategoryScore {
	maxScore := category.MaxScore()
	if score > maxScore {
		score = maxScore
	}
	if score < 0 {
		score = 0
	}
	return CategoryScore{
		Score:      score,
		MaxScore:   maxScore,
		Percentage: int(math.Round(float64(score) / float64(maxScore) * 100)),
	}
}

// Breakdown holds the per-category scores.
//
// Design decision: We use a fixed struct rather than a map keyed by
// category so JSON field order is deterministic and callers cannot
// accidentally add a fifth category.
type Breakdown struct {
	SEO       CategoryScore `json:"seo"`
	Content   CategoryScore `json:"content"`
	Usability CategoryScore `json:"usability"`
	Technical CategoryScore `json:"technical"`
}

// Total returns the sum of the four category scores.
// Because the category maxima sum to 100, this is also the 0-100
// blended score.
func (b Breakdown) Total() int {
	return b.SEO.Score + b.Content.Score + b.Usability.Score + b.Technical.Score
}

// AuditReport is the complete result of auditing one page.
type AuditReport struct {
	// URL is the scheme-normalized URL that was fetched,
	// not the raw user input.
	URL string `json:"url"`

	// Title is the page title, truncated to 60 characters with a
	// trailing ellipsis when longer.
	Title string `json:"title"`

	// Score is the blended 0-100 quality score.
	Score int `json:"score"`

	// Breakdown contains the per-category scores.
	Breakdown Breakdown `json:"breakdown"`

	// Issues is the severity-ordered list of findings.
	Issues []Issue `json:"issues"`

	// LoadTimeMs is how long the page took to retrieve, in milliseconds.
	LoadTimeMs int `json:"loadTimeMs"`

	// AIInsights holds optional narrative insights. Nil (serialized as
	// null) when no AI credential is configured or every model failed.
	AIInsights *AIInsights `json:"aiInsights"`
}

// SortIssues orders issues by ascending severity rank (errors first),
// preserving the original order within equal severity. Evaluators run
// in category order (SEO, Content, Usability, Technical), so ties keep
// that order.
func SortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Type < issues[j].Type
	})
}

// TruncateTitle shortens a page title to the report limit, appending
// an ellipsis marker when truncation happened. The cut is rune-based
// so multibyte characters are never split.
func TruncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= maxTitleLength {
		return title
	}
	return string(runes[:maxTitleLength]) + "..."
}
