package rules

import (
	"strings"

	"github.com/platescan/platescan/internal/model"
)

// evaluator scores one category from the signal record.
// Returned scores above the category maximum are clamped by Score;
// evaluators report raw points.
type evaluator struct {
	category model.Category
	evaluate func(in Input) (int, []model.Issue)
}

// evaluators run in fixed category order. The order is load-bearing:
// the stable severity sort preserves it within equal severity, so
// reordering this slice would change issue ordering for every report.
var evaluators = []evaluator{
	{category: model.CategorySEO, evaluate: evaluateSEO},
	{category: model.CategoryContent, evaluate: evaluateContent},
	{category: model.CategoryUsability, evaluate: evaluateUsability},
	{category: model.CategoryTechnical, evaluate: evaluateTechnical},
}

// Input is everything the evaluators may inspect.
type Input struct {
	// Signals is the flat signal record from the extractor.
	Signals model.Signals

	// URL is the scheme-normalized URL the page was fetched from.
	URL string

	// LoadTimeMs is the measured retrieval time in milliseconds.
	LoadTimeMs int
}

// Score runs the four category evaluators and blends their results.
// The returned total is the raw point sum: the category maxima add up
// to 100, so no rescaling is needed. Issues come back stable-sorted
// by severity with category evaluation order preserved within ties.
func Score(signals model.Signals, pageURL string, loadTimeMs int) (int, model.Breakdown, []model.Issue) {
	// The HTTPS signal comes from the URL, not the markup; derive it
	// here so the engine is self-contained and idempotent.
	signals.HTTPS = strings.HasPrefix(pageURL, "https://")

	in := Input{Signals: signals, URL: pageURL, LoadTimeMs: loadTimeMs}

	var breakdown model.Breakdown
	issues := make([]model.Issue, 0)

	for _, ev := range evaluators {
		points, found := ev.evaluate(in)
		score := model.NewCategoryScore(ev.category, points)

		switch ev.category {
		case model.CategorySEO:
			breakdown.SEO = score
		case model.CategoryContent:
			breakdown.Content = score
		case model.CategoryUsability:
			breakdown.Usability = score
		case model.CategoryTechnical:
			breakdown.Technical = score
		}

		issues = append(issues, found...)
	}

	model.SortIssues(issues)

	return breakdown.Total(), breakdown, issues
}
