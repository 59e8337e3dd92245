package model

import (
	"encoding/json"
	"strings"
	"testing"
)

// TestNewCategoryScore tests score clamping and percentage rounding.
func TestNewCategoryScore(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		category   Category
		score      int
		wantScore  int
		wantMax    int
		wantPct    int
	}{
		{"full SEO score", CategorySEO, 30, 30, 30, 100},
		{"partial SEO score", CategorySEO, 15, 15, 30, 50},
		{"zero score", CategoryContent, 0, 0, 25, 0},
		{"clamped above max", CategoryTechnical, 22, 20, 20, 100},
		{"clamped below zero", CategoryUsability, -3, 0, 25, 0},
		{"rounds percentage", CategorySEO, 8, 8, 30, 27},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := NewCategoryScore(tc.category, tc.score)
			if got.Score != tc.wantScore {
				t.Errorf("Score = %d, expected %d", got.Score, tc.wantScore)
			}
			if got.MaxScore != tc.wantMax {
				t.Errorf("MaxScore = %d, expected %d", got.MaxScore, tc.wantMax)
			}
			if got.Percentage != tc.wantPct {
				t.Errorf("Percentage = %d, expected %d", got.Percentage, tc.wantPct)
			}
		})
	}
}

// TestBreakdownTotal tests that the total is the sum of category scores.
func TestBreakdownTotal(t *testing.T) {
	t.Parallel()

	b := Breakdown{
		SEO:       NewCategoryScore(CategorySEO, 20),
		Content:   NewCategoryScore(CategoryContent, 15),
		Usability: NewCategoryScore(CategoryUsability, 10),
		Technical: NewCategoryScore(CategoryTechnical, 20),
	}

	if got := b.Total(); got != 65 {
		t.Errorf("Total() = %d, expected 65", got)
	}
}

// TestSortIssues tests severity ordering with stable ties.
func TestSortIssues(t *testing.T) {
	t.Parallel()

	t.Run("errors before warnings before info", func(t *testing.T) {
		t.Parallel()

		issues := []Issue{
			{Type: SeverityInfo, Text: "info one", Category: CategorySEO},
			{Type: SeverityWarning, Text: "warning one", Category: CategoryContent},
			{Type: SeverityError, Text: "error one", Category: CategoryTechnical},
		}

		SortIssues(issues)

		expected := []string{"error one", "warning one", "info one"}
		for i, text := range expected {
			if issues[i].Text != text {
				t.Errorf("issues[%d].Text = %q, expected %q", i, issues[i].Text, text)
			}
		}
	})

	t.Run("preserves category order within equal severity", func(t *testing.T) {
		t.Parallel()

		// Evaluators append in category order; sorting must not
		// reshuffle within a severity rank.
		issues := []Issue{
			{Type: SeverityWarning, Text: "seo warning", Category: CategorySEO},
			{Type: SeverityError, Text: "content error", Category: CategoryContent},
			{Type: SeverityWarning, Text: "usability warning", Category: CategoryUsability},
			{Type: SeverityWarning, Text: "technical warning", Category: CategoryTechnical},
		}

		SortIssues(issues)

		expected := []string{"content error", "seo warning", "usability warning", "technical warning"}
		for i, text := range expected {
			if issues[i].Text != text {
				t.Errorf("issues[%d].Text = %q, expected %q", i, issues[i].Text, text)
			}
		}
	})

	t.Run("sorting twice changes nothing", func(t *testing.T) {
		t.Parallel()

		issues := []Issue{
			{Type: SeverityInfo, Text: "a"},
			{Type: SeverityError, Text: "b"},
			{Type: SeverityWarning, Text: "c"},
			{Type: SeverityError, Text: "d"},
		}

		SortIssues(issues)
		first := make([]Issue, len(issues))
		copy(first, issues)

		SortIssues(issues)
		for i := range issues {
			if issues[i] != first[i] {
				t.Errorf("issues[%d] changed on second sort: %v != %v", i, issues[i], first[i])
			}
		}
	})
}

// TestTruncateTitle tests the title display limit.
func TestTruncateTitle(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		title    string
		expected string
	}{
		{"empty", "", ""},
		{"short title untouched", "Joe's Pizza", "Joe's Pizza"},
		{
			"exactly sixty runes untouched",
			strings.Repeat("a", 60),
			strings.Repeat("a", 60),
		},
		{
			"sixty-one runes truncated",
			strings.Repeat("a", 61),
			strings.Repeat("a", 60) + "...",
		},
		{
			"multibyte runes counted as one",
			strings.Repeat("é", 61),
			strings.Repeat("é", 60) + "...",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := TruncateTitle(tc.title); got != tc.expected {
				t.Errorf("TruncateTitle(%q) = %q, expected %q", tc.title, got, tc.expected)
			}
		})
	}
}

// TestAuditReportJSON tests the wire shape API clients depend on.
func TestAuditReportJSON(t *testing.T) {
	t.Parallel()

	report := AuditReport{
		URL:   "https://example.com",
		Title: "Example",
		Score: 65,
		Breakdown: Breakdown{
			SEO:       NewCategoryScore(CategorySEO, 20),
			Content:   NewCategoryScore(CategoryContent, 15),
			Usability: NewCategoryScore(CategoryUsability, 10),
			Technical: NewCategoryScore(CategoryTechnical, 20),
		},
		Issues: []Issue{
			{Type: SeverityError, Text: "Missing page title", Category: CategorySEO},
		},
		LoadTimeMs: 321,
	}

	data, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, key := range []string{
		`"url"`, `"title"`, `"score"`, `"breakdown"`, `"seo"`,
		`"content"`, `"usability"`, `"technical"`, `"maxScore"`,
		`"percentage"`, `"issues"`, `"loadTimeMs"`, `"aiInsights":null`,
	} {
		if !strings.Contains(string(data), key) {
			t.Errorf("marshalled report missing %s: %s", key, data)
		}
	}

	if strings.Contains(string(data), `"Type"`) {
		t.Errorf("issue fields must be lowercase in JSON: %s", data)
	}
}
