package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/platescan/platescan/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MarkdownWriter renders reports as GitHub-flavored Markdown for
// sharing with site owners.
type MarkdownWriter struct {
	baseWriter

	// caser title-cases severity labels for display.
	caser cases.Caser
}

// NewMarkdownWriter creates a MarkdownWriter for the given destination.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		caser:      cases.Title(language.English),
	}
}

// Write renders the full report in Markdown.
func (w *MarkdownWriter) Write(report *model.AuditReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeBreakdown(md, report)
	w.writeIssues(md, report)
	w.writeInsights(md, report)

	return len(md.String()), md.Build()
}

// writeHeader writes the title and the overall result table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.AuditReport) {
	md.H1("Website Audit Report")
	md.PlainText("")

	title := report.Title
	if title == "" {
		title = "-"
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"URL", "`" + report.URL + "`"},
			{"Title", title},
			{"Score", fmt.Sprintf("**%d/100**", report.Score)},
			{"Load Time", fmt.Sprintf("%dms", report.LoadTimeMs)},
		},
	})
	md.PlainText("")

	w.writeAlert(md, report)
}

// writeAlert summarizes the result with an appropriate alert level.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.AuditReport) {
	errorCount := 0
	for _, issue := range report.Issues {
		if issue.Type == model.SeverityError {
			errorCount++
		}
	}

	switch {
	case errorCount > 0:
		md.Warningf("%d critical issue(s) are costing this site visitors.", errorCount)
	case len(report.Issues) > 0:
		md.Note(fmt.Sprintf("%d improvement(s) found, none critical.", len(report.Issues)))
	default:
		md.Tip("No issues found. Excellent site!")
	}
	md.PlainText("")
}

// writeBreakdown writes the per-category score table.
func (w *MarkdownWriter) writeBreakdown(md *markdown.Markdown, report *model.AuditReport) {
	md.H2("Score Breakdown")
	md.PlainText("")

	scores := []struct {
		category model.Category
		score    model.CategoryScore
	}{
		{model.CategorySEO, report.Breakdown.SEO},
		{model.CategoryContent, report.Breakdown.Content},
		{model.CategoryUsability, report.Breakdown.Usability},
		{model.CategoryTechnical, report.Breakdown.Technical},
	}

	rows := make([][]string, len(scores))
	for i, s := range scores {
		rows[i] = []string{
			string(s.category),
			fmt.Sprintf("%d/%d", s.score.Score, s.score.MaxScore),
			strconv.Itoa(s.score.Percentage) + "%",
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Category", "Score", "Percentage"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeIssues writes the severity-ordered issue table.
func (w *MarkdownWriter) writeIssues(md *markdown.Markdown, report *model.AuditReport) {
	md.H2("Issues")
	md.PlainText("")

	if len(report.Issues) == 0 {
		md.PlainText("No issues found.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(report.Issues))
	for i, issue := range report.Issues {
		rows[i] = []string{
			w.caser.String(issue.Type.String()),
			string(issue.Category),
			issue.Text,
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Severity", "Category", "Issue"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeInsights writes the AI insight section when present.
func (w *MarkdownWriter) writeInsights(md *markdown.Markdown, report *model.AuditReport) {
	if report.AIInsights == nil {
		return
	}
	insights := report.AIInsights

	md.H2("AI Insights")
	md.PlainText("")
	md.PlainText(insights.Summary)
	md.PlainText("")

	md.H3("Top Priority")
	md.PlainText(insights.TopPriority)
	md.PlainText("")

	md.H3("Quick Wins")
	md.BulletList(insights.QuickWins...)
	md.PlainText("")

	md.H3("Standing Out")
	md.PlainText(insights.CompetitorTip)
	md.PlainText("")

	md.H3("Estimated Impact")
	md.PlainText(insights.EstimatedImpact)
	md.PlainText("")
}
