// Package render turns a synthesized ReleaseNotes document into markdown.
package render

import (
	"fmt"
	"strings"
	"time"

	"basegraph.app/releasenotes/internal/model"
)

const dateLayout = "2006-01-02"

// Document is everything the renderer needs for one run.
type Document struct {
	Owner string
	Repo  string
	Start time.Time
	End   time.Time
	Notes *model.ReleaseNotes
}

// EmptyMessage is rendered instead of a document when no issues were found.
func EmptyMessage(start, end time.Time) string {
	return fmt.Sprintf("No closed issues found between %s and %s", start.Format(dateLayout), end.Format(dateLayout))
}

// Render formats the document as markdown and returns it with the number of issues rendered.
// It has no side effects; equal inputs give byte-identical output.
func Render(doc Document) (string, int) {
	notes := doc.Notes
	if notes == nil || notes.IsEmpty() {
		return EmptyMessage(doc.Start, doc.End), 0
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Release Notes: %s/%s\n\n", doc.Owner, doc.Repo)
	fmt.Fprintf(&b, "**Period:** %s to %s\n\n", doc.Start.Format(dateLayout), doc.End.Format(dateLayout))

	if len(notes.ThemeGroups) > 0 {
		writeThemes(&b, notes.ThemeGroups)
	} else {
		writeSection(&b, "Features", notes.Features)
		writeSection(&b, "Bug Fixes", notes.BugFixes)
	}

	return b.String(), notes.IssueCount()
}

func writeThemes(b *strings.Builder, themes []model.ThemeGroup) {
	anchors := newAnchorSet()

	b.WriteString("## Themes\n\n")
	for _, theme := range themes {
		fmt.Fprintf(b, "- [%s](#%s): %s (%s)\n", theme.Name, anchors.next(theme.Name), theme.Summary, itemCount(len(theme.Issues)))
	}
	b.WriteString("\n")

	for _, theme := range themes {
		fmt.Fprintf(b, "## %s\n\n", theme.Name)
		fmt.Fprintf(b, "%s\n\n", theme.Summary)
		for _, issue := range theme.Issues {
			writeIssue(b, issue)
		}
		b.WriteString("\n")
	}
}

func writeSection(b *strings.Builder, heading string, issues []model.IssueInfo) {
	if len(issues) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", heading)
	for _, issue := range issues {
		writeIssue(b, issue)
	}
	b.WriteString("\n")
}

func writeIssue(b *strings.Builder, issue model.IssueInfo) {
	fmt.Fprintf(b, "- %s ([#%d](%s))\n", issue.UserBenefit, issue.Number, issue.URL)
	if issue.DetailSummary != nil && *issue.DetailSummary != "" {
		fmt.Fprintf(b, "  - %s\n", *issue.DetailSummary)
	}
	for i, url := range issue.ScreenshotURLs {
		fmt.Fprintf(b, "  - ![Screenshot %d](%s)\n", i+1, url)
	}
}

func itemCount(n int) string {
	if n == 1 {
		return "1 item"
	}
	return fmt.Sprintf("%d items", n)
}
