// Package console prints operator-facing progress and review notes to stderr.
package console

import (
	"fmt"
	"io"
	"os"

	"basegraph.app/releasenotes/internal/input"
	"basegraph.app/releasenotes/internal/model"
	"basegraph.app/releasenotes/internal/output"
	"github.com/fatih/color"
)

type Console struct {
	w io.Writer

	title   *color.Color
	step    *color.Color
	success *color.Color
	warn    *color.Color
	fail    *color.Color
	heading *color.Color
}

func New(w io.Writer) *Console {
	return &Console{
		w:       w,
		title:   color.New(color.FgCyan, color.Bold),
		step:    color.New(color.FgBlue),
		success: color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
		fail:    color.New(color.FgRed, color.Bold),
		heading: color.New(color.Bold),
	}
}

// Stderr is the console used by the CLI.
func Stderr() *Console {
	return New(os.Stderr)
}

// Writer is the stream the console prints to. The CLI sends logs there as well.
func (c *Console) Writer() io.Writer {
	return c.w
}

func (c *Console) Start(params input.Params) {
	start, end := params.Window()
	c.title.Fprintf(c.w, "Generating release notes for %s\n", params.Slug())
	fmt.Fprintf(c.w, "Period: %s to %s\n", start, end)
	if params.UseEditor {
		fmt.Fprintln(c.w, "Editor review: enabled")
	} else {
		fmt.Fprintln(c.w, "Editor review: disabled")
	}
	fmt.Fprintln(c.w)
}

func (c *Console) Step(msg string) {
	c.step.Fprintf(c.w, "→ %s\n", msg)
}

func (c *Console) NoIssues(msg string) {
	c.warn.Fprintln(c.w, msg)
}

func (c *Console) Generated(issues int) {
	c.success.Fprintf(c.w, "✓ Release notes generated (%d %s)\n", issues, plural(issues, "issue", "issues"))
}

// Review lists the editor's annotations. Empty lists are omitted.
func (c *Console) Review(review *model.EditorReview) {
	if review == nil {
		return
	}
	fmt.Fprintln(c.w)
	c.title.Fprintln(c.w, "Editorial review")
	c.list("Changes made", review.ChangesMade)
	c.list("Clarity issues fixed", review.ClarityIssuesFixed)
	c.list("Consistency improvements", review.ConsistencyImprovements)
	c.list("Recommendations", review.Recommendations)
	fmt.Fprintln(c.w)
}

func (c *Console) Saved(dest output.Destination) {
	if dest.IsStdout() {
		return
	}
	c.success.Fprintf(c.w, "✓ Saved to %s\n", dest.Path)
}

func (c *Console) Error(err error) {
	c.fail.Fprintf(c.w, "Error: %v\n", err)
}

func (c *Console) list(heading string, items []string) {
	if len(items) == 0 {
		return
	}
	c.heading.Fprintf(c.w, "%s:\n", heading)
	for _, item := range items {
		fmt.Fprintf(c.w, "  • %s\n", item)
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
