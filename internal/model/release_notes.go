package model

import "fmt"

type IssueType string

const (
	IssueTypeFeature IssueType = "feature"
	IssueTypeBug     IssueType = "bug"
)

func (t IssueType) Valid() bool {
	return t == IssueTypeFeature || t == IssueTypeBug
}

// IssueInfo is one closed issue as the synthesis stage understood it.
type IssueInfo struct {
	Title          string    `json:"title" jsonschema:"description=Issue title as written on the tracker"`
	Number         int       `json:"number" jsonschema:"description=Issue number,minimum=1"`
	URL            string    `json:"url" jsonschema:"description=Issue permalink"`
	IssueType      IssueType `json:"issue_type" jsonschema:"enum=feature,enum=bug"`
	UserBenefit    string    `json:"user_benefit" jsonschema:"description=A single sentence describing the benefit to users, starting with a verb"`
	DetailSummary  *string   `json:"detail_summary,omitempty" jsonschema:"description=One short paragraph expanding on the change using the issue description"`
	ScreenshotURLs []string  `json:"screenshot_urls" jsonschema:"description=Any screenshot URLs referenced in the issue description"`
}

// ThemeGroup groups issues that share a user-facing outcome.
type ThemeGroup struct {
	Name    string      `json:"name" jsonschema:"description=Concise theme name (2-4 words)"`
	Summary string      `json:"summary" jsonschema:"description=One sentence summarizing the user impact of this theme"`
	Issues  []IssueInfo `json:"issues"`
}

// ReleaseNotes is the structured document produced by the synthesis stage.
// Features and BugFixes are the fallback used when no themes emerged.
type ReleaseNotes struct {
	ThemeGroups []ThemeGroup `json:"theme_groups"`
	Features    []IssueInfo  `json:"features"`
	BugFixes    []IssueInfo  `json:"bug_fixes"`
}

func (n *ReleaseNotes) IsEmpty() bool {
	return len(n.ThemeGroups) == 0 && len(n.Features) == 0 && len(n.BugFixes) == 0
}

// IssueCount counts issues the way the renderer walks them: themes when present,
// otherwise features plus bug fixes.
func (n *ReleaseNotes) IssueCount() int {
	if len(n.ThemeGroups) > 0 {
		total := 0
		for _, theme := range n.ThemeGroups {
			total += len(theme.Issues)
		}
		return total
	}
	return len(n.Features) + len(n.BugFixes)
}

// Validate checks the constraints the output schema cannot express on its own.
// Theme names may be empty; the renderer gives them a fallback anchor.
func (n *ReleaseNotes) Validate() error {
	for _, theme := range n.ThemeGroups {
		for _, issue := range theme.Issues {
			if err := issue.Validate(); err != nil {
				return fmt.Errorf("theme %q: %w", theme.Name, err)
			}
		}
	}
	for _, issue := range n.Features {
		if err := issue.Validate(); err != nil {
			return fmt.Errorf("features: %w", err)
		}
	}
	for _, issue := range n.BugFixes {
		if err := issue.Validate(); err != nil {
			return fmt.Errorf("bug fixes: %w", err)
		}
	}
	return nil
}

func (i IssueInfo) Validate() error {
	if i.Number <= 0 {
		return fmt.Errorf("issue %q has non-positive number %d", i.Title, i.Number)
	}
	if !i.IssueType.Valid() {
		return fmt.Errorf("issue #%d has unknown issue_type %q", i.Number, i.IssueType)
	}
	if i.UserBenefit == "" {
		return fmt.Errorf("issue #%d has empty user_benefit", i.Number)
	}
	return nil
}

// EditorReview is the editorial stage's rewrite plus its change annotations.
type EditorReview struct {
	EditedMarkdown          string   `json:"edited_markdown" jsonschema:"description=The improved version of the release notes markdown"`
	ChangesMade             []string `json:"changes_made" jsonschema:"description=List of specific changes made to improve the release notes"`
	ClarityIssuesFixed      []string `json:"clarity_issues_fixed" jsonschema:"description=Clarity issues that were identified and fixed"`
	ConsistencyImprovements []string `json:"consistency_improvements" jsonschema:"description=Improvements made to ensure consistent tone and voice"`
	Recommendations         []string `json:"recommendations" jsonschema:"description=Optional recommendations for future improvements"`
}

// Normalize replaces nil lists with empty ones so JSON consumers always see arrays.
func (r *EditorReview) Normalize() {
	if r.ChangesMade == nil {
		r.ChangesMade = []string{}
	}
	if r.ClarityIssuesFixed == nil {
		r.ClarityIssuesFixed = []string{}
	}
	if r.ConsistencyImprovements == nil {
		r.ConsistencyImprovements = []string{}
	}
	if r.Recommendations == nil {
		r.Recommendations = []string{}
	}
}
