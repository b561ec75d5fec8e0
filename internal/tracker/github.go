package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"basegraph.app/releasenotes/common/llm"
	"github.com/google/go-github/v72/github"
)

// SearchClosedIssuesParams for the search_closed_issues tool.
type SearchClosedIssuesParams struct {
	Page int `json:"page,omitempty" jsonschema:"description=Result page starting at 1 (default 1)"`
}

// GetIssueParams for the get_issue tool.
type GetIssueParams struct {
	Number int `json:"number" jsonschema:"description=Issue number"`
}

// issueSummary is what native toolsets return to the model for one issue.
type issueSummary struct {
	Number   int      `json:"number"`
	Title    string   `json:"title"`
	URL      string   `json:"url"`
	Labels   []string `json:"labels,omitempty"`
	ClosedAt string   `json:"closed_at,omitempty"`
	Body     string   `json:"body,omitempty"`
}

type issuePage struct {
	Repository string         `json:"repository"`
	Window     string         `json:"window"`
	Page       int            `json:"page"`
	NextPage   int            `json:"next_page,omitempty"`
	Total      int            `json:"total,omitempty"`
	Issues     []issueSummary `json:"issues"`
}

// GitHubToolset reads issues through the GitHub REST API, scoped to one repository.
type GitHubToolset struct {
	client      *github.Client
	scope       Scope
	definitions []llm.Tool
}

func newGitHubClient(ctx context.Context, token string) *github.Client {
	return github.NewClient(bearerClient(ctx, token))
}

// NewGitHub creates the native GitHub toolset.
func NewGitHub(client *github.Client, scope Scope) *GitHubToolset {
	t := &GitHubToolset{client: client, scope: scope}

	t.definitions = []llm.Tool{
		{
			Name: "search_closed_issues",
			Description: fmt.Sprintf(`List issues in %s closed between %s and %s. Pull requests are excluded.
Results are paginated (%d per page); request the next page while next_page is set.`,
				scope.slug(), scope.Start.Format(time.DateOnly), scope.End.Format(time.DateOnly), perPage),
			Parameters: llm.GenerateSchemaFrom(SearchClosedIssuesParams{}),
		},
		{
			Name:        "get_issue",
			Description: fmt.Sprintf("Fetch one issue from %s with its full description, labels and closing date.", scope.slug()),
			Parameters:  llm.GenerateSchemaFrom(GetIssueParams{}),
		},
	}

	return t
}

func (t *GitHubToolset) Tools(context.Context) ([]llm.Tool, error) {
	return t.definitions, nil
}

func (t *GitHubToolset) Call(ctx context.Context, name, arguments string) (string, error) {
	switch name {
	case "search_closed_issues":
		return t.searchClosedIssues(ctx, arguments)
	case "get_issue":
		return t.getIssue(ctx, arguments)
	default:
		return "", fmt.Errorf("unknown tool: %s", name)
	}
}

func (t *GitHubToolset) Close() error {
	return nil
}

// Query is the search expression for closed issues in the window.
func (t *GitHubToolset) Query() string {
	return fmt.Sprintf("repo:%s is:issue is:closed closed:%s..%s",
		t.scope.slug(), t.scope.Start.Format(time.DateOnly), t.scope.End.Format(time.DateOnly))
}

func (t *GitHubToolset) searchClosedIssues(ctx context.Context, arguments string) (string, error) {
	params, err := llm.ParseToolArguments[SearchClosedIssuesParams](arguments)
	if err != nil {
		return "", fmt.Errorf("parse search_closed_issues params: %w", err)
	}
	page := params.Page
	if page < 1 {
		page = 1
	}

	result, resp, err := t.client.Search.Issues(ctx, t.Query(), &github.SearchOptions{
		Sort:        "created",
		Order:       "asc",
		ListOptions: github.ListOptions{Page: page, PerPage: perPage},
	})
	if err != nil {
		return "", fmt.Errorf("searching github issues: %w", err)
	}

	out := issuePage{
		Repository: t.scope.slug(),
		Window:     t.scope.Start.Format(time.DateOnly) + ".." + t.scope.End.Format(time.DateOnly),
		Page:       page,
		NextPage:   resp.NextPage,
		Total:      result.GetTotal(),
		Issues:     []issueSummary{},
	}
	for _, issue := range result.Issues {
		if issue.IsPullRequest() {
			continue
		}
		out.Issues = append(out.Issues, githubSummary(issue, maxBodyLength))
	}

	return marshalOutput(out)
}

func (t *GitHubToolset) getIssue(ctx context.Context, arguments string) (string, error) {
	params, err := llm.ParseToolArguments[GetIssueParams](arguments)
	if err != nil {
		return "", fmt.Errorf("parse get_issue params: %w", err)
	}
	if params.Number <= 0 {
		return "", fmt.Errorf("number must be positive, got %d", params.Number)
	}

	issue, _, err := t.client.Issues.Get(ctx, t.scope.Owner, t.scope.Repo, params.Number)
	if err != nil {
		return "", fmt.Errorf("fetching github issue #%d: %w", params.Number, err)
	}
	if issue.IsPullRequest() {
		return "", fmt.Errorf("#%d is a pull request, not an issue", params.Number)
	}

	return marshalOutput(githubSummary(issue, maxToolOutput))
}

func githubSummary(issue *github.Issue, bodyLimit int) issueSummary {
	s := issueSummary{
		Number: issue.GetNumber(),
		Title:  issue.GetTitle(),
		URL:    issue.GetHTMLURL(),
		Body:   clip(issue.GetBody(), bodyLimit),
	}
	for _, l := range issue.Labels {
		s.Labels = append(s.Labels, l.GetName())
	}
	if issue.ClosedAt != nil {
		s.ClosedAt = issue.ClosedAt.Format(time.RFC3339)
	}
	return s
}

func marshalOutput(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding tool output: %w", err)
	}
	return truncateOutput(string(data)), nil
}
