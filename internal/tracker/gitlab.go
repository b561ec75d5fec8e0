package tracker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"basegraph.app/releasenotes/common/llm"
	gitlab "gitlab.com/gitlab-org/api/client-go"
)

const maxGitLabPages = 20

// GetGitLabIssueParams for the GitLab get_issue tool.
type GetGitLabIssueParams struct {
	IID int64 `json:"iid" jsonschema:"description=Project-scoped issue number (the #N shown in GitLab)"`
}

// GitLabToolset reads issues through the GitLab REST API, scoped to one project.
type GitLabToolset struct {
	client      *gitlab.Client
	scope       Scope
	definitions []llm.Tool
}

func newGitLabClient(baseURL, token string) (*gitlab.Client, error) {
	if baseURL == "" {
		return gitlab.NewClient(token)
	}
	apiURL := strings.TrimSuffix(baseURL, "/") + "/api/v4"
	return gitlab.NewClient(token, gitlab.WithBaseURL(apiURL))
}

// NewGitLab creates the GitLab toolset. The project is addressed by its "owner/repo" path.
func NewGitLab(client *gitlab.Client, scope Scope) *GitLabToolset {
	t := &GitLabToolset{client: client, scope: scope}

	t.definitions = []llm.Tool{
		{
			Name: "list_closed_issues",
			Description: fmt.Sprintf("List every issue in %s closed between %s and %s, with labels and a shortened description.",
				scope.slug(), scope.Start.Format(time.DateOnly), scope.End.Format(time.DateOnly)),
			Parameters: llm.GenerateSchemaFrom(struct{}{}),
		},
		{
			Name:        "get_issue",
			Description: fmt.Sprintf("Fetch one issue from %s with its full description.", scope.slug()),
			Parameters:  llm.GenerateSchemaFrom(GetGitLabIssueParams{}),
		},
	}

	return t
}

func (t *GitLabToolset) Tools(context.Context) ([]llm.Tool, error) {
	return t.definitions, nil
}

func (t *GitLabToolset) Call(ctx context.Context, name, arguments string) (string, error) {
	switch name {
	case "list_closed_issues":
		return t.listClosedIssues(ctx)
	case "get_issue":
		return t.getIssue(ctx, arguments)
	default:
		return "", fmt.Errorf("unknown tool: %s", name)
	}
}

func (t *GitLabToolset) Close() error {
	return nil
}

// listClosedIssues walks closed issues updated since the window start; closing an issue
// updates it, so this is a superset that is then filtered on closed_at.
func (t *GitLabToolset) listClosedIssues(ctx context.Context) (string, error) {
	opts := &gitlab.ListProjectIssuesOptions{
		State:        gitlab.Ptr("closed"),
		UpdatedAfter: gitlab.Ptr(t.scope.Start),
		OrderBy:      gitlab.Ptr("created_at"),
		Sort:         gitlab.Ptr("asc"),
		ListOptions: gitlab.ListOptions{
			Page:    1,
			PerPage: perPage,
		},
	}

	out := issuePage{
		Repository: t.scope.slug(),
		Window:     t.scope.Start.Format(time.DateOnly) + ".." + t.scope.End.Format(time.DateOnly),
		Page:       1,
		Issues:     []issueSummary{},
	}

	for pages := 0; pages < maxGitLabPages; pages++ {
		issues, resp, err := t.client.Issues.ListProjectIssues(t.scope.slug(), opts, gitlab.WithContext(ctx))
		if err != nil {
			return "", fmt.Errorf("listing gitlab issues: %w", err)
		}

		for _, issue := range issues {
			if issue == nil || issue.ClosedAt == nil || !t.scope.contains(*issue.ClosedAt) {
				continue
			}
			out.Issues = append(out.Issues, gitlabSummary(issue, maxBodyLength))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	out.Total = len(out.Issues)
	return marshalOutput(out)
}

func (t *GitLabToolset) getIssue(ctx context.Context, arguments string) (string, error) {
	params, err := llm.ParseToolArguments[GetGitLabIssueParams](arguments)
	if err != nil {
		return "", fmt.Errorf("parse get_issue params: %w", err)
	}
	if params.IID <= 0 {
		return "", fmt.Errorf("iid must be positive, got %d", params.IID)
	}

	issue, _, err := t.client.Issues.GetIssue(t.scope.slug(), params.IID, gitlab.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("fetching gitlab issue #%d: %w", params.IID, err)
	}

	return marshalOutput(gitlabSummary(issue, maxToolOutput))
}

func gitlabSummary(issue *gitlab.Issue, bodyLimit int) issueSummary {
	s := issueSummary{
		Number: int(issue.IID),
		Title:  issue.Title,
		URL:    issue.WebURL,
		Labels: []string(issue.Labels),
		Body:   clip(issue.Description, bodyLimit),
	}
	if issue.ClosedAt != nil {
		s.ClosedAt = issue.ClosedAt.Format(time.RFC3339)
	}
	return s
}
