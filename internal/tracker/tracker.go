// Package tracker exposes read-only issue-tracker access as tools for the synthesis agent.
package tracker

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"basegraph.app/releasenotes/common/llm"
	"basegraph.app/releasenotes/core/config"
	"golang.org/x/oauth2"
)

const (
	maxToolOutput = 20000 // Max bytes of tool output returned to the model (20KB)
	maxBodyLength = 4000  // Issue bodies are cut to this many bytes in listings
	perPage       = 50
)

// Toolset is a set of tools the agent can call to read issues.
type Toolset interface {
	Tools(ctx context.Context) ([]llm.Tool, error)
	Call(ctx context.Context, name, arguments string) (string, error)
	Close() error
}

// Scope binds native toolsets to one repository and date window.
type Scope struct {
	Owner string
	Repo  string
	Start time.Time
	End   time.Time
}

func (s Scope) slug() string {
	return s.Owner + "/" + s.Repo
}

// contains reports whether t falls inside the window. End is inclusive of its whole day.
func (s Scope) contains(t time.Time) bool {
	return !t.Before(s.Start) && t.Before(s.End.AddDate(0, 0, 1))
}

// New builds the toolset selected by cfg.Kind.
func New(ctx context.Context, cfg config.TrackerConfig, scope Scope) (Toolset, error) {
	switch cfg.Kind {
	case config.TrackerGitHubMCP, "":
		return DialGitHubMCP(ctx, cfg.GitHubMCPURL, cfg.GitHubToken)
	case config.TrackerGitHub:
		return NewGitHub(newGitHubClient(ctx, cfg.GitHubToken), scope), nil
	case config.TrackerGitLab:
		client, err := newGitLabClient(cfg.GitLabBaseURL, cfg.GitLabToken)
		if err != nil {
			return nil, fmt.Errorf("creating gitlab client: %w", err)
		}
		return NewGitLab(client, scope), nil
	default:
		return nil, fmt.Errorf("unsupported issue tracker: %s", cfg.Kind)
	}
}

func bearerClient(ctx context.Context, token string) *http.Client {
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
}

// truncateOutput limits output size, cutting at a line boundary when one is near.
func truncateOutput(output string) string {
	if len(output) <= maxToolOutput {
		return output
	}

	truncated := output[:maxToolOutput]
	if lastNewline := strings.LastIndex(truncated, "\n"); lastNewline > maxToolOutput/2 {
		truncated = truncated[:lastNewline]
	}

	return truncated + "\n\n[Output truncated]"
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
