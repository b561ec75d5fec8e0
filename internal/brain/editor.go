package brain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"basegraph.app/releasenotes/common/llm"
	"basegraph.app/releasenotes/common/logger"
	"basegraph.app/releasenotes/internal/model"
)

var ErrReview = errors.New("editor review failed")

// ReviewRequest carries the rendered markdown to polish.
type ReviewRequest struct {
	Markdown string
	Owner    string
	Repo     string
}

type EditorConfig struct {
	MaxTokens    int
	Temperature  *float64 // nil = model default
	Instructions string   // Empty = EditorInstructions
}

// Editor rewrites rendered release notes for tone and consistency in a single structured call.
type Editor struct {
	llm    llm.Client
	cfg    EditorConfig
	schema any
}

func NewEditor(client llm.Client, cfg EditorConfig) *Editor {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if cfg.Instructions == "" {
		cfg.Instructions = EditorInstructions
	}
	return &Editor{
		llm:    client,
		cfg:    cfg,
		schema: llm.GenerateSchema[model.EditorReview](),
	}
}

// Review returns the edited document with the editor's notes. Every failure wraps ErrReview;
// there is no fallback to the unedited text.
func (e *Editor) Review(ctx context.Context, req ReviewRequest) (*model.EditorReview, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component: "releasenotes.brain.editor",
	})
	start := time.Now()

	var review model.EditorReview
	resp, err := e.llm.Chat(ctx, llm.Request{
		SystemPrompt: e.cfg.Instructions,
		UserPrompt:   editorPrompt(req),
		SchemaName:   "editor_review",
		Schema:       e.schema,
		MaxTokens:    e.cfg.MaxTokens,
		Temperature:  e.cfg.Temperature,
	}, &review)
	if err != nil {
		return nil, fmt.Errorf("%w (%s): %w", ErrReview, errorKind(ctx, err), err)
	}

	if strings.TrimSpace(review.EditedMarkdown) == "" {
		return nil, fmt.Errorf("%w: %w: empty edited_markdown", ErrReview, ErrMalformedOutput)
	}
	review.Normalize()

	slog.InfoContext(ctx, "editor review completed",
		"model", e.llm.Model(),
		"duration_ms", time.Since(start).Milliseconds(),
		"prompt_tokens", resp.PromptTokens,
		"completion_tokens", resp.CompletionTokens,
		"changes", len(review.ChangesMade))

	return &review, nil
}
