// Package pipeline runs one release-notes generation: synthesize, render, then review.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"basegraph.app/releasenotes/common/id"
	"basegraph.app/releasenotes/common/logger"
	"basegraph.app/releasenotes/internal/brain"
	"basegraph.app/releasenotes/internal/input"
	"basegraph.app/releasenotes/internal/model"
	"basegraph.app/releasenotes/internal/render"
	"go.opentelemetry.io/otel/attribute"
)

type Synthesizer interface {
	Synthesize(ctx context.Context, req brain.SynthesisRequest) (*model.ReleaseNotes, error)
}

type Reviewer interface {
	Review(ctx context.Context, req brain.ReviewRequest) (*model.EditorReview, error)
}

// Result is the outcome of a run. Markdown is the edited document when a review ran.
type Result struct {
	RunID      int64
	Markdown   string
	IssueCount int
	NoIssues   bool
	Review     *model.EditorReview
}

type Pipeline struct {
	synth    Synthesizer
	reviewer Reviewer
}

// New wires the stages. reviewer may be nil when the editor is never used.
func New(synth Synthesizer, reviewer Reviewer) *Pipeline {
	return &Pipeline{synth: synth, reviewer: reviewer}
}

// Run executes the stages in order. Any stage error aborts the run and is returned unchanged.
func (p *Pipeline) Run(ctx context.Context, params input.Params) (*Result, error) {
	runID := id.New()
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		RunID:     &runID,
		Owner:     &params.Owner,
		Repo:      &params.Repo,
		Component: "releasenotes.pipeline",
	})

	start, end := params.Window()
	slog.InfoContext(ctx, "release notes run starting",
		"start", start,
		"end", end,
		"editor", params.UseEditor)
	began := time.Now()

	notes, err := p.synthesize(ctx, params)
	if err != nil {
		return nil, err
	}

	markdown, count := p.render(ctx, params, notes)
	result := &Result{
		RunID:      runID,
		Markdown:   markdown,
		IssueCount: count,
		NoIssues:   notes.IsEmpty(),
	}

	if result.NoIssues {
		slog.InfoContext(ctx, "no closed issues in window, skipping editor")
	} else if params.UseEditor {
		if p.reviewer == nil {
			return nil, fmt.Errorf("%w: editor requested but not configured", brain.ErrReview)
		}
		review, err := p.review(ctx, params, markdown)
		if err != nil {
			return nil, err
		}
		result.Review = review
		result.Markdown = review.EditedMarkdown
	}

	slog.InfoContext(ctx, "release notes run completed",
		"duration_ms", time.Since(began).Milliseconds(),
		"issues", result.IssueCount,
		"edited", result.Review != nil)

	return result, nil
}

func (p *Pipeline) synthesize(ctx context.Context, params input.Params) (*model.ReleaseNotes, error) {
	sc := logger.StartSpan(ctx, "pipeline.synthesize")
	defer sc.End()
	ctx = logger.WithLogFields(sc.Context(), logger.LogFields{Stage: logger.Ptr("synthesize")})

	notes, err := p.synth.Synthesize(ctx, brain.SynthesisRequest{
		Owner: params.Owner,
		Repo:  params.Repo,
		Start: params.Start,
		End:   params.End,
	})
	if err != nil {
		sc.RecordError(err)
		slog.ErrorContext(ctx, "synthesis failed", "error", err)
		return nil, err
	}

	sc.SetAttributes(attribute.Int("issues", notes.IssueCount()))
	return notes, nil
}

func (p *Pipeline) render(ctx context.Context, params input.Params, notes *model.ReleaseNotes) (string, int) {
	sc := logger.StartSpan(ctx, "pipeline.render")
	defer sc.End()

	markdown, count := render.Render(render.Document{
		Owner: params.Owner,
		Repo:  params.Repo,
		Start: params.Start,
		End:   params.End,
		Notes: notes,
	})
	sc.SetAttributes(attribute.Int("issues", count), attribute.Int("bytes", len(markdown)))
	return markdown, count
}

func (p *Pipeline) review(ctx context.Context, params input.Params, markdown string) (*model.EditorReview, error) {
	sc := logger.StartSpan(ctx, "pipeline.review")
	defer sc.End()
	ctx = logger.WithLogFields(sc.Context(), logger.LogFields{Stage: logger.Ptr("review")})

	review, err := p.reviewer.Review(ctx, brain.ReviewRequest{
		Markdown: markdown,
		Owner:    params.Owner,
		Repo:     params.Repo,
	})
	if err != nil {
		sc.RecordError(err)
		slog.ErrorContext(ctx, "editor review failed", "error", err)
		return nil, err
	}

	sc.SetAttributes(attribute.Int("changes", len(review.ChangesMade)))
	return review, nil
}
