package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"basegraph.app/releasenotes/common/id"
	"basegraph.app/releasenotes/common/logger"
	"basegraph.app/releasenotes/common/otel"
	"basegraph.app/releasenotes/core/config"
	"basegraph.app/releasenotes/internal/console"
	"basegraph.app/releasenotes/internal/input"
	"basegraph.app/releasenotes/internal/output"
	"basegraph.app/releasenotes/internal/pipeline"
	"basegraph.app/releasenotes/internal/render"
)

func run(ctx context.Context, args []string, stdout io.Writer, con *console.Console) error {
	params, err := input.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(config.ServiceTypeCLI)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Preflight(params.UseEditor); err != nil {
		return err
	}

	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		return fmt.Errorf("initializing otel: %w", err)
	}
	defer func() {
		if err := telemetry.Shutdown(context.WithoutCancel(ctx)); err != nil {
			slog.WarnContext(ctx, "otel shutdown error", "error", err)
		}
	}()

	logger.Setup(cfg, con.Writer())

	if err := id.Init(1); err != nil {
		return fmt.Errorf("initializing run ids: %w", err)
	}

	p, err := pipeline.FromConfig(cfg, params.UseEditor)
	if err != nil {
		return err
	}

	con.Start(params)
	con.Step(fmt.Sprintf("Reading closed issues from %s", params.Slug()))

	result, err := p.Run(ctx, params)
	if err != nil {
		return err
	}

	if result.NoIssues {
		con.NoIssues(render.EmptyMessage(params.Start, params.End))
	} else {
		con.Generated(result.IssueCount)
	}
	con.Review(result.Review)

	dest, err := output.NewResolver(cfg.Output).Resolve()
	if err != nil {
		return err
	}
	if err := output.Write(dest, result.Markdown, stdout); err != nil {
		return err
	}
	con.Saved(dest)

	return nil
}
