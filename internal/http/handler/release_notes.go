package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"basegraph.app/releasenotes/internal/brain"
	"basegraph.app/releasenotes/internal/http/dto"
	"basegraph.app/releasenotes/internal/input"
	"basegraph.app/releasenotes/internal/pipeline"
	"github.com/gin-gonic/gin"
)

// Runner runs one generation. Implemented by *pipeline.Pipeline.
type Runner interface {
	Run(ctx context.Context, params input.Params) (*pipeline.Result, error)
}

type ReleaseNotesHandler struct {
	runner Runner
}

func NewReleaseNotesHandler(runner Runner) *ReleaseNotesHandler {
	return &ReleaseNotesHandler{runner: runner}
}

func (h *ReleaseNotesHandler) Generate(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.GenerateReleaseNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	params, err := input.Validate(req.Owner, req.Repo, req.StartDate, req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Editor != nil {
		params.UseEditor = *req.Editor
	}

	result, err := h.runner.Run(ctx, params)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, brain.ErrSynthesis) || errors.Is(err, brain.ErrReview) {
			status = http.StatusBadGateway
		}
		slog.ErrorContext(ctx, "release notes generation failed", "error", err, "status", status)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.ToReleaseNotesResponse(result))
}
