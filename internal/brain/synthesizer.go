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
	"basegraph.app/releasenotes/internal/tracker"
)

const (
	submitToolName       = "submit_release_notes"
	defaultMaxIterations = 40
	defaultMaxTokens     = 16384
)

var (
	ErrSynthesis = errors.New("release notes synthesis failed")

	// ErrMalformedOutput means the model's submission did not decode or validate.
	ErrMalformedOutput = errors.New("malformed generation output")
)

// SynthesisRequest identifies the repository and closed-date window to summarize.
type SynthesisRequest struct {
	Owner string
	Repo  string
	Start time.Time
	End   time.Time
}

// ToolsetOpener opens issue-tracker tools for one run.
type ToolsetOpener func(ctx context.Context, scope tracker.Scope) (tracker.Toolset, error)

type SynthesizerConfig struct {
	MaxIterations int
	MaxTokens     int
	Temperature   *float64 // nil = model default
	SystemPrompt  string   // Empty = SystemInstructions
	DebugDir      string   // Empty = no transcripts
}

// Synthesizer runs the tool-calling agent that reads closed issues and submits a
// ReleaseNotes document.
type Synthesizer struct {
	llm    llm.AgentClient
	open   ToolsetOpener
	cfg    SynthesizerConfig
	schema any
}

func NewSynthesizer(client llm.AgentClient, open ToolsetOpener, cfg SynthesizerConfig) *Synthesizer {
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = defaultMaxIterations
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = SystemInstructions
	}

	return &Synthesizer{
		llm:    client,
		open:   open,
		cfg:    cfg,
		schema: llm.GenerateSchema[model.ReleaseNotes](),
	}
}

// Synthesize returns the structured release notes for the window. An empty document is a
// successful result; every failure wraps ErrSynthesis.
func (s *Synthesizer) Synthesize(ctx context.Context, req SynthesisRequest) (*model.ReleaseNotes, error) {
	notes, err := s.run(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSynthesis, err)
	}
	return notes, nil
}

func (s *Synthesizer) run(ctx context.Context, req SynthesisRequest) (*model.ReleaseNotes, error) {
	start := time.Now()
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component: "releasenotes.brain.synthesizer",
	})

	toolset, err := s.open(ctx, tracker.Scope{Owner: req.Owner, Repo: req.Repo, Start: req.Start, End: req.End})
	if err != nil {
		return nil, fmt.Errorf("opening issue tools: %w", err)
	}
	defer func() {
		if err := toolset.Close(); err != nil {
			slog.WarnContext(ctx, "failed to close issue tools", "error", err)
		}
	}()

	issueTools, err := toolset.Tools(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing issue tools: %w", err)
	}
	tools := make([]llm.Tool, 0, len(issueTools)+1)
	tools = append(tools, issueTools...)
	tools = append(tools, s.submitTool())

	session := sessionID(ctx)
	var debugLog strings.Builder
	debugLog.WriteString(fmt.Sprintf("=== SYNTHESIS SESSION %s ===\n", session))
	debugLog.WriteString(fmt.Sprintf("Repository: %s/%s\n", req.Owner, req.Repo))
	debugLog.WriteString(fmt.Sprintf("Window: %s to %s\n", req.Start.Format(time.DateOnly), req.End.Format(time.DateOnly)))
	debugLog.WriteString(fmt.Sprintf("Tools: %d (model=%s)\n\n", len(tools), s.llm.Model()))
	defer func() {
		writeDebugLog(s.cfg.DebugDir, "synthesis", session, debugLog.String())
	}()

	slog.InfoContext(ctx, "synthesis starting",
		"model", s.llm.Model(),
		"tools", len(tools),
		"max_iterations", s.cfg.MaxIterations)

	messages := []llm.Message{
		{Role: "system", Content: s.cfg.SystemPrompt},
		{Role: "user", Content: taskPrompt(req)},
	}

	iterations := 0
	toolCalls := 0
	totalPromptTokens := 0
	totalCompletionTokens := 0
	reminded := false

	defer func() {
		slog.InfoContext(ctx, "synthesis completed",
			"duration_ms", time.Since(start).Milliseconds(),
			"iterations", iterations,
			"tool_calls", toolCalls,
			"total_prompt_tokens", totalPromptTokens,
			"total_completion_tokens", totalCompletionTokens)
	}()

	for {
		iterations++

		if iterations > s.cfg.MaxIterations {
			debugLog.WriteString(fmt.Sprintf("\n=== ITERATION LIMIT REACHED (%d) ===\n", s.cfg.MaxIterations))
			return nil, fmt.Errorf("synthesis exceeded max iterations (%d)", s.cfg.MaxIterations)
		}

		resp, err := s.llm.ChatWithTools(ctx, llm.AgentRequest{
			Messages:    messages,
			Tools:       tools,
			MaxTokens:   s.cfg.MaxTokens,
			Temperature: s.cfg.Temperature,
		})
		if err != nil {
			return nil, fmt.Errorf("synthesis chat iteration %d (%s): %w", iterations, errorKind(ctx, err), err)
		}

		totalPromptTokens += resp.PromptTokens
		totalCompletionTokens += resp.CompletionTokens

		debugLog.WriteString(fmt.Sprintf("--- ITERATION %d ---\n", iterations))
		debugLog.WriteString(fmt.Sprintf("[ASSISTANT] (prompt=%d, completion=%d, finish=%s)\n%s\n\n",
			resp.PromptTokens, resp.CompletionTokens, resp.FinishReason, logger.Truncate(resp.Content, 2000)))

		// submit_release_notes terminates the loop
		for _, tc := range resp.ToolCalls {
			if tc.Name != submitToolName {
				continue
			}

			notes, err := decodeSubmission(tc.Arguments)
			if err != nil {
				debugLog.WriteString(fmt.Sprintf("=== INVALID SUBMISSION ===\n%s\n", logger.Truncate(tc.Arguments, 2000)))
				return nil, err
			}

			debugLog.WriteString("=== SYNTHESIS COMPLETED (submit_release_notes) ===\n")
			debugLog.WriteString(fmt.Sprintf("Themes: %d, Features: %d, Bug fixes: %d\n",
				len(notes.ThemeGroups), len(notes.Features), len(notes.BugFixes)))

			slog.InfoContext(ctx, "synthesis submitted release notes",
				"themes", len(notes.ThemeGroups),
				"features", len(notes.Features),
				"bug_fixes", len(notes.BugFixes),
				"issues", notes.IssueCount())

			return notes, nil
		}

		if len(resp.ToolCalls) == 0 {
			if resp.FinishReason == "length" {
				return nil, fmt.Errorf("%w: response truncated at %d tokens", ErrMalformedOutput, s.cfg.MaxTokens)
			}
			if reminded {
				debugLog.WriteString("=== SYNTHESIS ENDED WITHOUT SUBMISSION ===\n")
				return nil, fmt.Errorf("%w: model answered without calling %s", ErrMalformedOutput, submitToolName)
			}

			reminded = true
			slog.WarnContext(ctx, "synthesis answered in text, sending reminder", "iteration", iterations)
			debugLog.WriteString("=== REMINDER SENT ===\n")

			messages = append(messages,
				llm.Message{Role: "assistant", Content: resp.Content},
				llm.Message{Role: "user", Content: reminderPrompt},
			)
			continue
		}

		messages = append(messages, llm.Message{
			Role:      "assistant",
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})

		for _, tc := range resp.ToolCalls {
			toolCalls++
			debugLog.WriteString(fmt.Sprintf("[TOOL CALL] %s\n", tc.Name))
			debugLog.WriteString(fmt.Sprintf("Arguments: %s\n\n", logger.Truncate(tc.Arguments, 500)))

			result := s.executeTool(ctx, toolset, tc)

			debugLog.WriteString(fmt.Sprintf("[TOOL RESULT] (length: %d)\n%s\n\n", len(result), logger.Truncate(result, 1000)))

			messages = append(messages, llm.Message{
				Role:       "tool",
				Content:    result,
				ToolCallID: tc.ID,
			})
		}
	}
}

// executeTool runs one issue-tracker call. Failures are reported back to the model as text
// so it can retry or move on.
func (s *Synthesizer) executeTool(ctx context.Context, toolset tracker.Toolset, tc llm.ToolCall) string {
	slog.DebugContext(ctx, "synthesis executing tool",
		"tool", tc.Name,
		"call_id", tc.ID,
		"arguments", logger.Truncate(tc.Arguments, 200))

	result, err := toolset.Call(ctx, tc.Name, tc.Arguments)
	if err != nil {
		slog.WarnContext(ctx, "issue tool failed", "tool", tc.Name, "error", err)
		return fmt.Sprintf("Error: %s", err)
	}
	return result
}

func (s *Synthesizer) submitTool() llm.Tool {
	return llm.Tool{
		Name: submitToolName,
		Description: `Submit the finished release notes. Call this exactly once, after reading every relevant issue.
theme_groups holds themed groups; features and bug_fixes hold the same issues classified for the fallback layout.`,
		Parameters: s.schema,
	}
}

func decodeSubmission(arguments string) (*model.ReleaseNotes, error) {
	notes, err := llm.ParseToolArguments[model.ReleaseNotes](arguments)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedOutput, err)
	}
	if err := notes.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedOutput, err)
	}
	return &notes, nil
}

// errorKind labels a provider error for the operator. Nothing here retries.
func errorKind(ctx context.Context, err error) string {
	if llm.IsRetryable(ctx, err) {
		return "transient"
	}
	return "permanent"
}
