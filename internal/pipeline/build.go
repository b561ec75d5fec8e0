package pipeline

import (
	"context"
	"fmt"

	"basegraph.app/releasenotes/common/llm"
	"basegraph.app/releasenotes/common/logger"
	"basegraph.app/releasenotes/core/config"
	"basegraph.app/releasenotes/internal/brain"
	"basegraph.app/releasenotes/internal/tracker"
)

// FromConfig wires the real synthesis agent, issue tracker and editor. The editor is only
// built when withEditor is set and an editor model is configured.
func FromConfig(cfg config.Config, withEditor bool) (*Pipeline, error) {
	agentClient, err := llm.NewAgentClient(llm.Config{
		Provider:        cfg.SynthLLM.Provider,
		APIKey:          cfg.SynthLLM.APIKey,
		BaseURL:         cfg.SynthLLM.BaseURL,
		Model:           cfg.SynthLLM.Model,
		ReasoningEffort: llm.ReasoningEffort(cfg.SynthLLM.ReasoningEffort),
	})
	if err != nil {
		return nil, fmt.Errorf("creating synthesis client: %w", err)
	}

	open := func(ctx context.Context, scope tracker.Scope) (tracker.Toolset, error) {
		ctx = logger.WithLogFields(ctx, logger.LogFields{Tracker: &cfg.Tracker.Kind})
		return tracker.New(ctx, cfg.Tracker, scope)
	}

	synth := brain.NewSynthesizer(agentClient, open, brain.SynthesizerConfig{
		MaxIterations: cfg.SynthLLM.MaxIterations,
		MaxTokens:     cfg.SynthLLM.MaxTokens,
		Temperature:   cfg.SynthLLM.Temperature,
		SystemPrompt:  cfg.Prompts.SystemInstructions,
		DebugDir:      cfg.DebugDir,
	})

	if !withEditor || !cfg.EditorLLM.Enabled() {
		return New(synth, nil), nil
	}

	editorClient, err := llm.New(llm.Config{
		APIKey:          cfg.EditorLLM.APIKey,
		BaseURL:         cfg.EditorLLM.BaseURL,
		Model:           cfg.EditorLLM.Model,
		ReasoningEffort: llm.ReasoningEffort(cfg.EditorLLM.ReasoningEffort),
	})
	if err != nil {
		return nil, fmt.Errorf("creating editor client: %w", err)
	}

	editor := brain.NewEditor(editorClient, brain.EditorConfig{
		MaxTokens:    cfg.EditorLLM.MaxTokens,
		Temperature:  cfg.EditorLLM.Temperature,
		Instructions: cfg.Prompts.EditorInstructions,
	})

	return New(synth, editor), nil
}
