package brain_test

import (
	"context"
	"errors"

	"basegraph.app/releasenotes/common/llm"
	"basegraph.app/releasenotes/internal/tracker"
)

// mockAgentClient implements llm.AgentClient for testing.
type mockAgentClient struct {
	chatFn    func(ctx context.Context, req llm.AgentRequest) (*llm.AgentResponse, error)
	callCount int
	requests  []llm.AgentRequest
}

func (m *mockAgentClient) ChatWithTools(ctx context.Context, req llm.AgentRequest) (*llm.AgentResponse, error) {
	m.callCount++
	m.requests = append(m.requests, req)
	if m.chatFn != nil {
		return m.chatFn(ctx, req)
	}
	return nil, errors.New("mock not configured")
}

func (m *mockAgentClient) Model() string {
	return "test-model"
}

// mockLLMClient implements llm.Client for testing.
type mockLLMClient struct {
	chatFn    func(ctx context.Context, req llm.Request, result any) (*llm.Response, error)
	callCount int
}

func (m *mockLLMClient) Chat(ctx context.Context, req llm.Request, result any) (*llm.Response, error) {
	m.callCount++
	if m.chatFn != nil {
		return m.chatFn(ctx, req, result)
	}
	return nil, errors.New("mock not configured")
}

func (m *mockLLMClient) Model() string {
	return "test-model"
}

// mockToolset implements tracker.Toolset for testing.
type mockToolset struct {
	tools  []llm.Tool
	callFn func(ctx context.Context, name, arguments string) (string, error)
	calls  []string
	closed bool
}

func (m *mockToolset) Tools(ctx context.Context) ([]llm.Tool, error) {
	return m.tools, nil
}

func (m *mockToolset) Call(ctx context.Context, name, arguments string) (string, error) {
	m.calls = append(m.calls, name)
	if m.callFn != nil {
		return m.callFn(ctx, name, arguments)
	}
	return "", errors.New("mock not configured")
}

func (m *mockToolset) Close() error {
	m.closed = true
	return nil
}

func openerFor(ts *mockToolset, scopes *[]tracker.Scope) func(ctx context.Context, scope tracker.Scope) (tracker.Toolset, error) {
	return func(ctx context.Context, scope tracker.Scope) (tracker.Toolset, error) {
		if scopes != nil {
			*scopes = append(*scopes, scope)
		}
		return ts, nil
	}
}
