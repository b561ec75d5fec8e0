package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"basegraph.app/releasenotes/common/llm"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// GitHub MCP server headers limiting the session to read-only issue access.
const (
	headerToolsets = "X-MCP-Toolsets"
	headerReadonly = "X-MCP-Readonly"
	mcpToolsets    = "issues,pull_requests"
)

// MCPToolset proxies tool listing and calls to a remote MCP server.
type MCPToolset struct {
	session *mcp.ClientSession
}

// DialGitHubMCP connects to the hosted GitHub MCP server over streamable HTTP.
func DialGitHubMCP(ctx context.Context, endpoint, token string) (*MCPToolset, error) {
	base := bearerClient(ctx, token)
	httpClient := &http.Client{
		Transport: &headerTransport{
			base: base.Transport,
			headers: map[string]string{
				headerToolsets: mcpToolsets,
				headerReadonly: "true",
			},
		},
	}

	transport := &mcp.StreamableClientTransport{
		Endpoint:   endpoint,
		HTTPClient: httpClient,
	}

	return ConnectMCP(ctx, transport)
}

// ConnectMCP starts an MCP client session over any transport.
func ConnectMCP(ctx context.Context, transport mcp.Transport) (*MCPToolset, error) {
	client := mcp.NewClient(&mcp.Implementation{Name: "releasenotes", Version: "v1"}, nil)

	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		return nil, fmt.Errorf("connecting to mcp server: %w", err)
	}

	return &MCPToolset{session: session}, nil
}

func (t *MCPToolset) Tools(ctx context.Context) ([]llm.Tool, error) {
	var tools []llm.Tool
	params := &mcp.ListToolsParams{}

	for {
		res, err := t.session.ListTools(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("listing mcp tools: %w", err)
		}

		for _, tool := range res.Tools {
			tools = append(tools, llm.Tool{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  tool.InputSchema,
			})
		}

		if res.NextCursor == "" {
			break
		}
		params.Cursor = res.NextCursor
	}

	slog.DebugContext(ctx, "mcp tools listed", "count", len(tools))
	return tools, nil
}

// Call invokes a remote tool. A result flagged as an error by the server is returned as a
// Go error carrying the server's message.
func (t *MCPToolset) Call(ctx context.Context, name, arguments string) (string, error) {
	var args map[string]any
	if strings.TrimSpace(arguments) != "" {
		if err := json.Unmarshal([]byte(arguments), &args); err != nil {
			return "", fmt.Errorf("parse %s arguments: %w", name, err)
		}
	}

	res, err := t.session.CallTool(ctx, &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		return "", fmt.Errorf("calling mcp tool %s: %w", name, err)
	}

	var b strings.Builder
	for _, content := range res.Content {
		if text, ok := content.(*mcp.TextContent); ok {
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			b.WriteString(text.Text)
		}
	}

	if res.IsError {
		return "", fmt.Errorf("%s failed: %s", name, clip(b.String(), 500))
	}

	return truncateOutput(b.String()), nil
}

func (t *MCPToolset) Close() error {
	return t.session.Close()
}

type headerTransport struct {
	base    http.RoundTripper
	headers map[string]string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for k, v := range t.headers {
		req.Header.Set(k, v)
	}

	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}
