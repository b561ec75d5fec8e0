package tracker_test

import (
	"context"

	"basegraph.app/releasenotes/internal/tracker"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type listIssuesInput struct {
	State string `json:"state" jsonschema:"issue state filter"`
}

var _ = Describe("MCPToolset", func() {
	var (
		ctx     context.Context
		toolset *tracker.MCPToolset
	)

	BeforeEach(func() {
		ctx = context.Background()

		server := mcp.NewServer(&mcp.Implementation{Name: "fake-github", Version: "v0"}, nil)
		mcp.AddTool(server, &mcp.Tool{Name: "list_issues", Description: "List repository issues"},
			func(_ context.Context, _ *mcp.CallToolRequest, in listIssuesInput) (*mcp.CallToolResult, any, error) {
				return &mcp.CallToolResult{
					Content: []mcp.Content{&mcp.TextContent{Text: "#42 Dark mode (" + in.State + ")"}},
				}, nil, nil
			})
		mcp.AddTool(server, &mcp.Tool{Name: "broken", Description: "Always fails"},
			func(_ context.Context, _ *mcp.CallToolRequest, _ listIssuesInput) (*mcp.CallToolResult, any, error) {
				return &mcp.CallToolResult{
					IsError: true,
					Content: []mcp.Content{&mcp.TextContent{Text: "rate limited"}},
				}, nil, nil
			})

		serverTransport, clientTransport := mcp.NewInMemoryTransports()
		serverSession, err := server.Connect(ctx, serverTransport, nil)
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(serverSession.Close)

		toolset, err = tracker.ConnectMCP(ctx, clientTransport)
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(toolset.Close)
	})

	It("lists the server's tools with their input schemas", func() {
		tools, err := toolset.Tools(ctx)
		Expect(err).NotTo(HaveOccurred())

		var names []string
		for _, t := range tools {
			names = append(names, t.Name)
			Expect(t.Parameters).NotTo(BeNil())
		}
		Expect(names).To(ConsistOf("list_issues", "broken"))
	})

	It("returns text content of a tool call", func() {
		out, err := toolset.Call(ctx, "list_issues", `{"state":"closed"}`)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("#42 Dark mode (closed)"))
	})

	It("turns error results into errors", func() {
		_, err := toolset.Call(ctx, "broken", `{"state":"closed"}`)
		Expect(err).To(MatchError(ContainSubstring("broken failed: rate limited")))
	})

	It("rejects malformed arguments before calling the server", func() {
		_, err := toolset.Call(ctx, "list_issues", `{`)
		Expect(err).To(MatchError(ContainSubstring("parse list_issues arguments")))
	})
})
