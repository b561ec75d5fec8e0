package tracker_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"basegraph.app/releasenotes/internal/tracker"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gitlab "gitlab.com/gitlab-org/api/client-go"
)

var _ = Describe("GitLabToolset", func() {
	var (
		server  *httptest.Server
		toolset *tracker.GitLabToolset
		ctx     context.Context
		pages   int
		state   string
	)

	scope := tracker.Scope{
		Owner: "acme",
		Repo:  "widgets",
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	}

	BeforeEach(func() {
		ctx = context.Background()
		pages = 0
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			switch {
			case strings.HasSuffix(r.URL.Path, "/issues") && r.URL.Query().Get("page") != "2":
				pages++
				state = r.URL.Query().Get("state")
				w.Header().Set("X-Next-Page", "2")
				_, _ = w.Write([]byte(`[
					{"id": 101, "iid": 1, "title": "In window", "web_url": "https://gl/1", "labels": ["feature"], "closed_at": "2024-01-31T23:00:00Z"},
					{"id": 102, "iid": 2, "title": "Too late", "web_url": "https://gl/2", "closed_at": "2024-02-01T00:00:01Z"}
				]`))
			case strings.HasSuffix(r.URL.Path, "/issues"):
				pages++
				_, _ = w.Write([]byte(`[
					{"id": 103, "iid": 3, "title": "Reopened", "web_url": "https://gl/3"},
					{"id": 104, "iid": 4, "title": "Second page", "web_url": "https://gl/4", "closed_at": "2024-01-02T08:00:00Z"}
				]`))
			case strings.HasSuffix(r.URL.Path, "/issues/4"):
				_, _ = w.Write([]byte(`{"id": 104, "iid": 4, "title": "Second page", "web_url": "https://gl/4", "description": "Full text"}`))
			default:
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(`{"message": "404 Not Found"}`))
			}
		}))
		DeferCleanup(server.Close)

		client, err := gitlab.NewClient("glpat-test", gitlab.WithBaseURL(server.URL+"/api/v4"))
		Expect(err).NotTo(HaveOccurred())
		toolset = tracker.NewGitLab(client, scope)
	})

	It("lists issues closed inside the window across pages", func() {
		out, err := toolset.Call(ctx, "list_closed_issues", `{}`)
		Expect(err).NotTo(HaveOccurred())
		Expect(pages).To(Equal(2))
		Expect(state).To(Equal("closed"))

		var page struct {
			Total  int `json:"total"`
			Issues []struct {
				Number int    `json:"number"`
				Title  string `json:"title"`
			} `json:"issues"`
		}
		Expect(json.Unmarshal([]byte(out), &page)).To(Succeed())
		Expect(page.Total).To(Equal(2))
		Expect(page.Issues[0].Number).To(Equal(1))
		Expect(page.Issues[1].Number).To(Equal(4))
	})

	It("fetches one issue by iid", func() {
		out, err := toolset.Call(ctx, "get_issue", `{"iid": 4}`)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("Full text"))
	})

	It("wraps API failures", func() {
		_, err := toolset.Call(ctx, "get_issue", `{"iid": 99}`)
		Expect(err).To(MatchError(ContainSubstring("fetching gitlab issue #99")))
	})
})
