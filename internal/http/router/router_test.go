package router_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"basegraph.app/releasenotes/internal/http/router"
	"basegraph.app/releasenotes/internal/input"
	"basegraph.app/releasenotes/internal/pipeline"
)

type stubRunner struct{}

func (stubRunner) Run(_ context.Context, _ input.Params) (*pipeline.Result, error) {
	return &pipeline.Result{Markdown: "No closed issues found between 2024-01-01 and 2024-01-31", NoIssues: true}, nil
}

var _ = Describe("SetupRoutes", func() {
	var engine *gin.Engine

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		engine = gin.New()
		router.SetupRoutes(engine, stubRunner{})
	})

	It("serves health checks", func() {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(MatchJSON(`{"status":"ok"}`))
	})

	It("mounts the generation endpoint under /api/v1", func() {
		body := bytes.NewBufferString(`{"owner":"acme","repo":"widgets","start_date":"2024-01-01","end_date":"2024-01-31"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/release-notes", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		engine.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"no_issues":true`))
	})
})
