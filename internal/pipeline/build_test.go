package pipeline_test

import (
	"basegraph.app/releasenotes/core/config"
	"basegraph.app/releasenotes/internal/pipeline"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("FromConfig", func() {
	var cfg config.Config

	BeforeEach(func() {
		cfg = config.Config{
			Tracker: config.TrackerConfig{Kind: config.TrackerGitHub, GitHubToken: "ghp_test"},
			SynthLLM: config.LLMConfig{
				Provider:      "anthropic",
				APIKey:        "sk-ant-test",
				MaxIterations: 10,
			},
			EditorLLM: config.LLMConfig{Provider: "openai", APIKey: "sk-test"},
		}
	})

	It("builds a pipeline with and without the editor", func() {
		p, err := pipeline.FromConfig(cfg, true)
		Expect(err).NotTo(HaveOccurred())
		Expect(p).NotTo(BeNil())

		p, err = pipeline.FromConfig(cfg, false)
		Expect(err).NotTo(HaveOccurred())
		Expect(p).NotTo(BeNil())
	})

	It("fails without a synthesis credential", func() {
		cfg.SynthLLM.APIKey = ""

		_, err := pipeline.FromConfig(cfg, false)

		Expect(err).To(MatchError(ContainSubstring("creating synthesis client")))
	})
})
