package console_test

import (
	"bytes"
	"errors"

	"basegraph.app/releasenotes/internal/console"
	"basegraph.app/releasenotes/internal/input"
	"basegraph.app/releasenotes/internal/model"
	"basegraph.app/releasenotes/internal/output"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Console", func() {
	var (
		buf *bytes.Buffer
		c   *console.Console
	)

	BeforeEach(func() {
		buf = &bytes.Buffer{}
		c = console.New(buf)
	})

	It("announces the run", func() {
		params, err := input.Parse([]string{"acme", "widgets", "2024-01-01", "2024-01-31", "--no-editor"})
		Expect(err).NotTo(HaveOccurred())

		c.Start(params)

		Expect(buf.String()).To(ContainSubstring("Generating release notes for acme/widgets"))
		Expect(buf.String()).To(ContainSubstring("Period: 2024-01-01 to 2024-01-31"))
		Expect(buf.String()).To(ContainSubstring("Editor review: disabled"))
	})

	It("lists only non-empty review sections", func() {
		c.Review(&model.EditorReview{
			ChangesMade:     []string{"Unified verb tense"},
			Recommendations: []string{"Add screenshots"},
		})

		out := buf.String()
		Expect(out).To(ContainSubstring("Changes made:\n  • Unified verb tense\n"))
		Expect(out).To(ContainSubstring("Recommendations:\n  • Add screenshots\n"))
		Expect(out).NotTo(ContainSubstring("Clarity issues fixed"))
	})

	It("prints nothing for a missing review", func() {
		c.Review(nil)
		Expect(buf.Len()).To(Equal(0))
	})

	It("pluralizes the issue count", func() {
		c.Generated(1)
		c.Generated(3)
		Expect(buf.String()).To(ContainSubstring("(1 issue)"))
		Expect(buf.String()).To(ContainSubstring("(3 issues)"))
	})

	It("reports file destinations only", func() {
		c.Saved(output.Destination{})
		Expect(buf.Len()).To(Equal(0))

		c.Saved(output.Destination{Path: "notes.md"})
		Expect(buf.String()).To(ContainSubstring("Saved to notes.md"))
	})

	It("formats errors on one line", func() {
		c.Error(errors.New("boom"))
		Expect(buf.String()).To(Equal("Error: boom\n"))
	})
})
