package input_test

import (
	"time"

	"basegraph.app/releasenotes/internal/input"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Parse", func() {
	It("defaults the editor to enabled when no flag is given", func() {
		params, err := input.Parse([]string{"acme", "widgets", "2024-01-01", "2024-01-31"})

		Expect(err).NotTo(HaveOccurred())
		Expect(params.Owner).To(Equal("acme"))
		Expect(params.Repo).To(Equal("widgets"))
		Expect(params.UseEditor).To(BeTrue())
		Expect(params.Start).To(Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
		Expect(params.End).To(Equal(time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)))
		Expect(params.Slug()).To(Equal("acme/widgets"))
	})

	DescribeTable("editor flag",
		func(flag string, want bool) {
			params, err := input.Parse([]string{"acme", "widgets", "2024-01-01", "2024-01-31", flag})
			Expect(err).NotTo(HaveOccurred())
			Expect(params.UseEditor).To(Equal(want))
		},
		Entry("--editor", "--editor", true),
		Entry("--no-editor", "--no-editor", false),
		Entry("case-insensitive", "--NO-EDITOR", false),
	)

	It("rejects unknown flags naming the flag", func() {
		_, err := input.Parse([]string{"acme", "widgets", "2024-01-01", "2024-01-31", "--fast"})

		Expect(err).To(MatchError(input.ErrValidation))
		Expect(err.Error()).To(ContainSubstring("unknown option '--fast'"))
	})

	DescribeTable("argument count",
		func(args []string) {
			_, err := input.Parse(args)
			Expect(err).To(MatchError(input.ErrValidation))
		},
		Entry("too few", []string{"acme", "widgets", "2024-01-01"}),
		Entry("too many", []string{"acme", "widgets", "2024-01-01", "2024-01-31", "--editor", "extra"}),
		Entry("none", []string{}),
	)

	It("names the offending literal on an invalid date", func() {
		_, err := input.Parse([]string{"acme", "widgets", "not-a-date", "2024-01-31"})

		Expect(err).To(MatchError(input.ErrValidation))
		Expect(err.Error()).To(ContainSubstring("not-a-date"))
	})

	It("rejects a start after the end", func() {
		_, err := input.Parse([]string{"acme", "widgets", "2024-02-01", "2024-01-01"})

		Expect(err).To(MatchError(input.ErrValidation))
		Expect(err.Error()).To(ContainSubstring("start must be before end"))
	})

	It("accepts a single-day window", func() {
		params, err := input.Parse([]string{"acme", "widgets", "2024-01-15", "2024-01-15"})

		Expect(err).NotTo(HaveOccurred())
		Expect(params.Start).To(Equal(params.End))
	})

	DescribeTable("empty owner or repo",
		func(owner, repo string) {
			_, err := input.Parse([]string{owner, repo, "2024-01-01", "2024-01-31"})
			Expect(err).To(MatchError(ContainSubstring("cannot be empty")))
		},
		Entry("empty owner", "", "widgets"),
		Entry("blank repo", "acme", "   "),
	)
})

var _ = Describe("ParseDate", func() {
	DescribeTable("accepts human-entered formats",
		func(literal string, want time.Time) {
			got, err := input.ParseDate(literal)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Format(input.DateLayout)).To(Equal(want.Format(input.DateLayout)))
		},
		Entry("ISO", "2024-01-31", time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)),
		Entry("US slashes", "01/31/2024", time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)),
		Entry("month name", "January 31, 2024", time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)),
		Entry("short month name", "31 Jan 2024", time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)),
		Entry("RFC3339", "2024-01-31T10:00:00Z", time.Date(2024, 1, 31, 10, 0, 0, 0, time.UTC)),
	)

	It("rejects an empty literal", func() {
		_, err := input.ParseDate("  ")
		Expect(err).To(MatchError(input.ErrValidation))
	})
})

var _ = Describe("Params", func() {
	It("formats the window in calendar form", func() {
		params, err := input.Validate("acme", "widgets", "2024-01-01", "2024-01-31T23:00:00Z")
		Expect(err).NotTo(HaveOccurred())

		start, end := params.Window()
		Expect(start).To(Equal("2024-01-01"))
		Expect(end).To(Equal("2024-01-31"))
		Expect(params.UseEditor).To(BeTrue())
	})
})
