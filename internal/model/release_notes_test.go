package model_test

import (
	"basegraph.app/releasenotes/internal/model"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ReleaseNotes", func() {
	issue := func(n int, kind model.IssueType) model.IssueInfo {
		return model.IssueInfo{
			Title:       "issue",
			Number:      n,
			URL:         "https://example.com/issues",
			IssueType:   kind,
			UserBenefit: "Added something useful",
		}
	}

	Describe("IsEmpty", func() {
		It("is true only when every list is empty", func() {
			Expect((&model.ReleaseNotes{}).IsEmpty()).To(BeTrue())
			Expect((&model.ReleaseNotes{BugFixes: []model.IssueInfo{issue(1, model.IssueTypeBug)}}).IsEmpty()).To(BeFalse())
			Expect((&model.ReleaseNotes{ThemeGroups: []model.ThemeGroup{{Name: "Empty"}}}).IsEmpty()).To(BeFalse())
		})
	})

	Describe("IssueCount", func() {
		It("sums theme issues when themes exist and ignores the fallback lists", func() {
			notes := &model.ReleaseNotes{
				ThemeGroups: []model.ThemeGroup{
					{Name: "A", Issues: []model.IssueInfo{issue(1, model.IssueTypeFeature), issue(2, model.IssueTypeBug)}},
					{Name: "B", Issues: []model.IssueInfo{issue(3, model.IssueTypeFeature)}},
				},
				Features: []model.IssueInfo{issue(1, model.IssueTypeFeature)},
			}
			Expect(notes.IssueCount()).To(Equal(3))
		})

		It("sums features and bug fixes without themes", func() {
			notes := &model.ReleaseNotes{
				Features: []model.IssueInfo{issue(1, model.IssueTypeFeature)},
				BugFixes: []model.IssueInfo{issue(2, model.IssueTypeBug), issue(3, model.IssueTypeBug)},
			}
			Expect(notes.IssueCount()).To(Equal(3))
		})
	})

	Describe("Validate", func() {
		It("accepts a well-formed document", func() {
			notes := &model.ReleaseNotes{
				ThemeGroups: []model.ThemeGroup{{Name: "Auth", Issues: []model.IssueInfo{issue(7, model.IssueTypeBug)}}},
			}
			Expect(notes.Validate()).To(Succeed())
		})

		It("accepts a theme without a name", func() {
			notes := &model.ReleaseNotes{
				ThemeGroups: []model.ThemeGroup{{Name: "", Issues: []model.IssueInfo{issue(1, model.IssueTypeBug)}}},
			}
			Expect(notes.Validate()).To(Succeed())
		})

		It("rejects unknown issue types", func() {
			notes := &model.ReleaseNotes{Features: []model.IssueInfo{issue(7, "chore")}}
			Expect(notes.Validate()).To(MatchError(ContainSubstring(`unknown issue_type "chore"`)))
		})

		It("rejects non-positive issue numbers", func() {
			notes := &model.ReleaseNotes{BugFixes: []model.IssueInfo{issue(0, model.IssueTypeBug)}}
			Expect(notes.Validate()).To(MatchError(ContainSubstring("non-positive number")))
		})

		It("rejects empty benefit statements", func() {
			bad := issue(9, model.IssueTypeFeature)
			bad.UserBenefit = ""
			notes := &model.ReleaseNotes{ThemeGroups: []model.ThemeGroup{{Name: "UX", Issues: []model.IssueInfo{bad}}}}
			Expect(notes.Validate()).To(MatchError(ContainSubstring("empty user_benefit")))
		})
	})
})

var _ = Describe("EditorReview", func() {
	It("normalizes nil lists to empty lists", func() {
		review := &model.EditorReview{EditedMarkdown: "# Notes"}
		review.Normalize()
		Expect(review.ChangesMade).NotTo(BeNil())
		Expect(review.ClarityIssuesFixed).NotTo(BeNil())
		Expect(review.ConsistencyImprovements).NotTo(BeNil())
		Expect(review.Recommendations).NotTo(BeNil())
	})
})
