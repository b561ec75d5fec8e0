package dto

import (
	"basegraph.app/releasenotes/internal/model"
	"basegraph.app/releasenotes/internal/pipeline"
)

type GenerateReleaseNotesRequest struct {
	Owner     string `json:"owner" binding:"required,max=255"`
	Repo      string `json:"repo" binding:"required,max=255"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Editor    *bool  `json:"editor,omitempty"`
}

type EditorReviewResponse struct {
	ChangesMade             []string `json:"changes_made"`
	ClarityIssuesFixed      []string `json:"clarity_issues_fixed"`
	ConsistencyImprovements []string `json:"consistency_improvements"`
	Recommendations         []string `json:"recommendations"`
}

type ReleaseNotesResponse struct {
	RunID      int64                 `json:"run_id,string"`
	Markdown   string                `json:"markdown"`
	IssueCount int                   `json:"issue_count"`
	NoIssues   bool                  `json:"no_issues"`
	Review     *EditorReviewResponse `json:"review,omitempty"`
}

func ToReleaseNotesResponse(r *pipeline.Result) *ReleaseNotesResponse {
	return &ReleaseNotesResponse{
		RunID:      r.RunID,
		Markdown:   r.Markdown,
		IssueCount: r.IssueCount,
		NoIssues:   r.NoIssues,
		Review:     toEditorReviewResponse(r.Review),
	}
}

func toEditorReviewResponse(r *model.EditorReview) *EditorReviewResponse {
	if r == nil {
		return nil
	}
	return &EditorReviewResponse{
		ChangesMade:             r.ChangesMade,
		ClarityIssuesFixed:      r.ClarityIssuesFixed,
		ConsistencyImprovements: r.ConsistencyImprovements,
		Recommendations:         r.Recommendations,
	}
}
