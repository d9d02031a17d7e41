package assistant

import (
	"context"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
)

var matchShape = llm.OutputShape{
	Name: "MatchJobDescriptionOutput",
	Fields: []llm.ShapeField{
		{Name: "similarityScore", Type: "number", Description: "between 0 and 1, higher is better", Required: true},
		{Name: "suggestions", Description: "specific, actionable improvements", Required: true},
	},
}

// MatchJobDescription scores a resume against a job description
func (s *Service) MatchJobDescription(ctx context.Context, in types.MatchJobDescriptionInput) (out *types.MatchJobDescriptionOutput, err error) {
	defer func() { s.observe(KindMatch, err) }()

	if err := validateInput(&in); err != nil {
		return nil, err
	}

	var resp types.MatchJobDescriptionOutput
	err = s.callJSON(ctx, KindMatch, request{
		prompt: "match-job-description",
		values: map[string]string{
			"ResumeText":         in.ResumeText,
			"JobDescriptionText": in.JobDescriptionText,
		},
		shape:  matchShape,
		schema: schemas.MatchJobDescription,
		tier:   llm.TierStandard,
	}, &resp)
	if err != nil {
		return nil, err
	}

	resp.SimilarityScore = max(0, min(1, resp.SimilarityScore))
	return &resp, nil
}
