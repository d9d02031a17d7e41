package assistant

import (
	"context"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
)

// GeneratedProgress is the progress note returned with every generated summary
const GeneratedProgress = "Generated initial resume content based on career information and job role."

var generateShape = llm.OutputShape{
	Name: "GenerateResumeContentOutput",
	Fields: []llm.ShapeField{
		{Name: "resumeContent", Description: "the generated resume summary", Required: true},
	},
}

// GenerateResumeContent writes a resume summary from career information
// and a target job role.
func (s *Service) GenerateResumeContent(ctx context.Context, in types.GenerateResumeContentInput) (out *types.GenerateResumeContentOutput, err error) {
	defer func() { s.observe(KindGenerate, err) }()

	if err := validateInput(&in); err != nil {
		return nil, err
	}

	var resp types.GenerateResumeContentOutput
	err = s.callJSON(ctx, KindGenerate, request{
		prompt: "generate-resume-content",
		values: map[string]string{
			"CareerInformation": in.CareerInformation,
			"JobRole":           in.JobRole,
		},
		shape:  generateShape,
		schema: schemas.GenerateContent,
		tier:   llm.TierStandard,
	}, &resp)
	if err != nil {
		return nil, err
	}

	resp.Progress = GeneratedProgress
	return &resp, nil
}
