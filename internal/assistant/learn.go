package assistant

import (
	"context"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// LearnFromUserEdits records that the user changed AI-generated content.
// The signal is logged only; no model is called and nothing is stored.
func (s *Service) LearnFromUserEdits(ctx context.Context, in types.LearnFromUserEditsInput) (out *types.LearnFromUserEditsOutput, err error) {
	defer func() { s.observe(KindLearn, err) }()

	if err := validateInput(&in); err != nil {
		return nil, err
	}

	originalWords := len(strings.Fields(in.OriginalContent))
	editedWords := len(strings.Fields(in.EditedContent))
	s.logger.InfoContext(ctx, "learned from user edit",
		"original_length", len(in.OriginalContent),
		"edited_length", len(in.EditedContent),
		"word_delta", editedWords-originalWords,
	)

	return &types.LearnFromUserEditsOutput{Success: true}, nil
}
