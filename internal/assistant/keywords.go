package assistant

import (
	"context"
	"strconv"
	"strings"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
)

// MaxKeywords caps the number of suggested keywords
const MaxKeywords = 10

var keywordsShape = llm.OutputShape{
	Name: "SuggestKeywordsOutput",
	Fields: []llm.ShapeField{
		{Name: "keywords", Type: `["string"]`, Description: "distinct keywords, most relevant first", Required: true},
	},
}

// SuggestKeywords proposes industry-specific keywords for a job role
func (s *Service) SuggestKeywords(ctx context.Context, in types.SuggestKeywordsInput) (out *types.SuggestKeywordsOutput, err error) {
	defer func() { s.observe(KindKeywords, err) }()

	if err := validateInput(&in); err != nil {
		return nil, err
	}

	var resp types.SuggestKeywordsOutput
	err = s.callJSON(ctx, KindKeywords, request{
		prompt: "suggest-keywords",
		values: map[string]string{
			"JobRole":     in.JobRole,
			"Industry":    in.Industry,
			"MaxKeywords": strconv.Itoa(MaxKeywords),
		},
		shape:  keywordsShape,
		schema: schemas.SuggestKeywords,
		tier:   llm.TierLite,
	}, &resp)
	if err != nil {
		return nil, err
	}

	resp.Keywords = NormalizeKeywords(resp.Keywords, MaxKeywords)
	return &resp, nil
}

// NormalizeKeywords trims keywords, drops blanks and case-insensitive
// duplicates (first occurrence wins), and keeps at most limit entries.
func NormalizeKeywords(keywords []string, limit int) []string {
	out := make([]string, 0, min(len(keywords), limit))
	seen := make(map[string]bool)
	for _, keyword := range keywords {
		if len(out) == limit {
			break
		}
		trimmed := strings.TrimSpace(keyword)
		key := strings.ToLower(trimmed)
		if trimmed == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, trimmed)
	}
	return out
}
