// Package assistant wraps the hosted model behind five request/response
// operations: summary generation, keyword suggestion, job description
// matching, PDF import and learning from user edits.
package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-builder/internal/editor"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/prompts"
	"github.com/jonathan/resume-builder/internal/schemas"
)

// Kind identifies one of the assistant operations
type Kind string

// Assistant operations
const (
	KindGenerate Kind = "generate"
	KindKeywords Kind = "keywords"
	KindMatch    Kind = "match"
	KindParsePDF Kind = "parse-pdf"
	KindLearn    Kind = "learn"
)

// Kinds lists every operation in a stable order
var Kinds = []Kind{KindGenerate, KindKeywords, KindMatch, KindParsePDF, KindLearn}

// Observer is notified after every operation with its outcome
type Observer func(kind Kind, err error)

// Service runs the assistant operations against an llm.Client
type Service struct {
	client   llm.Client
	ids      editor.IDGenerator
	logger   *slog.Logger
	observer Observer
}

// Option configures a Service
type Option func(*Service)

// WithLogger sets the logger used for the learn signal and failures
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithIDGenerator sets the generator used for ids of imported entries
func WithIDGenerator(ids editor.IDGenerator) Option {
	return func(s *Service) { s.ids = ids }
}

// WithObserver registers a callback invoked after each operation
func WithObserver(observer Observer) Option {
	return func(s *Service) { s.observer = observer }
}

// NewService creates a Service. The client may be nil, in which case only
// operations that do not call the model succeed.
func NewService(client llm.Client, opts ...Option) *Service {
	s := &Service{
		client: client,
		ids:    editor.UUIDGenerator{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) observe(kind Kind, err error) {
	if err != nil {
		s.logger.Warn("assistant request failed", "kind", string(kind), "error", err)
	}
	if s.observer != nil {
		s.observer(kind, err)
	}
}

type validatable interface {
	Validate() error
}

// validateInput converts validator errors into a ValidationError on the
// first offending field. Field names are already json names.
func validateInput(in validatable) error {
	err := in.Validate()
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Message: err.Error()}
	}

	fe := fieldErrs[0]
	field := fe.Field()
	var msg string
	switch fe.Tag() {
	case "required":
		msg = "is required"
	case "startswith":
		msg = fmt.Sprintf("must start with %q", fe.Param())
	case "nefield":
		msg = fmt.Sprintf("must differ from %s", jsonFieldName(fe.Param()))
	default:
		msg = fmt.Sprintf("failed %s validation", fe.Tag())
	}
	return &ValidationError{Field: field, Message: msg}
}

// jsonFieldName lowers the leading capitals of a Go field name, for
// cross-field params: OriginalContent -> originalContent.
func jsonFieldName(name string) string {
	i := 0
	for i < len(name) && name[i] >= 'A' && name[i] <= 'Z' {
		i++
	}
	switch {
	case i == 0:
		return name
	case i == 1 || i == len(name):
		return strings.ToLower(name[:i]) + name[i:]
	default:
		return strings.ToLower(name[:i-1]) + name[i-1:]
	}
}

// callJSON renders the prompt, calls the model and validates the response
// against schema. The cleaned JSON is decoded into out.
func (s *Service) callJSON(ctx context.Context, kind Kind, req request, out any) error {
	if s.client == nil {
		return &UpstreamError{Kind: kind, Message: "no model client configured"}
	}

	prompt, err := prompts.Render(prompts.AssistantFile, req.prompt, req.values)
	if err != nil {
		return fmt.Errorf("failed to build %s prompt: %w", kind, err)
	}
	prompt = llm.BuildShapePrompt(prompt, req.shape)

	var raw string
	if len(req.media) > 0 {
		raw, err = s.client.GenerateJSONWithMedia(ctx, prompt, req.media, req.tier)
	} else {
		raw, err = s.client.GenerateJSON(ctx, prompt, req.tier)
	}
	if err != nil {
		return &UpstreamError{Kind: kind, Message: "model request failed", Cause: err}
	}

	cleaned := llm.CleanJSONBlock(raw)
	if err := schemas.ValidateOutput(req.schema, cleaned); err != nil {
		return &SchemaError{Kind: kind, Message: "output does not match " + req.schema, Cause: err}
	}

	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		return &SchemaError{Kind: kind, Message: "failed to decode output", Cause: err}
	}
	return nil
}

// request describes one model call
type request struct {
	prompt string
	values map[string]string
	shape  llm.OutputShape
	schema string
	tier   llm.ModelTier
	media  []llm.Media
}
