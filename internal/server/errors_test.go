package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jonathan/resume-builder/internal/assistant"
	"github.com/jonathan/resume-builder/internal/editor"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"request validation", &ErrValidation{Field: "field", Message: "is required"}, http.StatusBadRequest},
		{"assistant input", &assistant.ValidationError{Field: "jobRole", Message: "is required"}, http.StatusBadRequest},
		{"unknown field", &editor.FieldError{Section: "personalInfo", Field: "age", Message: "unknown field"}, http.StatusBadRequest},
		{"template", &rendering.TemplateError{Message: "unknown template \"baroque\""}, http.StatusBadRequest},
		{"document", &schemas.ValidationError{Schema: schemas.ResumeData}, http.StatusBadRequest},
		{"index", &editor.IndexError{Section: "experience", Index: 9}, http.StatusNotFound},
		{"not found", &editor.NotFoundError{Section: "education", ID: "edu9"}, http.StatusNotFound},
		{"busy", &editor.BusyError{Kind: "generate"}, http.StatusConflict},
		{"upstream", &assistant.UpstreamError{Kind: assistant.KindMatch, Message: "model request failed"}, http.StatusBadGateway},
		{"schema wrapping a document error", &assistant.SchemaError{
			Kind:  assistant.KindKeywords,
			Cause: &schemas.ValidationError{Schema: schemas.SuggestKeywords},
		}, http.StatusBadGateway},
		{"wrapped", fmt.Errorf("saving: %w", &editor.NotFoundError{Section: "experience", ID: "x"}), http.StatusNotFound},
		{"plain", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestErrValidation_Error(t *testing.T) {
	assert.Equal(t, "request body is empty", (&ErrValidation{Message: "request body is empty"}).Error())
	assert.Equal(t, "validation error: index - must be a number", (&ErrValidation{Field: "index", Message: "must be a number"}).Error())
}
