package types

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// GenerateResumeContentInput is the input for summary generation
type GenerateResumeContentInput struct {
	CareerInformation string `json:"careerInformation" validate:"required"`
	JobRole           string `json:"jobRole" validate:"required"`
}

// GenerateResumeContentOutput is the generated summary plus a progress note
type GenerateResumeContentOutput struct {
	ResumeContent string `json:"resumeContent"`
	Progress      string `json:"progress"`
}

// SuggestKeywordsInput is the input for keyword suggestion
type SuggestKeywordsInput struct {
	JobRole  string `json:"jobRole" validate:"required"`
	Industry string `json:"industry" validate:"required"`
}

// SuggestKeywordsOutput holds at most ten distinct keywords
type SuggestKeywordsOutput struct {
	Keywords []string `json:"keywords"`
}

// MatchJobDescriptionInput is the input for resume/job-description matching
type MatchJobDescriptionInput struct {
	ResumeText         string `json:"resumeText" validate:"required"`
	JobDescriptionText string `json:"jobDescriptionText" validate:"required"`
}

// MatchJobDescriptionOutput is a similarity score in [0,1] with suggestions
type MatchJobDescriptionOutput struct {
	SimilarityScore float64 `json:"similarityScore"`
	Suggestions     string  `json:"suggestions"`
}

// ParseResumePdfInput carries a base64 data URI with MIME type application/pdf
type ParseResumePdfInput struct {
	PDFDataURI string `json:"pdfDataUri" validate:"required,startswith=data:application/pdf"`
}

// ParsedResume is the output of PDF parsing. A nil field was not returned by
// the model and must not be merged.
type ParsedResume struct {
	PersonalInfo *PersonalInfo `json:"personalInfo,omitempty"`
	Experience   *[]Experience `json:"experience,omitempty"`
	Education    *[]Education  `json:"education,omitempty"`
	Skills       *[]string     `json:"skills,omitempty"`
}

// LearnFromUserEditsInput pairs AI-generated content with the user's edit
type LearnFromUserEditsInput struct {
	OriginalContent string `json:"originalContent" validate:"required"`
	EditedContent   string `json:"editedContent" validate:"required,nefield=OriginalContent"`
}

// LearnFromUserEditsOutput acknowledges a style signal
type LearnFromUserEditsOutput struct {
	Success bool `json:"success"`
}

var validate = newValidator()

// newValidator reports field errors by their json names
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate validates the GenerateResumeContentInput using the validator.
func (r *GenerateResumeContentInput) Validate() error {
	return validate.Struct(r)
}

// Validate validates the SuggestKeywordsInput using the validator.
func (r *SuggestKeywordsInput) Validate() error {
	return validate.Struct(r)
}

// Validate validates the MatchJobDescriptionInput using the validator.
func (r *MatchJobDescriptionInput) Validate() error {
	return validate.Struct(r)
}

// Validate validates the ParseResumePdfInput using the validator.
func (r *ParseResumePdfInput) Validate() error {
	return validate.Struct(r)
}

// Validate validates the LearnFromUserEditsInput using the validator.
func (r *LearnFromUserEditsInput) Validate() error {
	return validate.Struct(r)
}
