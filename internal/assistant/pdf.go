package assistant

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/ledongthuc/pdf"
)

const (
	pdfMIMEType = "application/pdf"

	// MaxExtractedText bounds the text hint sent alongside the PDF
	MaxExtractedText = 8000
)

var parseShape = llm.OutputShape{
	Name: "ParseResumePdfOutput",
	Fields: []llm.ShapeField{
		{Name: "personalInfo", Type: `{"name","email","phone","linkedin","website","summary"}`, Description: "omit if not found"},
		{Name: "experience", Type: `[{"id","jobTitle","company","location","startDate","endDate","responsibilities":["string"]}]`, Description: "omit if not found"},
		{Name: "education", Type: `[{"id","degree","institution","location","graduationDate"}]`, Description: "omit if not found"},
		{Name: "skills", Type: `["string"]`, Description: "omit if not found"},
	},
}

// ParseResumePdf extracts structured resume data from a PDF data URI.
// Fields the model does not return stay nil. Every returned entry gets a
// fresh id regardless of what the model proposed.
func (s *Service) ParseResumePdf(ctx context.Context, in types.ParseResumePdfInput) (out *types.ParsedResume, err error) {
	defer func() { s.observe(KindParsePDF, err) }()

	if err := validateInput(&in); err != nil {
		return nil, err
	}

	data, err := DecodeDataURI(in.PDFDataURI, pdfMIMEType)
	if err != nil {
		return nil, &ValidationError{Field: "pdfDataUri", Message: err.Error()}
	}

	text, err := ExtractPDFText(data, MaxExtractedText)
	if err != nil {
		return nil, &ValidationError{Field: "pdfDataUri", Message: "not a readable PDF document"}
	}

	var parsed types.ParsedResume
	err = s.callJSON(ctx, KindParsePDF, request{
		prompt: "parse-resume-pdf",
		values: map[string]string{"ExtractedText": text},
		shape:  parseShape,
		schema: schemas.ParseResumePdf,
		tier:   llm.TierAdvanced,
		media:  []llm.Media{{MIMEType: pdfMIMEType, Data: data}},
	}, &parsed)
	if err != nil {
		return nil, err
	}

	s.assignIDs(&parsed)
	return &parsed, nil
}

func (s *Service) assignIDs(parsed *types.ParsedResume) {
	if parsed.Experience != nil {
		for i := range *parsed.Experience {
			exp := &(*parsed.Experience)[i]
			exp.ID = s.ids.ExperienceID()
			if exp.Responsibilities == nil {
				exp.Responsibilities = []string{}
			}
		}
	}
	if parsed.Education != nil {
		for i := range *parsed.Education {
			(*parsed.Education)[i].ID = s.ids.EducationID()
		}
	}
}

// DecodeDataURI decodes a base64 data URI of the given MIME type,
// e.g. "data:application/pdf;base64,JVBERi0...".
func DecodeDataURI(uri, mimeType string) ([]byte, error) {
	header, payload, ok := strings.Cut(uri, ",")
	if !ok {
		return nil, fmt.Errorf("malformed data URI")
	}

	params := strings.Split(strings.TrimPrefix(header, "data:"), ";")
	if !strings.HasPrefix(header, "data:") || !strings.EqualFold(params[0], mimeType) {
		return nil, fmt.Errorf("data URI must have MIME type %s", mimeType)
	}
	if params[len(params)-1] != "base64" {
		return nil, fmt.Errorf("data URI must be base64 encoded")
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return nil, fmt.Errorf("invalid base64 payload: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("data URI is empty")
	}
	return data, nil
}

// EncodeDataURI is the inverse of DecodeDataURI
func EncodeDataURI(data []byte, mimeType string) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// ExtractPDFText opens data as a PDF and returns up to limit characters of
// its plain text. A document that opens but has no text layer yields "".
func ExtractPDFText(data []byte, limit int) (text string, err error) {
	// The pdf reader panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to read PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	if reader.NumPage() == 0 {
		return "", fmt.Errorf("PDF has no pages")
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", nil
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", nil
	}

	runes := []rune(strings.TrimSpace(buf.String()))
	if len(runes) > limit {
		runes = runes[:limit]
	}
	return string(runes), nil
}
