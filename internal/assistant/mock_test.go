package assistant

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jonathan/resume-builder/internal/llm"
)

// MockLLMClient implements llm.Client for testing
type MockLLMClient struct {
	GenerateContentFunc       func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
	GenerateJSONFunc          func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
	GenerateJSONWithMediaFunc func(ctx context.Context, prompt string, media []llm.Media, tier llm.ModelTier) (string, error)
	GetModelFunc              func(tier llm.ModelTier) string
	CloseFunc                 func() error

	Calls int
}

func (m *MockLLMClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	m.Calls++
	if m.GenerateContentFunc != nil {
		return m.GenerateContentFunc(ctx, prompt, tier)
	}
	return "", nil
}

func (m *MockLLMClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	m.Calls++
	if m.GenerateJSONFunc != nil {
		return m.GenerateJSONFunc(ctx, prompt, tier)
	}
	return `{}`, nil
}

func (m *MockLLMClient) GenerateJSONWithMedia(ctx context.Context, prompt string, media []llm.Media, tier llm.ModelTier) (string, error) {
	m.Calls++
	if m.GenerateJSONWithMediaFunc != nil {
		return m.GenerateJSONWithMediaFunc(ctx, prompt, media, tier)
	}
	return `{}`, nil
}

func (m *MockLLMClient) GetModel(tier llm.ModelTier) string {
	if m.GetModelFunc != nil {
		return m.GetModelFunc(tier)
	}
	return "mock-model"
}

func (m *MockLLMClient) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// jsonResponse returns a GenerateJSONFunc that always answers body
func jsonResponse(body string) func(context.Context, string, llm.ModelTier) (string, error) {
	return func(context.Context, string, llm.ModelTier) (string, error) {
		return body, nil
	}
}

// minimalPDF builds a single-page PDF that draws text with Helvetica
func minimalPDF(text string) []byte {
	content := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}
