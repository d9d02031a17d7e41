package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"sync/atomic"

	"github.com/jonathan/resume-builder/internal/llm"
)

// MockLLMClient implements llm.Client for testing. Handlers may call it from
// several goroutines, so the call counter is atomic.
type MockLLMClient struct {
	GenerateJSONFunc          func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
	GenerateJSONWithMediaFunc func(ctx context.Context, prompt string, media []llm.Media, tier llm.ModelTier) (string, error)

	calls  atomic.Int32
	closed atomic.Bool
}

func (m *MockLLMClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return m.GenerateJSON(ctx, prompt, tier)
}

func (m *MockLLMClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	m.calls.Add(1)
	if m.GenerateJSONFunc != nil {
		return m.GenerateJSONFunc(ctx, prompt, tier)
	}
	return `{}`, nil
}

func (m *MockLLMClient) GenerateJSONWithMedia(ctx context.Context, prompt string, media []llm.Media, tier llm.ModelTier) (string, error) {
	m.calls.Add(1)
	if m.GenerateJSONWithMediaFunc != nil {
		return m.GenerateJSONWithMediaFunc(ctx, prompt, media, tier)
	}
	return `{}`, nil
}

func (m *MockLLMClient) GetModel(llm.ModelTier) string {
	return "mock-model"
}

func (m *MockLLMClient) Close() error {
	m.closed.Store(true)
	return nil
}

func (m *MockLLMClient) Calls() int {
	return int(m.calls.Load())
}

// fakePrinter stands in for headless Chrome
type fakePrinter struct {
	html atomic.Value
}

func (p *fakePrinter) PrintPDF(_ context.Context, html string) ([]byte, error) {
	p.html.Store(html)
	return []byte("%PDF-1.4 fake"), nil
}

// pdfDataURI builds a one-page PDF showing text, encoded as a data URI
func pdfDataURI(text string) string {
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
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	return "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}
