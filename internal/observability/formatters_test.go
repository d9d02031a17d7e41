package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jonathan/resume-builder/internal/analytics"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintScore(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	data := types.DefaultResumeData()
	data.Skills = nil
	p.PrintScore(analytics.Score(data), analytics.Breakdown(data))
	output := buf.String()

	assert.Contains(t, output, "RESUME STRENGTH")
	assert.Contains(t, output, "Score: 80/100")
	assert.Contains(t, output, "[ ] Skills")
	assert.Contains(t, output, "[x] Professional summary")
}

func TestPrintATSReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintATSReport(&analytics.ATSReport{
		Findings: []analytics.Finding{
			{Type: "layout", Severity: analytics.SeverityWarning, Details: "Sidebar columns may be read out of order"},
			{Type: "font", Severity: analytics.SeverityInfo, Details: "Standard font"},
		},
		Headings:        []string{"Experience", "Education"},
		MissingHeadings: []string{"Skills"},
		Verdict:         analytics.VerdictMedium,
	})
	output := buf.String()

	assert.Contains(t, output, "ATS COMPATIBILITY")
	assert.Contains(t, output, analytics.VerdictMedium)
	assert.Contains(t, output, "Missing:  Skills")
	assert.Contains(t, output, "⚠ layout")
	assert.Contains(t, output, "• font")
}

func TestPrintATSReport_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintATSReport(nil)
	assert.Empty(t, buf.String())
}

func TestPrintKeywords(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintKeywords(&types.SuggestKeywordsOutput{Keywords: []string{"Go", "Kubernetes"}})
	output := buf.String()

	assert.Contains(t, output, "SUGGESTED KEYWORDS (2)")
	assert.Contains(t, output, "• Kubernetes")

	buf.Reset()
	p.PrintKeywords(&types.SuggestKeywordsOutput{})
	assert.Empty(t, buf.String())
}

func TestPrintMatch_WrapsSuggestions(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	suggestion := strings.Repeat("Quantify the impact of each project. ", 4)
	p.PrintMatch(&types.MatchJobDescriptionOutput{SimilarityScore: 0.42, Suggestions: suggestion})
	output := buf.String()

	assert.Contains(t, output, "Similarity: 42%")
	assert.NotContains(t, output, "...", "suggestions wrap instead of being cut")
	for _, line := range strings.Split(strings.TrimSuffix(output, "\n"), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)), line)
	}
}

func TestPrintParsedResume(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	experience := []types.Experience{
		{JobTitle: "Engineer", Company: "Acme"},
		{JobTitle: "Intern", Company: "Initech"},
	}
	skills := []string{"Go", "SQL"}
	p.PrintParsedResume(&types.ParsedResume{Experience: &experience, Skills: &skills})
	output := buf.String()

	assert.Contains(t, output, "IMPORTED RESUME")
	assert.Contains(t, output, "Personal info: not found")
	assert.Contains(t, output, "Experience (2):")
	assert.Contains(t, output, "• Engineer at Acme")
	assert.Contains(t, output, "Skills: Go, SQL")
	assert.NotContains(t, output, "Education")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ééé...", truncate("éééééééé", 6))
}

func TestWrap(t *testing.T) {
	assert.Equal(t, "one two\nthree", wrap("one two three", 8))
	assert.Equal(t, "a\n\nb", wrap("a\n\nb", 8))
}
