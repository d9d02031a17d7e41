// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-builder/internal/analytics"
	"github.com/jonathan/resume-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// wrap breaks each line of text at word boundaries so no line exceeds width
func wrap(text string, width int) string {
	var out []string
	for _, paragraph := range strings.Split(text, "\n") {
		line := ""
		for _, word := range strings.Fields(paragraph) {
			switch {
			case line == "":
				line = word
			case len([]rune(line))+1+len([]rune(word)) > width:
				out = append(out, line)
				line = word
			default:
				line += " " + word
			}
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// PrintScore outputs the completeness score with one line per criterion.
func (p *Printer) PrintScore(score int, breakdown []analytics.Check) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score: %d/100\n\n", score))
	for _, check := range breakdown {
		mark := " "
		if check.Passed {
			mark = "x"
		}
		sb.WriteString(fmt.Sprintf("[%s] %s\n", mark, check.Label))
	}
	p.printBox("RESUME STRENGTH", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintATSReport outputs the verdict, the headings found and every finding.
func (p *Printer) PrintATSReport(report *analytics.ATSReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(report.Verdict + "\n\n")
	if len(report.Headings) > 0 {
		sb.WriteString(fmt.Sprintf("Headings: %s\n", strings.Join(report.Headings, ", ")))
	}
	if len(report.MissingHeadings) > 0 {
		sb.WriteString(fmt.Sprintf("Missing:  %s\n", strings.Join(report.MissingHeadings, ", ")))
	}

	for _, f := range report.Findings {
		marker := "•"
		if f.Severity == analytics.SeverityWarning {
			marker = "⚠"
		}
		sb.WriteString(fmt.Sprintf("\n%s %s\n", marker, f.Type))
		sb.WriteString(fmt.Sprintf("  %s\n", f.Details))
	}

	p.printBox("ATS COMPATIBILITY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintKeywords outputs suggested keywords as a bulleted list.
func (p *Printer) PrintKeywords(out *types.SuggestKeywordsOutput) {
	if out == nil || len(out.Keywords) == 0 {
		return
	}

	var sb strings.Builder
	for _, keyword := range out.Keywords {
		sb.WriteString(fmt.Sprintf("• %s\n", keyword))
	}
	p.printBox(fmt.Sprintf("SUGGESTED KEYWORDS (%d)", len(out.Keywords)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatch outputs the similarity score and the suggestions wrapped to
// the box width.
func (p *Printer) PrintMatch(out *types.MatchJobDescriptionOutput) {
	if out == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Similarity: %.0f%%\n", out.SimilarityScore*100))
	if out.Suggestions != "" {
		sb.WriteString("\nSuggestions:\n")
		sb.WriteString(wrap(out.Suggestions, boxWidth-4))
	}
	p.printBox("JOB DESCRIPTION MATCH", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintParsedResume outputs which sections a PDF import found.
func (p *Printer) PrintParsedResume(parsed *types.ParsedResume) {
	if parsed == nil {
		return
	}

	var sb strings.Builder
	if parsed.PersonalInfo != nil {
		sb.WriteString(fmt.Sprintf("Name:      %s\n", parsed.PersonalInfo.Name))
		sb.WriteString(fmt.Sprintf("Email:     %s\n", parsed.PersonalInfo.Email))
	} else {
		sb.WriteString("Personal info: not found\n")
	}

	if parsed.Experience != nil {
		exps := *parsed.Experience
		sb.WriteString(fmt.Sprintf("\nExperience (%d):\n", len(exps)))
		count := min(len(exps), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s at %s\n", exps[i].JobTitle, exps[i].Company))
		}
		if len(exps) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(exps)-maxItemsToShow))
		}
	}

	if parsed.Education != nil {
		sb.WriteString(fmt.Sprintf("\nEducation (%d):\n", len(*parsed.Education)))
		for _, edu := range *parsed.Education {
			sb.WriteString(fmt.Sprintf("  • %s, %s\n", edu.Degree, edu.Institution))
		}
	}

	if parsed.Skills != nil {
		sb.WriteString(fmt.Sprintf("\nSkills: %s\n", strings.Join(*parsed.Skills, ", ")))
	}

	p.printBox("IMPORTED RESUME", strings.TrimSuffix(sb.String(), "\n"))
}
