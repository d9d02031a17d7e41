package analytics

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Finding severities
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
)

// Finding is one observation from an ATS check
type Finding struct {
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Details  string `json:"details"`
}

// ATSReport is the result of CheckATS
type ATSReport struct {
	Findings        []Finding `json:"findings"`
	Headings        []string  `json:"headings"`
	MissingHeadings []string  `json:"missingHeadings,omitempty"`
	Verdict         string    `json:"verdict"`
	Passes          bool      `json:"passes"`
}

// Warnings counts the warning findings
func (r *ATSReport) Warnings() int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == SeverityWarning {
			n++
		}
	}
	return n
}

// Verdicts
const (
	VerdictHigh   = "High probability of passing ATS screening."
	VerdictMedium = "Likely to pass ATS screening with minor adjustments."
	VerdictLow    = "May have difficulty passing ATS screening."
)

// standardHeadings are the section titles parsers look for. A heading
// matches when it contains the word, so "Work Experience" counts.
var standardHeadings = []string{"Experience", "Education", "Skills"}

// standardFonts are font families that parsers and every reader render alike
var standardFonts = []string{"inter", "arial", "helvetica", "serif", "sans-serif", "monospace", "georgia", "times"}

// CheckATS inspects rendered resume HTML for structure that applicant
// tracking systems parse poorly.
func CheckATS(html string) (*ATSReport, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse resume HTML: %w", err)
	}

	report := &ATSReport{Findings: []Finding{}, Headings: []string{}}

	checkFont(doc, report)
	checkHeadings(doc, report)
	checkLayout(doc, report)

	switch warnings := report.Warnings(); {
	case warnings == 0:
		report.Verdict = VerdictHigh
		report.Passes = true
	case warnings == 1:
		report.Verdict = VerdictMedium
		report.Passes = true
	default:
		report.Verdict = VerdictLow
	}
	return report, nil
}

func checkFont(doc *goquery.Document, report *ATSReport) {
	style, _ := doc.Find("h1.name").First().Attr("style")
	family := ""
	for _, decl := range strings.Split(style, ";") {
		prop, value, ok := strings.Cut(decl, ":")
		if ok && strings.TrimSpace(prop) == "font-family" {
			family = strings.ToLower(strings.TrimSpace(value))
		}
	}

	// Informational only: body text always uses a standard font, so the
	// name's font never affects the verdict.
	details := "Uses a standard, readable font."
	if family != "" && !isStandardFont(family) {
		details = "The name uses a display font; body text uses a standard font, which parsers read reliably."
	}
	report.Findings = append(report.Findings, Finding{
		Type:     "font",
		Severity: SeverityInfo,
		Details:  details,
	})
}

func isStandardFont(family string) bool {
	first, _, _ := strings.Cut(family, ",")
	first = strings.Trim(strings.TrimSpace(first), `'"`)
	for _, f := range standardFonts {
		if first == f {
			return true
		}
	}
	return false
}

func checkHeadings(doc *goquery.Document, report *ATSReport) {
	doc.Find("h2").Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			report.Headings = append(report.Headings, text)
		}
	})

	for _, want := range standardHeadings {
		found := false
		for _, h := range report.Headings {
			if strings.Contains(strings.ToLower(h), strings.ToLower(want)) {
				found = true
				break
			}
		}
		if !found {
			report.MissingHeadings = append(report.MissingHeadings, want)
		}
	}

	if len(report.MissingHeadings) == 0 {
		report.Findings = append(report.Findings, Finding{
			Type:     "headings",
			Severity: SeverityInfo,
			Details:  "Clear section headings (Experience, Education, Skills).",
		})
		return
	}
	report.Findings = append(report.Findings, Finding{
		Type:     "headings",
		Severity: SeverityWarning,
		Details:  "Missing standard section headings: " + strings.Join(report.MissingHeadings, ", ") + ".",
	})
}

func checkLayout(doc *goquery.Document, report *ATSReport) {
	if doc.Find("table").Length() > 0 {
		report.Findings = append(report.Findings, Finding{
			Type:     "tables",
			Severity: SeverityWarning,
			Details:  "Tables can scramble the reading order for some ATS parsers.",
		})
	}

	if doc.Find(".layout-sidebar, .layout-two-column").Length() > 0 {
		report.Findings = append(report.Findings, Finding{
			Type:     "columns",
			Severity: SeverityWarning,
			Details:  "Multi-column and sidebar layouts can be misread by some ATS parsers; a single column is safest.",
		})
	}
}
