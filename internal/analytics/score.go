// Package analytics scores resume completeness and checks rendered resumes
// for applicant tracking system (ATS) compatibility.
package analytics

import (
	"math"

	"github.com/jonathan/resume-builder/internal/types"
)

// Check is one completeness criterion and whether the resume meets it
type Check struct {
	Name   string `json:"name"`
	Label  string `json:"label"`
	Passed bool   `json:"passed"`
}

type criterion struct {
	name  string
	label string
	test  func(types.ResumeData) bool
}

// criteria are weighted equally
var criteria = []criterion{
	{"summary", "Professional summary", func(d types.ResumeData) bool {
		return d.PersonalInfo.Summary != ""
	}},
	{"experience", "Work experience", func(d types.ResumeData) bool {
		return len(d.Experience) > 0 && d.Experience[0].JobTitle != ""
	}},
	{"education", "Education", func(d types.ResumeData) bool {
		return len(d.Education) > 0 && d.Education[0].Degree != ""
	}},
	{"skills", "Skills", func(d types.ResumeData) bool {
		return len(d.Skills) > 0
	}},
	{"linkedin", "LinkedIn profile", func(d types.ResumeData) bool {
		return d.PersonalInfo.LinkedIn != ""
	}},
}

// Breakdown evaluates every criterion in order
func Breakdown(data types.ResumeData) []Check {
	checks := make([]Check, len(criteria))
	for i, c := range criteria {
		checks[i] = Check{Name: c.name, Label: c.label, Passed: c.test(data)}
	}
	return checks
}

// Score returns the share of met criteria as a percentage. With five
// criteria it moves in steps of 20.
func Score(data types.ResumeData) int {
	passed := 0
	for _, check := range Breakdown(data) {
		if check.Passed {
			passed++
		}
	}
	return int(math.Round(float64(passed) / float64(len(criteria)) * 100))
}
