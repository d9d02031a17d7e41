package assistant

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// CareerInformation summarizes a resume as the career information sent
// with a generate request, e.g.
// "Experience: Engineer at Acme, Analyst at Initech. Skills: Go, SQL."
func CareerInformation(data types.ResumeData) string {
	roles := make([]string, 0, len(data.Experience))
	for _, exp := range data.Experience {
		roles = append(roles, fmt.Sprintf("%s at %s", exp.JobTitle, exp.Company))
	}
	return fmt.Sprintf("Experience: %s. Skills: %s.", strings.Join(roles, ", "), strings.Join(data.Skills, ", "))
}

// ResumeText flattens a resume into the plain text used for job
// description matching.
func ResumeText(data types.ResumeData) string {
	var sb strings.Builder

	sb.WriteString("Summary: ")
	sb.WriteString(data.PersonalInfo.Summary)

	sb.WriteString("\n\nExperience:\n")
	entries := make([]string, 0, len(data.Experience))
	for _, exp := range data.Experience {
		lines := append([]string{fmt.Sprintf("%s at %s", exp.JobTitle, exp.Company)}, exp.Responsibilities...)
		entries = append(entries, strings.Join(lines, "\n"))
	}
	sb.WriteString(strings.Join(entries, "\n\n"))

	sb.WriteString("\n\nEducation:\n")
	degrees := make([]string, 0, len(data.Education))
	for _, edu := range data.Education {
		degrees = append(degrees, fmt.Sprintf("%s from %s", edu.Degree, edu.Institution))
	}
	sb.WriteString(strings.Join(degrees, "\n"))

	sb.WriteString("\n\nSkills: ")
	sb.WriteString(strings.Join(data.Skills, ", "))
	return sb.String()
}
