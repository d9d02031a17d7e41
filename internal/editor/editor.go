// Package editor implements the resume editing operations. Every function
// takes a ResumeData by value and returns a modified copy; the argument is
// never mutated.
package editor

import (
	"strconv"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// Field names accepted by the Set* functions, in their wire spelling
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPhone    = "phone"
	FieldLinkedIn = "linkedin"
	FieldWebsite  = "website"
	FieldSummary  = "summary"

	FieldJobTitle         = "jobTitle"
	FieldCompany          = "company"
	FieldLocation         = "location"
	FieldStartDate        = "startDate"
	FieldEndDate          = "endDate"
	FieldResponsibilities = "responsibilities"

	FieldDegree         = "degree"
	FieldInstitution    = "institution"
	FieldGraduationDate = "graduationDate"

	FieldNameFontFamily    = "nameFontFamily"
	FieldNameFontSize      = "nameFontSize"
	FieldHighlightSections = "highlightSections"

	FieldSidebar   = "sidebar"
	FieldTwoColumn = "twoColumn"
)

// SetPersonalField sets one contact field or the summary
func SetPersonalField(data types.ResumeData, field, value string) (types.ResumeData, error) {
	out := data.Clone()
	info := &out.PersonalInfo
	switch field {
	case FieldName:
		info.Name = value
	case FieldEmail:
		info.Email = value
	case FieldPhone:
		info.Phone = value
	case FieldLinkedIn:
		info.LinkedIn = value
	case FieldWebsite:
		info.Website = value
	case FieldSummary:
		info.Summary = value
	default:
		return data, unknownField("personalInfo", field)
	}
	return out, nil
}

// SetExperienceField sets one field of the experience entry at index.
// For responsibilities the value is split on newlines, one item per line.
func SetExperienceField(data types.ResumeData, index int, field, value string) (types.ResumeData, error) {
	if index < 0 || index >= len(data.Experience) {
		return data, &IndexError{Section: "experience", Index: index, Length: len(data.Experience)}
	}

	out := data.Clone()
	exp := &out.Experience[index]
	switch field {
	case FieldJobTitle:
		exp.JobTitle = value
	case FieldCompany:
		exp.Company = value
	case FieldLocation:
		exp.Location = value
	case FieldStartDate:
		exp.StartDate = value
	case FieldEndDate:
		exp.EndDate = value
	case FieldResponsibilities:
		exp.Responsibilities = strings.Split(value, "\n")
	default:
		return data, unknownField("experience", field)
	}
	return out, nil
}

// SetEducationField sets one field of the education entry at index
func SetEducationField(data types.ResumeData, index int, field, value string) (types.ResumeData, error) {
	if index < 0 || index >= len(data.Education) {
		return data, &IndexError{Section: "education", Index: index, Length: len(data.Education)}
	}

	out := data.Clone()
	edu := &out.Education[index]
	switch field {
	case FieldDegree:
		edu.Degree = value
	case FieldInstitution:
		edu.Institution = value
	case FieldLocation:
		edu.Location = value
	case FieldGraduationDate:
		edu.GraduationDate = value
	default:
		return data, unknownField("education", field)
	}
	return out, nil
}

// AddExperience appends an empty experience entry with a fresh id.
// It returns the new resume and the id of the added entry.
func AddExperience(data types.ResumeData, ids IDGenerator) (types.ResumeData, string) {
	out := data.Clone()
	id := ids.ExperienceID()
	out.Experience = append(out.Experience, types.Experience{
		ID:               id,
		Responsibilities: []string{},
	})
	return out, id
}

// AddEducation appends an empty education entry with a fresh id
func AddEducation(data types.ResumeData, ids IDGenerator) (types.ResumeData, string) {
	out := data.Clone()
	id := ids.EducationID()
	out.Education = append(out.Education, types.Education{ID: id})
	return out, id
}

// RemoveExperience removes the experience entry with the given id
func RemoveExperience(data types.ResumeData, id string) (types.ResumeData, error) {
	out := data.Clone()
	kept := make([]types.Experience, 0, len(out.Experience))
	for _, exp := range out.Experience {
		if exp.ID != id {
			kept = append(kept, exp)
		}
	}
	if len(kept) == len(out.Experience) {
		return data, &NotFoundError{Section: "experience", ID: id}
	}
	out.Experience = kept
	return out, nil
}

// RemoveEducation removes the education entry with the given id
func RemoveEducation(data types.ResumeData, id string) (types.ResumeData, error) {
	out := data.Clone()
	kept := make([]types.Education, 0, len(out.Education))
	for _, edu := range out.Education {
		if edu.ID != id {
			kept = append(kept, edu)
		}
	}
	if len(kept) == len(out.Education) {
		return data, &NotFoundError{Section: "education", ID: id}
	}
	out.Education = kept
	return out, nil
}

// SetSkillsFromText replaces the skills with the comma-separated items of
// text, each trimmed. Empty items are kept so that typing "Go, " does not
// lose the trailing separator while editing.
func SetSkillsFromText(data types.ResumeData, text string) types.ResumeData {
	parts := strings.Split(text, ",")
	skills := make([]string, len(parts))
	for i, part := range parts {
		skills[i] = strings.TrimSpace(part)
	}
	return SetSkills(data, skills)
}

// SetSkills replaces the skills list
func SetSkills(data types.ResumeData, skills []string) types.ResumeData {
	out := data.Clone()
	out.Skills = append([]string{}, skills...)
	return out
}

// SkillsText joins skills back into the comma-separated editing form
func SkillsText(data types.ResumeData) string {
	return strings.Join(data.Skills, ", ")
}

// SetCustomizationField sets a font option or toggles section highlighting.
// Font values must be among the offered options.
func SetCustomizationField(data types.ResumeData, field, value string) (types.ResumeData, error) {
	out := data.Clone()
	c := &out.Customization
	switch field {
	case FieldNameFontFamily:
		if !types.IsOfferedFontFamily(value) {
			return data, &FieldError{Section: "customization", Field: field, Message: "unsupported font family " + strconv.Quote(value)}
		}
		c.NameFontFamily = value
	case FieldNameFontSize:
		if !types.IsOfferedFontSize(value) {
			return data, &FieldError{Section: "customization", Field: field, Message: "unsupported font size " + strconv.Quote(value)}
		}
		c.NameFontSize = value
	case FieldHighlightSections:
		on, err := strconv.ParseBool(value)
		if err != nil {
			return data, &FieldError{Section: "customization", Field: field, Message: "value must be true or false"}
		}
		c.HighlightSections = on
	default:
		return data, unknownField("customization", field)
	}
	return out, nil
}

// SetLayout sets one of the two layout flags
func SetLayout(data types.ResumeData, field string, on bool) (types.ResumeData, error) {
	out := data.Clone()
	switch field {
	case FieldSidebar:
		out.Customization.Layout.Sidebar = on
	case FieldTwoColumn:
		out.Customization.Layout.TwoColumn = on
	default:
		return data, unknownField("layout", field)
	}
	return out, nil
}

// ApplyImport replaces each field present in parsed and leaves the rest of
// data untouched. Present lists replace the current lists wholesale.
func ApplyImport(data types.ResumeData, parsed types.ParsedResume) types.ResumeData {
	out := data.Clone()
	if parsed.PersonalInfo != nil {
		out.PersonalInfo = *parsed.PersonalInfo
	}
	if parsed.Experience != nil {
		out.Experience = make([]types.Experience, len(*parsed.Experience))
		for i, exp := range *parsed.Experience {
			out.Experience[i] = exp.Clone()
		}
	}
	if parsed.Education != nil {
		out.Education = append([]types.Education{}, *parsed.Education...)
	}
	if parsed.Skills != nil {
		out.Skills = append([]string{}, *parsed.Skills...)
	}
	return out
}

// ApplyGeneratedSummary replaces the summary with generated content
func ApplyGeneratedSummary(data types.ResumeData, content string) types.ResumeData {
	out, _ := SetPersonalField(data, FieldSummary, content)
	return out
}

// HasLearnableEdit reports whether an AI-generated original exists and the
// current text differs from it.
func HasLearnableEdit(original, current string) bool {
	return original != "" && original != current
}

func unknownField(section, field string) *FieldError {
	return &FieldError{Section: section, Field: field, Message: "unknown field"}
}
