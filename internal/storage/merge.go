// Package storage persists ResumeData records in a key-value backend and
// backfills missing fields from the seed record on load.
package storage

import "github.com/jonathan/resume-builder/internal/types"

// PartialResume is a saved record as read from storage. A nil field was absent
// (or null) in the stored JSON and is backfilled on merge.
type PartialResume struct {
	PersonalInfo  *PartialPersonalInfo  `json:"personalInfo"`
	Experience    *[]types.Experience   `json:"experience"`
	Education     *[]types.Education    `json:"education"`
	Skills        *[]string             `json:"skills"`
	Customization *PartialCustomization `json:"customization"`
}

// PartialPersonalInfo is the optional form of types.PersonalInfo
type PartialPersonalInfo struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	LinkedIn *string `json:"linkedin"`
	Website  *string `json:"website"`
	Summary  *string `json:"summary"`
}

// PartialCustomization is the optional form of types.Customization
type PartialCustomization struct {
	NameFontFamily    *string        `json:"nameFontFamily"`
	NameFontSize      *string        `json:"nameFontSize"`
	Layout            *PartialLayout `json:"layout"`
	HighlightSections *bool          `json:"highlightSections"`
}

// PartialLayout is the optional form of types.Layout
type PartialLayout struct {
	Sidebar   *bool `json:"sidebar"`
	TwoColumn *bool `json:"twoColumn"`
}

// Merge overlays a saved record on defaults. Nested objects merge field by
// field; arrays are taken wholesale from the saved record when present.
// Neither argument is modified.
func Merge(saved PartialResume, defaults types.ResumeData) types.ResumeData {
	out := defaults.Clone()
	out.PersonalInfo = mergePersonalInfo(saved.PersonalInfo, defaults.PersonalInfo)
	out.Customization = mergeCustomization(saved.Customization, defaults.Customization)

	if saved.Experience != nil {
		out.Experience = make([]types.Experience, 0, len(*saved.Experience))
		for _, exp := range *saved.Experience {
			out.Experience = append(out.Experience, exp.Clone())
		}
	}
	if saved.Education != nil {
		out.Education = append([]types.Education{}, *saved.Education...)
	}
	if saved.Skills != nil {
		out.Skills = append([]string{}, *saved.Skills...)
	}
	return out
}

func mergePersonalInfo(saved *PartialPersonalInfo, def types.PersonalInfo) types.PersonalInfo {
	if saved == nil {
		return def
	}
	return types.PersonalInfo{
		Name:     pick(saved.Name, def.Name),
		Email:    pick(saved.Email, def.Email),
		Phone:    pick(saved.Phone, def.Phone),
		LinkedIn: pick(saved.LinkedIn, def.LinkedIn),
		Website:  pick(saved.Website, def.Website),
		Summary:  pick(saved.Summary, def.Summary),
	}
}

func mergeCustomization(saved *PartialCustomization, def types.Customization) types.Customization {
	if saved == nil {
		return def
	}
	return types.Customization{
		NameFontFamily:    pick(saved.NameFontFamily, def.NameFontFamily),
		NameFontSize:      pick(saved.NameFontSize, def.NameFontSize),
		Layout:            mergeLayout(saved.Layout, def.Layout),
		HighlightSections: pick(saved.HighlightSections, def.HighlightSections),
	}
}

func mergeLayout(saved *PartialLayout, def types.Layout) types.Layout {
	if saved == nil {
		return def
	}
	return types.Layout{
		Sidebar:   pick(saved.Sidebar, def.Sidebar),
		TwoColumn: pick(saved.TwoColumn, def.TwoColumn),
	}
}

func pick[T any](saved *T, def T) T {
	if saved == nil {
		return def
	}
	return *saved
}
