package rendering

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// Variant names a resume template
type Variant string

// Template variants
const (
	VariantModern   Variant = "modern"
	VariantClassic  Variant = "classic"
	VariantCreative Variant = "creative"
)

// Variants lists the templates in display order
var Variants = []Variant{VariantModern, VariantClassic, VariantCreative}

// DefaultVariant is used when no template is requested
const DefaultVariant = VariantModern

// ParseVariant resolves a template name. An empty name selects DefaultVariant.
func ParseVariant(name string) (Variant, error) {
	if name == "" {
		return DefaultVariant, nil
	}
	v := Variant(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Variants {
		if v == known {
			return v, nil
		}
	}
	return "", &TemplateError{Message: fmt.Sprintf("unknown template %q", name)}
}

// Section is one block of a rendered resume
type Section string

// Sections
const (
	SectionName       Section = "name"
	SectionContact    Section = "contact"
	SectionSummary    Section = "summary"
	SectionExperience Section = "experience"
	SectionEducation  Section = "education"
	SectionSkills     Section = "skills"
)

// ColumnMode describes how the body is arranged
type ColumnMode string

// Column modes
const (
	ColumnsStacked ColumnMode = "stacked"
	ColumnsTwo     ColumnMode = "two-column"
	ColumnsSidebar ColumnMode = "sidebar"
)

// FallbackName is shown when the resume has no name
const FallbackName = "Your Name"

// Layout is the arrangement of sections for one variant and one resume.
// Header spans the page above everything else, Sidebar runs beside the
// body, Intro spans the body above the columns, and Main and Side are the
// body columns. Side is empty unless the body is split into two columns,
// which modern also does beside its sidebar.
type Layout struct {
	Variant   Variant
	Columns   ColumnMode
	Header    []Section
	Sidebar   []Section
	Intro     []Section
	Main      []Section
	Side      []Section
	Headings  map[Section]string
	Highlight bool
}

// placement is the ungated section arrangement for one combination of flags
type placement struct {
	columns ColumnMode
	header  []Section
	sidebar []Section
	intro   []Section
	main    []Section
	side    []Section
}

var (
	identity = []Section{SectionName, SectionContact}
	allBody  = []Section{SectionSummary, SectionExperience, SectionEducation, SectionSkills}
)

// rules maps each variant to its arrangement for the layout flags. Modern
// splits the body beside its sidebar when both flags are set; classic lets
// the sidebar win.
var rules = map[Variant]func(types.Layout) placement{
	VariantModern: func(l types.Layout) placement {
		switch {
		case l.Sidebar && l.TwoColumn:
			return placement{
				columns: ColumnsSidebar,
				sidebar: []Section{SectionName, SectionContact, SectionSkills},
				intro:   []Section{SectionSummary},
				main:    []Section{SectionExperience},
				side:    []Section{SectionEducation, SectionSkills},
			}
		case l.Sidebar:
			return placement{
				columns: ColumnsSidebar,
				sidebar: []Section{SectionName, SectionContact, SectionSkills},
				main:    allBody,
			}
		case l.TwoColumn:
			return placement{
				columns: ColumnsTwo,
				header:  identity,
				intro:   []Section{SectionSummary},
				main:    []Section{SectionExperience},
				side:    []Section{SectionEducation, SectionSkills},
			}
		default:
			return placement{columns: ColumnsStacked, header: identity, main: allBody}
		}
	},
	VariantClassic: func(l types.Layout) placement {
		switch {
		case l.Sidebar:
			return placement{
				columns: ColumnsSidebar,
				sidebar: []Section{SectionName, SectionContact, SectionSkills, SectionEducation},
				main:    []Section{SectionSummary, SectionExperience},
			}
		case l.TwoColumn:
			return placement{
				columns: ColumnsTwo,
				header:  identity,
				intro:   []Section{SectionSummary},
				main:    []Section{SectionExperience},
				side:    []Section{SectionSkills, SectionEducation},
			}
		default:
			return placement{columns: ColumnsStacked, header: identity, main: allBody}
		}
	},
	VariantCreative: func(types.Layout) placement {
		return placement{
			columns: ColumnsSidebar,
			sidebar: []Section{SectionName, SectionContact, SectionSkills, SectionEducation},
			main:    []Section{SectionSummary, SectionExperience},
		}
	},
}

var defaultHeadings = map[Section]string{
	SectionSummary:    "Summary",
	SectionExperience: "Experience",
	SectionEducation:  "Education",
	SectionSkills:     "Skills",
	SectionContact:    "Contact",
}

var creativeHeadings = map[Section]string{
	SectionSummary:    "Professional Summary",
	SectionExperience: "Work Experience",
	SectionEducation:  "Education",
	SectionSkills:     "Skills",
	SectionContact:    "Contact",
}

// BuildLayout arranges the visible sections of data for variant. It is
// pure: the same inputs always give the same layout.
func BuildLayout(variant Variant, data types.ResumeData) (Layout, error) {
	rule, ok := rules[variant]
	if !ok {
		return Layout{}, &TemplateError{Message: fmt.Sprintf("unknown template %q", variant)}
	}
	p := rule(data.Customization.Layout)

	headings := defaultHeadings
	if variant == VariantCreative {
		headings = creativeHeadings
	}

	return Layout{
		Variant:   variant,
		Columns:   p.columns,
		Header:    visible(p.header, data),
		Sidebar:   visible(p.sidebar, data),
		Intro:     visible(p.intro, data),
		Main:      visible(p.main, data),
		Side:      visible(p.side, data),
		Headings:  headings,
		Highlight: data.Customization.HighlightSections,
	}, nil
}

// Sections returns every visible section once, in reading order
func (l Layout) Sections() []Section {
	var out []Section
	seen := make(map[Section]bool)
	for _, group := range [][]Section{l.Header, l.Sidebar, l.Intro, l.Main, l.Side} {
		for _, s := range group {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}

// Has reports whether section is visible anywhere in the layout
func (l Layout) Has(section Section) bool {
	for _, s := range l.Sections() {
		if s == section {
			return true
		}
	}
	return false
}

func visible(sections []Section, data types.ResumeData) []Section {
	out := make([]Section, 0, len(sections))
	for _, s := range sections {
		if IsVisible(s, data) {
			out = append(out, s)
		}
	}
	return out
}

// IsVisible applies the gating rules. A list section is shown only when its
// first entry is filled in; once shown, every entry is rendered.
func IsVisible(section Section, data types.ResumeData) bool {
	switch section {
	case SectionName:
		return true
	case SectionContact:
		p := data.PersonalInfo
		return p.Email != "" || p.Phone != "" || p.LinkedIn != "" || p.Website != ""
	case SectionSummary:
		return data.PersonalInfo.Summary != ""
	case SectionExperience:
		return len(data.Experience) > 0 && data.Experience[0].JobTitle != ""
	case SectionEducation:
		return len(data.Education) > 0 && data.Education[0].Degree != ""
	case SectionSkills:
		return len(data.Skills) > 0
	default:
		return false
	}
}

// DisplayName returns the resume name, or FallbackName when it is empty.
// A name of only spaces is kept as typed.
func DisplayName(data types.ResumeData) string {
	if data.PersonalInfo.Name != "" {
		return data.PersonalInfo.Name
	}
	return FallbackName
}
