package rendering

import (
	"embed"
	"html/template"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

//go:embed templates/*.tmpl
var templateFiles embed.FS

var resumeTemplate = template.Must(
	template.New("resume.html.tmpl").
		Funcs(template.FuncMap{"part": newSectionView}).
		ParseFS(templateFiles, "templates/resume.html.tmpl"),
)

// view is the data passed to the resume template
type view struct {
	Layout    Layout
	Data      types.ResumeData
	Name      string
	NameStyle template.CSS
}

// sectionView is one section of a view, as seen by the "section" template
type sectionView struct {
	Root    *view
	Section Section
}

func newSectionView(root *view, section Section) sectionView {
	return sectionView{Root: root, Section: section}
}

// Heading returns the variant's title for the section
func (s sectionView) Heading() string {
	return s.Root.Layout.Headings[s.Section]
}

func newView(variant Variant, data types.ResumeData) (*view, error) {
	layout, err := BuildLayout(variant, data)
	if err != nil {
		return nil, err
	}
	return &view{
		Layout:    layout,
		Data:      data,
		Name:      DisplayName(data),
		NameStyle: nameStyle(data.Customization),
	}, nil
}

// nameStyle builds the inline style for the name heading. Only offered
// font options are written into CSS; anything else falls back to the defaults.
func nameStyle(c types.Customization) template.CSS {
	family := c.NameFontFamily
	if !types.IsOfferedFontFamily(family) {
		family = types.FontSpaceGrotesk
	}
	size := c.NameFontSize
	if !types.IsOfferedFontSize(size) {
		size = types.FontSizeXLarge
	}
	return template.CSS("font-family: " + family + "; font-size: " + size)
}

func execute(name string, variant Variant, data types.ResumeData) (string, error) {
	v, err := newView(variant, data)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if err := resumeTemplate.ExecuteTemplate(&sb, name, v); err != nil {
		return "", &TemplateError{Message: "failed to execute " + name + " template", Cause: err}
	}
	return sb.String(), nil
}

// RenderHTML renders the resume body for variant as an HTML fragment.
// All resume text is escaped.
func RenderHTML(variant Variant, data types.ResumeData) (string, error) {
	return execute("resume", variant, data)
}
