package rendering

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderDoc(t *testing.T, variant Variant, data types.ResumeData) *goquery.Document {
	t.Helper()
	html, err := RenderHTML(variant, data)
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func allLayouts() []types.Layout {
	return []types.Layout{{}, {Sidebar: true}, {TwoColumn: true}, {Sidebar: true, TwoColumn: true}}
}

func TestRenderHTML_ExperienceGatedOnFirstEntry(t *testing.T) {
	for _, variant := range Variants {
		for _, layout := range allLayouts() {
			data := types.DefaultResumeData()
			data.Customization.Layout = layout

			data.Experience = []types.Experience{{ID: "a", JobTitle: ""}}
			doc := renderDoc(t, variant, data)
			assert.Zero(t, doc.Find(".section-experience").Length(), "%s %+v: blank first entry", variant, layout)

			data.Experience = []types.Experience{{ID: "a", JobTitle: "Engineer"}, {ID: "b", JobTitle: ""}}
			doc = renderDoc(t, variant, data)
			assert.Equal(t, 1, doc.Find(".section-experience").Length(), "%s %+v", variant, layout)
			assert.Equal(t, 2, doc.Find(".section-experience .experience-entry").Length(), "%s %+v: every entry shown", variant, layout)
		}
	}
}

func TestRenderHTML_EducationAndSkillsGating(t *testing.T) {
	for _, variant := range Variants {
		data := types.DefaultResumeData()
		data.Education = []types.Education{{ID: "e", Degree: ""}, {ID: "f", Degree: "PhD"}}
		data.Skills = nil
		data.PersonalInfo.Summary = ""

		doc := renderDoc(t, variant, data)
		assert.Zero(t, doc.Find(".section-education").Length(), variant)
		assert.Zero(t, doc.Find(".section-skills").Length(), variant)
		assert.Zero(t, doc.Find(".section-summary").Length(), variant)
		assert.Equal(t, 1, doc.Find(".section-experience").Length(), variant)
	}
}

func TestRenderHTML_NameFallback(t *testing.T) {
	data := types.DefaultResumeData()
	data.PersonalInfo.Name = ""

	for _, variant := range Variants {
		doc := renderDoc(t, variant, data)
		assert.Equal(t, "Your Name", doc.Find("h1.name").Text(), variant)
	}
}

func TestRenderHTML_ModernSidebarShowsSkillsTwice(t *testing.T) {
	doc := renderDoc(t, VariantModern, withLayout(true, false))

	assert.Equal(t, 1, doc.Find("aside.resume-sidebar .section-skills").Length())
	assert.Equal(t, 1, doc.Find("main.resume-main .section-skills").Length())
	assert.Equal(t, 1, doc.Find("aside.resume-sidebar h1.name").Length())
	assert.Zero(t, doc.Find("header.resume-header").Length())
}

func TestRenderHTML_ModernSidebarWithTwoColumns(t *testing.T) {
	doc := renderDoc(t, VariantModern, withLayout(true, true))

	root := doc.Find(".resume")
	assert.True(t, root.HasClass("layout-sidebar"))
	assert.Equal(t, 1, doc.Find("aside.resume-sidebar .section-skills").Length())
	assert.Equal(t, 1, doc.Find("main.resume-main > .section-summary").Length())
	assert.Equal(t, 1, doc.Find("main.resume-main .column-main .section-experience").Length())
	assert.Equal(t, 1, doc.Find("main.resume-main .column-side .section-education").Length())
	assert.Equal(t, 1, doc.Find("main.resume-main .column-side .section-skills").Length())
}

func TestRenderHTML_ClassicTwoColumn(t *testing.T) {
	doc := renderDoc(t, VariantClassic, withLayout(false, true))

	root := doc.Find(".resume")
	assert.True(t, root.HasClass("resume-classic"))
	assert.True(t, root.HasClass("layout-two-column"))
	assert.Equal(t, 1, doc.Find(".column-main .section-experience").Length())
	assert.Equal(t, 1, doc.Find(".column-side .section-skills").Length())
	assert.Equal(t, 1, doc.Find(".column-side .section-education").Length())
	assert.Equal(t, 1, doc.Find("header.resume-header h1.name").Length())
}

func TestRenderHTML_CreativeHeadings(t *testing.T) {
	doc := renderDoc(t, VariantCreative, types.DefaultResumeData())

	assert.Equal(t, "Professional Summary", doc.Find(".section-summary h2").Text())
	assert.Equal(t, "Work Experience", doc.Find(".section-experience h2").Text())
	assert.Equal(t, 1, doc.Find("aside.resume-sidebar .section-education").Length())
}

func TestRenderHTML_Highlight(t *testing.T) {
	data := types.DefaultResumeData()
	doc := renderDoc(t, VariantModern, data)
	assert.Zero(t, doc.Find(".section-heading.highlight").Length())

	data.Customization.HighlightSections = true
	doc = renderDoc(t, VariantModern, data)
	assert.Equal(t, doc.Find(".section-heading").Length(), doc.Find(".section-heading.highlight").Length())
	assert.Positive(t, doc.Find(".section-heading").Length())
}

func TestRenderHTML_EscapesContent(t *testing.T) {
	data := types.DefaultResumeData()
	data.PersonalInfo.Name = `<script>alert("x")</script>`
	data.Skills = []string{"C++ & <Go>"}

	html, err := RenderHTML(VariantModern, data)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	assert.Equal(t, `<script>alert("x")</script>`, doc.Find("h1.name").Text())
	assert.Equal(t, "C++ & <Go>", doc.Find(".section-skills .skill").Text())
}

func TestRenderHTML_NameStyle(t *testing.T) {
	data := types.DefaultResumeData()
	data.Customization.NameFontFamily = types.FontMonospace
	data.Customization.NameFontSize = types.FontSizeLarge
	doc := renderDoc(t, VariantClassic, data)
	style, _ := doc.Find("h1.name").Attr("style")
	assert.Contains(t, style, "monospace")
	assert.Contains(t, style, "2.25rem")

	data.Customization.NameFontFamily = "red; background: url(x)"
	doc = renderDoc(t, VariantClassic, data)
	style, _ = doc.Find("h1.name").Attr("style")
	assert.Contains(t, style, "Space Grotesk")
	assert.NotContains(t, style, "url")
}

func TestRenderHTML_ContactSkipsEmptyFields(t *testing.T) {
	data := types.DefaultResumeData()
	data.PersonalInfo.Website = ""
	doc := renderDoc(t, VariantModern, data)

	assert.Equal(t, 3, doc.Find(".contact li").Length())
	assert.Zero(t, doc.Find(".contact .website").Length())
}

func TestRenderHTML_UnknownVariant(t *testing.T) {
	_, err := RenderHTML(Variant("retro"), types.DefaultResumeData())
	var templateErr *TemplateError
	assert.ErrorAs(t, err, &templateErr)
}
