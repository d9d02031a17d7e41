package analytics

import (
	"testing"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, variant rendering.Variant, data types.ResumeData) string {
	t.Helper()
	html, err := rendering.RenderHTML(variant, data)
	require.NoError(t, err)
	return html
}

func TestCheckATS_SingleColumnPasses(t *testing.T) {
	data := types.DefaultResumeData()
	data.Customization.NameFontFamily = types.FontInter

	report, err := CheckATS(render(t, rendering.VariantModern, data))
	require.NoError(t, err)

	assert.Equal(t, VerdictHigh, report.Verdict)
	assert.True(t, report.Passes)
	assert.Zero(t, report.Warnings())
	assert.Empty(t, report.MissingHeadings)
	assert.ElementsMatch(t, []string{"Summary", "Experience", "Education", "Skills"}, report.Headings)
	assert.Equal(t, "Uses a standard, readable font.", report.Findings[0].Details)
}

func TestCheckATS_SidebarWarns(t *testing.T) {
	data := types.DefaultResumeData()
	data.Customization.Layout.Sidebar = true

	report, err := CheckATS(render(t, rendering.VariantClassic, data))
	require.NoError(t, err)

	assert.Equal(t, 1, report.Warnings())
	assert.Equal(t, VerdictMedium, report.Verdict)
	assert.Equal(t, "columns", report.Findings[len(report.Findings)-1].Type)
}

func TestCheckATS_CreativeHeadingsStillCount(t *testing.T) {
	report, err := CheckATS(render(t, rendering.VariantCreative, types.DefaultResumeData()))
	require.NoError(t, err)

	assert.Contains(t, report.Headings, "Work Experience")
	assert.Empty(t, report.MissingHeadings)
}

func TestCheckATS_MissingSectionsAndTables(t *testing.T) {
	html := `<div class="resume layout-two-column"><h1 class="name">A</h1><h2>Hobbies</h2><table><tr><td>x</td></tr></table></div>`

	report, err := CheckATS(html)
	require.NoError(t, err)

	assert.Equal(t, []string{"Experience", "Education", "Skills"}, report.MissingHeadings)
	assert.Equal(t, 3, report.Warnings())
	assert.Equal(t, VerdictLow, report.Verdict)
	assert.False(t, report.Passes)
}

func TestCheckATS_DisplayFontIsInformational(t *testing.T) {
	report, err := CheckATS(render(t, rendering.VariantModern, types.DefaultResumeData()))
	require.NoError(t, err)

	assert.Equal(t, SeverityInfo, report.Findings[0].Severity)
	assert.Contains(t, report.Findings[0].Details, "display font")
}

func TestCheckATS_FontNeverChangesVerdict(t *testing.T) {
	display := types.DefaultResumeData()
	standard := types.DefaultResumeData()
	standard.Customization.NameFontFamily = types.FontInter

	for _, variant := range rendering.Variants {
		withDisplay, err := CheckATS(render(t, variant, display))
		require.NoError(t, err)
		withStandard, err := CheckATS(render(t, variant, standard))
		require.NoError(t, err)

		assert.NotEqual(t, withDisplay.Findings[0].Details, withStandard.Findings[0].Details, variant)
		assert.Equal(t, withStandard.Warnings(), withDisplay.Warnings(), variant)
		assert.Equal(t, withStandard.Verdict, withDisplay.Verdict, variant)
	}
}
