package storage

import (
	"encoding/json"
	"testing"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodePartial(t *testing.T, raw string) PartialResume {
	t.Helper()
	partial, err := Decode([]byte(raw))
	require.NoError(t, err)
	return partial
}

func TestMerge_EmptyRecordYieldsDefaults(t *testing.T) {
	merged := Merge(decodePartial(t, `{}`), types.DefaultResumeData())
	assert.Equal(t, types.DefaultResumeData(), merged)
}

func TestMerge_RoundTripOfCompleteRecord(t *testing.T) {
	record := types.DefaultResumeData()
	record.PersonalInfo.Name = "Ada Lovelace"
	record.PersonalInfo.LinkedIn = ""
	record.Experience = []types.Experience{{ID: "x", JobTitle: "Analyst", Responsibilities: []string{}}}
	record.Education = []types.Education{}
	record.Skills = []string{"Math"}
	record.Customization.Layout.Sidebar = true
	record.Customization.HighlightSections = true

	raw, err := json.Marshal(record)
	require.NoError(t, err)

	merged := Merge(decodePartial(t, string(raw)), types.DefaultResumeData())
	assert.Equal(t, record, merged)
}

func TestMerge_MissingNestedFieldsBackfilled(t *testing.T) {
	def := types.DefaultResumeData()
	partial := decodePartial(t, `{
		"personalInfo": {"name": "Sam"},
		"customization": {"nameFontSize": "2.25rem", "layout": {"twoColumn": true}}
	}`)

	merged := Merge(partial, def)

	assert.Equal(t, "Sam", merged.PersonalInfo.Name)
	assert.Equal(t, def.PersonalInfo.Email, merged.PersonalInfo.Email)
	assert.Equal(t, def.PersonalInfo.Summary, merged.PersonalInfo.Summary)
	assert.Equal(t, "2.25rem", merged.Customization.NameFontSize)
	assert.Equal(t, def.Customization.NameFontFamily, merged.Customization.NameFontFamily)
	assert.True(t, merged.Customization.Layout.TwoColumn)
	assert.Equal(t, def.Customization.Layout.Sidebar, merged.Customization.Layout.Sidebar)
	assert.Equal(t, def.Experience, merged.Experience)
	assert.Equal(t, def.Skills, merged.Skills)
}

func TestMerge_MissingTopLevelFieldTakesDefault(t *testing.T) {
	def := types.DefaultResumeData()
	fields := []string{"personalInfo", "experience", "education", "skills", "customization"}

	full, err := json.Marshal(types.ResumeData{
		PersonalInfo:  types.PersonalInfo{Name: "Other"},
		Experience:    []types.Experience{},
		Education:     []types.Education{},
		Skills:        []string{},
		Customization: types.Customization{NameFontSize: "2.25rem"},
	})
	require.NoError(t, err)

	for _, field := range fields {
		t.Run(field, func(t *testing.T) {
			var raw map[string]json.RawMessage
			require.NoError(t, json.Unmarshal(full, &raw))
			delete(raw, field)
			stripped, err := json.Marshal(raw)
			require.NoError(t, err)

			merged := Merge(decodePartial(t, string(stripped)), def)

			switch field {
			case "personalInfo":
				assert.Equal(t, def.PersonalInfo, merged.PersonalInfo)
			case "experience":
				assert.Equal(t, def.Experience, merged.Experience)
			case "education":
				assert.Equal(t, def.Education, merged.Education)
			case "skills":
				assert.Equal(t, def.Skills, merged.Skills)
			case "customization":
				assert.Equal(t, def.Customization, merged.Customization)
			}
		})
	}
}

func TestMerge_ArraysTakenWholesale(t *testing.T) {
	partial := decodePartial(t, `{
		"experience": [{"id": "only", "jobTitle": "Solo"}],
		"skills": []
	}`)

	merged := Merge(partial, types.DefaultResumeData())

	require.Len(t, merged.Experience, 1)
	assert.Equal(t, "only", merged.Experience[0].ID)
	assert.Empty(t, merged.Experience[0].Company, "elements are not merged with default entries")
	assert.NotNil(t, merged.Skills)
	assert.Empty(t, merged.Skills)
}

func TestMerge_NullTreatedAsMissing(t *testing.T) {
	def := types.DefaultResumeData()
	merged := Merge(decodePartial(t, `{"skills": null, "personalInfo": {"email": null}}`), def)

	assert.Equal(t, def.Skills, merged.Skills)
	assert.Equal(t, def.PersonalInfo.Email, merged.PersonalInfo.Email)
}

func TestMerge_DoesNotAliasInputs(t *testing.T) {
	def := types.DefaultResumeData()
	skills := []string{"Go"}
	merged := Merge(PartialResume{Skills: &skills}, def)

	merged.Skills[0] = "Rust"
	merged.Experience[0].Responsibilities[0] = "changed"

	assert.Equal(t, "Go", skills[0])
	assert.NotEqual(t, "changed", def.Experience[0].Responsibilities[0])
}

func TestDecode_RejectsNonObjects(t *testing.T) {
	for _, raw := range []string{`null`, `[]`, `"text"`, `{broken`} {
		_, err := Decode([]byte(raw))
		assert.Error(t, err, raw)
	}
}
