package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain object",
			input: `{"keywords": ["Go", "SQL"]}`,
			want:  `{"keywords": ["Go", "SQL"]}`,
		},
		{
			name:  "json fence",
			input: "```json\n{\"similarityScore\": 0.8}\n```",
			want:  `{"similarityScore": 0.8}`,
		},
		{
			name:  "bare fence",
			input: "```\n{\"success\": true}\n```",
			want:  `{"success": true}`,
		},
		{
			name:  "fence opening on the object itself",
			input: "```{\"progress\": \"done\"}```",
			want:  `{"progress": "done"}`,
		},
		{
			name:  "preamble and sign-off",
			input: "Here is the summary you asked for:\n\n{\"resumeContent\": \"Builder of APIs.\"}\n\nGood luck with the application!",
			want:  `{"resumeContent": "Builder of APIs."}`,
		},
		{
			name:  "top-level array after preamble",
			input: "Keywords:\n[\"Terraform\", \"AWS\"]",
			want:  `["Terraform", "AWS"]`,
		},
		{
			name:  "fence inside prose",
			input: "Sure!\n```json\n{\"keywords\": [\"Go\", \"Kafka\"]}\n```\nHope this helps.",
			want:  `{"keywords": ["Go", "Kafka"]}`,
		},
		{
			name:  "no JSON at all",
			input: "  I could not read that PDF. ",
			want:  "I could not read that PDF.",
		},
		{
			name:  "unbalanced object is returned as is",
			input: `{"suggestions": "Add metrics"`,
			want:  `{"suggestions": "Add metrics"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanJSONBlock(tt.input))
		})
	}
}

// Delimiters inside string values must not end the payload early.
func TestCleanJSONBlock_StringAware(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "closing brace in a suggestion",
			input: `Result: {"suggestions": "Wrap config in {braces}} like this"} trailing`,
			want:  `{"suggestions": "Wrap config in {braces}} like this"}`,
		},
		{
			name:  "brackets in a skill name",
			input: `["C++ [STL]", "Go"] extra`,
			want:  `["C++ [STL]", "Go"]`,
		},
		{
			name:  "escaped quote before a brace",
			input: `{"resumeContent": "Known as \"the fixer}\" at Acme"} done`,
			want:  `{"resumeContent": "Known as \"the fixer}\" at Acme"}`,
		},
		{
			name:  "escaped backslash ends the string",
			input: `{"path": "C:\\"} {"second": true}`,
			want:  `{"path": "C:\\"}`,
		},
		{
			name:  "non-ASCII text",
			input: `Voilà: {"summary": "Ingénieure - café {été}"}`,
			want:  `{"summary": "Ingénieure - café {été}"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanJSONBlock(tt.input)
			assert.Equal(t, tt.want, got)
			assert.True(t, json.Valid([]byte(got)), "extracted payload is valid JSON: %s", got)
		})
	}
}

func TestCleanJSONBlock_ParsedResumeAnswer(t *testing.T) {
	answer := "```json\n" + `{
  "personalInfo": {"name": "Ada Lovelace", "summary": "Analyst {first programmer}"},
  "experience": [{"jobTitle": "Analyst", "company": "Engines [Ltd]", "responsibilities": ["Wrote notes"]}],
  "skills": ["Mathematics"]
}` + "\n```"

	var parsed struct {
		PersonalInfo struct {
			Name    string `json:"name"`
			Summary string `json:"summary"`
		} `json:"personalInfo"`
		Experience []struct {
			Company string `json:"company"`
		} `json:"experience"`
		Skills []string `json:"skills"`
	}
	require.NoError(t, json.Unmarshal([]byte(CleanJSONBlock(answer)), &parsed))
	assert.Equal(t, "Ada Lovelace", parsed.PersonalInfo.Name)
	assert.Equal(t, "Analyst {first programmer}", parsed.PersonalInfo.Summary)
	require.Len(t, parsed.Experience, 1)
	assert.Equal(t, "Engines [Ltd]", parsed.Experience[0].Company)
	assert.Equal(t, []string{"Mathematics"}, parsed.Skills)
}

func TestExtractBalanced(t *testing.T) {
	assert.Equal(t, `{"a": {"b": 1}}`, extractJSONObject(`{"a": {"b": 1}} rest`))
	assert.Equal(t, `[[1], [2]]`, extractJSONArray(`[[1], [2]], 3`))
	assert.Empty(t, extractJSONObject(`["not an object"]`))
	assert.Empty(t, extractJSONArray(`{"not": "an array"}`))
	assert.Empty(t, extractJSONObject(""))
	assert.Empty(t, extractJSONObject(`{"open": "string never closes}`))
}

func TestStripFence(t *testing.T) {
	assert.Equal(t, `{"a": 1}`, stripFence("```json\n{\"a\": 1}\n```"))
	assert.Equal(t, "note here\n{}", stripFence("```note here\n{}\n```"), "a first line with spaces is content")
}
