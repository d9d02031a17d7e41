// Package llm - shape.go describes the JSON shape a prompt must answer with.
package llm

import (
	"fmt"
	"strings"
)

// OutputShape declares the fields a model response must contain
type OutputShape struct {
	Name   string       // Shape name (e.g., "SuggestKeywordsOutput")
	Fields []ShapeField // Expected output fields, in order
}

// ShapeField is a single field of an OutputShape
type ShapeField struct {
	Name        string // JSON field name
	Type        string // Type hint written into the prompt, e.g. `["string"]`
	Description string // Description for the model
	Required    bool   // Whether the field must be present
}

// BuildShapePrompt appends the output shape and the JSON-only instruction to prompt
func BuildShapePrompt(prompt string, shape OutputShape) string {
	var sb strings.Builder

	sb.WriteString(strings.TrimRight(prompt, "\n"))
	sb.WriteString("\n\n")

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range shape.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = `"string"`
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(shape.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	sb.WriteString("Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n")
	return sb.String()
}
