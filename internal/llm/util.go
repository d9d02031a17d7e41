// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import "strings"

// CleanJSONBlock extracts the JSON payload from a model response.
// Models often wrap JSON in ```json ... ``` fences, or surround it with a
// conversational preamble and closing remarks, even when asked not to.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = stripFence(text)
	}

	if text == "" || text[0] == '{' || text[0] == '[' {
		if extracted := extractJSON(text); extracted != "" {
			return extracted
		}
		return text
	}

	// Preamble: start at the first opening brace or bracket
	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return text
	}
	if extracted := extractJSON(text[start:]); extracted != "" {
		return extracted
	}
	return text
}

// stripFence removes a leading ``` fence, its language tag and the closing fence
func stripFence(text string) string {
	text = strings.TrimPrefix(text, "```")
	if idx := strings.Index(text, "\n"); idx >= 0 {
		firstLine := text[:idx]
		// A short first line without spaces or braces is a language identifier
		if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
			text = text[idx+1:]
		}
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

func extractJSON(text string) string {
	if strings.HasPrefix(text, "[") {
		return extractJSONArray(text)
	}
	return extractJSONObject(text)
}

// extractJSONObject returns the balanced {...} prefix of text, or "" when text
// does not start with an object.
func extractJSONObject(text string) string {
	return extractBalanced(text, '{', '}')
}

// extractJSONArray returns the balanced [...] prefix of text, or "" when text
// does not start with an array.
func extractJSONArray(text string) string {
	return extractBalanced(text, '[', ']')
}

// extractBalanced scans from an opening delimiter to its matching close,
// ignoring delimiters inside string literals.
func extractBalanced(text string, open, closing byte) string {
	if len(text) == 0 || text[0] != open {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return text[:i+1]
			}
		}
	}
	return ""
}
