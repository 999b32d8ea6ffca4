// Package extract pulls structured payloads out of free-form generated text.
// Extraction never fails; whether the result parses is the caller's concern.
package extract

import "strings"

const fence = "```"

// JSONArray returns the text of a JSON array found in s.
func JSONArray(s string) string {
	return sliceDelimited(s, '[', ']')
}

// JSONObject returns the text of a JSON object found in s.
func JSONObject(s string) string {
	return sliceDelimited(s, '{', '}')
}

// sliceDelimited keeps text that already starts with open. Fenced text is
// sliced from the first open to the last close delimiter. Unfenced prose and
// text without such a pair come back trimmed.
func sliceDelimited(s string, open, close byte) string {
	text := strings.TrimSpace(s)
	if text == "" || text[0] == open || !strings.Contains(text, fence) {
		return text
	}
	start := strings.IndexByte(text, open)
	end := strings.LastIndexByte(text, close)
	if start < 0 || end <= start {
		return text
	}
	return text[start : end+1]
}

// Diagram returns the body of a ```mermaid block, else of the first fenced
// block, else the trimmed input.
func Diagram(s string) string {
	text := strings.TrimSpace(s)
	if body, ok := fencedBody(text, fence+"mermaid"); ok {
		return body
	}
	if body, ok := fencedBody(text, fence); ok {
		return body
	}
	return text
}

func fencedBody(text, marker string) (string, bool) {
	start := strings.Index(text, marker)
	if start < 0 {
		return "", false
	}
	rest := text[start+len(marker):]
	// drop the rest of the opening line, e.g. a language tag
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[nl+1:]
	} else {
		return "", false
	}
	end := strings.Index(rest, fence)
	if end < 0 {
		return strings.TrimSpace(rest), true
	}
	return strings.TrimSpace(rest[:end]), true
}
