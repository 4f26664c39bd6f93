package scoring

import (
	"regexp"
	"strings"
)

var (
	leadingFenceRegex  = regexp.MustCompile("(?i)^```(?:json)?\\s*")
	trailingFenceRegex = regexp.MustCompile("(?i)```\\s*$")
)

// SanitizeJSON extracts the JSON document from free-form model output:
// code fences are stripped, then only the substring from the first '{' or
// '[' to the last '}' or ']' is kept. This tolerates models that wrap JSON
// in prose or markdown. Blank input yields an empty object.
func SanitizeJSON(text string) string {
	if strings.TrimSpace(text) == "" {
		return "{}"
	}
	out := strings.TrimSpace(text)
	out = leadingFenceRegex.ReplaceAllString(out, "")
	out = trailingFenceRegex.ReplaceAllString(out, "")
	out = strings.ReplaceAll(out, "```", "")

	firstObj := strings.IndexByte(out, '{')
	firstArr := strings.IndexByte(out, '[')
	first := 0
	switch {
	case firstObj == -1 && firstArr == -1:
		// no JSON delimiters at all; leave as-is for the parser to reject
	case firstObj == -1:
		first = firstArr
	case firstArr == -1:
		first = firstObj
	default:
		first = min(firstObj, firstArr)
	}
	out = out[first:]

	lastBrace := strings.LastIndexByte(out, '}')
	lastBracket := strings.LastIndexByte(out, ']')
	if last := max(lastBrace, lastBracket); last >= 0 {
		out = out[:last+1]
	}
	return strings.TrimSpace(out)
}
