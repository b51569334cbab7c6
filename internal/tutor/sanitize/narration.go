// Package sanitize prepares model output for speech synthesis.
package sanitize

import (
	"regexp"
	"strings"
)

// markdownPatterns match formatting the speech engine would otherwise read aloud.
var markdownPatterns = []*regexp.Regexp{
	regexp.MustCompile("(?m)^```.*$"),           // code fences
	regexp.MustCompile(`(?m)^\s{0,3}#{1,6}\s*`), // headings
	regexp.MustCompile(`(?m)^\s*>\s?`),          // block quotes
	regexp.MustCompile(`(?m)^\s*[-*+]\s+`),      // bullets
	regexp.MustCompile(`\*{1,3}|_{2,3}|` + "`"), // emphasis and inline code
}

var linkPattern = regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`)

var blankLines = regexp.MustCompile(`\n{3,}`)

// Narration strips markdown markers from text while keeping its words and line structure.
func Narration(text string) string {
	result := linkPattern.ReplaceAllString(text, "$1")
	for _, pattern := range markdownPatterns {
		result = pattern.ReplaceAllString(result, "")
	}
	result = blankLines.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}
