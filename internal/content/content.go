// ABOUTME: Show-notes processing for terminal display
// ABOUTME: Detects HTML episode descriptions and converts them to Markdown

package content

import (
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// htmlTagPattern matches common HTML tags found in episode show notes
var htmlTagPattern = regexp.MustCompile(`<\s*(p|div|span|a|br|img|h[1-6]|ul|ol|li|strong|em|b|i|code|pre|blockquote)[^>]*>`)

// IsHTML reports whether notes appear to be HTML.
func IsHTML(notes string) bool {
	if strings.Contains(notes, "<!DOCTYPE") || strings.Contains(notes, "<html") {
		return true
	}
	return htmlTagPattern.MatchString(notes)
}

// Render prepares episode show notes for display: HTML is converted to
// Markdown, plain text passes through trimmed. Conversion failures fall
// back to the original text.
func Render(notes string) string {
	notes = strings.TrimSpace(notes)
	if notes == "" || !IsHTML(notes) {
		return notes
	}

	markdown, err := htmltomarkdown.ConvertString(notes)
	if err != nil {
		return notes
	}

	return strings.TrimSpace(markdown)
}
