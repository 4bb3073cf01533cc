// ABOUTME: Tests for show-notes HTML detection and Markdown conversion
// ABOUTME: Covers plain text passthrough and common HTML show-notes shapes

package content

import (
	"strings"
	"testing"
)

func TestIsHTML(t *testing.T) {
	tests := []struct {
		name  string
		notes string
		want  bool
	}{
		{"plain text", "Just some show notes about the episode.", false},
		{"angle brackets in prose", "use x < y and y > z", false},
		{"paragraph tag", "<p>Show notes</p>", true},
		{"link tag", `Check out <a href="https://example.com">the site</a>`, true},
		{"doctype", "<!DOCTYPE html><html><body>notes</body></html>", true},
		{"line break", "line one<br>line two", true},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsHTML(tt.notes); got != tt.want {
				t.Errorf("IsHTML(%q) = %v, want %v", tt.notes, got, tt.want)
			}
		})
	}
}

func TestRender_PlainTextPassthrough(t *testing.T) {
	got := Render("  Plain notes with trailing space.  ")
	if got != "Plain notes with trailing space." {
		t.Errorf("Render() = %q, want trimmed passthrough", got)
	}
}

func TestRender_ConvertsHTML(t *testing.T) {
	notes := `<p>In this episode we cover <strong>feed parsing</strong>.</p>
<ul><li>first topic</li><li>second topic</li></ul>`

	got := Render(notes)

	if strings.Contains(got, "<p>") || strings.Contains(got, "<li>") {
		t.Errorf("Render() left HTML tags in output: %q", got)
	}
	if !strings.Contains(got, "**feed parsing**") {
		t.Errorf("Render() = %q, want bold Markdown", got)
	}
	if !strings.Contains(got, "first topic") || !strings.Contains(got, "second topic") {
		t.Errorf("Render() dropped list content: %q", got)
	}
}

func TestRender_Empty(t *testing.T) {
	if got := Render("   "); got != "" {
		t.Errorf("Render() = %q, want empty", got)
	}
}
