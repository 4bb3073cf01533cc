// ABOUTME: Time utility functions for episode durations
// ABOUTME: Parses the loose duration formats found in podcast feeds and formats them for display

package timeutil

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseDuration converts a feed duration string to whole seconds.
// Feeds encode durations as plain seconds ("1845"), "MM:SS" or "HH:MM:SS".
// Returns false for empty or unparseable input.
func ParseDuration(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}

	parts := strings.Split(raw, ":")
	if len(parts) > 3 {
		return 0, false
	}

	total := 0
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			return 0, false
		}
		total = total*60 + n
	}

	return total, true
}

// FormatDuration renders seconds as "H:MM:SS" or "MM:SS" for display.
func FormatDuration(seconds int) string {
	if seconds <= 0 {
		return "--:--"
	}

	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
