// Package summary parses the semi-structured text the summarization engine
// returns. The engine's output format is untrusted: when nothing looks like
// a bullet list the parser yields an empty list, never an error.
package summary

import (
	"strings"
	"unicode"
)

var bulletMarkers = []string{"-", "*", "•", "–"}

// KeyPoints extracts bullet lines from generated text. It accepts the common
// bullet markers with or without a trailing space, and numbered bullets like
// "1. ..." or "2) ...". Lines that match no marker are ignored; an output
// with no recognizable bullets produces an empty (non-nil) slice.
func KeyPoints(text string) []string {
	points := []string{}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if p, ok := stripBullet(line); ok && p != "" {
			points = append(points, p)
		}
	}
	return points
}

func stripBullet(line string) (string, bool) {
	for _, m := range bulletMarkers {
		if !strings.HasPrefix(line, m) {
			continue
		}
		rest := line[len(m):]
		// a doubled marker ("**bold**", "--") is formatting, not a bullet
		if strings.HasPrefix(rest, m) {
			continue
		}
		return strings.TrimSpace(rest), true
	}
	return stripNumber(line)
}

// stripNumber handles numbered bullets: one or more digits followed by "."
// or ")".
func stripNumber(line string) (string, bool) {
	i := 0
	for i < len(line) && unicode.IsDigit(rune(line[i])) {
		i++
	}
	if i == 0 || i >= len(line) {
		return "", false
	}
	if line[i] != '.' && line[i] != ')' {
		return "", false
	}
	return strings.TrimSpace(line[i+1:]), true
}
