package runner

import (
	"strings"
	"unicode/utf8"

	"gemini-agent/internal/domain/entity"
)

const truncationMarker = "\n... (truncated)"

// ExtractText picks the readable answer out of a run: the text of the last
// final event, falling back to the most recent agent event with text.
func ExtractText(events []entity.Event) string {
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].Final {
			if text := firstText(events[i].Content); text != "" {
				return text
			}
		}
	}

	for i := len(events) - 1; i >= 0; i-- {
		if events[i].Author == entity.AuthorUser {
			continue
		}
		if text := firstText(events[i].Content); text != "" {
			return text
		}
	}

	return ""
}

func firstText(c *entity.Content) string {
	if c == nil {
		return ""
	}
	for _, p := range c.Parts {
		if strings.TrimSpace(p.Text) != "" {
			return p.Text
		}
	}
	return ""
}

// Summarize limits text to maxRunes runes. A non-positive limit disables it.
func Summarize(text string, maxRunes int) string {
	if maxRunes <= 0 || utf8.RuneCountInString(text) <= maxRunes {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxRunes]) + truncationMarker
}
