package view

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// PromptSuggestion is a command suggestion entry.
type PromptSuggestion struct {
	Name        string
	Description string
}

// PromptLine renders the prompt input with its best suggestion.
func PromptLine(value, cursor string, suggestions []PromptSuggestion) string {
	line := "> " + value + cursor
	if len(suggestions) > 0 {
		names := make([]string, 0, len(suggestions))
		for _, s := range suggestions {
			names = append(names, s.Name)
		}
		line += "   " + strings.Join(names, " ") + " · " + suggestions[0].Description
	}
	return line
}

// WrapText wraps s at word boundaries so no line exceeds width cells.
// Words longer than width are split.
func WrapText(s string, width int) []string {
	if width <= 0 {
		return []string{""}
	}

	var lines []string
	for _, paragraph := range strings.Split(s, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		var line string
		for _, word := range words {
			for runewidth.StringWidth(word) > width {
				if line != "" {
					lines = append(lines, line)
					line = ""
				}
				head := runewidth.Truncate(word, width, "")
				lines = append(lines, head)
				word = word[len(head):]
			}
			switch {
			case line == "":
				line = word
			case runewidth.StringWidth(line)+1+runewidth.StringWidth(word) <= width:
				line += " " + word
			default:
				lines = append(lines, line)
				line = word
			}
		}
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
