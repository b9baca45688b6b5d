// Package view provides rendering helpers for the TUI.
package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PlaceBox renders content in a w×h box whose whitespace carries bg.
func PlaceBox(w, h int, vAlign lipgloss.Position, content string, bg lipgloss.Color) string {
	placed := lipgloss.Place(w, h, lipgloss.Left, vAlign, content,
		lipgloss.WithWhitespaceBackground(bg))
	return PadLines(placed, w, h, bg)
}

// PadLines pads or trims content to exactly height lines, filling short
// lines up to width with bg. Lines wider than width are kept as is.
func PadLines(content string, width, height int, bg lipgloss.Color) string {
	if width <= 0 || height <= 0 {
		return content
	}

	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}

	fill := lipgloss.NewStyle().Background(bg)
	for i, line := range lines {
		if gap := width - lipgloss.Width(line); gap > 0 {
			lines[i] = line + fill.Render(strings.Repeat(" ", gap))
		}
	}
	return strings.Join(lines, "\n")
}

// Overlay centers box over base, which is first normalized to width×height.
func Overlay(base, box string, width, height int, boxBg lipgloss.Color) string {
	boxLines := strings.Split(box, "\n")
	boxW := 0
	for _, line := range boxLines {
		boxW = max(boxW, lipgloss.Width(line))
	}
	if boxW == 0 || width <= 0 || height <= 0 {
		return base
	}
	boxW = min(boxW, width)

	top := max((height-len(boxLines))/2, 0)
	left := max((width-boxW)/2, 0)

	bgSeq := backgroundSeq(boxBg)
	fill := lipgloss.NewStyle().Background(boxBg)

	baseLines := strings.Split(PadLines(base, width, height, lipgloss.Color("")), "\n")
	for i, line := range boxLines {
		row := top + i
		if row >= height {
			break
		}

		switch w := lipgloss.Width(line); {
		case w > boxW:
			line = ansi.Cut(line, 0, boxW)
		case w < boxW:
			line += fill.Render(strings.Repeat(" ", boxW-w))
		}
		if bgSeq != "" {
			line = strings.ReplaceAll(line, ansi.ResetStyle, ansi.ResetStyle+bgSeq)
		}

		under := baseLines[row]
		baseLines[row] = ansi.Cut(under, 0, left) + line + ansi.ResetStyle + ansi.Cut(under, left+boxW, width)
	}

	return strings.Join(baseLines, "\n")
}

// backgroundSeq returns the escape sequence that restores bg after a reset.
func backgroundSeq(bg lipgloss.Color) string {
	if bg == "" {
		return ""
	}
	return ansi.Style{}.BackgroundColor(bg).String()
}

// Truncate shortens s to width cells, marking the cut with an ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}
