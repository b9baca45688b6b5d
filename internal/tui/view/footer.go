package view

import "github.com/charmbracelet/lipgloss"

// FooterViewState holds the strings needed to render the footer section.
type FooterViewState struct {
	InnerW      int
	FooterH     int
	TotalsLine  string
	FilterLine  string
	PromptLine  string // shown instead of the filter line while typing
	StatusLine  string
	HelpLine    string
	Bg          lipgloss.Color
	LineStyle   lipgloss.Style
	StatusStyle lipgloss.Style
	HelpStyle   lipgloss.Style
}

// RenderFooter renders totals, filter or prompt, status, and help lines.
// Lower-priority lines are dropped when the footer is short.
func RenderFooter(state FooterViewState) string {
	if state.FooterH <= 0 {
		return ""
	}

	middle := state.FilterLine
	if state.PromptLine != "" {
		middle = state.PromptLine
	}

	lines := []string{
		footerLine(state.InnerW, state.StatusStyle, state.StatusLine),
		footerLine(state.InnerW, state.HelpStyle, state.HelpLine),
	}
	if state.FooterH >= 3 {
		lines = append([]string{footerLine(state.InnerW, state.LineStyle, middle)}, lines...)
	}
	if state.FooterH >= 4 {
		lines = append([]string{footerLine(state.InnerW, state.LineStyle, state.TotalsLine)}, lines...)
	}

	s := ""
	for i, line := range lines {
		if i > 0 {
			s += "\n"
		}
		s += line
	}
	return PlaceBox(state.InnerW, state.FooterH, lipgloss.Bottom, s, state.Bg)
}

func footerLine(width int, style lipgloss.Style, content string) string {
	frameW, _ := style.GetFrameSize()
	contentWidth := max(width-frameW, 0)
	return style.Width(contentWidth).Render(Truncate(content, contentWidth))
}
