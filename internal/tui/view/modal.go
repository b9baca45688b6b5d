package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ModalStyles groups the styles needed to render modal frames.
type ModalStyles struct {
	ModalStyle       lipgloss.Style
	ModalTitleStyle  lipgloss.Style
	ModalBodyStyle   lipgloss.Style
	ModalFooterStyle lipgloss.Style
}

// RenderModalFrame renders a modal with the provided title, body lines, and footer.
func RenderModalFrame(title string, body []string, footer string, styles ModalStyles) string {
	var b strings.Builder

	b.WriteString(styles.ModalTitleStyle.Render(title))
	if len(body) > 0 {
		b.WriteString("\n\n")
		b.WriteString(styles.ModalBodyStyle.Render(strings.Join(body, "\n")))
	}
	if footer != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.ModalFooterStyle.Render(footer))
	}

	return styles.ModalStyle.Render(b.String())
}
