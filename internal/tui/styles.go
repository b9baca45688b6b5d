package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/horario/internal/tui/theme"
	"github.com/javiermolinar/horario/internal/tui/view"
)

// Default column width - will be recalculated on resize.
const defaultColWidth = 18

// hourColWidth is the width of the hour label column.
const hourColWidth = 6

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	colorBg      lipgloss.Color
	colorModalBg lipgloss.Color

	TitleStyle lipgloss.Style

	DayHeaderStyle       lipgloss.Style
	DayHeaderActiveStyle lipgloss.Style
	HourColumnStyle      lipgloss.Style
	HourActiveStyle      lipgloss.Style

	// Grid cells
	EmptyCellStyle     lipgloss.Style
	BlockStyle         lipgloss.Style
	BlockAltStyle      lipgloss.Style // more than one block starts in the cell
	UnassignedStyle    lipgloss.Style // block without a teacher
	UnassignedAltStyle lipgloss.Style
	CoveredStyle       lipgloss.Style
	CoveredUnassigned  lipgloss.Style
	CursorStyle        lipgloss.Style
	PinnedForeground   lipgloss.Color

	// List rows
	ListCellStyle     lipgloss.Style
	ListSelectedStyle lipgloss.Style
	ListPinnedStyle   lipgloss.Style

	BorderStyle lipgloss.Style

	// Footer
	FooterLineStyle lipgloss.Style
	StatusStyle     lipgloss.Style
	WarningStyle    lipgloss.Style
	HelpStyle       lipgloss.Style

	Modal view.ModalStyles
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	s := &Styles{}
	palette := theme.NewPalette(t)

	s.colorBg = palette.Bg
	s.colorModalBg = palette.BgHighlight

	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(palette.Accent).
		Background(palette.Bg)

	s.DayHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Align(lipgloss.Center).
		Foreground(palette.Fg).
		Background(palette.Bg).
		Width(defaultColWidth)

	s.DayHeaderActiveStyle = s.DayHeaderStyle.
		Foreground(palette.Accent)

	s.HourColumnStyle = lipgloss.NewStyle().
		Foreground(palette.Accent).
		Background(palette.Bg).
		Width(hourColWidth)

	s.HourActiveStyle = s.HourColumnStyle.
		Bold(true).
		Background(palette.BgHighlight)

	cell := lipgloss.NewStyle().
		Width(defaultColWidth).
		Align(lipgloss.Left)

	s.EmptyCellStyle = cell.
		Foreground(palette.FgMuted).
		Background(palette.Bg)

	s.BlockStyle = cell.
		Background(palette.BlockBg).
		Foreground(palette.TextOnBlock).
		Bold(true)

	s.BlockAltStyle = cell.
		Background(palette.BlockBgAlt).
		Foreground(palette.TextOnBlock).
		Bold(true)

	s.UnassignedStyle = cell.
		Background(palette.UnassignedBg).
		Foreground(palette.TextOnUnassigned).
		Bold(true)

	s.UnassignedAltStyle = cell.
		Background(palette.UnassignedBgAlt).
		Foreground(palette.TextOnUnassigned).
		Bold(true)

	s.CoveredStyle = cell.
		Background(palette.CoveredBg).
		Foreground(palette.Accent)

	s.CoveredUnassigned = cell.
		Background(palette.CoveredBg).
		Foreground(palette.Warning)

	s.CursorStyle = cell.
		Background(palette.BgSelection).
		Foreground(palette.TextOnSelection).
		Bold(true)

	s.PinnedForeground = palette.Pinned

	s.ListCellStyle = lipgloss.NewStyle().
		Foreground(palette.Fg).
		Background(palette.Bg).
		Padding(0, 1)

	s.ListSelectedStyle = s.ListCellStyle.
		Background(palette.BgSelection).
		Foreground(palette.TextOnSelection).
		Bold(true)

	s.ListPinnedStyle = s.ListCellStyle.
		Foreground(palette.Pinned).
		Bold(true)

	s.BorderStyle = lipgloss.NewStyle().
		Foreground(palette.Accent).
		Background(palette.Bg)

	s.FooterLineStyle = lipgloss.NewStyle().
		Foreground(palette.Fg).
		Background(palette.Bg)

	s.StatusStyle = lipgloss.NewStyle().
		Foreground(palette.Accent).
		Background(palette.Bg)

	s.WarningStyle = lipgloss.NewStyle().
		Foreground(palette.Warning).
		Background(palette.Bg).
		Bold(true)

	s.HelpStyle = lipgloss.NewStyle().
		Foreground(palette.FgMuted).
		Background(palette.Bg)

	s.Modal = view.ModalStyles{
		ModalStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.ModalBorder).
			BorderBackground(palette.BgHighlight).
			Background(palette.BgHighlight).
			Foreground(palette.Fg).
			Padding(1, 2),
		ModalTitleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(palette.Accent).
			Background(palette.BgHighlight),
		ModalBodyStyle: lipgloss.NewStyle().
			Foreground(palette.Fg).
			Background(palette.BgHighlight),
		ModalFooterStyle: lipgloss.NewStyle().
			Foreground(palette.FgMuted).
			Background(palette.BgHighlight),
	}

	return s
}

// blockStyle picks the style of a start cell.
func (s *Styles) blockStyle(assigned, stacked bool) lipgloss.Style {
	switch {
	case assigned && stacked:
		return s.BlockAltStyle
	case assigned:
		return s.BlockStyle
	case stacked:
		return s.UnassignedAltStyle
	default:
		return s.UnassignedStyle
	}
}
