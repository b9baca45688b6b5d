package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette holds precomputed colors derived from a Theme.
type Palette struct {
	Bg          lipgloss.Color
	BgHighlight lipgloss.Color
	BgSelection lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	Pinned      lipgloss.Color
	Warning     lipgloss.Color
	ModalBorder lipgloss.Color

	BlockBg         lipgloss.Color
	BlockBgAlt      lipgloss.Color // stacked starts in the same cell
	UnassignedBg    lipgloss.Color
	UnassignedBgAlt lipgloss.Color
	CoveredBg       lipgloss.Color

	TextOnAccent     lipgloss.Color
	TextOnBlock      lipgloss.Color
	TextOnUnassigned lipgloss.Color
	TextOnSelection  lipgloss.Color
}

// NewPalette derives a Palette from the provided Theme.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load("mocha")
	}

	isLight := isLightTheme(t.Bg)
	blockBg := blockBase(t.Block, t.Bg, isLight)
	unassignedBg := blockBase(t.Unassigned, t.Bg, isLight)

	return &Palette{
		Bg:          lipgloss.Color(t.Bg),
		BgHighlight: lipgloss.Color(t.BgHighlight),
		BgSelection: lipgloss.Color(t.BgSelection),
		Fg:          lipgloss.Color(t.Fg),
		FgMuted:     lipgloss.Color(t.FgMuted),
		Accent:      lipgloss.Color(t.Accent),
		Pinned:      lipgloss.Color(t.Pinned),
		Warning:     lipgloss.Color(t.Warning),
		ModalBorder: lipgloss.Color(t.ModalBorder),

		BlockBg:         lipgloss.Color(blockBg),
		BlockBgAlt:      lipgloss.Color(alternateShade(blockBg, isLight)),
		UnassignedBg:    lipgloss.Color(unassignedBg),
		UnassignedBgAlt: lipgloss.Color(alternateShade(unassignedBg, isLight)),
		CoveredBg:       lipgloss.Color(blendColors(blockBg, t.Bg, 0.5)),

		TextOnAccent:     lipgloss.Color(chooseTextColor(t.Accent, t.Bg, t.Fg)),
		TextOnBlock:      lipgloss.Color(chooseTextColor(blockBg, t.Bg, t.Fg)),
		TextOnUnassigned: lipgloss.Color(chooseTextColor(unassignedBg, t.Bg, t.Fg)),
		TextOnSelection:  lipgloss.Color(chooseTextColor(t.BgSelection, t.Bg, t.Fg)),
	}
}

func isLightTheme(bg string) bool {
	return relativeLuminance(bg) > 0.55
}

// blockBase returns the background of a block cell: a pale tint on light
// themes and a darkened accent on dark themes.
func blockBase(accent, bg string, isLight bool) string {
	if isLight {
		return blendColors(accent, bg, 0.75)
	}
	return blendColors(accent, "#000000", 0.5)
}

// alternateShade creates a subtle alternate shade for adjacent blocks.
func alternateShade(hex string, isLight bool) string {
	if isLight {
		return blendColors(hex, "#000000", 0.10)
	}
	return blendColors(hex, "#ffffff", 0.30)
}

// blendColors mixes a towards b by ratio in RGB space. Invalid input is returned unchanged.
func blendColors(a, b string, ratio float64) string {
	ca, err := colorful.Hex(a)
	if err != nil {
		return a
	}
	cb, err := colorful.Hex(b)
	if err != nil {
		return a
	}
	ratio = min(max(ratio, 0), 1)
	return ca.BlendRgb(cb, ratio).Clamped().Hex()
}

func chooseTextColor(bg, lightText, darkText string) string {
	if contrastRatio(bg, lightText) >= contrastRatio(bg, darkText) {
		return lightText
	}
	return darkText
}

func contrastRatio(a, b string) float64 {
	l1 := relativeLuminance(a)
	l2 := relativeLuminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

func relativeLuminance(hex string) float64 {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0
	}
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}
