package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Theme maps LED and UI colors for the terminal mirror
type Theme struct {
	Palette *Palette
}

func New(palette *Palette) *Theme {
	return &Theme{Palette: palette}
}

// LED colors, expressed as the hardware's red/green pairs

func (t *Theme) PadOff() RGB     { return RGB{40, 40, 40} }
func (t *Theme) PadCell() RGB    { return t.Palette.LED(0, 3) }
func (t *Theme) PadTracker() RGB { return t.Palette.LED(3, 3) }
func (t *Theme) PadOctave() RGB  { return t.Palette.LED(3, 0) }

// UI roles

func (t *Theme) Accent() lipgloss.Color {
	return rgbToLipgloss(t.Palette.LED(1, 3))
}

func (t *Theme) Muted() lipgloss.Color {
	return rgbToLipgloss(RGB{110, 110, 110})
}

func (t *Theme) Playing() lipgloss.Color {
	return rgbToLipgloss(t.Palette.LED(0, 3))
}

func (t *Theme) Paused() lipgloss.Color {
	return rgbToLipgloss(t.Palette.LED(3, 0))
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}
