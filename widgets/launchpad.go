package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderPad renders a single colored pad
func RenderPad(color [3]uint8) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(rgbToHex(color)))
	return style.Render("■")
}

// RenderPadGrid renders a rows x cols grid of pads, row 0 at the top
// (the mk1 layout). An extra column per row is fine; each row is
// rendered as wide as its slice.
func RenderPadGrid(grid [][][3]uint8) string {
	lines := make([]string, 0, len(grid))
	for _, row := range grid {
		var line strings.Builder
		for i, c := range row {
			if i > 0 {
				line.WriteString(" ")
			}
			line.WriteString(RenderPad(c))
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

// RenderLegendItem renders a single legend item: "■ name - description"
func RenderLegendItem(color [3]uint8, name, desc string) string {
	return fmt.Sprintf("  %s %s - %s", RenderPad(color), name, desc)
}

func rgbToHex(c [3]uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}
