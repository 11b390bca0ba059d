package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"mandelzoom/internal/fractal"
)

// upperHalf shows the top pixel in the foreground and the bottom pixel in
// the background of one cell.
const upperHalf = "▀"

type rgb [3]uint8

func toRGB(c fractal.Color) rgb {
	r, g, b := c.RGB8()
	return rgb{r, g, b}
}

func (c rgb) hex() lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}

// glyphCache memoizes the styled glyph for each (top, bottom) colour pair.
// The palette has a few dozen colours plus their tinted variants.
type glyphCache struct {
	cells map[[2]rgb]string
}

func newGlyphCache() *glyphCache {
	return &glyphCache{cells: make(map[[2]rgb]string)}
}

func (g *glyphCache) cell(top, bottom rgb) string {
	key := [2]rgb{top, bottom}
	if s, ok := g.cells[key]; ok {
		return s
	}
	s := lipgloss.NewStyle().Foreground(top.hex()).Background(bottom.hex()).Render(upperHalf)
	g.cells[key] = s
	return s
}

// renderCanvas draws frame into cols x rows cells, two pixel rows per cell.
// A missing bottom row renders black.
func (g *glyphCache) renderCanvas(frame *fractal.PixelGrid, cols, rows int) string {
	if frame == nil {
		return ""
	}
	black := toRGB(fractal.Black)
	var sb strings.Builder
	for cy := 0; cy < rows; cy++ {
		if cy > 0 {
			sb.WriteByte('\n')
		}
		for cx := 0; cx < cols; cx++ {
			top, bottom := black, black
			if frame.In(cx, 2*cy) {
				top = toRGB(frame.At(cx, 2*cy))
			}
			if frame.In(cx, 2*cy+1) {
				bottom = toRGB(frame.At(cx, 2*cy+1))
			}
			sb.WriteString(g.cell(top, bottom))
		}
	}
	return sb.String()
}
