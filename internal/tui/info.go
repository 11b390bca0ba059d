package tui

import (
	"fmt"

	table "github.com/charmbracelet/bubbles/table"

	"mandelzoom/internal/buildinfo"
	"mandelzoom/internal/fractal"
)

func newInfoTable() table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "field", Width: 14},
			{Title: "value", Width: 26},
		}),
		table.WithFocused(false),
	)
	t.SetHeight(12)
	return t
}

// refreshInfo fills the info table from the current session.
func (m *Model) refreshInfo() {
	if m.session == nil {
		m.tbl.SetRows(nil)
		return
	}
	s := m.session
	b := s.Bounds()
	c := b.Center()
	w, h := s.Size()
	rows := []table.Row{
		{"re min", fmt.Sprintf("%.12g", b.ReMin)},
		{"re max", fmt.Sprintf("%.12g", b.ReMax)},
		{"im min", fmt.Sprintf("%.12g", b.ImMin)},
		{"im max", fmt.Sprintf("%.12g", b.ImMax)},
		{"center", fmt.Sprintf("%.8g%+.8gi", real(c), imag(c))},
		{"re extent", fmt.Sprintf("%.6g", b.RealExtent())},
		{"magnification", fmt.Sprintf("%.6gx", s.Magnification())},
		{"zoom depth", fmt.Sprintf("%d", s.Depth())},
		{"pixels", fmt.Sprintf("%dx%d", w, h)},
		{"iterations", fmt.Sprintf("%d", fractal.MaxIterations)},
		{"last render", s.LastRender().String()},
	}
	if m.hovering {
		z := complex(m.hoverRe, m.hoverIm)
		state := "in set"
		if res := fractal.Escape(z); !res.InSet() {
			state = fmt.Sprintf("escapes after %d", res.Iterations)
		}
		rows = append(rows, table.Row{"pointer", state})
	}
	rows = append(rows, table.Row{"build", buildinfo.Long()})
	m.tbl.SetRows(rows)
}
