package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	lay := m.layout()

	// Header
	header := titleStyle.Render(" mandelzoom ─ Mandelbrot explorer ")
	if m.session != nil {
		header += dimStyle.Render(fmt.Sprintf("  depth %d  %.4gx", m.session.Depth(), m.session.Magnification()))
	}
	header = lipgloss.NewStyle().MaxWidth(lay.contentWidth).Render(header)

	// Sidebar
	var sidebar string
	if m.showSidebar {
		l := m.l
		l.SetSize(sidebarWidth-2, lay.contentHeight-2)
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Height(lay.contentHeight).Render(l.View())
	}

	// Canvas
	var canvasView string
	switch {
	case m.session == nil:
		msg := "starting"
		if m.err != nil {
			msg = errorStyle.Render(m.err.Error())
		}
		canvasView = lipgloss.Place(lay.cols, lay.rows, lipgloss.Center, lipgloss.Center, msg)
	case m.gotoMode:
		ta := m.ta
		ta.SetWidth(max(10, min(lay.cols-6, 60)))
		box := boxStyle.Render(titleStyle.Render("goto") + "\n" + ta.View())
		canvasView = lipgloss.Place(lay.cols, lay.rows, lipgloss.Center, lipgloss.Center, box)
	case m.showInfo:
		tbl := m.tbl
		tbl.SetHeight(max(1, min(lay.rows-4, len(tbl.Rows())+1)))
		box := boxStyle.Render(tbl.View())
		canvasView = lipgloss.Place(lay.cols, lay.rows, lipgloss.Center, lipgloss.Center, box)
	default:
		canvasView = m.glyphs.renderCanvas(m.session.Compose(), lay.cols, lay.rows)
	}

	body := canvasView
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", canvasView)
	}

	// Footer / help
	help := m.renderHelp()
	status := dimStyle.Render(" " + m.status + " ")
	// hover coordinate at bottom-right
	coords := ""
	if m.hovering {
		coords = dimStyle.Render(fmt.Sprintf("  re=%.10g im=%.10g  ", m.hoverRe, m.hoverIm))
	}
	spacerW := max(0, lay.contentWidth-lipgloss.Width(status)-lipgloss.Width(coords))
	top := lipgloss.JoinHorizontal(lipgloss.Bottom, status, lipgloss.PlaceHorizontal(spacerW+lipgloss.Width(coords), lipgloss.Right, coords))
	clip := lipgloss.NewStyle().MaxWidth(lay.contentWidth)
	footer := lipgloss.JoinVertical(lipgloss.Left, clip.Render(top), clip.Render(help))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(lay.contentWidth).Render(ui)
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"drag zoom",
		"right-click reset",
		"r reset",
		"Tab landmarks",
		"Enter jump",
		"g goto",
		"i info",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
