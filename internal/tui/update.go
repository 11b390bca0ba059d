package tui

import (
	"fmt"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"mandelzoom/internal/explorer"
	"mandelzoom/internal/fractal"
	"mandelzoom/internal/viewport"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.syncSize()
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.gotoMode {
			return m.updateGoto(msg)
		}
		if m.session != nil {
			m.session.OnKeyDown(explorer.Key(msg.String()))
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			if m.session != nil {
				m.session.Reset()
				m.status = "reset"
			}
		case "tab":
			m.showSidebar = !m.showSidebar
			m.syncSize()
		case "g":
			m.gotoMode = true
			m.showInfo = false
			if m.session != nil {
				m.ta.SetValue(boundsArgs(m.session.Bounds()))
			}
			m.status = "goto"
			return m, m.ta.Focus()
		case "h":
			m.helpVisible = !m.helpVisible
		case "i":
			m.showInfo = !m.showInfo
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(landmarkItem); ok {
					m.showLandmark(it.lm)
				}
			}
		}
	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	m.checkErr()
	if m.showInfo {
		m.refreshInfo()
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateGoto(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.gotoMode = false
		m.ta.Blur()
		m.status = "goto cancelled"
		return m, nil
	case "enter":
		b, err := fractal.ParseBounds(strings.TrimSpace(m.ta.Value()))
		if err != nil {
			m.status = "goto: " + err.Error()
			return m, nil
		}
		m.gotoMode = false
		m.ta.Blur()
		m.jump("goto", b)
		m.checkErr()
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

// syncSize creates the session for the current canvas or resizes it.
func (m *Model) syncSize() {
	if m.width == 0 || m.height == 0 {
		return
	}
	lay := m.layout()
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, lay.contentHeight-2)
	}
	w, h := lay.pixels()
	if m.session == nil {
		initial := viewport.InitialBounds(w, h)
		if m.opts.Initial != nil {
			initial = m.opts.Initial(w, h)
		}
		s, err := explorer.New(m.renderer, explorer.Options{
			Width:   w,
			Height:  h,
			Initial: initial,
			Logger:  m.log,
		})
		if err != nil {
			m.err = err
			m.status = "error: " + err.Error()
			return
		}
		m.session = s
		return
	}
	if err := m.session.Resize(w, h); err != nil {
		m.err = err
		m.status = "resize: " + err.Error()
	}
}

func (m *Model) jump(name string, b fractal.PlaneBounds) {
	if m.session == nil {
		return
	}
	if err := m.session.JumpFit(b); err != nil {
		m.status = "jump: " + err.Error()
		return
	}
	m.status = "jumped to " + name
}

func (m *Model) showLandmark(lm fractal.Landmark) {
	if m.session == nil {
		return
	}
	if err := m.session.ShowLandmark(lm); err != nil {
		m.status = "jump: " + err.Error()
		return
	}
	m.status = "jumped to " + lm.Name
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.session == nil || tea.MouseEvent(msg).IsWheel() {
		return
	}
	lay := m.layout()
	inside := lay.inCanvas(msg.X, msg.Y)
	px, py := lay.cellToPixel(msg.X, msg.Y)

	m.hovering = inside
	switch msg.Action {
	case tea.MouseActionPress:
		if !inside {
			return
		}
		m.setHeld(msg.Button, true)
		m.session.OnMouseMove(float64(px), float64(py))
		m.session.OnMouseButtonDown(m.mouse(px, py))
	case tea.MouseActionRelease:
		if msg.Button == tea.MouseButtonNone {
			m.held = explorer.Buttons{}
		} else {
			m.setHeld(msg.Button, false)
		}
		m.session.OnMouseMove(float64(px), float64(py))
		wasSelecting := m.session.Selecting()
		depth := m.session.Depth()
		m.session.OnMouseButtonUp(m.mouse(px, py))
		if wasSelecting && m.session.Depth() > depth {
			m.status = fmt.Sprintf("zoom %d  %.4gx", m.session.Depth(), m.session.Magnification())
		}
	case tea.MouseActionMotion:
		if inside || m.session.Selecting() {
			m.session.OnMouseMove(float64(px), float64(py))
		}
		if r, ok := m.session.Selection(); ok {
			m.status = fmt.Sprintf("select %dx%d", r.Dx(), r.Dy())
		}
	}
	if inside {
		z := m.session.MouseComplex()
		m.hoverRe, m.hoverIm = real(z), imag(z)
	}
}

func (m *Model) mouse(px, py int) explorer.Mouse {
	return explorer.Mouse{X: float64(px), Y: float64(py), Buttons: m.held}
}

func (m *Model) setHeld(b tea.MouseButton, down bool) {
	switch b {
	case tea.MouseButtonLeft:
		m.held.Left = down
	case tea.MouseButtonRight:
		m.held.Right = down
	case tea.MouseButtonMiddle:
		m.held.Middle = down
	}
}

func (m *Model) checkErr() {
	if m.session == nil {
		return
	}
	if err := m.session.Err(); err != nil && err != m.err {
		m.err = err
		m.status = "render error: " + err.Error()
	}
}

func boundsArgs(b fractal.PlaneBounds) string {
	return fmt.Sprintf("%.10g %.10g %.10g %.10g", b.ReMin, b.ReMax, b.ImMin, b.ImMax)
}
