package tui

import (
	"log/slog"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"mandelzoom/internal/explorer"
	"mandelzoom/internal/fractal"
	"mandelzoom/internal/viewport"
)

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
)

// Options configures the terminal explorer.
type Options struct {
	// Initial returns the reset view for a pixel grid; nil means
	// viewport.InitialBounds.
	Initial func(width, height int) fractal.PlaneBounds
	Logger  *slog.Logger
}

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	status string

	renderer viewport.Renderer
	opts     Options
	log      *slog.Logger

	// created on the first WindowSizeMsg, shared by every copy of the model
	session *explorer.Session
	err     error

	// buttons held according to the mouse messages seen so far
	held explorer.Buttons

	// landmark sidebar
	l list.Model

	// goto mode
	gotoMode bool
	ta       textarea.Model

	// view info table
	showInfo bool
	tbl      table.Model

	// hover state
	hovering bool
	hoverRe  float64
	hoverIm  float64

	glyphs *glyphCache
}

func New(r viewport.Renderer, opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	m := Model{
		helpVisible: true,
		status:      "drag to zoom, right click to reset",
		renderer:    r,
		opts:        opts,
		log:         log,
		glyphs:      newGlyphCache(),
	}
	m.l = newLandmarkList()
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "reMin reMax imMin imMax, e.g. -0.75 -0.73 0.09 0.11. Enter to jump; Esc to cancel."
	m.ta.ShowLineNumbers = false
	m.ta.CharLimit = 256
	m.ta.SetWidth(50)
	m.ta.SetHeight(3)
	m.tbl = newInfoTable()
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// Session is the explorer behind the canvas, nil until the terminal size is
// known.
func (m Model) Session() *explorer.Session { return m.session }

// layout is the screen geometry shared by Update and View.
type layout struct {
	contentWidth  int
	contentHeight int
	// canvas origin and size in cells
	originX, originY int
	cols, rows       int
}

func (m Model) layout() layout {
	contentHeight := max(1, m.height-headerHeight-footerHeight)
	contentWidth := max(10, m.width)
	lay := layout{
		contentWidth:  contentWidth,
		contentHeight: contentHeight,
		originY:       headerHeight,
		rows:          contentHeight,
	}
	if m.showSidebar {
		lay.originX = sidebarWidth + 1
	}
	lay.cols = max(2, contentWidth-lay.originX)
	return lay
}

// pixels is the pixel grid size of the canvas: one column per cell and two
// rows per cell.
func (l layout) pixels() (width, height int) { return l.cols, l.rows * 2 }

// cellToPixel maps a terminal cell to the upper pixel it shows. The bottom
// canvas row maps to its lower pixel so the last pixel row stays reachable.
func (l layout) cellToPixel(cx, cy int) (x, y int) {
	row := cy - l.originY
	y = row * 2
	if row == l.rows-1 {
		y++
	}
	return cx - l.originX, y
}

func (l layout) inCanvas(cx, cy int) bool {
	return cx >= l.originX && cx < l.originX+l.cols && cy >= l.originY && cy < l.originY+l.rows
}
