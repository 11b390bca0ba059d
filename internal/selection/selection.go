// Package selection tracks a screen-space drag rectangle and draws its
// overlay onto a presented frame.
package selection

import (
	"fmt"

	"mandelzoom/internal/fractal"
)

var (
	OutlineColor = fractal.Color{R: 1.0, G: 1.0, B: 1.0}
	TintColor    = fractal.Color{R: 0.3, G: 0.3, B: 0.3}
)

// Rect is an inclusive pixel rectangle with X0 <= X1 and Y0 <= Y1.
type Rect struct {
	X0, Y0 int
	X1, Y1 int
}

// NewRect normalizes two arbitrary corners.
func NewRect(ax, ay, bx, by int) Rect {
	return Rect{X0: min(ax, bx), Y0: min(ay, by), X1: max(ax, bx), Y1: max(ay, by)}
}

// Empty reports a rectangle with zero pixel width or height.
func (r Rect) Empty() bool { return r.X0 == r.X1 || r.Y0 == r.Y1 }

func (r Rect) Dx() int { return r.X1 - r.X0 }
func (r Rect) Dy() int { return r.Y1 - r.Y0 }

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.X0, r.Y0, r.X1, r.Y1)
}

type State uint8

const (
	Inactive State = iota
	Active
)

func (s State) String() string {
	switch s {
	case Inactive:
		return "inactive"
	case Active:
		return "active"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

type EventKind uint8

const (
	None EventKind = iota
	// Commit carries the finished rectangle to zoom into.
	Commit
	// Reset asks for the initial view.
	Reset
)

// Event is emitted by transitions that leave the Active state.
type Event struct {
	Kind EventKind
	Rect Rect
}

// Tracker is the drag state machine. The zero value is Inactive.
type Tracker struct {
	state            State
	anchorX, anchorY int
	curX, curY       int
}

func (t *Tracker) State() State { return t.state }
func (t *Tracker) Active() bool { return t.state == Active }

// LeftDown starts a selection anchored at (x, y). It is ignored while a
// selection is already in progress.
func (t *Tracker) LeftDown(x, y int) {
	if t.state == Active {
		return
	}
	t.state = Active
	t.anchorX, t.anchorY = x, y
	t.curX, t.curY = x, y
}

// Move tracks the pointer while Active.
func (t *Tracker) Move(x, y int) {
	if t.state != Active {
		return
	}
	t.curX, t.curY = x, y
}

// LeftUp finishes an active selection and emits a Commit with the normalized
// rectangle.
func (t *Tracker) LeftUp() Event {
	if t.state != Active {
		return Event{}
	}
	r := NewRect(t.anchorX, t.anchorY, t.curX, t.curY)
	t.clear()
	return Event{Kind: Commit, Rect: r}
}

// RightDown aborts any selection and emits Reset regardless of state.
func (t *Tracker) RightDown() Event {
	t.clear()
	return Event{Kind: Reset}
}

// Rect returns the live rectangle while Active.
func (t *Tracker) Rect() (Rect, bool) {
	if t.state != Active {
		return Rect{}, false
	}
	return NewRect(t.anchorX, t.anchorY, t.curX, t.curY), true
}

func (t *Tracker) clear() {
	t.state = Inactive
	t.anchorX, t.anchorY = 0, 0
	t.curX, t.curY = 0, 0
}

// DrawOverlay outlines r on frame and adds TintColor to every pixel strictly
// inside it. Channels are not clamped. The rectangle is clipped to the frame.
func DrawOverlay(frame *fractal.PixelGrid, r Rect) {
	if frame == nil || frame.Width == 0 || frame.Height == 0 {
		return
	}
	r = NewRect(r.X0, r.Y0, r.X1, r.Y1)
	r.X0 = clamp(r.X0, 0, frame.Width-1)
	r.X1 = clamp(r.X1, 0, frame.Width-1)
	r.Y0 = clamp(r.Y0, 0, frame.Height-1)
	r.Y1 = clamp(r.Y1, 0, frame.Height-1)

	w := frame.Width
	pix := frame.Pix

	// horizontal lines
	for x := r.X0; x <= r.X1; x++ {
		pix[x+r.Y0*w] = OutlineColor
		pix[x+r.Y1*w] = OutlineColor
	}
	// vertical lines
	for y := r.Y0; y <= r.Y1; y++ {
		pix[r.X0+y*w] = OutlineColor
		pix[r.X1+y*w] = OutlineColor
	}
	// tint
	for y := r.Y0 + 1; y < r.Y1; y++ {
		row := pix[y*w : (y+1)*w]
		for x := r.X0 + 1; x < r.X1; x++ {
			row[x] = row[x].Add(TintColor)
		}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
