// Package headless is a display that never opens a window. It presents a
// fixed number of frames and replays a scripted input sequence, one step per
// frame, which is enough to smoke test the explorer without a screen.
package headless

import (
	"log/slog"

	"mandelzoom/internal/explorer"
	"mandelzoom/internal/fractal"
)

// Display implements explorer.Display. Frames bounds the number of presented
// frames; zero means one frame more than the script has steps, so the result
// of the last step is presented too.
type Display struct {
	Listener explorer.Listener
	Frames   int
	Script   []Step
	Logger   *slog.Logger

	presented int
	next      int
	held      explorer.Buttons
	mx, my    float64
	last      *fractal.PixelGrid
}

var _ explorer.Display = (*Display)(nil)

func (d *Display) budget() int {
	if d.Frames > 0 {
		return d.Frames
	}
	return len(d.Script) + 1
}

func (d *Display) Open() bool { return d.presented < d.budget() }

// Update records frame and then applies the next script step, if any.
func (d *Display) Update(frame *fractal.PixelGrid) error {
	if d.last == nil || !d.last.SameSize(frame) {
		d.last = frame.Clone()
	} else if err := d.last.CopyFrom(frame); err != nil {
		return err
	}
	d.presented++

	if d.next < len(d.Script) {
		st := d.Script[d.next]
		d.next++
		d.logger().Debug("headless step", "frame", d.presented, "step", st.String())
		d.apply(st)
	}
	return nil
}

// Presented is the number of frames shown so far.
func (d *Display) Presented() int { return d.presented }

// Remaining is the number of script steps not yet applied.
func (d *Display) Remaining() int { return len(d.Script) - d.next }

// Last is a copy of the most recently presented frame, or nil.
func (d *Display) Last() *fractal.PixelGrid { return d.last }

func (d *Display) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.Default()
	}
	return d.Logger
}

func (d *Display) apply(st Step) {
	l := d.Listener
	if l == nil {
		return
	}
	switch st.Op {
	case OpMove:
		d.move(st.X, st.Y)
	case OpDown:
		d.setHeld(st.Button, true)
		l.OnMouseButtonDown(d.mouse())
	case OpUp:
		d.setHeld(st.Button, false)
		l.OnMouseButtonUp(d.mouse())
	case OpDrag:
		d.move(st.X, st.Y)
		d.setHeld(Left, true)
		l.OnMouseButtonDown(d.mouse())
		d.move(st.X1, st.Y1)
		d.setHeld(Left, false)
		l.OnMouseButtonUp(d.mouse())
	case OpReset:
		d.setHeld(Right, true)
		l.OnMouseButtonDown(d.mouse())
		d.setHeld(Right, false)
		l.OnMouseButtonUp(d.mouse())
	case OpKey:
		l.OnKeyDown(st.Key)
		l.OnKeyUp(st.Key)
	}
}

func (d *Display) move(x, y float64) {
	d.mx, d.my = x, y
	d.Listener.OnMouseMove(x, y)
}

func (d *Display) mouse() explorer.Mouse {
	return explorer.Mouse{X: d.mx, Y: d.my, Buttons: d.held}
}

func (d *Display) setHeld(b Button, down bool) {
	switch b {
	case Left:
		d.held.Left = down
	case Right:
		d.held.Right = down
	case Middle:
		d.held.Middle = down
	}
}
