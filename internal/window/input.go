package window

import (
	"log/slog"

	"mandelzoom/internal/explorer"
)

type button uint8

const (
	buttonLeft button = iota
	buttonRight
	buttonMiddle
)

func (b button) String() string {
	switch b {
	case buttonLeft:
		return "left"
	case buttonRight:
		return "right"
	case buttonMiddle:
		return "middle"
	}
	return "unknown"
}

// tickInput is what the window observed during one tick.
type tickInput struct {
	X, Y     float64
	Held     explorer.Buttons
	Pressed  []button
	Released []button
	KeysDown []explorer.Key
	KeysUp   []explorer.Key
	Close    bool
}

// forwarder turns per-tick snapshots into Listener events: a move when the
// cursor changed, then button presses, button releases and keys.
type forwarder struct {
	l            explorer.Listener
	log          *slog.Logger
	lastX, lastY float64
	seen         bool
}

func (f *forwarder) forward(in tickInput) {
	if !f.seen || in.X != f.lastX || in.Y != f.lastY {
		f.l.OnMouseMove(in.X, in.Y)
		f.lastX, f.lastY = in.X, in.Y
		f.seen = true
	}
	m := explorer.Mouse{X: in.X, Y: in.Y, Buttons: in.Held}
	for _, b := range in.Pressed {
		f.log.Debug("mouse down", "button", b, "x", in.X, "y", in.Y)
		f.l.OnMouseButtonDown(m)
	}
	for _, b := range in.Released {
		f.log.Debug("mouse up", "button", b, "x", in.X, "y", in.Y)
		f.l.OnMouseButtonUp(m)
	}
	for _, k := range in.KeysDown {
		f.l.OnKeyDown(k)
	}
	for _, k := range in.KeysUp {
		f.l.OnKeyUp(k)
	}
}
