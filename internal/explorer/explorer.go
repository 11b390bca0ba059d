// Package explorer ties the renderer, viewport and selection tracker into an
// interactive session driven by a display backend.
package explorer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"mandelzoom/internal/fractal"
	"mandelzoom/internal/selection"
	"mandelzoom/internal/viewport"
)

// Buttons is the set of mouse buttons held at the time of an event.
type Buttons struct {
	Left   bool
	Right  bool
	Middle bool
}

// Mouse is the pointer state delivered with button events. X and Y are
// screen coordinates and may lie outside the pixel grid.
type Mouse struct {
	X, Y    float64
	Buttons Buttons
}

// Key names a keyboard key as reported by the backend.
type Key string

// Listener receives input events from a display backend.
type Listener interface {
	OnMouseMove(x, y float64)
	OnMouseButtonDown(m Mouse)
	OnMouseButtonUp(m Mouse)
	OnKeyDown(k Key)
	OnKeyUp(k Key)
}

// Display presents frames. Update shows frame and delivers any pending input
// to the session's Listener before returning.
type Display interface {
	Open() bool
	Update(frame *fractal.PixelGrid) error
}

type Options struct {
	Width, Height int

	// Initial overrides the reset view; zero means the default initial bounds.
	Initial fractal.PlaneBounds
	Logger  *slog.Logger
}

// Session is one running explorer: the viewport, the selection and the
// presentation buffer. All methods must be called from one goroutine.
type Session struct {
	view    *viewport.Controller
	tracker selection.Tracker
	log     *slog.Logger

	width, height  int
	mouseX, mouseY int

	present *fractal.PixelGrid
	err     error
}

var _ Listener = (*Session)(nil)

// New creates a session and renders its first frame.
func New(r viewport.Renderer, opts Options) (*Session, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	vopts := []viewport.Option{viewport.WithLogger(log)}
	if opts.Initial != (fractal.PlaneBounds{}) {
		vopts = append(vopts, viewport.WithInitial(opts.Initial))
	}
	view, err := viewport.New(r, opts.Width, opts.Height, vopts...)
	if err != nil {
		return nil, fmt.Errorf("explorer: %w", err)
	}
	s := &Session{
		view:    view,
		log:     log,
		width:   opts.Width,
		height:  opts.Height,
		present: fractal.NewPixelGrid(opts.Width, opts.Height),
	}
	log.Info("session started", "size", fmt.Sprintf("%dx%d", s.width, s.height), "bounds", view.Bounds().String())
	return s, nil
}

// OnMouseMove clamps the pointer to the grid and truncates it to a pixel.
func (s *Session) OnMouseMove(x, y float64) {
	s.mouseX = clampPixel(x, s.width)
	s.mouseY = clampPixel(y, s.height)
	s.tracker.Move(s.mouseX, s.mouseY)
}

func (s *Session) OnMouseButtonDown(m Mouse) {
	if m.Buttons.Left && !s.tracker.Active() {
		s.tracker.LeftDown(s.mouseX, s.mouseY)
	}
	if m.Buttons.Right {
		s.dispatch(s.tracker.RightDown())
	}
}

func (s *Session) OnMouseButtonUp(m Mouse) {
	if s.tracker.Active() && !m.Buttons.Left {
		s.dispatch(s.tracker.LeftUp())
	}
}

func (s *Session) OnKeyDown(Key) {}
func (s *Session) OnKeyUp(Key)   {}

func (s *Session) dispatch(ev selection.Event) {
	switch ev.Kind {
	case selection.Commit:
		if ev.Rect.Empty() {
			s.log.Debug("selection ignored", "rect", ev.Rect.String())
			return
		}
		ok, err := s.view.ZoomToSelection(ev.Rect.X0, ev.Rect.Y0, ev.Rect.X1, ev.Rect.Y1, s.width, s.height)
		if err != nil {
			s.fail("zoom", err)
			return
		}
		if ok {
			s.log.Info("zoom", "rect", ev.Rect.String(), "bounds", s.view.Bounds().String(), "depth", s.view.Depth())
		}
	case selection.Reset:
		s.Reset()
	}
}

func (s *Session) fail(op string, err error) {
	s.err = fmt.Errorf("%s: %w", op, err)
	s.log.Error("render failed", "op", op, "err", err)
}

// Reset restores the initial view and abandons any selection.
func (s *Session) Reset() {
	if err := s.reset(); err != nil {
		s.fail("reset", err)
	}
}

func (s *Session) reset() error {
	if s.tracker.Active() {
		s.tracker.RightDown()
	}
	if err := s.view.Reset(); err != nil {
		return err
	}
	s.log.Info("reset", "bounds", s.view.Bounds().String())
	return nil
}

// ShowLandmark jumps to lm fitted to the screen. The home landmark restores
// the initial view instead.
func (s *Session) ShowLandmark(lm fractal.Landmark) error {
	if lm.Home {
		return s.reset()
	}
	return s.JumpFit(lm.Bounds)
}

// Jump shows b exactly as given.
func (s *Session) Jump(b fractal.PlaneBounds) error {
	if err := s.view.Jump(b); err != nil {
		return err
	}
	s.log.Info("jump", "bounds", b.String())
	return nil
}

// JumpFit shows b widened to the screen's aspect ratio.
func (s *Session) JumpFit(b fractal.PlaneBounds) error {
	return s.Jump(viewport.FitAspect(b, s.width, s.height))
}

// Resize changes the screen size, abandoning any selection.
func (s *Session) Resize(width, height int) error {
	if width == s.width && height == s.height {
		return nil
	}
	if err := s.view.Resize(width, height); err != nil {
		return err
	}
	if s.tracker.Active() {
		s.tracker.RightDown()
	}
	s.width, s.height = width, height
	s.present = fractal.NewPixelGrid(width, height)
	s.mouseX = min(s.mouseX, width-1)
	s.mouseY = min(s.mouseY, height-1)
	s.log.Debug("resized", "size", fmt.Sprintf("%dx%d", width, height))
	return nil
}

// Compose copies the fractal frame into the presentation buffer and draws the
// live selection on top of it. The returned grid is reused by the next call.
func (s *Session) Compose() *fractal.PixelGrid {
	if err := s.present.CopyFrom(s.view.Frame()); err != nil {
		s.fail("compose", err)
		return s.present
	}
	if r, ok := s.tracker.Rect(); ok {
		selection.DrawOverlay(s.present, r)
	}
	return s.present
}

// Run presents frames until the display closes or ctx is done.
func (s *Session) Run(ctx context.Context, d Display) error {
	frames := 0
	start := time.Now()
	defer func() {
		s.log.Info("session ended", "frames", frames, "elapsed", time.Since(start))
	}()
	for d.Open() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := d.Update(s.Compose()); err != nil {
			return fmt.Errorf("display update: %w", err)
		}
		frames++
		if s.err != nil {
			return s.err
		}
	}
	return nil
}

func (s *Session) Bounds() fractal.PlaneBounds  { return s.view.Bounds() }
func (s *Session) Initial() fractal.PlaneBounds { return s.view.Initial() }
func (s *Session) Frame() *fractal.PixelGrid    { return s.view.Frame() }
func (s *Session) Size() (width, height int)    { return s.width, s.height }
func (s *Session) Depth() int                   { return s.view.Depth() }
func (s *Session) Magnification() float64       { return s.view.Magnification() }
func (s *Session) LastRender() time.Duration    { return s.view.LastRender() }
func (s *Session) Selecting() bool              { return s.tracker.Active() }
func (s *Session) Mouse() (x, y int)            { return s.mouseX, s.mouseY }
func (s *Session) Err() error                   { return s.err }

// Selection returns the live selection rectangle, if any.
func (s *Session) Selection() (selection.Rect, bool) { return s.tracker.Rect() }

// MouseComplex is the plane coordinate under the pointer.
func (s *Session) MouseComplex() complex128 {
	return s.view.PixelToComplex(s.mouseX, s.mouseY)
}

func clampPixel(v float64, size int) int {
	hi := float64(size - 1)
	if v != v || v < 0 {
		v = 0
	}
	if v > hi {
		v = hi
	}
	return int(v)
}
