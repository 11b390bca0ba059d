// Package viewport owns the current plane bounds and the last rendered
// fractal frame, and turns screen-space selections into new bounds.
package viewport

import (
	"fmt"
	"log/slog"
	"time"

	"mandelzoom/internal/fractal"
)

const (
	ReMinInitial = -2.0
	ReMaxInitial = 1.0
	ImMinInitial = -1.2
)

// Renderer fills a grid for the given bounds.
type Renderer interface {
	RenderInto(dst *fractal.PixelGrid, bounds fractal.PlaneBounds) error
}

// InitialBounds returns the startup view for a width x height screen: the
// real range is fixed and the imaginary range keeps the aspect ratio.
func InitialBounds(width, height int) fractal.PlaneBounds {
	return InitialBoundsFrom(ReMinInitial, ReMaxInitial, ImMinInitial, width, height)
}

// InitialBoundsFrom is InitialBounds with a custom real range and imMin.
func InitialBoundsFrom(reMin, reMax, imMin float64, width, height int) fractal.PlaneBounds {
	imMax := imMin + (reMax-reMin)*(float64(height)/float64(width))
	return fractal.PlaneBounds{ReMin: reMin, ReMax: reMax, ImMin: imMin, ImMax: imMax}
}

// ZoomBounds maps the screen rectangle (x0,y0)-(x1,y1) through the per-pixel
// deltas of b. All four results come from the same snapshot of b.
func ZoomBounds(b fractal.PlaneBounds, x0, y0, x1, y1, screenWidth, screenHeight int) fractal.PlaneBounds {
	reDelta := (b.ReMax - b.ReMin) / float64(screenWidth-1)
	imDelta := (b.ImMax - b.ImMin) / float64(screenHeight-1)
	return fractal.PlaneBounds{
		ReMax: b.ReMin + float64(x1)*reDelta,
		ReMin: b.ReMin + float64(x0)*reDelta,
		ImMin: b.ImMax - float64(y1)*imDelta,
		ImMax: b.ImMax - float64(y0)*imDelta,
	}
}

// FitAspect grows the short axis of b around its centre so that a
// width x height grid has square pixels.
func FitAspect(b fractal.PlaneBounds, width, height int) fractal.PlaneBounds {
	if width < 2 || height < 2 || !b.Valid() {
		return b
	}
	want := float64(height) / float64(width)
	have := b.ImagExtent() / b.RealExtent()
	c := b.Center()
	switch {
	case have < want:
		half := b.RealExtent() * want / 2
		return fractal.PlaneBounds{ReMin: b.ReMin, ReMax: b.ReMax, ImMin: imag(c) - half, ImMax: imag(c) + half}
	case have > want:
		half := b.ImagExtent() / want / 2
		return fractal.PlaneBounds{ReMin: real(c) - half, ReMax: real(c) + half, ImMin: b.ImMin, ImMax: b.ImMax}
	}
	return b
}

type Option func(*Controller)

// WithLogger sets the logger used for render records.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithInitial overrides the bounds restored by Reset.
func WithInitial(b fractal.PlaneBounds) Option {
	return func(c *Controller) { c.initial = b }
}

// Controller holds the current bounds and the fractal frame rendered from
// them. It is not safe for concurrent use.
type Controller struct {
	renderer Renderer
	log      *slog.Logger

	width, height int
	initial       fractal.PlaneBounds
	bounds        fractal.PlaneBounds
	frame         *fractal.PixelGrid

	depth      int
	lastRender time.Duration
}

// New builds a controller for a width x height screen and renders the
// initial view.
func New(renderer Renderer, width, height int, opts ...Option) (*Controller, error) {
	if width < 2 || height < 2 {
		return nil, fmt.Errorf("viewport %dx%d: %w", width, height, fractal.ErrGridTooSmall)
	}
	c := &Controller{
		renderer: renderer,
		width:    width,
		height:   height,
		initial:  InitialBounds(width, height),
	}
	for _, o := range opts {
		o(c)
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	if !c.initial.Valid() {
		return nil, fmt.Errorf("viewport initial %s: %w", c.initial, fractal.ErrInvalidBounds)
	}
	c.frame = fractal.NewPixelGrid(width, height)
	if err := c.replace(c.initial); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Controller) Bounds() fractal.PlaneBounds  { return c.bounds }
func (c *Controller) Initial() fractal.PlaneBounds { return c.initial }

// Frame is the last rendered fractal frame. Callers must not modify it.
func (c *Controller) Frame() *fractal.PixelGrid { return c.frame }

func (c *Controller) Size() (width, height int) { return c.width, c.height }

// Depth counts committed zooms since the last reset.
func (c *Controller) Depth() int { return c.depth }

func (c *Controller) LastRender() time.Duration { return c.lastRender }

// Magnification is the initial real extent divided by the current one.
func (c *Controller) Magnification() float64 {
	return c.initial.RealExtent() / c.bounds.RealExtent()
}

// PixelToComplex maps a screen pixel to the plane under the current bounds.
func (c *Controller) PixelToComplex(x, y int) complex128 {
	return fractal.PixelToComplex(c.bounds, x, y, c.width, c.height)
}

// Reset restores the initial bounds and re-renders.
func (c *Controller) Reset() error {
	if err := c.replace(c.initial); err != nil {
		return err
	}
	c.depth = 0
	return nil
}

// ZoomToSelection replaces the bounds with the plane rectangle under the
// screen rectangle (x0,y0)-(x1,y1). It reports false, without rendering, for
// a selection with zero width or height or one that floating point can no
// longer resolve.
func (c *Controller) ZoomToSelection(x0, y0, x1, y1, screenWidth, screenHeight int) (bool, error) {
	x0, x1 = min(x0, x1), max(x0, x1)
	y0, y1 = min(y0, y1), max(y0, y1)
	if x0 == x1 || y0 == y1 || screenWidth < 2 || screenHeight < 2 {
		return false, nil
	}
	next := ZoomBounds(c.bounds, x0, y0, x1, y1, screenWidth, screenHeight)
	if !next.Valid() || next == c.bounds {
		c.log.Debug("zoom ignored", "bounds", next.String())
		return false, nil
	}
	if err := c.replace(next); err != nil {
		return false, err
	}
	c.depth++
	return true, nil
}

// Jump replaces the bounds with b as given.
func (c *Controller) Jump(b fractal.PlaneBounds) error {
	if !b.Valid() {
		return fmt.Errorf("jump %s: %w", b, fractal.ErrInvalidBounds)
	}
	if err := c.replace(b); err != nil {
		return err
	}
	c.depth = 0
	return nil
}

// Resize changes the screen size. The view keeps its centre and real extent;
// the imaginary extent follows the new aspect ratio. The reset target is
// re-derived for the new size as well.
func (c *Controller) Resize(width, height int) error {
	if width < 2 || height < 2 {
		return fmt.Errorf("resize %dx%d: %w", width, height, fractal.ErrGridTooSmall)
	}
	if width == c.width && height == c.height {
		return nil
	}
	initial := InitialBoundsFrom(c.initial.ReMin, c.initial.ReMax, c.initial.ImMin, width, height)

	center := c.bounds.Center()
	halfIm := c.bounds.RealExtent() * float64(height) / float64(width) / 2
	next := fractal.PlaneBounds{
		ReMin: c.bounds.ReMin,
		ReMax: c.bounds.ReMax,
		ImMin: imag(center) - halfIm,
		ImMax: imag(center) + halfIm,
	}
	if c.bounds == c.initial {
		next = initial
	}

	// Nothing changes unless the new frame renders.
	frame := fractal.NewPixelGrid(width, height)
	took, err := c.render(frame, next)
	if err != nil {
		return err
	}
	c.width, c.height = width, height
	c.initial = initial
	c.frame = frame
	c.commit(next, took)
	return nil
}

// replace renders b into the frame and, on success, makes it current.
func (c *Controller) replace(b fractal.PlaneBounds) error {
	took, err := c.render(c.frame, b)
	if err != nil {
		return err
	}
	c.commit(b, took)
	return nil
}

func (c *Controller) render(dst *fractal.PixelGrid, b fractal.PlaneBounds) (time.Duration, error) {
	start := time.Now()
	if err := c.renderer.RenderInto(dst, b); err != nil {
		return 0, fmt.Errorf("viewport render: %w", err)
	}
	return time.Since(start), nil
}

func (c *Controller) commit(b fractal.PlaneBounds, took time.Duration) {
	c.bounds = b
	c.lastRender = took
	c.log.Debug("rendered",
		"bounds", b.String(),
		"size", fmt.Sprintf("%dx%d", c.width, c.height),
		"took", took)
}
