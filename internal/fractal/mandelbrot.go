package fractal

import (
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// MaxIterations bounds the escape-time loop for every pixel.
const MaxIterations = 50

var (
	ErrInvalidBounds = errors.New("invalid plane bounds")
	ErrGridTooSmall  = errors.New("pixel grid must be at least 2x2")
	ErrSizeMismatch  = errors.New("pixel grid size mismatch")
)

// Escape iterates z <- z*z + c starting from z = c and stops the first time
// |z|^2 exceeds 4.
func Escape(c complex128) EscapeResult {
	cRe, cIm := real(c), imag(c)
	zRe, zIm := cRe, cIm

	n := 0
	for n < MaxIterations {
		zRe2 := zRe * zRe
		zIm2 := zIm * zIm
		if zRe2+zIm2 > 4 {
			break
		}
		// imaginary part first: it needs the previous real part
		zIm = 2.0*zRe*zIm + cIm
		zRe = zRe2 - zIm2 + cRe
		n++
	}
	return EscapeResult{Iterations: n, Z: complex(zRe, zIm)}
}

// RedLimit is the iteration count where the gradient turns from black->red
// into red->white.
func RedLimit(maxIterations int) int {
	return maxIterations/2 - 1
}

// Palette maps an escape count to the flame gradient: black interior, black
// to red below RedLimit, red towards white above it.
func Palette(iterations, maxIterations int) Color {
	if iterations >= maxIterations {
		return Black
	}
	redLimit := RedLimit(maxIterations)
	if redLimit <= 0 {
		return Red
	}
	if iterations < redLimit {
		v := float32(iterations) / float32(redLimit)
		return Color{R: v}
	}
	v := float32(iterations-redLimit) / float32(redLimit)
	return Color{R: 1, G: v, B: v}
}

// Engine renders plane bounds into pixel grids. Rows are computed on up to
// Workers goroutines; Workers <= 0 means GOMAXPROCS.
type Engine struct {
	Workers int
}

func NewEngine(workers int) *Engine {
	return &Engine{Workers: workers}
}

func (e *Engine) workers() int {
	if e == nil || e.Workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return e.Workers
}

// Render computes a fresh width x height grid for bounds.
func (e *Engine) Render(bounds PlaneBounds, width, height int) (*PixelGrid, error) {
	if width < 2 || height < 2 {
		return nil, fmt.Errorf("render %dx%d: %w", width, height, ErrGridTooSmall)
	}
	g := NewPixelGrid(width, height)
	if err := e.RenderInto(g, bounds); err != nil {
		return nil, err
	}
	return g, nil
}

// RenderInto overwrites every pixel of dst. The call returns only once all
// rows are written.
func (e *Engine) RenderInto(dst *PixelGrid, bounds PlaneBounds) error {
	if dst == nil || dst.Width < 2 || dst.Height < 2 {
		return fmt.Errorf("render into grid: %w", ErrGridTooSmall)
	}
	if !bounds.Valid() {
		return fmt.Errorf("render %s: %w", bounds, ErrInvalidBounds)
	}

	reDelta := bounds.RealExtent() / float64(dst.Width-1)
	imDelta := bounds.ImagExtent() / float64(dst.Height-1)

	row := func(y int) {
		cIm := bounds.ImMax - float64(y)*imDelta
		pix := dst.Row(y)
		for x := range pix {
			cRe := bounds.ReMin + float64(x)*reDelta
			res := Escape(complex(cRe, cIm))
			pix[x] = Palette(res.Iterations, MaxIterations)
		}
	}

	workers := e.workers()
	if workers == 1 {
		for y := 0; y < dst.Height; y++ {
			row(y)
		}
		return nil
	}

	var eg errgroup.Group
	eg.SetLimit(workers)
	for y := 0; y < dst.Height; y++ {
		eg.Go(func() error {
			row(y)
			return nil
		})
	}
	return eg.Wait()
}

// PixelToComplex maps a pixel of a width x height grid to its plane
// coordinate, using the same deltas as the renderer.
func PixelToComplex(bounds PlaneBounds, x, y, width, height int) complex128 {
	if width < 2 || height < 2 {
		return bounds.Center()
	}
	reDelta := bounds.RealExtent() / float64(width-1)
	imDelta := bounds.ImagExtent() / float64(height-1)
	return complex(bounds.ReMin+float64(x)*reDelta, bounds.ImMax-float64(y)*imDelta)
}
