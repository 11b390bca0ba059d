package viewport

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mandelzoom/internal/fractal"
)

type countingRenderer struct {
	calls int
	last  fractal.PlaneBounds
	inner *fractal.Engine
}

func (r *countingRenderer) RenderInto(dst *fractal.PixelGrid, b fractal.PlaneBounds) error {
	r.calls++
	r.last = b
	return r.inner.RenderInto(dst, b)
}

func newController(t *testing.T, w, h int) (*Controller, *countingRenderer) {
	t.Helper()
	r := &countingRenderer{inner: fractal.NewEngine(1)}
	c, err := New(r, w, h)
	require.NoError(t, err)
	return c, r
}

func TestInitialBounds(t *testing.T) {
	b := InitialBounds(640, 480)
	assert.Equal(t, -2.0, b.ReMin)
	assert.Equal(t, 1.0, b.ReMax)
	assert.Equal(t, -1.2, b.ImMin)
	assert.InDelta(t, 1.05, b.ImMax, 1e-12)
}

func TestNewRendersInitialFrame(t *testing.T) {
	c, r := newController(t, 64, 48)
	assert.Equal(t, 1, r.calls)
	assert.Equal(t, InitialBounds(64, 48), c.Bounds())
	require.NotNil(t, c.Frame())
	assert.Equal(t, 64, c.Frame().Width)
	assert.Equal(t, 0, c.Depth())
	assert.InDelta(t, 1.0, c.Magnification(), 1e-12)

	_, err := New(r, 1, 48)
	require.True(t, errors.Is(err, fractal.ErrGridTooSmall))
}

func TestZoomFullScreenRoundTrip(t *testing.T) {
	start := InitialBounds(640, 480)
	got := ZoomBounds(start, 0, 0, 639, 479, 640, 480)
	assert.InDelta(t, start.ReMin, got.ReMin, 1e-12)
	assert.InDelta(t, start.ReMax, got.ReMax, 1e-12)
	assert.InDelta(t, start.ImMin, got.ImMin, 1e-12)
	assert.InDelta(t, start.ImMax, got.ImMax, 1e-12)
}

func TestZoomBoundsUsesOriginalSnapshot(t *testing.T) {
	b := fractal.PlaneBounds{ReMin: 0, ReMax: 10, ImMin: 0, ImMax: 10}
	// 11x11 screen: one plane unit per pixel
	got := ZoomBounds(b, 2, 3, 6, 8, 11, 11)
	assert.Equal(t, fractal.PlaneBounds{ReMin: 2, ReMax: 6, ImMin: 2, ImMax: 7}, got)
}

func TestZoomToSelection(t *testing.T) {
	c, r := newController(t, 101, 101)
	before := c.Bounds()

	ok, err := c.ZoomToSelection(75, 75, 25, 25, 101, 101) // unordered corners
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, r.calls)
	assert.Equal(t, 1, c.Depth())

	want := ZoomBounds(before, 25, 25, 75, 75, 101, 101)
	assert.Equal(t, want, c.Bounds())
	assert.InDelta(t, 2.0, c.Magnification(), 1e-9)
}

func TestZoomToSelectionDegenerate(t *testing.T) {
	c, r := newController(t, 64, 48)
	before := c.Bounds()

	for _, sel := range [][4]int{{10, 10, 10, 20}, {10, 10, 20, 10}, {5, 5, 5, 5}} {
		ok, err := c.ZoomToSelection(sel[0], sel[1], sel[2], sel[3], 64, 48)
		require.NoError(t, err)
		assert.False(t, ok)
	}
	assert.Equal(t, before, c.Bounds())
	assert.Equal(t, 1, r.calls)
}

func TestZoomBeyondFloatResolutionIsIgnored(t *testing.T) {
	c, _ := newController(t, 4, 4)
	ulp := math.Nextafter(1, 2)
	tiny := fractal.PlaneBounds{ReMin: 1, ReMax: ulp, ImMin: 1, ImMax: ulp}
	require.True(t, tiny.Valid())
	require.NoError(t, c.Jump(tiny))

	ok, err := c.ZoomToSelection(0, 0, 1, 1, 4, 4)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, tiny, c.Bounds())
}

func TestResetIdempotent(t *testing.T) {
	c, _ := newController(t, 640, 480)
	_, err := c.ZoomToSelection(100, 100, 300, 250, 640, 480)
	require.NoError(t, err)

	require.NoError(t, c.Reset())
	first := c.Bounds()
	require.NoError(t, c.Reset())
	assert.Equal(t, first, c.Bounds())
	assert.Equal(t, InitialBounds(640, 480), c.Bounds())
	assert.Equal(t, 0, c.Depth())
}

func TestResetRestoresFrame(t *testing.T) {
	c, _ := newController(t, 32, 24)
	initial := c.Frame().Clone()
	_, err := c.ZoomToSelection(4, 4, 20, 16, 32, 24)
	require.NoError(t, err)
	assert.NotEqual(t, initial.Pix, c.Frame().Pix)
	require.NoError(t, c.Reset())
	assert.Equal(t, initial.Pix, c.Frame().Pix)
}

func TestJump(t *testing.T) {
	c, _ := newController(t, 32, 24)
	err := c.Jump(fractal.PlaneBounds{ReMin: 1, ReMax: 0, ImMin: 0, ImMax: 1})
	require.True(t, errors.Is(err, fractal.ErrInvalidBounds))

	sv, _ := fractal.LookupLandmark("Seahorse Valley")
	require.NoError(t, c.Jump(sv.Bounds))
	assert.Equal(t, sv.Bounds, c.Bounds())
}

func TestFitAspect(t *testing.T) {
	square := fractal.PlaneBounds{ReMin: -1, ReMax: 1, ImMin: -1, ImMax: 1}

	wide := FitAspect(square, 200, 100)
	assert.InDelta(t, 4.0, wide.RealExtent(), 1e-12)
	assert.InDelta(t, 2.0, wide.ImagExtent(), 1e-12)
	assert.Equal(t, square.Center(), wide.Center())

	tall := FitAspect(square, 100, 200)
	assert.InDelta(t, 2.0, tall.RealExtent(), 1e-12)
	assert.InDelta(t, 4.0, tall.ImagExtent(), 1e-12)

	assert.Equal(t, square, FitAspect(square, 100, 100))
}

func TestResize(t *testing.T) {
	c, _ := newController(t, 64, 48)
	require.NoError(t, c.Resize(80, 40))
	w, h := c.Size()
	assert.Equal(t, 80, w)
	assert.Equal(t, 40, h)
	assert.Equal(t, InitialBounds(80, 40), c.Bounds())
	assert.Equal(t, 80*40, len(c.Frame().Pix))

	_, err := c.ZoomToSelection(10, 10, 50, 30, 80, 40)
	require.NoError(t, err)
	zoomed := c.Bounds()
	require.NoError(t, c.Resize(80, 80))
	assert.Equal(t, zoomed.ReMin, c.Bounds().ReMin)
	assert.Equal(t, zoomed.ReMax, c.Bounds().ReMax)
	assert.InDelta(t, imag(zoomed.Center()), imag(c.Bounds().Center()), 1e-12)

	require.Error(t, c.Resize(1, 1))
}

func TestFailedResizeKeepsState(t *testing.T) {
	c, _ := newController(t, 64, 48)
	tiny := fractal.PlaneBounds{ReMin: 0.1, ReMax: 0.1 + 1e-13, ImMin: 1, ImMax: 1 + 1e-13}
	require.NoError(t, c.Jump(tiny))
	before := c.Frame().Clone()

	// The re-centred imaginary range collapses below float64 resolution.
	err := c.Resize(2000, 2)
	require.ErrorIs(t, err, fractal.ErrInvalidBounds)

	w, h := c.Size()
	assert.Equal(t, 64, w)
	assert.Equal(t, 48, h)
	assert.Equal(t, tiny, c.Bounds())
	assert.Equal(t, before.Pix, c.Frame().Pix)
	assert.Equal(t, InitialBounds(64, 48), c.Initial())

	require.NoError(t, c.Resize(80, 60))
	w, h = c.Size()
	assert.Equal(t, 80, w)
	assert.Equal(t, 60, h)
}

func TestPixelToComplex(t *testing.T) {
	c, _ := newController(t, 640, 480)
	z := c.PixelToComplex(0, 0)
	assert.Equal(t, -2.0, real(z))
	assert.Equal(t, c.Bounds().ImMax, imag(z))
}
