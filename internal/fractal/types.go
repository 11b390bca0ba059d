package fractal

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

// PlaneBounds is the rectangle of the complex plane mapped onto a pixel grid.
type PlaneBounds struct {
	ReMin float64
	ReMax float64
	ImMin float64
	ImMax float64
}

// Valid reports whether the bounds are finite with strictly positive extents.
func (b PlaneBounds) Valid() bool {
	for _, v := range [4]float64{b.ReMin, b.ReMax, b.ImMin, b.ImMax} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return b.ReMax > b.ReMin && b.ImMax > b.ImMin
}

func (b PlaneBounds) RealExtent() float64 { return b.ReMax - b.ReMin }
func (b PlaneBounds) ImagExtent() float64 { return b.ImMax - b.ImMin }

// Center returns the midpoint of the rectangle.
func (b PlaneBounds) Center() complex128 {
	return complex(b.ReMin+b.RealExtent()/2, b.ImMin+b.ImagExtent()/2)
}

func (b PlaneBounds) String() string {
	return fmt.Sprintf("re[%.10g, %.10g] im[%.10g, %.10g]", b.ReMin, b.ReMax, b.ImMin, b.ImMax)
}

// Color is a three channel floating point pixel. Channels are nominally in
// [0,1] but may exceed 1 after additive tinting.
type Color struct {
	R, G, B float32
}

var (
	Black = Color{}
	Red   = Color{R: 1}
	White = Color{R: 1, G: 1, B: 1}
)

// Add returns the channel-wise sum, unclamped.
func (c Color) Add(o Color) Color {
	return Color{R: c.R + o.R, G: c.G + o.G, B: c.B + o.B}
}

// RGB8 converts to 8-bit channels, saturating anything outside [0,1].
func (c Color) RGB8() (r, g, b uint8) {
	return channel8(c.R), channel8(c.G), channel8(c.B)
}

func channel8(v float32) uint8 {
	if v <= 0 || v != v {
		return 0
	}
	if v >= 1 {
		return 0xFF
	}
	return uint8(v*255 + 0.5)
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	r8, g8, b8 := c.RGB8()
	return color.RGBA{R: r8, G: g8, B: b8, A: 0xFF}.RGBA()
}

// EscapeResult is the outcome of iterating a single point.
type EscapeResult struct {
	Iterations int
	Z          complex128
}

// InSet reports whether the point stayed bounded for every iteration.
func (e EscapeResult) InSet() bool { return e.Iterations >= MaxIterations }

// PixelGrid is a dense row-major raster: Pix[x+y*Width].
type PixelGrid struct {
	Width  int
	Height int
	Pix    []Color
}

func NewPixelGrid(width, height int) *PixelGrid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &PixelGrid{Width: width, Height: height, Pix: make([]Color, width*height)}
}

func (g *PixelGrid) Bounds() image.Rectangle { return image.Rect(0, 0, g.Width, g.Height) }

func (g *PixelGrid) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.Width && y < g.Height
}

func (g *PixelGrid) At(x, y int) Color {
	if !g.In(x, y) {
		return Color{}
	}
	return g.Pix[x+y*g.Width]
}

func (g *PixelGrid) Set(x, y int, c Color) {
	if !g.In(x, y) {
		return
	}
	g.Pix[x+y*g.Width] = c
}

// Row returns the slice backing row y.
func (g *PixelGrid) Row(y int) []Color {
	return g.Pix[y*g.Width : (y+1)*g.Width]
}

// SameSize reports whether o has identical dimensions.
func (g *PixelGrid) SameSize(o *PixelGrid) bool {
	return o != nil && g.Width == o.Width && g.Height == o.Height
}

// CopyFrom overwrites g with the contents of src. Both grids must have the
// same dimensions.
func (g *PixelGrid) CopyFrom(src *PixelGrid) error {
	if !g.SameSize(src) {
		return fmt.Errorf("copy %dx%d into %dx%d: %w", src.Width, src.Height, g.Width, g.Height, ErrSizeMismatch)
	}
	copy(g.Pix, src.Pix)
	return nil
}

func (g *PixelGrid) Clone() *PixelGrid {
	out := NewPixelGrid(g.Width, g.Height)
	copy(out.Pix, g.Pix)
	return out
}

// ToRGBA writes the grid into dst (allocating when nil or mis-sized) with
// 8-bit saturation, and returns it.
func (g *PixelGrid) ToRGBA(dst *image.RGBA) *image.RGBA {
	if dst == nil || dst.Bounds() != g.Bounds() {
		dst = image.NewRGBA(g.Bounds())
	}
	for y := 0; y < g.Height; y++ {
		row := g.Row(y)
		off := y * dst.Stride
		for x, c := range row {
			r, gg, b := c.RGB8()
			j := off + x*4
			dst.Pix[j+0] = r
			dst.Pix[j+1] = gg
			dst.Pix[j+2] = b
			dst.Pix[j+3] = 0xFF
		}
	}
	return dst
}
