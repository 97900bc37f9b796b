// Package render draws the orbit and sky canvases onto any 2D Surface.
//
// Scene code works in logical canvas units (see package astro). A Surface
// implementation maps those onto pixels: PNGSurface uses gogpu/gg, the web
// build uses the browser's canvas.
package render

// Align is horizontal text alignment relative to the anchor point.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
)

// Stop is one colour stop of a gradient.
type Stop struct {
	Offset float64
	Color  Color
}

// RadialGradient mirrors the canvas createRadialGradient model: colour runs
// from the inner circle (FX, FY, R0) to the outer circle (CX, CY, R1).
type RadialGradient struct {
	FX, FY, R0 float64
	CX, CY, R1 float64
	Stops      []Stop
}

// Paint is either a solid colour or a radial gradient.
type Paint struct {
	Color    Color
	Gradient *RadialGradient
}

// Solid returns a solid-colour paint.
func Solid(c Color) Paint {
	return Paint{Color: c}
}

// Surface is the minimal immediate-mode canvas the scenes draw on.
type Surface interface {
	FillRect(x, y, w, h float64, c Color)
	Line(x1, y1, x2, y2, width float64, c Color)
	StrokeCircle(x, y, r, width float64, c Color, dash []float64)
	FillCircle(x, y, r float64, p Paint)
	Text(s string, x, y, size float64, c Color, align Align)
}
