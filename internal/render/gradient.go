package render

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// At returns the gradient colour at (x, y). Distance is measured from the
// focus and normalised by R1, which is close enough for gradients whose
// focus sits inside the outer circle.
func (g *RadialGradient) At(x, y float64) Color {
	if len(g.Stops) == 0 {
		return Color{}
	}
	if g.R1 <= g.R0 {
		return g.Stops[len(g.Stops)-1].Color
	}

	t := (math.Hypot(x-g.FX, y-g.FY) - g.R0) / (g.R1 - g.R0)
	t = math.Max(0, math.Min(1, t))

	first := g.Stops[0]
	if t <= first.Offset {
		return first.Color
	}
	for i := 1; i < len(g.Stops); i++ {
		a, b := g.Stops[i-1], g.Stops[i]
		if t > b.Offset {
			continue
		}
		span := b.Offset - a.Offset
		if span <= 0 {
			return b.Color
		}
		return mix(a.Color, b.Color, (t-a.Offset)/span)
	}
	return g.Stops[len(g.Stops)-1].Color
}

// At returns the paint colour at (x, y).
func (p Paint) At(x, y float64) Color {
	if p.Gradient != nil {
		return p.Gradient.At(x, y)
	}
	return p.Color
}

func mix(a, b Color, t float64) Color {
	ca := colorful.Color{R: a.R, G: a.G, B: a.B}
	cb := colorful.Color{R: b.R, G: b.G, B: b.B}
	out := ca.BlendRgb(cb, t)
	return Color{R: out.R, G: out.G, B: out.B, A: a.A + (b.A-a.A)*t}
}
