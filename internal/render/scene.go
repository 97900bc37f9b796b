package render

import (
	"math"

	"github.com/litescript/ls-parallax/internal/astro"
	"github.com/litescript/ls-parallax/internal/state"
)

// Options controls optional scene elements.
type Options struct {
	Grid   bool
	Labels bool
	Track  bool // draw each near star's yearly parallax track

	// Exaggeration multiplies near-star offsets in the sky view. 1 is true
	// scale.
	Exaggeration float64
}

// DefaultOptions draws grid and labels at true scale, as the web canvases do.
func DefaultOptions() Options {
	return Options{Grid: true, Labels: true, Exaggeration: 1}
}

func (o Options) exaggeration() float64 {
	if o.Exaggeration <= 0 {
		return 1
	}
	return o.Exaggeration
}

const gridStep = 50.0

var (
	colorBackground = RGBA(0, 8, 20, 0.95)
	colorGrid       = RGBA(255, 255, 255, 0.1)
	colorOrbit      = RGBA(100, 255, 218, 0.3)
	colorAccent     = RGBA(100, 255, 218, 0.8)
	colorCrosshair  = RGBA(100, 255, 218, 0.5)
	colorSunRay     = RGBA(255, 215, 0, 0.3)
	colorSunLabel   = MustColor("#ffd700")
	colorSightLine  = RGBA(255, 255, 255, 0.2)
	colorLabel      = RGBA(255, 255, 255, 1)
	colorTrack      = RGBA(255, 120, 120, 0.35)
	colorFieldStar  = RGBA(200, 200, 200, 1)

	sunStops = []Stop{
		{0, MustColor("#fff700")},
		{0.3, MustColor("#ffaa00")},
		{1, MustColor("#ff6600")},
	}
	earthStops = []Stop{
		{0, MustColor("#87ceeb")},
		{0.4, MustColor("#4169e1")},
		{1, MustColor("#191970")},
	}
)

func drawBackdrop(s Surface, opts Options) {
	s.FillRect(0, 0, astro.CanvasSize, astro.CanvasSize, colorBackground)
	if opts.Grid {
		drawGrid(s)
	}
}

func drawGrid(s Surface) {
	for v := 0.0; v <= astro.CanvasSize; v += gridStep {
		s.Line(v, 0, v, astro.CanvasSize, 1, colorGrid)
		s.Line(0, v, astro.CanvasSize, v, 1, colorGrid)
	}
}

// DrawOrbitView draws the top-down solar system: orbit, Sun, Earth and the
// lines of sight from Earth to the near stars.
func DrawOrbitView(s Surface, snap state.Snapshot, opts Options) {
	cx, cy := astro.CenterX, astro.CenterY

	drawBackdrop(s, opts)

	s.StrokeCircle(cx, cy, astro.OrbitRadius, 2, colorOrbit, []float64{5, 5})

	s.FillCircle(cx, cy, 12, Paint{Gradient: &RadialGradient{
		FX: cx, FY: cy, R0: 0,
		CX: cx, CY: cy, R1: 20,
		Stops: sunStops,
	}})

	for i := 0; i < 8; i++ {
		a := float64(i) * math.Pi / 4
		s.Line(cx+math.Cos(a)*20, cy+math.Sin(a)*20,
			cx+math.Cos(a)*35, cy+math.Sin(a)*35, 2, colorSunRay)
	}

	ex, ey := snap.Earth.X, snap.Earth.Y
	s.FillCircle(ex, ey, 8, Paint{Gradient: &RadialGradient{
		FX: ex - 3, FY: ey - 3, R0: 0,
		CX: ex, CY: ey, R1: 10,
		Stops: earthStops,
	}})
	s.StrokeCircle(ex, ey, 8, 1, colorAccent, nil)

	for _, st := range snap.Stars {
		m := st.Star.Marker()
		s.Line(ex, ey, m.X, m.Y, 1, colorSightLine)
		s.FillCircle(m.X, m.Y, 3, Solid(starColor(st.Star)))
		if opts.Labels {
			s.Text(st.Star.DisplayName(), m.X+8, m.Y-8, 12, colorLabel, AlignLeft)
		}
	}

	if opts.Labels {
		s.Text("Earth", ex+12, ey-12, 14, colorAccent, AlignLeft)
		s.Text("Sun", cx, cy+35, 16, colorSunLabel, AlignCenter)
	}
}

// DrawSkyView draws the view from Earth: twinkling background stars and the
// near stars at their displaced positions.
func DrawSkyView(s Surface, snap state.Snapshot, field []astro.BackgroundStar, opts Options) {
	cx, cy := astro.CenterX, astro.CenterY
	ex := opts.exaggeration()

	drawBackdrop(s, opts)

	for _, bg := range field {
		k := astro.TwinkleIntensity(bg.Twinkle, snap.Clock)
		s.FillCircle(cx+bg.X, cy+bg.Y, bg.Size*k, Solid(colorFieldStar.WithAlpha(k*0.6)))
	}

	if opts.Track {
		for _, st := range snap.Stars {
			reach := astro.MaxOffset(st.Star, snap.Scale) * ex
			y := cy + st.Star.BaseY
			s.Line(cx+st.Star.BaseX-reach, y, cx+st.Star.BaseX+reach, y, 1, colorTrack)
		}
	}

	for _, st := range snap.Stars {
		x, y := ApparentPosition(st, ex)
		c := starColor(st.Star)
		glow := st.Star.Size * 4

		s.FillCircle(x, y, glow, Paint{Gradient: &RadialGradient{
			FX: x, FY: y, R0: 0,
			CX: x, CY: y, R1: glow,
			Stops: []Stop{
				{0, c},
				{0.4, c.WithAlpha(128.0 / 255)},
				{1, c.WithAlpha(0)},
			},
		}})
		s.FillCircle(x, y, st.Star.Size, Solid(c))

		if opts.Labels {
			s.Text(st.Star.DisplayName(), x+12, y-12, 14, colorLabel, AlignLeft)
		}
	}

	s.Line(cx-15, cy, cx+15, cy, 1, colorCrosshair)
	s.Line(cx, cy-15, cx, cy+15, 1, colorCrosshair)
	if opts.Labels {
		s.Text("view center", cx, cy+30, 12, colorAccent, AlignCenter)
	}
}

// ApparentPosition returns the canvas position of a near star with its
// parallax offset multiplied by exaggeration.
func ApparentPosition(st state.StarState, exaggeration float64) (float64, float64) {
	return astro.CenterX + st.Star.BaseX + st.Parallax.DeltaX*exaggeration,
		astro.CenterY + st.Star.BaseY + st.Parallax.DeltaY*exaggeration
}

func starColor(s astro.Star) Color {
	c, err := ParseColor(s.Color)
	if err != nil {
		return colorLabel
	}
	return c
}
