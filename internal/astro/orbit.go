// Package astro provides the orbit geometry, parallax math and star data
// behind the parallax simulator.
//
// All positions are in logical canvas units: a 500x500 square with the Sun
// at its centre and y growing downward. Renderers scale these to pixels or
// terminal cells.
package astro

import (
	"fmt"
	"math"
)

// Canvas geometry in logical units.
const (
	CanvasSize  = 500.0
	CenterX     = 250.0
	CenterY     = 250.0
	OrbitRadius = 180.0 // 1 AU on screen
	PickRadius  = 25.0  // pointer distance that grabs Earth

	// ParallaxScale turns arcseconds into a visible screen offset.
	ParallaxScale = 20.0

	// SolarLayoutScale places the near stars in the orbit view relative to
	// their sky-view base offsets.
	SolarLayoutScale = 1.8

	// AU is the orbit baseline in simulation units.
	AU = 1.0
)

// Point is a position in logical canvas units.
type Point struct {
	X, Y float64
}

// Dist returns the euclidean distance between two points.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Season is the quarter of the year the Earth is in.
type Season int

const (
	SeasonSpring Season = iota
	SeasonSummer
	SeasonAutumn
	SeasonWinter
)

func (s Season) String() string {
	switch s {
	case SeasonSpring:
		return "Spring (vernal equinox)"
	case SeasonSummer:
		return "Summer (solstice)"
	case SeasonAutumn:
		return "Autumn (equinox)"
	case SeasonWinter:
		return "Winter (solstice)"
	default:
		return "Spring"
	}
}

// Short returns the one-word season name.
func (s Season) Short() string {
	switch s {
	case SeasonSummer:
		return "Summer"
	case SeasonAutumn:
		return "Autumn"
	case SeasonWinter:
		return "Winter"
	default:
		return "Spring"
	}
}

// WrapYear normalizes t into [0, 1).
func WrapYear(t float64) float64 {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return 0
	}
	t = math.Mod(t, 1)
	if t < 0 {
		t++
	}
	// -tiny + 1 rounds to exactly 1
	if t >= 1 {
		t = 0
	}
	return t
}

// EarthAngle returns Earth's screen angle in radians for year fraction t.
// The sign is negative so the orbit runs counter-clockwise on a y-down screen,
// matching the view from above the north pole.
func EarthAngle(t float64) float64 {
	return -t * 2 * math.Pi
}

// EarthPosition returns Earth's position on the orbit view for year fraction t.
func EarthPosition(t float64) Point {
	a := EarthAngle(t)
	return Point{
		X: CenterX + OrbitRadius*math.Cos(a),
		Y: CenterY + OrbitRadius*math.Sin(a),
	}
}

// TimeFromPointer maps a pointer position on the orbit view to a year
// fraction by the pointer's angle around the Sun. The radius is ignored.
func TimeFromPointer(x, y float64) float64 {
	a := math.Atan2(y-CenterY, x-CenterX)
	if a < 0 {
		a += 2 * math.Pi
	}
	return WrapYear((2*math.Pi - a) / (2 * math.Pi))
}

// OrbitDegrees returns Earth's counter-clockwise orbital position in degrees.
func OrbitDegrees(t float64) float64 {
	return math.Mod(360-WrapYear(t)*360, 360)
}

// SeasonAt returns the season for year fraction t.
func SeasonAt(t float64) Season {
	idx := int(math.Floor(WrapYear(t) * 4))
	if idx < 0 || idx > 3 {
		return SeasonSpring
	}
	return Season(idx)
}

// FormatYears renders a year fraction as shown in the readouts.
func FormatYears(t float64) string {
	return fmt.Sprintf("%.2f yr", t)
}

// FormatDegrees renders an orbital position as shown in the readouts.
func FormatDegrees(deg float64) string {
	return fmt.Sprintf("%.1f°", deg)
}
