package astro

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidDistance = errors.New("star distance must be positive")
	ErrInvalidSize     = errors.New("star size must be positive")
)

// Star is a nearby star that shows parallax.
type Star struct {
	Name       string  // short name used in labels ("A")
	Label      string  // descriptive name
	BaseX      float64 // sky-view offset from the view centre
	BaseY      float64
	DistancePc float64 // distance in parsecs
	Color      string  // hex colour
	Size       float64 // body radius in canvas units
	Brightness float64 // brightness multiplier
}

// DisplayName returns the label drawn next to the star.
func (s Star) DisplayName() string {
	return "Star " + s.Name
}

// Validate checks the star can be projected.
func (s Star) Validate() error {
	if !(s.DistancePc > 0) {
		return fmt.Errorf("star %s: %w", s.Name, ErrInvalidDistance)
	}
	if !(s.Size > 0) {
		return fmt.Errorf("star %s: %w", s.Name, ErrInvalidSize)
	}
	return nil
}

// Marker returns the star's marker position in the orbit view.
func (s Star) Marker() Point {
	return Point{
		X: CenterX + s.BaseX*SolarLayoutScale,
		Y: CenterY + s.BaseY*SolarLayoutScale,
	}
}

// DefaultStars returns the two teaching stars. They sit in the same patch of
// sky at different distances, which rarely happens in reality but makes the
// 1/d relationship easy to see.
func DefaultStars() []Star {
	return []Star{
		{
			Name:       "A",
			Label:      "hypothetical nearby star α",
			BaseX:      90,
			BaseY:      -80,
			DistancePc: 2.5,
			Color:      "#ff4444",
			Size:       6,
			Brightness: 1.2,
		},
		{
			Name:       "B",
			Label:      "hypothetical distant star β",
			BaseX:      110,
			BaseY:      -60,
			DistancePc: 5.0,
			Color:      "#ff6666",
			Size:       5,
			Brightness: 1.0,
		},
	}
}

// BackgroundStar is a distant star with no measurable parallax.
type BackgroundStar struct {
	X, Y    float64 // offset from the view centre
	Size    float64
	Alpha   float64
	Twinkle float64 // twinkle phase in radians
}

// DefaultBackgroundCount is the size of the default background field.
const DefaultBackgroundCount = 25

const backgroundSeed = 42

// lcg is the small linear congruential generator that keeps the background
// field identical across runs and front ends.
type lcg struct {
	seed int64
}

func (g *lcg) next() float64 {
	g.seed = (g.seed*9301 + 49297) % 233280
	return float64(g.seed) / 233280
}

// GenerateBackground returns count background stars spread over a ring
// 100..220 units from the view centre.
func GenerateBackground(count int) []BackgroundStar {
	if count <= 0 {
		return nil
	}
	rng := &lcg{seed: backgroundSeed}
	stars := make([]BackgroundStar, 0, count)
	for i := 0; i < count; i++ {
		angle := rng.next() * 2 * math.Pi
		radius := 100 + rng.next()*120
		stars = append(stars, BackgroundStar{
			X:       radius * math.Cos(angle),
			Y:       radius * math.Sin(angle),
			Size:    1 + rng.next()*2,
			Alpha:   0.3 + rng.next()*0.4,
			Twinkle: rng.next() * 2 * math.Pi,
		})
	}
	return stars
}

// TwinkleIntensity returns the brightness factor (0.6..1.0) of a background
// star with the given phase at clock seconds.
func TwinkleIntensity(phase, seconds float64) float64 {
	return 0.8 + 0.2*math.Sin(seconds*2+phase)
}
