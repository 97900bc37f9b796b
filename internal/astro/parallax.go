package astro

import (
	"fmt"
	"math"
)

// Parallax is a star's apparent displacement for one Earth position.
type Parallax struct {
	Arcsec    float64 // theoretical parallax, 1/distance
	DeltaX    float64 // screen offset from the base position
	DeltaY    float64
	ApparentX float64 // base + delta, relative to the view centre
	ApparentY float64
}

// ArcsecFromParsecs returns the annual parallax in arcseconds for a distance
// in parsecs.
func ArcsecFromParsecs(pc float64) float64 {
	if pc <= 0 {
		return 0
	}
	return 1.0 / pc
}

// ComputeParallax returns the displacement of star when Earth is at
// earthAngle (see EarthAngle). The star is treated as lying in the orbital
// plane, so it only moves along x.
func ComputeParallax(star Star, earthAngle, scale float64) Parallax {
	p := ArcsecFromParsecs(star.DistancePc)
	dx := -math.Cos(earthAngle) * p * scale
	return Parallax{
		Arcsec:    p,
		DeltaX:    dx,
		DeltaY:    0,
		ApparentX: star.BaseX + dx,
		ApparentY: star.BaseY,
	}
}

// MaxOffset returns the largest |DeltaX| star reaches during a year.
func MaxOffset(star Star, scale float64) float64 {
	return ArcsecFromParsecs(star.DistancePc) * scale
}

// FormatArcsec renders a parallax angle like 0.400".
func FormatArcsec(a float64) string {
	return fmt.Sprintf("%.3f\"", a)
}
