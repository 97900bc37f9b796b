package render

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrUnknownColor is returned for colour strings ParseColor cannot read.
var ErrUnknownColor = errors.New("unknown color")

// Color is a straight-alpha RGBA colour with components in [0,1].
type Color struct {
	R, G, B, A float64
}

// RGBA builds a colour from 0-255 channels and a 0-1 alpha, the way CSS
// rgba() does.
func RGBA(r, g, b int, a float64) Color {
	return Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255, A: a}
}

// ParseColor reads #rgb, #rrggbb, #rrggbbaa and rgba(r, g, b, a) strings.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")") {
		return parseRGBA(s)
	}

	switch len(s) {
	case 4, 7:
		c, err := colorful.Hex(s)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
		}
		return Color{R: c.R, G: c.G, B: c.B, A: 1}, nil
	case 9:
		c, err := colorful.Hex(s[:7])
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
		}
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
		}
		return Color{R: c.R, G: c.G, B: c.B, A: float64(a) / 255}, nil
	}

	return Color{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
}

func parseRGBA(s string) (Color, error) {
	body := strings.TrimSuffix(strings.TrimPrefix(s, "rgba("), ")")
	parts := strings.Split(body, ",")
	if len(parts) != 4 {
		return Color{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
	}

	var ch [3]int
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || v < 0 || v > 255 {
			return Color{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
		}
		ch[i] = v
	}
	a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
	if err != nil || a < 0 || a > 1 {
		return Color{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
	}
	return RGBA(ch[0], ch[1], ch[2], a), nil
}

// MustColor is ParseColor for compile-time constants. It panics on bad input.
func MustColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// WithAlpha returns c with alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// CSS renders c as a canvas-compatible rgba() string.
func (c Color) CSS() string {
	r, g, b := c.rgb255()
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b,
		strconv.FormatFloat(c.A, 'f', -1, 64))
}

// Hex renders the opaque part of c as #rrggbb.
func (c Color) Hex() string {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
}

// Over composites c onto an opaque background and returns the opaque result.
func (c Color) Over(bg Color) Color {
	fg := colorful.Color{R: c.R, G: c.G, B: c.B}
	base := colorful.Color{R: bg.R, G: bg.G, B: bg.B}
	out := base.BlendRgb(fg, c.A).Clamped()
	return Color{R: out.R, G: out.G, B: out.B, A: 1}
}

func (c Color) rgb255() (uint8, uint8, uint8) {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().RGB255()
}
