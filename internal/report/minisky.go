package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/litescript/ls-parallax/internal/astro"
	"github.com/litescript/ls-parallax/internal/state"
)

// MiniSkyConfig sizes the ASCII sky.
type MiniSkyConfig struct {
	Width        int
	Height       int
	Exaggeration float64
}

// DefaultMiniSkyConfig returns a 48x20 sky with offsets tripled so the shift
// survives the coarse grid.
func DefaultMiniSkyConfig() MiniSkyConfig {
	return MiniSkyConfig{Width: 48, Height: 20, Exaggeration: 3}
}

// WriteMiniSky writes a plain ASCII rendition of the sky view.
// Background stars are '.', near stars their name, the view centre '+'.
func WriteMiniSky(w io.Writer, snap state.Snapshot, field []astro.BackgroundStar, cfg MiniSkyConfig) {
	if cfg.Width < 8 {
		cfg.Width = 8
	}
	if cfg.Height < 4 {
		cfg.Height = 4
	}
	if cfg.Exaggeration <= 0 {
		cfg.Exaggeration = 1
	}

	grid := make([][]rune, cfg.Height)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", cfg.Width))
	}

	plot := func(x, y float64, r rune) {
		cx := int(x / astro.CanvasSize * float64(cfg.Width))
		cy := int(y / astro.CanvasSize * float64(cfg.Height))
		if cx < 0 || cx >= cfg.Width || cy < 0 || cy >= cfg.Height {
			return
		}
		grid[cy][cx] = r
	}

	for _, bg := range field {
		plot(astro.CenterX+bg.X, astro.CenterY+bg.Y, '.')
	}
	plot(astro.CenterX, astro.CenterY, '+')
	for _, st := range snap.Stars {
		x := astro.CenterX + st.Star.BaseX + st.Parallax.DeltaX*cfg.Exaggeration
		y := astro.CenterY + st.Star.BaseY + st.Parallax.DeltaY*cfg.Exaggeration
		name := []rune(st.Star.Name)
		if len(name) == 0 {
			name = []rune{'*'}
		}
		plot(x, y, name[0])
	}

	border := "+" + strings.Repeat("-", cfg.Width) + "+"
	fmt.Fprintf(w, "Sky @ %s (%s, offsets x%.0f)\n", astro.FormatYears(snap.Time), snap.Season.Short(), cfg.Exaggeration)
	fmt.Fprintln(w, border)
	for _, row := range grid {
		fmt.Fprintf(w, "|%s|\n", string(row))
	}
	fmt.Fprintln(w, border)
}
