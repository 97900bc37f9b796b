package ui

import (
	"github.com/litescript/ls-parallax/internal/astro"
	"github.com/litescript/ls-parallax/internal/render"
	"github.com/litescript/ls-parallax/internal/state"
)

// Sky offset exaggeration limits for the terminal pane.
const (
	MinExaggeration     = 1
	MaxExaggeration     = 8
	DefaultExaggeration = 3
)

// SkyViewModel renders the view from Earth.
type SkyViewModel struct {
	width    int
	height   int
	snapshot state.Snapshot
	field    []astro.BackgroundStar
	opts     render.Options
}

// NewSkyViewModel creates a sky pane over the given background field.
func NewSkyViewModel(field []astro.BackgroundStar) SkyViewModel {
	opts := render.DefaultOptions()
	opts.Exaggeration = DefaultExaggeration
	return SkyViewModel{field: field, opts: opts}
}

// SetSize updates the pane size in cells.
func (m SkyViewModel) SetSize(width, height int) SkyViewModel {
	m.width = width
	m.height = height
	return m
}

// SetOptions updates the scene toggles.
func (m SkyViewModel) SetOptions(opts render.Options) SkyViewModel {
	m.opts = opts
	return m
}

// UpdateData updates the model with a new snapshot.
func (m SkyViewModel) UpdateData(snapshot state.Snapshot) SkyViewModel {
	m.snapshot = snapshot
	return m
}

// Lines renders the pane one string per row.
func (m SkyViewModel) Lines() []string {
	if m.width <= 0 || m.height <= 0 {
		return nil
	}
	return m.surface().lines()
}

func (m SkyViewModel) surface() *cellSurface {
	s := newCellSurface(m.width, m.height)
	render.DrawSkyView(s, m.snapshot, m.field, m.opts)
	return s
}

func clampExaggeration(v float64) float64 {
	if v < MinExaggeration {
		return MinExaggeration
	}
	if v > MaxExaggeration {
		return MaxExaggeration
	}
	return v
}
