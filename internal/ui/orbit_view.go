package ui

import (
	"github.com/litescript/ls-parallax/internal/astro"
	"github.com/litescript/ls-parallax/internal/render"
	"github.com/litescript/ls-parallax/internal/state"
)

var (
	colorHover = render.MustColor("#ffffff")
	colorDrag  = render.MustColor("#64ffda")
)

// OrbitViewModel renders the top-down orbit pane.
type OrbitViewModel struct {
	width    int // cells
	height   int
	snapshot state.Snapshot
	opts     render.Options
}

// NewOrbitViewModel creates an orbit pane.
func NewOrbitViewModel() OrbitViewModel {
	return OrbitViewModel{opts: render.DefaultOptions()}
}

// SetSize updates the pane size in cells.
func (m OrbitViewModel) SetSize(width, height int) OrbitViewModel {
	m.width = width
	m.height = height
	return m
}

// SetOptions updates the scene toggles.
func (m OrbitViewModel) SetOptions(opts render.Options) OrbitViewModel {
	m.opts = opts
	return m
}

// UpdateData updates the model with a new snapshot.
func (m OrbitViewModel) UpdateData(snapshot state.Snapshot) OrbitViewModel {
	m.snapshot = snapshot
	return m
}

// CanvasPoint maps a pane cell to the canvas point at its centre.
func (m OrbitViewModel) CanvasPoint(col, row int) (x, y float64, ok bool) {
	if m.width <= 0 || m.height <= 0 || col < 0 || col >= m.width || row < 0 || row >= m.height {
		return 0, 0, false
	}
	x = (float64(col) + 0.5) * astro.CanvasSize / float64(m.width)
	y = (float64(row) + 0.5) * astro.CanvasSize / float64(m.height)
	return x, y, true
}

func (m OrbitViewModel) surface() *cellSurface {
	s := newCellSurface(m.width, m.height)
	render.DrawOrbitView(s, m.snapshot, m.opts)

	switch {
	case m.snapshot.Dragging:
		s.highlight(m.snapshot.Earth.X, m.snapshot.Earth.Y, glyphHover, colorDrag)
	case m.snapshot.Hovering:
		s.highlight(m.snapshot.Earth.X, m.snapshot.Earth.Y, glyphHover, colorHover)
	}
	return s
}

// Lines renders the pane one string per row.
func (m OrbitViewModel) Lines() []string {
	if m.width <= 0 || m.height <= 0 {
		return nil
	}
	return m.surface().lines()
}
