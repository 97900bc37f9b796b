package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-parallax/internal/astro"
	"github.com/litescript/ls-parallax/internal/render"
)

// cellKind orders what may overwrite a cell. A draw replaces a cell only
// when its kind is at least the kind already there.
type cellKind int8

const (
	kindEmpty cellKind = iota
	kindFaint          // grid, orbit ring, sight lines, glow fringe
	kindLabel          // text and visible strokes
	kindBody           // filled discs
)

// Glyphs written by cellSurface.
const (
	glyphFaint  = '·'
	glyphSmall  = '∗'
	glyphBody   = '●'
	glyphFringe = '∙'
	glyphHover  = '◉'
)

// faintAlpha is the stroke alpha below which lines are drawn as dots that
// never cover anything.
const faintAlpha = 0.25

// cellSurface rasterizes render scenes onto a character grid. The logical
// canvas is stretched over cols x rows cells; with cols = 2*rows the cells
// come out roughly square on a typical terminal font.
type cellSurface struct {
	cols, rows int
	glyphs     [][]rune
	fg, bg     [][]render.Color
	kinds      [][]cellKind
}

var cellBackdrop = render.RGBA(0, 0, 0, 1)

func newCellSurface(cols, rows int) *cellSurface {
	s := &cellSurface{
		cols:   cols,
		rows:   rows,
		glyphs: make([][]rune, rows),
		fg:     make([][]render.Color, rows),
		bg:     make([][]render.Color, rows),
		kinds:  make([][]cellKind, rows),
	}
	for y := 0; y < rows; y++ {
		s.glyphs[y] = []rune(strings.Repeat(" ", cols))
		s.fg[y] = make([]render.Color, cols)
		s.bg[y] = make([]render.Color, cols)
		s.kinds[y] = make([]cellKind, cols)
		for x := 0; x < cols; x++ {
			s.bg[y][x] = cellBackdrop
		}
	}
	return s
}

func (s *cellSurface) cellW() float64 { return astro.CanvasSize / float64(s.cols) }
func (s *cellSurface) cellH() float64 { return astro.CanvasSize / float64(s.rows) }

// cellAt maps a canvas point to its cell. ok is false outside the grid.
func (s *cellSurface) cellAt(x, y float64) (cx, cy int, ok bool) {
	cx = int(math.Floor(x / s.cellW()))
	cy = int(math.Floor(y / s.cellH()))
	return cx, cy, cx >= 0 && cx < s.cols && cy >= 0 && cy < s.rows
}

// centre returns the canvas point at the middle of a cell.
func (s *cellSurface) centre(cx, cy int) (float64, float64) {
	return (float64(cx) + 0.5) * s.cellW(), (float64(cy) + 0.5) * s.cellH()
}

func (s *cellSurface) put(cx, cy int, r rune, c render.Color, kind cellKind) {
	if cx < 0 || cx >= s.cols || cy < 0 || cy >= s.rows {
		return
	}
	if kind < s.kinds[cy][cx] {
		return
	}
	s.glyphs[cy][cx] = r
	s.fg[cy][cx] = c.Over(s.bg[cy][cx])
	s.kinds[cy][cx] = kind
}

// FillRect tints the background of every cell whose centre is inside.
func (s *cellSurface) FillRect(x, y, w, h float64, c render.Color) {
	for cy := 0; cy < s.rows; cy++ {
		for cx := 0; cx < s.cols; cx++ {
			px, py := s.centre(cx, cy)
			if px < x || px >= x+w || py < y || py >= y+h {
				continue
			}
			s.bg[cy][cx] = c.Over(s.bg[cy][cx])
		}
	}
}

// Line draws with Bresenham in cell space. Lines that fit inside one cell
// are dropped so short strokes do not smudge the glyph under them.
func (s *cellSurface) Line(x1, y1, x2, y2, _ float64, c render.Color) {
	ax, ay := int(math.Floor(x1/s.cellW())), int(math.Floor(y1/s.cellH()))
	bx, by := int(math.Floor(x2/s.cellW())), int(math.Floor(y2/s.cellH()))
	if ax == bx && ay == by {
		return
	}

	kind, glyph := kindLabel, lineGlyph(bx-ax, by-ay)
	if c.A < faintAlpha {
		kind, glyph = kindFaint, glyphFaint
	}

	dx, dy := abs(bx-ax), -abs(by-ay)
	sx, sy := sign(bx-ax), sign(by-ay)
	err := dx + dy
	for {
		s.put(ax, ay, glyph, c, kind)
		if ax == bx && ay == by {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			ax += sx
		}
		if e2 <= dx {
			err += dx
			ay += sy
		}
	}
}

func lineGlyph(dx, dy int) rune {
	switch {
	case dy == 0:
		return '─'
	case dx == 0:
		return '│'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}

// StrokeCircle samples the circumference. Rings smaller than a cell are
// skipped; dashed rings honour the dash pattern in canvas units.
func (s *cellSurface) StrokeCircle(x, y, r, _ float64, c render.Color, dash []float64) {
	if r < s.cellW() {
		return
	}

	var period float64
	for _, d := range dash {
		period += d
	}

	steps := int(2 * math.Pi * r / math.Min(s.cellW(), s.cellH()) * 2)
	if steps < 16 {
		steps = 16
	}
	for i := 0; i < steps; i++ {
		theta := 2 * math.Pi * float64(i) / float64(steps)
		if period > 0 && inDashGap(math.Mod(theta*r, period), dash) {
			continue
		}
		cx, cy, ok := s.cellAt(x+r*math.Cos(theta), y+r*math.Sin(theta))
		if ok {
			s.put(cx, cy, glyphFaint, c, kindFaint)
		}
	}
}

func inDashGap(pos float64, dash []float64) bool {
	for i, d := range dash {
		if pos < d {
			return i%2 == 1
		}
		pos -= d
	}
	return false
}

// FillCircle fills the cells whose centres lie inside the disc. A disc
// smaller than a cell still marks the cell under its centre, with a glyph
// sized to the radius.
func (s *cellSurface) FillCircle(x, y, r float64, p render.Paint) {
	ccx, ccy, ok := s.cellAt(x, y)
	if ok {
		glyph, kind := discGlyph(r), kindBody
		if glyph != glyphBody {
			kind = kindFaint // specks give way to labels
		}
		s.put(ccx, ccy, glyph, p.At(x, y), kind)
	}

	x0, y0 := int(math.Floor((x-r)/s.cellW())), int(math.Floor((y-r)/s.cellH()))
	x1, y1 := int(math.Floor((x+r)/s.cellW())), int(math.Floor((y+r)/s.cellH()))
	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			if cx == ccx && cy == ccy {
				continue
			}
			px, py := s.centre(cx, cy)
			if math.Hypot(px-x, py-y) > r {
				continue
			}
			c := p.At(px, py)
			if c.A < 0.6 {
				s.put(cx, cy, glyphFringe, c, kindFaint)
			} else {
				s.put(cx, cy, glyphBody, c, kindBody)
			}
		}
	}
}

func discGlyph(r float64) rune {
	switch {
	case r >= 2.5:
		return glyphBody
	case r >= 1.8:
		return glyphSmall
	default:
		return glyphFaint
	}
}

// Text writes s starting at the anchor cell. y is the baseline, so the row
// is taken from the middle of the glyph box.
func (s *cellSurface) Text(str string, x, y, size float64, c render.Color, align render.Align) {
	runes := []rune(str)
	cx, cy, _ := s.cellAt(x, y-size*0.35)
	if align == render.AlignCenter {
		cx -= len(runes) / 2
	}
	for i, r := range runes {
		s.put(cx+i, cy, r, c, kindLabel)
	}
}

// highlight replaces the glyph at a canvas point, keeping its colour.
func (s *cellSurface) highlight(x, y float64, r rune, c render.Color) {
	cx, cy, ok := s.cellAt(x, y)
	if !ok {
		return
	}
	s.glyphs[cy][cx] = r
	s.fg[cy][cx] = c.Over(s.bg[cy][cx])
	s.kinds[cy][cx] = kindBody
}

// lines renders the grid, grouping runs of cells with the same colours into
// one styled segment.
func (s *cellSurface) lines() []string {
	out := make([]string, s.rows)
	for y := 0; y < s.rows; y++ {
		var b strings.Builder
		start := 0
		for x := 1; x <= s.cols; x++ {
			if x < s.cols && s.sameStyle(y, start, x) {
				continue
			}
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(s.fg[y][start].Hex())).
				Background(lipgloss.Color(s.bg[y][start].Hex()))
			b.WriteString(style.Render(string(s.glyphs[y][start:x])))
			start = x
		}
		out[y] = b.String()
	}
	return out
}

func (s *cellSurface) sameStyle(y, a, b int) bool {
	if s.bg[y][a] != s.bg[y][b] {
		return false
	}
	// Blank cells only show their background.
	if s.glyphs[y][a] == ' ' && s.glyphs[y][b] == ' ' {
		return true
	}
	return s.glyphs[y][a] != ' ' && s.glyphs[y][b] != ' ' && s.fg[y][a] == s.fg[y][b]
}

// plain returns the glyphs without styling, for tests and pipes.
func (s *cellSurface) plain() []string {
	out := make([]string, s.rows)
	for y := range s.glyphs {
		out[y] = string(s.glyphs[y])
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
