package render

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/litescript/ls-parallax/internal/astro"
	"github.com/litescript/ls-parallax/internal/state"
)

var (
	fontOnce   sync.Once
	fontSource *text.FontSource
	fontErr    error
)

// labelFont loads the embedded Go Regular font once per process.
func labelFont() (*text.FontSource, error) {
	fontOnce.Do(func() {
		fontSource, fontErr = text.NewFontSource(goregular.TTF)
	})
	return fontSource, fontErr
}

// PNGSurface is a Surface backed by a gg software context.
type PNGSurface struct {
	dc    *gg.Context
	scale float64
	font  *text.FontSource
	faces map[float64]text.Face
	err   error // first drawing error
}

// NewPNGSurface creates a surface of size*scale pixels square. Labels are
// skipped when the embedded font cannot be loaded.
func NewPNGSurface(scale float64) *PNGSurface {
	if scale <= 0 {
		scale = 1
	}
	px := int(astro.CanvasSize * scale)
	dc := gg.NewContext(px, px)
	dc.ClearWithColor(gg.Black)

	src, err := labelFont()
	if err != nil {
		src = nil
	}

	return &PNGSurface{
		dc:    dc,
		scale: scale,
		font:  src,
		faces: make(map[float64]text.Face),
	}
}

func toGG(c Color) gg.RGBA {
	return gg.RGBA2(c.R, c.G, c.B, c.A)
}

func (p *PNGSurface) record(err error) {
	if err != nil && p.err == nil {
		p.err = err
	}
}

// FillRect implements Surface.
func (p *PNGSurface) FillRect(x, y, w, h float64, c Color) {
	s := p.scale
	p.dc.SetFillBrush(gg.Solid(toGG(c)))
	p.dc.DrawRectangle(x*s, y*s, w*s, h*s)
	p.record(p.dc.Fill())
}

// Line implements Surface.
func (p *PNGSurface) Line(x1, y1, x2, y2, width float64, c Color) {
	s := p.scale
	p.dc.ClearDash()
	p.dc.SetStrokeBrush(gg.Solid(toGG(c)))
	p.dc.SetLineWidth(width * s)
	p.dc.DrawLine(x1*s, y1*s, x2*s, y2*s)
	p.record(p.dc.Stroke())
}

// StrokeCircle implements Surface.
func (p *PNGSurface) StrokeCircle(x, y, r, width float64, c Color, dash []float64) {
	s := p.scale
	if len(dash) > 0 {
		scaled := make([]float64, len(dash))
		for i, d := range dash {
			scaled[i] = d * s
		}
		p.dc.SetDash(scaled...)
	} else {
		p.dc.ClearDash()
	}
	p.dc.SetStrokeBrush(gg.Solid(toGG(c)))
	p.dc.SetLineWidth(width * s)
	p.dc.DrawCircle(x*s, y*s, r*s)
	p.record(p.dc.Stroke())
	p.dc.ClearDash()
}

// FillCircle implements Surface.
func (p *PNGSurface) FillCircle(x, y, r float64, paint Paint) {
	s := p.scale
	if g := paint.Gradient; g != nil {
		brush := gg.NewRadialGradientBrush(g.CX*s, g.CY*s, g.R0*s, g.R1*s).
			SetFocus(g.FX*s, g.FY*s)
		for _, st := range g.Stops {
			brush.AddColorStop(st.Offset, toGG(st.Color))
		}
		p.dc.SetFillBrush(brush)
	} else {
		p.dc.SetFillBrush(gg.Solid(toGG(paint.Color)))
	}
	p.dc.DrawCircle(x*s, y*s, r*s)
	p.record(p.dc.Fill())
}

// Text implements Surface.
func (p *PNGSurface) Text(str string, x, y, size float64, c Color, align Align) {
	if p.font == nil {
		return
	}
	s := p.scale
	face, ok := p.faces[size]
	if !ok {
		face = p.font.Face(size * s)
		p.faces[size] = face
	}
	p.dc.SetFont(face)
	p.dc.SetFillBrush(gg.Solid(toGG(c)))
	if align == AlignCenter {
		p.dc.DrawStringAnchored(str, x*s, y*s, 0.5, 0)
		return
	}
	p.dc.DrawString(str, x*s, y*s)
}

// Image returns the rendered pixels.
func (p *PNGSurface) Image() image.Image {
	return p.dc.Image()
}

// Err returns the first drawing error, if any.
func (p *PNGSurface) Err() error {
	return p.err
}

// EncodePNG writes the surface as PNG.
func (p *PNGSurface) EncodePNG(w io.Writer) error {
	if p.err != nil {
		return fmt.Errorf("draw: %w", p.err)
	}
	return p.dc.EncodePNG(w)
}

// Close releases the drawing context.
func (p *PNGSurface) Close() error {
	return p.dc.Close()
}

// RenderOrbitPNG draws the orbit view and writes it as PNG.
func RenderOrbitPNG(w io.Writer, snap state.Snapshot, opts Options, scale float64) error {
	surf := NewPNGSurface(scale)
	defer surf.Close()

	DrawOrbitView(surf, snap, opts)
	return surf.EncodePNG(w)
}

// RenderSkyPNG draws the sky view and writes it as PNG.
func RenderSkyPNG(w io.Writer, snap state.Snapshot, field []astro.BackgroundStar, opts Options, scale float64) error {
	surf := NewPNGSurface(scale)
	defer surf.Close()

	DrawSkyView(surf, snap, field, opts)
	return surf.EncodePNG(w)
}

// Frame file names written by WriteFrames.
const (
	OrbitFile = "orbit.png"
	SkyFile   = "sky.png"
)

// WriteFrames renders both views into dir and returns the written paths.
func WriteFrames(dir string, snap state.Snapshot, field []astro.BackgroundStar, opts Options, scale float64) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create frame dir: %w", err)
	}

	orbitPath := filepath.Join(dir, OrbitFile)
	if err := writeFile(orbitPath, func(w io.Writer) error {
		return RenderOrbitPNG(w, snap, opts, scale)
	}); err != nil {
		return nil, err
	}

	skyPath := filepath.Join(dir, SkyFile)
	if err := writeFile(skyPath, func(w io.Writer) error {
		return RenderSkyPNG(w, snap, field, opts, scale)
	}); err != nil {
		return nil, err
	}

	return []string{orbitPath, skyPath}, nil
}

func writeFile(path string, draw func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := draw(f); err != nil {
		f.Close()
		return fmt.Errorf("render %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
