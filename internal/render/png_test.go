package render

import (
	"bytes"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/litescript/ls-parallax/internal/astro"
)

func rgbAt(img image.Image, x, y int) (r, g, b uint8) {
	cr, cg, cb, _ := img.At(x, y).RGBA()
	return uint8(cr >> 8), uint8(cg >> 8), uint8(cb >> 8)
}

func decode(t *testing.T, buf *bytes.Buffer) image.Image {
	t.Helper()
	img, err := png.Decode(buf)
	if err != nil {
		t.Fatalf("decode PNG: %v", err)
	}
	return img
}

func TestRenderOrbitPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderOrbitPNG(&buf, snapshotAt(0), DefaultOptions(), 1); err != nil {
		t.Fatalf("RenderOrbitPNG: %v", err)
	}
	img := decode(t, &buf)

	if b := img.Bounds(); b.Dx() != 500 || b.Dy() != 500 {
		t.Fatalf("size = %v, want 500x500", b)
	}

	// Empty sky is dark navy
	r, g, b := rgbAt(img, 25, 25)
	if r > 20 || g > 30 || b > 40 {
		t.Errorf("background = (%d, %d, %d), want dark", r, g, b)
	}

	// Sun core is yellow
	r, g, b = rgbAt(img, 250, 250)
	if r < 200 || g < 180 || b > 100 {
		t.Errorf("sun = (%d, %d, %d), want yellow", r, g, b)
	}

	// Earth at t=0 sits at (430, 250) and is blue
	r, _, b = rgbAt(img, 430, 252)
	if b <= r {
		t.Errorf("earth = (%d, _, %d), want blue dominant", r, b)
	}
}

func TestPNGSurface_DashedCircle(t *testing.T) {
	p := NewPNGSurface(1)
	defer p.Close()
	p.FillRect(0, 0, astro.CanvasSize, astro.CanvasSize, RGBA(0, 0, 0, 1))
	p.StrokeCircle(250, 250, 180, 4, RGBA(255, 255, 255, 1), []float64{20, 20})
	if err := p.Err(); err != nil {
		t.Fatalf("StrokeCircle: %v", err)
	}

	img := p.Image()
	lit, dark := 0, 0
	for i := 0; i < 72; i++ {
		a := float64(i) * math.Pi / 36
		r, _, _ := rgbAt(img, int(math.Round(250+180*math.Cos(a))), int(math.Round(250+180*math.Sin(a))))
		switch {
		case r > 128:
			lit++
		case r < 32:
			dark++
		}
	}
	if lit < 10 || dark < 10 {
		t.Errorf("dashed ring: %d lit and %d dark samples, want both >= 10", lit, dark)
	}
}

func TestRenderSkyPNG(t *testing.T) {
	var buf bytes.Buffer
	field := astro.GenerateBackground(astro.DefaultBackgroundCount)
	if err := RenderSkyPNG(&buf, snapshotAt(0), field, DefaultOptions(), 1); err != nil {
		t.Fatalf("RenderSkyPNG: %v", err)
	}
	img := decode(t, &buf)

	// Star A body at (332, 170)
	r, g, _ := rgbAt(img, 332, 171)
	if r < 150 || g > 140 {
		t.Errorf("star A = (%d, %d, _), want red", r, g)
	}
}

func TestRenderPNG_Scale(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderOrbitPNG(&buf, snapshotAt(0), Options{}, 0.5); err != nil {
		t.Fatalf("RenderOrbitPNG: %v", err)
	}
	img := decode(t, &buf)
	if b := img.Bounds(); b.Dx() != 250 {
		t.Errorf("width = %d, want 250", b.Dx())
	}
}

func TestWriteFrames(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	paths, err := WriteFrames(dir, snapshotAt(0.25), astro.GenerateBackground(5), DefaultOptions(), 1)
	if err != nil {
		t.Fatalf("WriteFrames: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("paths = %v, want 2", paths)
	}

	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			t.Fatalf("read %s: %v", p, err)
		}
		if _, err := png.Decode(bytes.NewReader(data)); err != nil {
			t.Errorf("%s is not a PNG: %v", p, err)
		}
	}
}

func TestWriteFrames_BadDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := WriteFrames(filepath.Join(file, "sub"), snapshotAt(0), nil, DefaultOptions(), 1); err == nil {
		t.Error("expected error writing under a file")
	}
}
