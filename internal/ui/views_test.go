package ui

import (
	"strings"
	"testing"

	"github.com/litescript/ls-parallax/internal/astro"
	"github.com/litescript/ls-parallax/internal/state"
)

func snapshotAt(t float64) state.Snapshot {
	sim := state.MustNew(state.DefaultConfig())
	sim.SetTime(t)
	return sim.Snapshot()
}

func runeIndex(s string, r rune) int {
	for i, c := range []rune(s) {
		if c == r {
			return i
		}
	}
	return -1
}

func TestOrbitViewModelRender(t *testing.T) {
	m := NewOrbitViewModel().SetSize(58, 29).UpdateData(snapshotAt(0))
	rows := m.surface().plain()

	if len(rows) != 29 {
		t.Fatalf("rows = %d, want 29", len(rows))
	}
	// Earth at (430, 250), Sun at the centre.
	if r := []rune(rows[14])[49]; r != glyphBody {
		t.Errorf("Earth cell = %q, want body", r)
	}
	if r := []rune(rows[14])[29]; r != glyphBody {
		t.Errorf("Sun cell = %q, want body", r)
	}
	if !strings.Contains(rows[13], "Earth") {
		t.Errorf("Earth label missing from row 13: %q", rows[13])
	}
	found := false
	for _, row := range rows {
		if strings.Contains(row, "Sun") {
			found = true
		}
	}
	if !found {
		t.Error("Sun label missing")
	}
}

func TestOrbitViewModelHover(t *testing.T) {
	snap := snapshotAt(0)
	snap.Hovering = true
	m := NewOrbitViewModel().SetSize(58, 29).UpdateData(snap)

	if r := []rune(m.surface().plain()[14])[49]; r != glyphHover {
		t.Errorf("hovered Earth = %q, want %q", r, glyphHover)
	}
}

func TestOrbitViewModelCanvasPoint(t *testing.T) {
	m := NewOrbitViewModel().SetSize(50, 25)

	x, y, ok := m.CanvasPoint(0, 0)
	if !ok || x != 5 || y != 10 {
		t.Errorf("CanvasPoint(0,0) = (%v, %v, %v), want (5, 10, true)", x, y, ok)
	}
	for _, c := range [][2]int{{-1, 0}, {50, 0}, {0, 25}} {
		if _, _, ok := m.CanvasPoint(c[0], c[1]); ok {
			t.Errorf("CanvasPoint(%d,%d) should be outside", c[0], c[1])
		}
	}
	if _, _, ok := NewOrbitViewModel().CanvasPoint(0, 0); ok {
		t.Error("unsized pane has no canvas points")
	}
}

func TestSkyViewModelShift(t *testing.T) {
	const starRow = 9 // y = 170 on a 29-row pane

	col := func(t0 float64) int {
		m := NewSkyViewModel(nil).SetSize(58, 29).UpdateData(snapshotAt(t0))
		return runeIndex(m.surface().plain()[starRow], glyphBody)
	}

	// x = 250 + 90 -/+ 8*3
	spring, autumn := col(0), col(0.5)
	if spring != 36 {
		t.Errorf("star A in spring at column %d, want 36", spring)
	}
	if autumn != 42 {
		t.Errorf("star A in autumn at column %d, want 42", autumn)
	}
}

func TestSkyViewModelLabels(t *testing.T) {
	m := NewSkyViewModel(nil).SetSize(58, 29).UpdateData(snapshotAt(0))
	out := strings.Join(m.surface().plain(), "\n")

	for _, want := range []string{"Star A", "Star B", "view center"} {
		if !strings.Contains(out, want) {
			t.Errorf("sky pane missing %q", want)
		}
	}
}

func TestSkyViewModelField(t *testing.T) {
	field := astro.GenerateBackground(astro.DefaultBackgroundCount)
	m := NewSkyViewModel(field).SetSize(58, 29).UpdateData(snapshotAt(0))

	specks := 0
	for _, row := range m.surface().plain() {
		for _, r := range row {
			if r == glyphFaint || r == glyphSmall || r == glyphBody {
				specks++
			}
		}
	}
	if specks < len(field)/2 {
		t.Errorf("only %d star cells for %d background stars", specks, len(field))
	}
	if len(m.Lines()) != 29 {
		t.Errorf("Lines = %d, want 29", len(m.Lines()))
	}
}

func TestClampExaggeration(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, MinExaggeration},
		{3, 3},
		{20, MaxExaggeration},
	}
	for _, tt := range tests {
		if got := clampExaggeration(tt.in); got != tt.want {
			t.Errorf("clampExaggeration(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
