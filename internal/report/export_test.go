package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/litescript/ls-parallax/internal/astro"
	"github.com/litescript/ls-parallax/internal/state"
)

func newSnapshot(t float64) state.Snapshot {
	sim := state.MustNew(state.DefaultConfig())
	sim.SetTime(t)
	return sim.Snapshot()
}

func TestExportSnapshot(t *testing.T) {
	snap := newSnapshot(0)
	generatedAt := time.Date(2025, 3, 20, 9, 0, 0, 0, time.UTC)

	export := ExportSnapshot(snap, generatedAt)

	if export.GeneratedAt != generatedAt {
		t.Errorf("GeneratedAt = %v, want %v", export.GeneratedAt, generatedAt)
	}
	if export.Season != "Spring (vernal equinox)" {
		t.Errorf("Season = %q", export.Season)
	}
	if export.Earth.X != 430 || export.Earth.Y != 250 {
		t.Errorf("Earth = %+v, want (430, 250)", export.Earth)
	}
	if len(export.Stars) != 2 {
		t.Fatalf("Stars count = %d, want 2", len(export.Stars))
	}

	a := export.Stars[0]
	if a.Name != "A" {
		t.Errorf("Name = %q, want A", a.Name)
	}
	if math.Abs(a.Arcsec-0.4) > 1e-9 {
		t.Errorf("Arcsec = %v, want 0.4", a.Arcsec)
	}
	if math.Abs(a.DeltaX+8) > 1e-9 {
		t.Errorf("DeltaX = %v, want -8", a.DeltaX)
	}
	if math.Abs(a.ApparentX-82) > 1e-9 {
		t.Errorf("ApparentX = %v, want 82", a.ApparentX)
	}
}

func TestExportSnapshotNoStars(t *testing.T) {
	snap := newSnapshot(0)
	snap.Stars = nil

	export := ExportSnapshot(snap, time.Time{})
	if export.Stars == nil {
		t.Fatal("Stars should be an empty slice so JSON shows []")
	}

	var buf bytes.Buffer
	if err := export.WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if !strings.Contains(buf.String(), `"stars": []`) {
		t.Errorf("JSON should contain empty stars array:\n%s", buf.String())
	}
}

func TestWriteJSON(t *testing.T) {
	export := ExportSnapshot(newSnapshot(0.25), time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	var buf bytes.Buffer
	if err := export.WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	for _, key := range []string{"generated_at", "time_years", "earth_degrees", "season", "speed", "stars"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("JSON missing key %q", key)
		}
	}
	if decoded["earth_degrees"].(float64) != 270 {
		t.Errorf("earth_degrees = %v, want 270", decoded["earth_degrees"])
	}
	if !strings.Contains(buf.String(), "\n  \"") {
		t.Error("JSON should be indented with two spaces")
	}
}

func TestWriteSummaryTable(t *testing.T) {
	var buf bytes.Buffer
	WriteSummaryTable(&buf, newSnapshot(0.25))
	out := buf.String()

	for _, want := range []string{
		"0.25 yr",
		"270.0°",
		"Summer (solstice)",
		"1.0x paused",
		"0.400\"",
		"0.200\"",
		"2.5 pc",
		"Total: 2 stars",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestWriteSummaryTableNoStars(t *testing.T) {
	snap := newSnapshot(0)
	snap.Stars = nil

	var buf bytes.Buffer
	WriteSummaryTable(&buf, snap)
	if !strings.Contains(buf.String(), "No stars") {
		t.Errorf("expected No stars, got:\n%s", buf.String())
	}
}

func TestPhaseTable(t *testing.T) {
	stars := astro.DefaultStars()
	rows, err := PhaseTable(stars, 4, astro.ParallaxScale)
	if err != nil {
		t.Fatalf("PhaseTable: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want 4", len(rows))
	}

	tests := []struct {
		time    float64
		degrees float64
		season  astro.Season
		dxA     float64
		dxB     float64
	}{
		{0, 0, astro.SeasonSpring, -8, -4},
		{0.25, 270, astro.SeasonSummer, 0, 0},
		{0.5, 180, astro.SeasonAutumn, 8, 4},
		{0.75, 90, astro.SeasonWinter, 0, 0},
	}

	for i, tt := range tests {
		r := rows[i]
		if r.Time != tt.time {
			t.Errorf("row %d time = %v, want %v", i, r.Time, tt.time)
		}
		if math.Abs(r.Degrees-tt.degrees) > 1e-9 {
			t.Errorf("row %d degrees = %v, want %v", i, r.Degrees, tt.degrees)
		}
		if r.Season != tt.season {
			t.Errorf("row %d season = %v, want %v", i, r.Season, tt.season)
		}
		if math.Abs(r.DeltaX[0]-tt.dxA) > 1e-9 || math.Abs(r.DeltaX[1]-tt.dxB) > 1e-9 {
			t.Errorf("row %d deltas = %v, want [%v %v]", i, r.DeltaX, tt.dxA, tt.dxB)
		}
	}
}

func TestPhaseTableNoSamples(t *testing.T) {
	for _, n := range []int{0, -3} {
		if _, err := PhaseTable(astro.DefaultStars(), n, astro.ParallaxScale); !errors.Is(err, ErrNoSamples) {
			t.Errorf("PhaseTable(%d) err = %v, want ErrNoSamples", n, err)
		}
	}
}

func TestWritePhaseTable(t *testing.T) {
	stars := astro.DefaultStars()
	rows, err := PhaseTable(stars, 4, astro.ParallaxScale)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	WritePhaseTable(&buf, stars, rows)
	out := buf.String()

	if strings.Contains(out, "-0.000") {
		t.Errorf("table should not print negative zero:\n%s", out)
	}
	for _, want := range []string{"Δx A", "Δx B", "0.250", "270.0°", "Summer", "-8.000", "+8.000"} {
		if !strings.Contains(out, want) {
			t.Errorf("phase table missing %q:\n%s", want, out)
		}
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2+len(rows) {
		t.Errorf("lines = %d, want %d", len(lines), 2+len(rows))
	}
}

func TestTruncateStr(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"hypothetical nearby star α", 12, "hypothetic.."},
		{"abcdef", 3, "abc"},
		{"ααααα", 4, "αα.."},
	}

	for _, tt := range tests {
		if got := truncateStr(tt.in, tt.max); got != tt.want {
			t.Errorf("truncateStr(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
