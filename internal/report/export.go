// Package report renders simulation state for headless use: JSON snapshots,
// text tables and an ASCII sky.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/litescript/ls-parallax/internal/astro"
	"github.com/litescript/ls-parallax/internal/state"
)

// ErrNoSamples is returned when a phase table is requested with no rows.
var ErrNoSamples = errors.New("phase table needs at least one sample")

// SnapshotExport is the JSON-serializable representation of the simulation.
type SnapshotExport struct {
	GeneratedAt  time.Time    `json:"generated_at"`
	TimeYears    float64      `json:"time_years"`
	EarthDegrees float64      `json:"earth_degrees"`
	Season       string       `json:"season"`
	Playing      bool         `json:"playing"`
	Speed        float64      `json:"speed"`
	Earth        PointExport  `json:"earth"`
	Scale        float64      `json:"parallax_scale"`
	Stars        []StarExport `json:"stars"`
}

// PointExport is a canvas position.
type PointExport struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// StarExport is one near star with its current displacement.
type StarExport struct {
	Name       string  `json:"name"`
	Label      string  `json:"label"`
	DistancePc float64 `json:"distance_pc"`
	Arcsec     float64 `json:"parallax_arcsec"`
	DeltaX     float64 `json:"delta_x"`
	DeltaY     float64 `json:"delta_y"`
	ApparentX  float64 `json:"apparent_x"`
	ApparentY  float64 `json:"apparent_y"`
}

// ExportSnapshot converts a simulation snapshot to its exportable form.
func ExportSnapshot(snap state.Snapshot, generatedAt time.Time) *SnapshotExport {
	export := &SnapshotExport{
		GeneratedAt:  generatedAt,
		TimeYears:    snap.Time,
		EarthDegrees: snap.Degrees,
		Season:       snap.Season.String(),
		Playing:      snap.Playing,
		Speed:        snap.Speed,
		Earth:        PointExport{X: snap.Earth.X, Y: snap.Earth.Y},
		Scale:        snap.Scale,
		Stars:        []StarExport{},
	}

	for _, st := range snap.Stars {
		export.Stars = append(export.Stars, StarExport{
			Name:       st.Star.Name,
			Label:      st.Star.Label,
			DistancePc: st.Star.DistancePc,
			Arcsec:     st.Parallax.Arcsec,
			DeltaX:     st.Parallax.DeltaX,
			DeltaY:     st.Parallax.DeltaY,
			ApparentX:  st.Parallax.ApparentX,
			ApparentY:  st.Parallax.ApparentY,
		})
	}

	return export
}

// WriteJSON writes the snapshot as indented JSON.
func (s *SnapshotExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// WriteSummaryTable writes the current state and one row per star.
func WriteSummaryTable(w io.Writer, snap state.Snapshot) {
	status := "paused"
	if snap.Playing {
		status = "playing"
	}

	fmt.Fprintf(w, "Parallax @ %s | %s | %s | %s %s\n",
		astro.FormatYears(snap.Time),
		astro.FormatDegrees(snap.Degrees),
		snap.Season,
		state.FormatSpeed(snap.Speed),
		status,
	)
	fmt.Fprintln(w, strings.Repeat("─", 78))

	if len(snap.Stars) == 0 {
		fmt.Fprintln(w, "No stars")
		return
	}

	fmt.Fprintf(w, "%-6s %-30s %-8s %-9s %-8s %-9s %-9s\n",
		"Star", "Label", "Dist", "Parallax", "Δx", "App X", "App Y")
	fmt.Fprintln(w, strings.Repeat("─", 78))

	for _, st := range snap.Stars {
		fmt.Fprintf(w, "%-6s %-30s %-8s %-9s %+8.2f %9.2f %9.2f\n",
			truncateStr(st.Star.Name, 6),
			truncateStr(st.Star.Label, 30),
			fmt.Sprintf("%.1f pc", st.Star.DistancePc),
			astro.FormatArcsec(st.Parallax.Arcsec),
			st.Parallax.DeltaX,
			st.Parallax.ApparentX,
			st.Parallax.ApparentY,
		)
	}

	fmt.Fprintf(w, "\nTotal: %d stars\n", len(snap.Stars))
}

// PhaseRow is one sample of the year.
type PhaseRow struct {
	Time    float64
	Degrees float64
	Season  astro.Season
	DeltaX  []float64 // per star, same order as the input
}

// PhaseTable samples the year at evenly spaced phases starting at t = 0.
func PhaseTable(stars []astro.Star, samples int, scale float64) ([]PhaseRow, error) {
	if samples < 1 {
		return nil, ErrNoSamples
	}

	rows := make([]PhaseRow, 0, samples)
	for i := 0; i < samples; i++ {
		t := float64(i) / float64(samples)
		angle := astro.EarthAngle(t)

		row := PhaseRow{
			Time:    t,
			Degrees: astro.OrbitDegrees(t),
			Season:  astro.SeasonAt(t),
			DeltaX:  make([]float64, len(stars)),
		}
		for j, s := range stars {
			row.DeltaX[j] = cleanZero(astro.ComputeParallax(s, angle, scale).DeltaX)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// WritePhaseTable writes rows produced by PhaseTable.
func WritePhaseTable(w io.Writer, stars []astro.Star, rows []PhaseRow) {
	fmt.Fprintf(w, "%-8s %-8s %-8s", "Year", "Pos", "Season")
	for _, s := range stars {
		fmt.Fprintf(w, " %9s", "Δx "+s.Name)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("─", 26+10*len(stars)))

	for _, r := range rows {
		fmt.Fprintf(w, "%-8s %-8s %-8s",
			fmt.Sprintf("%.3f", r.Time),
			astro.FormatDegrees(r.Degrees),
			r.Season.Short(),
		)
		for _, dx := range r.DeltaX {
			fmt.Fprintf(w, " %+9.3f", dx)
		}
		fmt.Fprintln(w)
	}
}

// cleanZero folds -0 and rounding dust to 0 so tables do not show -0.000.
func cleanZero(v float64) float64 {
	if math.Abs(v) < 1e-9 {
		return 0
	}
	return v
}

func truncateStr(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-2]) + ".."
}
