package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/litescript/ls-parallax/internal/logging"
	"github.com/litescript/ls-parallax/internal/render"
	"github.com/litescript/ls-parallax/internal/report"
	"github.com/litescript/ls-parallax/internal/state"
)

// resetFlags restores the headless flag globals after a test.
func resetFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		summaryMode = false
		tableSamples = 0
		miniSkyMode = false
		snapshotPath = ""
		pngDir = ""
		watchInterval = 0
		atPhase = 0
	})
}

func newSim(t0 float64) *state.Simulation {
	sim := state.MustNew(state.DefaultConfig())
	sim.SetTime(t0)
	return sim
}

func TestRunHeadlessSummaryAndTable(t *testing.T) {
	resetFlags(t)
	summaryMode = true
	tableSamples = 4

	var out bytes.Buffer
	if err := runHeadless(context.Background(), &out, newSim(0.5), logging.Discard()); err != nil {
		t.Fatalf("runHeadless: %v", err)
	}

	for _, want := range []string{"0.50 yr", "180.0°", "Autumn", "Total: 2 stars", "Δx A", "0.750"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRunHeadlessSnapshotStdout(t *testing.T) {
	resetFlags(t)
	snapshotPath = "-"

	var out bytes.Buffer
	if err := runHeadless(context.Background(), &out, newSim(0.25), logging.Discard()); err != nil {
		t.Fatalf("runHeadless: %v", err)
	}

	var decoded report.SnapshotExport
	if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out.String())
	}
	if decoded.TimeYears != 0.25 || len(decoded.Stars) != 2 {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestRunHeadlessFiles(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	snapshotPath = filepath.Join(dir, "snap.json")
	pngDir = filepath.Join(dir, "frames")
	miniSkyMode = true

	var out bytes.Buffer
	if err := runHeadless(context.Background(), &out, newSim(0), logging.Discard()); err != nil {
		t.Fatalf("runHeadless: %v", err)
	}

	for _, p := range []string{
		snapshotPath,
		filepath.Join(pngDir, render.OrbitFile),
		filepath.Join(pngDir, render.SkyFile),
	} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("missing %s: %v", p, err)
		}
	}
	if !strings.Contains(out.String(), "Sky @") {
		t.Errorf("mini sky missing:\n%s", out.String())
	}
}

func TestWriteSnapshot(t *testing.T) {
	export := report.ExportSnapshot(newSim(0.25).Snapshot(), time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC))
	dir := t.TempDir()

	path := filepath.Join(dir, "snap.json")
	if err := writeSnapshot(path, export); err != nil {
		t.Fatalf("writeSnapshot: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]interface{}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got["time_years"] != 0.25 {
		t.Errorf("time_years = %v, want 0.25", got["time_years"])
	}

	if err := writeSnapshot(filepath.Join(dir, "missing", "snap.json"), export); err == nil {
		t.Error("expected error for a missing directory")
	}
}

func TestRunHeadlessBadTable(t *testing.T) {
	resetFlags(t)
	tableSamples = -1

	err := runHeadless(context.Background(), &bytes.Buffer{}, newSim(0), logging.Discard())
	if !errors.Is(err, report.ErrNoSamples) {
		t.Errorf("err = %v, want ErrNoSamples", err)
	}
}

func TestRunHeadlessWatchStopsOnCancel(t *testing.T) {
	resetFlags(t)
	summaryMode = true
	watchInterval = minWatch

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	sim := newSim(0)
	if err := runHeadless(ctx, &out, sim, logging.Discard()); err != nil {
		t.Fatalf("runHeadless: %v", err)
	}
	if !sim.Playing() {
		t.Error("watch mode should animate")
	}
	if !strings.Contains(out.String(), "playing") {
		t.Errorf("first output should be printed before the loop:\n%s", out.String())
	}
}
