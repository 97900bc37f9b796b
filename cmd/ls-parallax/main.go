// Command ls-parallax is a terminal visualizer for stellar parallax: Earth
// circles the Sun on one side, the sky seen from Earth shifts on the other.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-parallax/internal/astro"
	"github.com/litescript/ls-parallax/internal/logging"
	"github.com/litescript/ls-parallax/internal/render"
	"github.com/litescript/ls-parallax/internal/report"
	"github.com/litescript/ls-parallax/internal/state"
	"github.com/litescript/ls-parallax/internal/ui"
	"github.com/litescript/ls-parallax/internal/version"
)

// CLI flags for headless mode
var (
	summaryMode   bool
	tableSamples  int
	miniSkyMode   bool
	snapshotPath  string
	pngDir        string
	watchInterval time.Duration
	atPhase       float64
)

const (
	defaultFPS = 30
	minFPS     = 10
	maxFPS     = 60

	minWatch = 100 * time.Millisecond
)

var errNoTTY = errors.New("stdout is not a terminal; use -summary, -table, -mini-sky, -snapshot-path or -png")

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse flags
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	logFile := flag.String("log-file", "", "Append logs to file (the TUI discards logs otherwise)")
	speed := flag.Float64("speed", 1, "Animation speed multiplier (0.1 to 3)")
	fps := flag.Int("fps", defaultFPS, "TUI frames per second (10 to 60)")
	exaggerate := flag.Float64("exaggerate", ui.DefaultExaggeration, "Sky offset exaggeration in the terminal (1 to 8)")
	noMouse := flag.Bool("no-mouse", false, "Disable mouse dragging in the TUI")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Float64Var(&atPhase, "at", 0, "Year fraction for headless output (0 = vernal equinox)")
	flag.BoolVar(&summaryMode, "summary", false, "Print text summary instead of TUI")
	flag.IntVar(&tableSamples, "table", 0, "Print a table of N evenly spaced phases across the year")
	flag.BoolVar(&miniSkyMode, "mini-sky", false, "Show ASCII mini sky view")
	flag.StringVar(&snapshotPath, "snapshot-path", "", "Export JSON snapshot to file (use - for stdout)")
	flag.StringVar(&pngDir, "png", "", "Render orbit.png and sky.png into directory")
	flag.DurationVar(&watchInterval, "watch", 0, "Animate and repeat headless output at interval (e.g., 500ms)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("ls-parallax v%s\n", version.Version)
		return nil
	}

	// Validate frame rate
	if *fps < minFPS {
		*fps = minFPS
	} else if *fps > maxFPS {
		*fps = maxFPS
	}
	if watchInterval > 0 && watchInterval < minWatch {
		watchInterval = minWatch
	}
	if math.IsNaN(atPhase) || math.IsInf(atPhase, 0) {
		return fmt.Errorf("invalid -at value %v", atPhase)
	}

	headless := summaryMode || tableSamples != 0 || miniSkyMode || snapshotPath != "" || pngDir != ""

	// Set up logging
	level, levelOK := logging.ParseLevel(*logLevel)
	logger := logging.New(level)
	if *logFile != "" {
		f, err := logging.OpenFile(*logFile)
		if err != nil {
			return err
		}
		defer f.Close()
		logger.SetOutput(f)
	} else if !headless {
		// stderr shares the alternate screen
		logger = logging.Discard()
	}
	if !levelOK {
		logger.Warn("unknown log level %q, using info", *logLevel)
	}

	// Cancel on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize simulation
	simCfg := state.DefaultConfig()
	simCfg.Speed = *speed
	if watchInterval > simCfg.MaxFrameStep {
		simCfg.MaxFrameStep = watchInterval
	}
	sim, err := state.New(simCfg)
	if err != nil {
		return fmt.Errorf("simulation: %w", err)
	}
	logger.Debug("simulation ready: speed=%s stars=%d", state.FormatSpeed(sim.Speed()), len(simCfg.Stars))
	if logger.Enabled(logging.LevelDebug) {
		for _, st := range sim.Snapshot().Stars {
			logger.Debug("star %s: %.1f pc, %.3f\"", st.Star.Name, st.Star.DistancePc, st.Parallax.Arcsec)
		}
	}

	// Headless mode: no TUI
	if headless {
		sim.SetTime(atPhase)
		return runHeadless(ctx, os.Stdout, sim, logger.Named("headless"))
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNoTTY
	}

	model := ui.New(sim, ui.Options{
		FrameInterval: time.Second / time.Duration(*fps),
		Exaggeration:  *exaggerate,
		Logger:        logger.Named("ui"),
	})

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if !*noMouse {
		opts = append(opts, tea.WithMouseAllMotion())
	}
	p := tea.NewProgram(model, opts...)

	logger.Info("starting TUI at %d fps", *fps)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			logger.Info("interrupted")
			return nil
		}
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

// runHeadless handles all headless modes without starting TUI.
func runHeadless(ctx context.Context, out io.Writer, sim *state.Simulation, logger *logging.Logger) error {
	field := astro.GenerateBackground(astro.DefaultBackgroundCount)

	outputOnce := func() error {
		snap := sim.Snapshot()

		// Export JSON if requested
		if snapshotPath != "" {
			export := report.ExportSnapshot(snap, time.Now().UTC())
			if snapshotPath == "-" {
				if err := export.WriteJSON(out); err != nil {
					return fmt.Errorf("write JSON to stdout: %w", err)
				}
			} else {
				if err := writeSnapshot(snapshotPath, export); err != nil {
					return err
				}
				logger.Info("wrote snapshot to %s", snapshotPath)
			}
		}

		// Print summary table if requested
		if summaryMode {
			report.WriteSummaryTable(out, snap)
		}

		// Phase table
		if tableSamples != 0 {
			rows, err := report.PhaseTable(sim.Config().Stars, tableSamples, snap.Scale)
			if err != nil {
				return fmt.Errorf("phase table: %w", err)
			}
			fmt.Fprintln(out)
			report.WritePhaseTable(out, sim.Config().Stars, rows)
		}

		// Mini sky view
		if miniSkyMode {
			fmt.Fprintln(out)
			report.WriteMiniSky(out, snap, field, report.DefaultMiniSkyConfig())
		}

		// PNG frames
		if pngDir != "" {
			paths, err := render.WriteFrames(pngDir, snap, field, render.DefaultOptions(), 1)
			if err != nil {
				return err
			}
			for _, p := range paths {
				logger.Info("wrote %s", p)
			}
		}
		return nil
	}

	// Single run
	if watchInterval == 0 {
		return outputOnce()
	}

	// Watch mode: animate and repeat at interval
	sim.Play()
	sim.Frame(time.Now())
	if err := outputOnce(); err != nil {
		return err
	}

	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("watch loop shutting down")
			return nil
		case now := <-ticker.C:
			sim.Frame(now)
			fmt.Fprintln(out) // Blank line between outputs
			if err := outputOnce(); err != nil {
				return err
			}
		}
	}
}

// writeSnapshot writes export to path as JSON, including the close error.
func writeSnapshot(path string, export *report.SnapshotExport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot file: %w", err)
	}
	if err := export.WriteJSON(f); err != nil {
		f.Close()
		return fmt.Errorf("write JSON to file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close snapshot file: %w", err)
	}
	return nil
}
