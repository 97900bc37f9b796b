// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-parallax/internal/astro"
	"github.com/litescript/ls-parallax/internal/logging"
	"github.com/litescript/ls-parallax/internal/render"
	"github.com/litescript/ls-parallax/internal/state"
	"github.com/litescript/ls-parallax/internal/version"
)

// Layout rows around the two panes.
const (
	headerHeight = 3 // title, tagline, blank
	titleHeight  = 1 // pane titles
	hudHeight    = 4 // blank + three readout lines
	footerHeight = 2

	paneLeft  = 2 // indent before the orbit pane
	paneGap   = 2 // columns between the panes
	minPaneH  = 8
	scrubStep = 1.0 / 72 // 5 degrees of orbit

	// DefaultFrameInterval is roughly 30 frames per second.
	DefaultFrameInterval = 33 * time.Millisecond
)

// Msg types for Bubble Tea
type (
	// FrameMsg advances the simulation by one animation frame.
	FrameMsg time.Time

	// exportDoneMsg reports the result of a PNG export.
	exportDoneMsg struct {
		paths []string
		err   error
	}
)

// Options configures the root model.
type Options struct {
	FrameInterval time.Duration
	Exaggeration  float64
	ExportDir     string
	Logger        *logging.Logger
}

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	sim   *state.Simulation
	field []astro.BackgroundStar
	log   *logging.Logger

	frameInterval time.Duration
	exportDir     string

	// UI state
	width     int
	height    int
	paneW     int
	paneH     int
	ready     bool
	statusMsg string
	frames    int // frame counter for the spinner

	scene render.Options

	// Sub-models
	orbit OrbitViewModel
	sky   SkyViewModel

	snapshot state.Snapshot
}

// New creates a new root UI model.
func New(sim *state.Simulation, opts Options) Model {
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = DefaultFrameInterval
	}
	if opts.Exaggeration == 0 {
		opts.Exaggeration = DefaultExaggeration
	}
	if opts.ExportDir == "" {
		opts.ExportDir = "."
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}

	field := astro.GenerateBackground(astro.DefaultBackgroundCount)
	scene := render.DefaultOptions()
	scene.Grid = false // a full grid crowds a small pane
	scene.Exaggeration = clampExaggeration(opts.Exaggeration)

	m := Model{
		sim:           sim,
		field:         field,
		log:           opts.Logger,
		frameInterval: opts.FrameInterval,
		exportDir:     opts.ExportDir,
		scene:         scene,
		orbit:         NewOrbitViewModel(),
		sky:           NewSkyViewModel(field),
	}
	m.applyScene()
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return frameCmd(m.frameInterval)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case " ", "space":
			m.sim.Toggle()
		case "p":
			m.sim.Play()
		case "s":
			m.sim.Pause()
		case "r":
			m.sim.Reset()
			m.statusMsg = "Reset to the vernal equinox"

		case "+", "=":
			m.sim.FasterSpeed()
		case "-", "_":
			m.sim.SlowerSpeed()

		// Arrows step the orbit forward (counterclockwise) or back.
		case "right":
			m.sim.Scrub(scrubStep)
		case "left":
			m.sim.Scrub(-scrubStep)

		case "]":
			m.scene.Exaggeration = clampExaggeration(m.scene.Exaggeration + 1)
			m.applyScene()
		case "[":
			m.scene.Exaggeration = clampExaggeration(m.scene.Exaggeration - 1)
			m.applyScene()
		case "t":
			m.scene.Track = !m.scene.Track
			m.applyScene()
		case "g":
			m.scene.Grid = !m.scene.Grid
			m.applyScene()
		case "l":
			m.scene.Labels = !m.scene.Labels
			m.applyScene()

		case "x":
			m.statusMsg = "Exporting PNG frames..."
			cmds = append(cmds, m.exportCmd())
		}
		m.refresh()

	case tea.MouseMsg:
		m.handleMouse(msg)
		m.refresh()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()

	case FrameMsg:
		m.sim.Frame(time.Time(msg))
		m.frames++
		m.refresh()
		cmds = append(cmds, frameCmd(m.frameInterval))

	case exportDoneMsg:
		if msg.err != nil {
			m.log.Error("export failed: %v", msg.err)
			m.statusMsg = fmt.Sprintf("Export failed: %v", msg.err)
		} else {
			m.log.Info("exported %s", strings.Join(msg.paths, ", "))
			m.statusMsg = "Saved " + strings.Join(msg.paths, ", ")
		}
	}

	return m, tea.Batch(cmds...)
}

// handleMouse feeds pointer events over the orbit pane to the simulation.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	x, y, inside := m.orbit.CanvasPoint(msg.X-paneLeft, msg.Y-(headerHeight+titleHeight))

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !inside {
			return
		}
		if m.sim.PointerDown(x, y) {
			m.log.Debug("grabbed Earth at t=%.3f", m.sim.Time())
		}
	case tea.MouseActionMotion:
		if !inside {
			m.sim.PointerLeave()
			return
		}
		m.sim.PointerMove(x, y)
	case tea.MouseActionRelease:
		m.sim.PointerUp()
	}
}

func (m *Model) layout() {
	avail := m.height - headerHeight - titleHeight - hudHeight - footerHeight
	h := min(avail, (m.width-paneLeft-paneGap)/4)
	if h < minPaneH {
		h = 0
	}
	m.paneH = h
	m.paneW = 2 * h
	m.orbit = m.orbit.SetSize(m.paneW, m.paneH)
	m.sky = m.sky.SetSize(m.paneW, m.paneH)
}

func (m *Model) applyScene() {
	orbitOpts := m.scene
	orbitOpts.Exaggeration = 1
	m.orbit = m.orbit.SetOptions(orbitOpts)
	m.sky = m.sky.SetOptions(m.scene)
}

func (m *Model) refresh() {
	m.snapshot = m.sim.Snapshot()
	m.orbit = m.orbit.UpdateData(m.snapshot)
	m.sky = m.sky.UpdateData(m.snapshot)
}

// exportCmd writes true-scale PNG frames of the current state.
func (m Model) exportCmd() tea.Cmd {
	snap := m.snapshot
	opts := m.scene
	opts.Exaggeration = 1
	field := m.field
	dir := m.exportDir
	return func() tea.Msg {
		paths, err := render.WriteFrames(dir, snap, field, opts, 1)
		return exportDoneMsg{paths: paths, err: err}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.paneH == 0 {
		return m.renderHeader() + "\n  Terminal too small for the parallax view\n"
	}

	return m.renderHeader() + "\n" + m.renderPanes() + "\n" + m.renderHUD() + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	var b strings.Builder
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	title := "  ✦ LS-PARALLAX"
	runes := []rune(title)
	for col, r := range runes {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(gradientColor(col, len(runes)))).Bold(true)
		b.WriteString(style.Render(string(r)))
	}
	b.WriteString(muted.Render(fmt.Sprintf("  v%s", version.Version)))
	b.WriteString("\n")
	b.WriteString(muted.Render("  Stellar parallax · Earth's orbit and the shifting sky"))
	b.WriteString("\n")
	return b.String()
}

// gradientColor returns a hex color along the title gradient:
// cyan -> blue -> purple.
func gradientColor(col, width int) string {
	stops := []colorful.Color{
		{R: 100.0 / 255, G: 1, B: 218.0 / 255},
		{R: 59.0 / 255, G: 130.0 / 255, B: 246.0 / 255},
		{R: 139.0 / 255, G: 92.0 / 255, B: 246.0 / 255},
	}
	if width <= 1 {
		return stops[0].Hex()
	}

	t := float64(col) / float64(width-1) * float64(len(stops)-1)
	i := int(t)
	switch {
	case i >= len(stops)-1:
		return stops[len(stops)-1].Hex()
	case t == float64(i):
		return stops[i].Hex()
	}
	return stops[i].BlendHcl(stops[i+1], t-float64(i)).Clamped().Hex()
}

func (m Model) renderPanes() string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)

	pad := strings.Repeat(" ", paneLeft)
	gap := strings.Repeat(" ", paneGap)

	var b strings.Builder
	b.WriteString(pad)
	b.WriteString(titleStyle.Width(m.paneW).Render(truncate("Solar system (top-down)", m.paneW)))
	b.WriteString(gap)
	b.WriteString(titleStyle.Render(truncate(
		fmt.Sprintf("Sky from Earth (offsets ×%.0f)", m.scene.Exaggeration), m.paneW)))
	b.WriteString("\n")

	orbit := m.orbit.Lines()
	sky := m.sky.Lines()
	for i := range orbit {
		b.WriteString(pad)
		b.WriteString(orbit[i])
		b.WriteString(gap)
		b.WriteString(sky[i])
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m Model) renderHUD() string {
	var b strings.Builder

	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	playStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
	pauseStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	hintStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#64ffda"))

	snap := m.snapshot
	field := func(label, value string) {
		b.WriteString(labelStyle.Render(label + " "))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("  ")
	}

	b.WriteString("\n  ")
	field("Time:", astro.FormatYears(snap.Time))
	field("Position:", astro.FormatDegrees(snap.Degrees))
	field("Season:", snap.Season.String())
	field("Speed:", state.FormatSpeed(snap.Speed))
	if snap.Playing {
		b.WriteString(playStyle.Render("▶ playing"))
	} else {
		b.WriteString(pauseStyle.Render("⏸ paused"))
	}
	b.WriteString("\n  ")

	for _, st := range snap.Stars {
		c, err := render.ParseColor(st.Star.Color)
		nameStyle := valueStyle
		if err == nil {
			nameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Bold(true)
		}
		b.WriteString(nameStyle.Render(st.Star.DisplayName()))
		b.WriteString(dimStyle.Render(fmt.Sprintf(" %.1f pc ", st.Star.DistancePc)))
		field("parallax", astro.FormatArcsec(st.Parallax.Arcsec))
		field("Δx", fmt.Sprintf("%+.2f", st.Parallax.DeltaX))
	}
	b.WriteString("\n  ")

	onOff := func(v bool) string {
		if v {
			return "on"
		}
		return "off"
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("Track:%s  Grid:%s  Labels:%s",
		onOff(m.scene.Track), onOff(m.scene.Grid), onOff(m.scene.Labels))))

	switch {
	case snap.Dragging:
		b.WriteString("  " + hintStyle.Render("✋ dragging Earth through the year"))
	case snap.Hovering:
		b.WriteString("  " + hintStyle.Render("☝ drag Earth to move through the year"))
	}

	return b.String()
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))

	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinner := " "
	if m.snapshot.Playing {
		spinner = spinnerFrames[(m.frames/3)%len(spinnerFrames)]
	}

	help := dimStyle.Render("space: play/pause | r: reset | +/-: speed | ←/→: step | [/]: offsets | t: track | g: grid | l: labels | x: png | q: quit")
	footer := "  " + accentStyle.Render(spinner) + "  " + help

	if m.statusMsg != "" {
		footer += "\n  " + dimStyle.Render(m.statusMsg)
	}
	return footer
}

// Simulation returns the simulation driven by the model.
func (m Model) Simulation() *state.Simulation {
	return m.sim
}

// Scene returns the current scene toggles.
func (m Model) Scene() render.Options {
	return m.scene
}

func frameCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}
