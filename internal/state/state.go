// Package state holds the simulation state machine: the year fraction, the
// play/pause and drag flags, and the animation speed.
//
// A Simulation is owned by a single UI loop (Bubble Tea's update loop or the
// browser's animation frame callback) and is not safe for concurrent use.
package state

import (
	"fmt"
	"math"
	"time"

	"github.com/litescript/ls-parallax/internal/astro"
)

// Config holds tunables for a Simulation.
type Config struct {
	BaseRate      float64       // years per second at 1x speed
	Speed         float64       // initial speed multiplier
	MinSpeed      float64
	MaxSpeed      float64
	SpeedStep     float64
	ParallaxScale float64       // screen units per arcsecond
	MaxFrameStep  time.Duration // longest frame delta applied in one step
	Stars         []astro.Star
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		BaseRate:      0.1, // a full orbit every 10s at 1x
		Speed:         1.0,
		MinSpeed:      0.1,
		MaxSpeed:      3.0,
		SpeedStep:     0.1,
		ParallaxScale: astro.ParallaxScale,
		MaxFrameStep:  250 * time.Millisecond,
		Stars:         astro.DefaultStars(),
	}
}

// StarState is one near star together with its current displacement.
type StarState struct {
	Star     astro.Star
	Parallax astro.Parallax
}

// Snapshot is a read-only view of the simulation at one instant.
type Snapshot struct {
	Time       float64 // year fraction in [0,1)
	Playing    bool
	Dragging   bool
	Hovering   bool // pointer is over Earth
	Speed      float64
	Clock      float64 // wall-clock seconds, drives twinkling
	EarthAngle float64
	Earth      astro.Point
	Degrees    float64
	Season     astro.Season
	Scale      float64
	Stars      []StarState
}

// Simulation is the time/angle state machine.
type Simulation struct {
	cfg Config

	t        float64
	playing  bool
	dragging bool
	hovering bool
	speed    float64

	clock     float64
	lastFrame time.Time

	// last pointer position over the orbit view, for hover while playing
	pointer   astro.Point
	pointerIn bool
}

// New creates a paused simulation at t = 0. Zero fields of cfg take their
// defaults; a star that cannot be projected is an error.
func New(cfg Config) (*Simulation, error) {
	def := DefaultConfig()
	if cfg.BaseRate <= 0 {
		cfg.BaseRate = def.BaseRate
	}
	if cfg.MinSpeed <= 0 {
		cfg.MinSpeed = def.MinSpeed
	}
	if cfg.MaxSpeed < cfg.MinSpeed {
		cfg.MaxSpeed = math.Max(def.MaxSpeed, cfg.MinSpeed)
	}
	if cfg.SpeedStep <= 0 {
		cfg.SpeedStep = def.SpeedStep
	}
	if cfg.Speed == 0 {
		cfg.Speed = def.Speed
	}
	if cfg.ParallaxScale <= 0 {
		cfg.ParallaxScale = def.ParallaxScale
	}
	if cfg.MaxFrameStep <= 0 {
		cfg.MaxFrameStep = def.MaxFrameStep
	}
	if cfg.Stars == nil {
		cfg.Stars = def.Stars
	}
	for _, star := range cfg.Stars {
		if err := star.Validate(); err != nil {
			return nil, err
		}
	}

	s := &Simulation{cfg: cfg}
	s.SetSpeed(cfg.Speed)
	return s, nil
}

// MustNew is New for configurations known to be valid, such as
// DefaultConfig. It panics on error.
func MustNew(cfg Config) *Simulation {
	s, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return s
}

// Config returns the configuration the simulation was built with.
func (s *Simulation) Config() Config {
	return s.cfg
}

// Frame advances the simulation to now. The first call only records the
// frame time. The year fraction moves only while playing and not dragging.
func (s *Simulation) Frame(now time.Time) {
	if s.lastFrame.IsZero() {
		s.lastFrame = now
		return
	}

	dt := now.Sub(s.lastFrame)
	s.lastFrame = now
	if dt <= 0 {
		return
	}
	if dt > s.cfg.MaxFrameStep {
		dt = s.cfg.MaxFrameStep
	}

	sec := dt.Seconds()
	s.clock += sec

	if s.playing && !s.dragging {
		s.t = astro.WrapYear(s.t + sec*s.cfg.BaseRate*s.speed)
		if s.pointerIn {
			s.hovering = s.OverEarth(s.pointer.X, s.pointer.Y)
		}
	}
}

// Play starts the animation.
func (s *Simulation) Play() {
	s.playing = true
}

// Pause stops the animation.
func (s *Simulation) Pause() {
	s.playing = false
}

// Toggle flips between playing and paused.
func (s *Simulation) Toggle() {
	s.playing = !s.playing
}

// Reset returns to t = 0 and pauses.
func (s *Simulation) Reset() {
	s.t = 0
	s.Pause()
}

// Playing reports whether the animation is running.
func (s *Simulation) Playing() bool {
	return s.playing
}

// Dragging reports whether Earth is being dragged.
func (s *Simulation) Dragging() bool {
	return s.dragging
}

// Time returns the current year fraction.
func (s *Simulation) Time() float64 {
	return s.t
}

// SetTime jumps to year fraction t, wrapped into [0,1).
func (s *Simulation) SetTime(t float64) {
	s.t = astro.WrapYear(t)
}

// Scrub pauses and moves the year fraction by dt.
func (s *Simulation) Scrub(dt float64) {
	s.Pause()
	s.SetTime(s.t + dt)
}

// Speed returns the speed multiplier.
func (s *Simulation) Speed() float64 {
	return s.speed
}

// SetSpeed sets the speed multiplier, clamped to the configured range.
func (s *Simulation) SetSpeed(v float64) {
	if math.IsNaN(v) {
		v = s.cfg.MinSpeed
	}
	if v < s.cfg.MinSpeed {
		v = s.cfg.MinSpeed
	} else if v > s.cfg.MaxSpeed {
		v = s.cfg.MaxSpeed
	}
	// Keep slider steps exact so the readout never shows 0.30000001x
	s.speed = math.Round(v*1000) / 1000
}

// FasterSpeed raises the speed by one step.
func (s *Simulation) FasterSpeed() {
	s.SetSpeed(s.speed + s.cfg.SpeedStep)
}

// SlowerSpeed lowers the speed by one step.
func (s *Simulation) SlowerSpeed() {
	s.SetSpeed(s.speed - s.cfg.SpeedStep)
}

// OverEarth reports whether (x, y) is within grabbing distance of Earth.
func (s *Simulation) OverEarth(x, y float64) bool {
	return astro.EarthPosition(s.t).Dist(astro.Point{X: x, Y: y}) < astro.PickRadius
}

// PointerDown starts a drag when the pointer lands on Earth. Dragging pauses
// the animation.
func (s *Simulation) PointerDown(x, y float64) bool {
	s.pointer, s.pointerIn = astro.Point{X: x, Y: y}, true
	if !s.OverEarth(x, y) {
		return false
	}
	s.dragging = true
	s.hovering = true
	s.Pause()
	return true
}

// PointerMove sets the year fraction from the pointer angle while dragging.
// Otherwise it only updates the hover state.
func (s *Simulation) PointerMove(x, y float64) {
	s.pointer, s.pointerIn = astro.Point{X: x, Y: y}, true
	if !s.dragging {
		s.hovering = s.OverEarth(x, y)
		return
	}
	s.t = astro.TimeFromPointer(x, y)
}

// PointerUp ends a drag. Leaving the canvas is treated the same way.
func (s *Simulation) PointerUp() {
	s.dragging = false
}

// PointerLeave ends a drag and clears the hover state.
func (s *Simulation) PointerLeave() {
	s.dragging = false
	s.hovering = false
	s.pointerIn = false
}

// Snapshot returns the current state with derived geometry.
func (s *Simulation) Snapshot() Snapshot {
	angle := astro.EarthAngle(s.t)

	stars := make([]StarState, len(s.cfg.Stars))
	for i, star := range s.cfg.Stars {
		stars[i] = StarState{
			Star:     star,
			Parallax: astro.ComputeParallax(star, angle, s.cfg.ParallaxScale),
		}
	}

	return Snapshot{
		Time:       s.t,
		Playing:    s.playing,
		Dragging:   s.dragging,
		Hovering:   s.hovering,
		Speed:      s.speed,
		Clock:      s.clock,
		EarthAngle: angle,
		Earth:      astro.EarthPosition(s.t),
		Degrees:    astro.OrbitDegrees(s.t),
		Season:     astro.SeasonAt(s.t),
		Scale:      s.cfg.ParallaxScale,
		Stars:      stars,
	}
}

// FormatSpeed renders a speed multiplier for readouts.
func FormatSpeed(v float64) string {
	return fmt.Sprintf("%.1fx", v)
}
