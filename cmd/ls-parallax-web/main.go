//go:build js && wasm

// Command ls-parallax-web runs the parallax visualizer in the browser. It
// binds to the page served from web/index.html.
package main

import (
	"errors"
	"fmt"
	"strings"
	"syscall/js"
	"time"

	"github.com/litescript/ls-parallax/internal/astro"
	"github.com/litescript/ls-parallax/internal/logging"
	"github.com/litescript/ls-parallax/internal/render"
	"github.com/litescript/ls-parallax/internal/state"
	"github.com/litescript/ls-parallax/internal/version"
)

// Element ids the page must provide.
const (
	idSolarCanvas  = "solarCanvas"
	idStarCanvas   = "starCanvas"
	idPlayBtn      = "playBtn"
	idPauseBtn     = "pauseBtn"
	idResetBtn     = "resetBtn"
	idSpeedSlider  = "speedSlider"
	idTimeDisplay  = "timeDisplay"
	idEarthPos     = "earthPos"
	idSeason       = "season"
	idSpeedDisplay = "speedDisplay"
)

var errMissingElement = errors.New("missing page element")

// consoleWriter sends log lines to the browser console.
type consoleWriter struct{ console js.Value }

func (w consoleWriter) Write(p []byte) (int, error) {
	w.console.Call("log", strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

type app struct {
	doc   js.Value
	sim   *state.Simulation
	field []astro.BackgroundStar
	log   *logging.Logger

	solarEl js.Value
	solar   *canvasSurface
	sky     *canvasSurface

	funcs []js.Func
	frame js.Func
}

func main() {
	logger := logging.New(logging.LevelInfo).Named("web")
	logger.SetOutput(consoleWriter{console: js.Global().Get("console")})

	a, err := newApp(js.Global().Get("document"), logger)
	if err != nil {
		logger.Error("%v", err)
		return
	}
	a.bind()
	a.start()
	logger.Info("ls-parallax v%s running", version.Version)

	select {}
}

func newApp(doc js.Value, logger *logging.Logger) (*app, error) {
	a := &app{
		doc:   doc,
		sim:   state.MustNew(state.DefaultConfig()),
		field: astro.GenerateBackground(astro.DefaultBackgroundCount),
		log:   logger,
	}

	ids := []string{idSolarCanvas, idStarCanvas, idPlayBtn, idPauseBtn, idResetBtn,
		idSpeedSlider, idTimeDisplay, idEarthPos, idSeason, idSpeedDisplay}
	for _, st := range a.sim.Config().Stars {
		ids = append(ids, parallaxID(st))
	}
	for _, id := range ids {
		if a.byID(id).IsNull() {
			return nil, fmt.Errorf("%w: #%s", errMissingElement, id)
		}
	}

	a.solarEl = a.byID(idSolarCanvas)
	a.solar = newCanvasSurface(a.solarEl)
	a.sky = newCanvasSurface(a.byID(idStarCanvas))
	return a, nil
}

func parallaxID(s astro.Star) string {
	return "star" + s.Name + "Parallax"
}

func (a *app) byID(id string) js.Value {
	return a.doc.Call("getElementById", id)
}

func (a *app) on(el js.Value, event string, fn func(js.Value)) {
	f := js.FuncOf(func(_ js.Value, args []js.Value) any {
		var e js.Value
		if len(args) > 0 {
			e = args[0]
		}
		fn(e)
		return nil
	})
	a.funcs = append(a.funcs, f)
	el.Call("addEventListener", event, f)
}

// pointer converts a mouse or touch event to canvas coordinates.
func (a *app) pointer(e js.Value) (float64, float64, bool) {
	src := e
	if touches := e.Get("touches"); !touches.IsUndefined() {
		if touches.Length() == 0 {
			return 0, 0, false
		}
		src = touches.Index(0)
	}
	rect := a.solarEl.Call("getBoundingClientRect")
	w := rect.Get("width").Float()
	h := rect.Get("height").Float()
	if w <= 0 || h <= 0 {
		return 0, 0, false
	}
	x := (src.Get("clientX").Float() - rect.Get("left").Float()) * astro.CanvasSize / w
	y := (src.Get("clientY").Float() - rect.Get("top").Float()) * astro.CanvasSize / h
	return x, y, true
}

func (a *app) bind() {
	a.on(a.byID(idPlayBtn), "click", func(js.Value) { a.sim.Play() })
	a.on(a.byID(idPauseBtn), "click", func(js.Value) { a.sim.Pause() })
	a.on(a.byID(idResetBtn), "click", func(js.Value) { a.sim.Reset() })

	a.on(a.byID(idSpeedSlider), "input", func(e js.Value) {
		a.sim.SetSpeed(js.Global().Call("parseFloat", e.Get("target").Get("value")).Float())
	})

	down := func(e js.Value) {
		if x, y, ok := a.pointer(e); ok && a.sim.PointerDown(x, y) {
			a.log.Debug("grabbed Earth at t=%.3f", a.sim.Time())
		}
	}
	move := func(e js.Value) {
		if x, y, ok := a.pointer(e); ok {
			a.sim.PointerMove(x, y)
		}
	}
	touch := func(fn func(js.Value)) func(js.Value) {
		return func(e js.Value) {
			e.Call("preventDefault")
			fn(e)
		}
	}

	a.on(a.solarEl, "mousedown", down)
	a.on(a.solarEl, "mousemove", move)
	a.on(a.solarEl, "mouseup", func(js.Value) { a.sim.PointerUp() })
	a.on(a.solarEl, "mouseleave", func(js.Value) { a.sim.PointerLeave() })
	a.on(a.solarEl, "touchstart", touch(down))
	a.on(a.solarEl, "touchmove", touch(move))
	a.on(a.solarEl, "touchend", func(js.Value) { a.sim.PointerUp() })
}

func (a *app) start() {
	a.frame = js.FuncOf(func(js.Value, []js.Value) any {
		a.sim.Frame(time.Now())
		a.draw()
		js.Global().Call("requestAnimationFrame", a.frame)
		return nil
	})
	a.draw()
	js.Global().Call("requestAnimationFrame", a.frame)
}

func (a *app) draw() {
	snap := a.sim.Snapshot()
	opts := render.DefaultOptions()

	a.solar.begin()
	render.DrawOrbitView(a.solar, snap, opts)
	a.sky.begin()
	render.DrawSkyView(a.sky, snap, a.field, opts)

	a.updateReadouts(snap)
}

func (a *app) updateReadouts(snap state.Snapshot) {
	a.byID(idTimeDisplay).Set("textContent", astro.FormatYears(snap.Time))
	a.byID(idEarthPos).Set("textContent", astro.FormatDegrees(snap.Degrees))
	a.byID(idSeason).Set("textContent", snap.Season.String())
	a.byID(idSpeedDisplay).Set("textContent", state.FormatSpeed(snap.Speed))
	for _, st := range snap.Stars {
		a.byID(parallaxID(st.Star)).Set("textContent", astro.FormatArcsec(st.Parallax.Arcsec))
	}

	a.byID(idPlayBtn).Set("disabled", snap.Playing)
	a.byID(idPauseBtn).Set("disabled", !snap.Playing)

	cursor := "default"
	switch {
	case snap.Dragging:
		cursor = "grabbing"
	case snap.Hovering:
		cursor = "grab"
	}
	a.solarEl.Get("style").Set("cursor", cursor)
}
