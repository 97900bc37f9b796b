//go:build js && wasm

package main

import (
	"fmt"
	"math"
	"syscall/js"

	"github.com/litescript/ls-parallax/internal/astro"
	"github.com/litescript/ls-parallax/internal/render"
)

// canvasSurface draws render scenes on an HTML canvas 2D context.
type canvasSurface struct {
	el  js.Value
	ctx js.Value
}

func newCanvasSurface(el js.Value) *canvasSurface {
	return &canvasSurface{el: el, ctx: el.Call("getContext", "2d")}
}

// begin maps the logical canvas onto the element's pixel size.
func (c *canvasSurface) begin() {
	k := c.el.Get("width").Float() / astro.CanvasSize
	c.ctx.Call("setTransform", k, 0, 0, k, 0, 0)
}

func (c *canvasSurface) FillRect(x, y, w, h float64, col render.Color) {
	c.ctx.Set("fillStyle", col.CSS())
	c.ctx.Call("fillRect", x, y, w, h)
}

func (c *canvasSurface) Line(x1, y1, x2, y2, width float64, col render.Color) {
	c.ctx.Set("strokeStyle", col.CSS())
	c.ctx.Set("lineWidth", width)
	c.ctx.Call("beginPath")
	c.ctx.Call("moveTo", x1, y1)
	c.ctx.Call("lineTo", x2, y2)
	c.ctx.Call("stroke")
}

func (c *canvasSurface) StrokeCircle(x, y, r, width float64, col render.Color, dash []float64) {
	c.ctx.Set("strokeStyle", col.CSS())
	c.ctx.Set("lineWidth", width)
	if len(dash) > 0 {
		c.ctx.Call("setLineDash", floats(dash))
	}
	c.ctx.Call("beginPath")
	c.ctx.Call("arc", x, y, r, 0, 2*math.Pi)
	c.ctx.Call("stroke")
	if len(dash) > 0 {
		c.ctx.Call("setLineDash", []any{})
	}
}

func (c *canvasSurface) FillCircle(x, y, r float64, p render.Paint) {
	if g := p.Gradient; g != nil {
		grad := c.ctx.Call("createRadialGradient", g.FX, g.FY, g.R0, g.CX, g.CY, g.R1)
		for _, s := range g.Stops {
			grad.Call("addColorStop", s.Offset, s.Color.CSS())
		}
		c.ctx.Set("fillStyle", grad)
	} else {
		c.ctx.Set("fillStyle", p.Color.CSS())
	}
	c.ctx.Call("beginPath")
	c.ctx.Call("arc", x, y, r, 0, 2*math.Pi)
	c.ctx.Call("fill")
}

func (c *canvasSurface) Text(s string, x, y, size float64, col render.Color, align render.Align) {
	c.ctx.Set("fillStyle", col.CSS())
	c.ctx.Set("font", fmt.Sprintf("%gpx Inter, sans-serif", size))
	if align == render.AlignCenter {
		c.ctx.Set("textAlign", "center")
	} else {
		c.ctx.Set("textAlign", "left")
	}
	c.ctx.Call("fillText", s, x, y)
}

func floats(v []float64) []any {
	out := make([]any, len(v))
	for i, f := range v {
		out[i] = f
	}
	return out
}
