package render

import "fmt"

// recorder is a Surface that logs every call.
type recorder struct {
	rects   int
	lines   int
	circles []recordedCircle
	strokes []recordedCircle
	texts   []recordedText
}

type recordedCircle struct {
	x, y, r float64
	paint   Paint
	dash    []float64
}

type recordedText struct {
	s     string
	x, y  float64
	align Align
}

func (r *recorder) FillRect(x, y, w, h float64, c Color) { r.rects++ }

func (r *recorder) Line(x1, y1, x2, y2, width float64, c Color) { r.lines++ }

func (r *recorder) StrokeCircle(x, y, rad, width float64, c Color, dash []float64) {
	r.strokes = append(r.strokes, recordedCircle{x: x, y: y, r: rad, paint: Solid(c), dash: dash})
}

func (r *recorder) FillCircle(x, y, rad float64, p Paint) {
	r.circles = append(r.circles, recordedCircle{x: x, y: y, r: rad, paint: p})
}

func (r *recorder) Text(s string, x, y, size float64, c Color, align Align) {
	r.texts = append(r.texts, recordedText{s: s, x: x, y: y, align: align})
}

func (r *recorder) text(s string) (recordedText, error) {
	for _, t := range r.texts {
		if t.s == s {
			return t, nil
		}
	}
	return recordedText{}, fmt.Errorf("text %q not drawn", s)
}
