// Package elevation draws a wall as seen from the front, optionally showing
// how far laying has progressed.
//
// Without instructions every brick is drawn in the pending color. With
// instructions, bricks are drawn in laying order: the first n are dark and
// carry their stride number, the rest are light, and the envelope of the
// stride that laid the n-th brick is shaded behind them.
//
// Coordinates follow the wall: the origin is the bottom-left corner and y
// grows upwards. The SVG is flipped accordingly.
package elevation

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/matzehuels/bricklayer/pkg/geom"
	"github.com/matzehuels/bricklayer/pkg/plan"
	"github.com/matzehuels/bricklayer/pkg/wall"
)

// Colors used by the renderer.
const (
	ColorBackground = "#ffffff"
	ColorEnvelope   = "#333333"
	ColorLaid       = "#4d4d4d"
	ColorPending    = "#cccccc"
	ColorLabel      = "#ffffff"
)

// Option configures SVG rendering.
type Option func(*renderer)

type renderer struct {
	instr   plan.Instructions
	laid    int
	laidSet bool
	labels  bool
}

// WithInstructions draws bricks in laying order with their stride numbers.
func WithInstructions(in plan.Instructions) Option {
	return func(r *renderer) { r.instr = in }
}

// WithLaid sets how many bricks count as laid. The default is all of them.
func WithLaid(n int) Option {
	return func(r *renderer) { r.laid, r.laidSet = n, true }
}

// WithoutLabels omits the stride numbers.
func WithoutLabels() Option {
	return func(r *renderer) { r.labels = false }
}

// RenderSVG draws p as an SVG document in wall units.
func RenderSVG(s wall.Spec, p wall.Pattern, opts ...Option) []byte {
	r := renderer{labels: true}
	for _, opt := range opts {
		opt(&r)
	}
	if !r.laidSet {
		r.laid = r.instr.Count()
	}
	r.laid = max(0, min(r.laid, r.instr.Count()))

	l := geom.NewLayout(s, p)
	w, h := s.Width, s.Height

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		num(w), num(h), num(w), num(h))
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%s" height="%s" fill="%s"/>`+"\n", num(w), num(h), ColorBackground)

	if len(r.instr) == 0 {
		for _, pos := range l.Positions() {
			writeBrick(&buf, l.Rect(pos), h, ColorPending, pos, p)
		}
		buf.WriteString("</svg>\n")
		return buf.Bytes()
	}

	st := r.instr[r.instr.StrideAt(r.laid)]
	env := geom.Rect{X: st.Envelope.X, Y: st.Envelope.Y, W: s.Envelope.Length, H: s.Envelope.Height}
	fmt.Fprintf(&buf, `  <rect class="envelope" x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
		num(env.X), num(h-env.Top()), num(env.W), num(env.H), ColorEnvelope)

	n := 0
	for i, stride := range r.instr {
		for _, pos := range stride.Steps {
			if !l.Valid(pos) {
				continue
			}
			rect := l.Rect(pos)
			color := ColorPending
			if n < r.laid {
				color = ColorLaid
			}
			writeBrick(&buf, rect, h, color, pos, p)
			if r.labels && n < r.laid {
				fmt.Fprintf(&buf, `  <text x="%s" y="%s" fill="%s" font-size="%s" text-anchor="middle" dominant-baseline="central">%d</text>`+"\n",
					num(rect.X+rect.W/2), num(h-rect.Y-rect.H/2), ColorLabel, num(rect.H*0.6), i+1)
			}
			n++
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func writeBrick(buf *bytes.Buffer, r geom.Rect, wallHeight float64, color string, pos geom.Position, p wall.Pattern) {
	fmt.Fprintf(buf, `  <rect class="brick brick-%s" data-col="%d" data-course="%d" x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
		p[pos.Course][pos.Column], pos.Column, pos.Course,
		num(r.X), num(wallHeight-r.Top()), num(r.W), num(r.H), color)
}

// num formats v with at most two decimals.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
