package plan

import (
	"github.com/matzehuels/bricklayer/pkg/errors"
	"github.com/matzehuels/bricklayer/pkg/geom"
	"github.com/matzehuels/bricklayer/pkg/wall"
)

// Lookahead is the number of courses, starting at the anchor's, whose bricks
// propose envelope origins. Courses further up cannot be reached yet because
// their support is still missing.
const Lookahead = 3

// Stride is one envelope position and the bricks laid from it, in order.
type Stride struct {
	Envelope geom.Point
	Steps    []geom.Position
}

// Instructions is the ordered list of strides that builds a wall.
type Instructions []Stride

// Count returns the total number of laid bricks.
func (in Instructions) Count() int {
	n := 0
	for _, s := range in {
		n += len(s.Steps)
	}
	return n
}

// StrideAt returns the index of the stride that laid the n-th brick, so that
// a cursor of n laid bricks can be mapped to the envelope it was laid from.
// Zero maps to the first stride; counts past the end map to the last.
func (in Instructions) StrideAt(n int) int {
	if len(in) == 0 {
		return 0
	}
	i := 0
	for i < len(in)-1 && n > len(in[i].Steps) {
		n -= len(in[i].Steps)
		i++
	}
	return i
}

// Planner computes laying instructions for one pattern. It holds no state
// between calls; the remaining set is passed explicitly so candidate
// envelopes can be simulated without side effects.
type Planner struct {
	spec    wall.Spec
	pattern wall.Pattern
	layout  *geom.Layout
}

// New checks that p is a valid pattern for s and returns a planner for it.
func New(s wall.Spec, p wall.Pattern) (*Planner, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if err := wall.CheckPattern(s, p); err != nil {
		return nil, err
	}
	return &Planner{spec: s, pattern: p, layout: geom.NewLayout(s, p)}, nil
}

// Layout returns the brick rectangles of the planned pattern.
func (pl *Planner) Layout() *geom.Layout {
	return pl.layout
}

// All returns a remaining set holding every brick of the pattern.
func (pl *Planner) All() *Remaining {
	return newRemaining(pl.pattern)
}

// Envelope returns the reach window placed at origin.
func (pl *Planner) Envelope(origin geom.Point) geom.Rect {
	return geom.Rect{X: origin.X, Y: origin.Y, W: pl.spec.Envelope.Length, H: pl.spec.Envelope.Height}
}

// FindAnchor returns the lowest unlaid brick, leftmost on ties.
func (pl *Planner) FindAnchor(rem *Remaining) (geom.Position, bool) {
	for i, row := range rem.grid {
		for j, ok := range row {
			if ok {
				return geom.Position{Column: j, Course: i}, true
			}
		}
	}
	return geom.Position{}, false
}

// CanLay reports whether the brick at pos fits the envelope at origin and
// rests only on bricks that are no longer in rem.
func (pl *Planner) CanLay(pos geom.Position, origin geom.Point, rem *Remaining) bool {
	if !pl.Envelope(origin).Contains(pl.layout.Rect(pos)) {
		return false
	}
	for _, j := range pl.layout.Below(pos) {
		if rem.Has(geom.Position{Column: j, Course: pos.Course - 1}) {
			return false
		}
	}
	return true
}

// LayFrom lays bricks from the envelope at origin until none qualifies and
// returns them in laying order. After each brick the scan restarts from the
// lowest course. rem is not modified.
func (pl *Planner) LayFrom(origin geom.Point, rem *Remaining) []geom.Position {
	rem = rem.Clone()
	env := pl.Envelope(origin)
	var out []geom.Position
	for {
		pos, ok := pl.firstLayable(env, origin, rem)
		if !ok {
			return out
		}
		rem.Remove(pos)
		out = append(out, pos)
	}
}

func (pl *Planner) firstLayable(env geom.Rect, origin geom.Point, rem *Remaining) (geom.Position, bool) {
	for i, row := range rem.grid {
		if len(row) == 0 || !pl.reachesCourse(env, i) {
			continue
		}
		for j, ok := range row {
			pos := geom.Position{Column: j, Course: i}
			if ok && pl.CanLay(pos, origin, rem) {
				return pos, true
			}
		}
	}
	return geom.Position{}, false
}

// reachesCourse reports whether course i lies within the vertical extent of
// env. All bricks of a course share one height.
func (pl *Planner) reachesCourse(env geom.Rect, i int) bool {
	r := pl.layout.Course(i)[0]
	return r.Y >= env.Y-wall.Epsilon && r.Top() <= env.Top()+wall.Epsilon
}

// ChooseBestEnvelope proposes an origin at the left edge of every brick in
// the lookahead window above the anchor, at the anchor's height, and returns
// the proposal that lays the most bricks together with those bricks.
func (pl *Planner) ChooseBestEnvelope(rem *Remaining) (geom.Point, []geom.Position) {
	anchor, ok := pl.FindAnchor(rem)
	if !ok {
		return geom.Point{}, nil
	}
	y := pl.layout.Rect(anchor).Y

	var best geom.Point
	var bestSteps []geom.Position
	last := min(anchor.Course+Lookahead, pl.layout.Courses())
	for i := anchor.Course; i < last; i++ {
		for _, r := range pl.layout.Course(i) {
			origin := geom.Point{X: r.X, Y: y}
			if steps := pl.LayFrom(origin, rem); len(steps) > len(bestSteps) {
				best, bestSteps = origin, steps
			}
		}
	}
	return best, bestSteps
}

// Plan computes the full instructions for the pattern.
func (pl *Planner) Plan() (Instructions, error) {
	rem := pl.All()
	var out Instructions
	for rem.Len() > 0 {
		origin, steps := pl.ChooseBestEnvelope(rem)
		if len(steps) == 0 {
			anchor, _ := pl.FindAnchor(rem)
			return nil, errors.New(errors.ErrCodeInternal,
				"no brick can be laid with %d remaining, anchor %v", rem.Len(), anchor)
		}
		for _, pos := range steps {
			rem.Remove(pos)
		}
		out = append(out, Stride{Envelope: origin, Steps: steps})
	}
	return out, nil
}

// Build plans instructions for p in one call.
func Build(s wall.Spec, p wall.Pattern) (Instructions, error) {
	pl, err := New(s, p)
	if err != nil {
		return nil, err
	}
	return pl.Plan()
}
