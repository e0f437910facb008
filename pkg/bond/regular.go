package bond

import (
	"github.com/matzehuels/bricklayer/pkg/errors"
	"github.com/matzehuels/bricklayer/pkg/wall"
)

// template is a closed-form course: a leading run, a repeated unit, and an
// optional closing run that absorbs a non-zero remainder.
type template struct {
	bond   string
	parity string
	lead   []wall.Kind
	unit   []wall.Kind
	// closing is nil when the unit must fill the course exactly.
	closing []wall.Kind
	// minWidth is the narrowest wall the course shape makes sense for.
	minWidth float64
}

// runLength is the length of ks laid after an existing brick, so every brick
// brings its own head joint.
func runLength(s wall.Spec, ks []wall.Kind) float64 {
	var l float64
	for _, k := range ks {
		l += s.HeadJoint + s.Length(k)
	}
	return l
}

func (t template) build(s wall.Spec) (wall.Course, error) {
	if s.Width < t.minWidth {
		return nil, errors.New(errors.ErrCodeTilingInfeasible,
			"can't generate %s course of %s bond: wall width %v is below the minimum %v",
			t.parity, t.bond, s.Width, t.minWidth)
	}

	course := append(wall.Course{}, t.lead...)
	rest := s.Width - wall.Course(t.lead).BuiltLength(s)
	unit := runLength(s, t.unit)
	n := int(rest/unit + wall.Epsilon)
	for range n {
		course = append(course, t.unit...)
	}

	r := rest - float64(n)*unit
	if wall.Eq(r, 0) {
		return course, nil
	}
	if t.closing != nil && wall.Eq(r, runLength(s, t.closing)) {
		return append(course, t.closing...), nil
	}
	if t.closing == nil {
		return nil, errors.New(errors.ErrCodeTilingInfeasible,
			"can't finish %s course of %s bond: remaining %v of wall width %v is not filled by whole units",
			t.parity, t.bond, r, s.Width)
	}
	return nil, errors.New(errors.ErrCodeTilingInfeasible,
		"can't finish remaining %v width of %s course of %s bond with %s and head joint %v",
		r, t.parity, t.bond, wall.Course(t.closing), s.HeadJoint)
}

// generateRegular builds both templates and alternates them.
func generateRegular(s wall.Spec, even, odd template) (wall.Pattern, error) {
	n, err := courseCount(s)
	if err != nil {
		return nil, err
	}
	ec, err := even.build(s)
	if err != nil {
		return nil, err
	}
	oc, err := odd.build(s)
	if err != nil {
		return nil, err
	}
	return alternate(n, ec, oc), nil
}
