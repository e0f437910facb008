package wall

import (
	"slices"

	"github.com/matzehuels/bricklayer/pkg/errors"
)

// Course is one row of bricks, left to right.
type Course []Kind

// Pattern is a full brick layout, bottom course first.
type Pattern []Course

// BuiltLength returns the sum of brick lengths plus one head joint between
// each pair of neighbours.
func (c Course) BuiltLength(s Spec) float64 {
	if len(c) == 0 {
		return 0
	}
	var l float64
	for _, k := range c {
		l += s.Length(k)
	}
	return l + s.HeadJoint*float64(len(c)-1)
}

// String returns the course as space-separated codes.
func (c Course) String() string {
	b := make([]byte, 0, 2*len(c))
	for i, k := range c {
		if i > 0 {
			b = append(b, ' ')
		}
		b = append(b, byte(k))
	}
	return string(b)
}

// Count returns the total number of bricks in the pattern.
func (p Pattern) Count() int {
	n := 0
	for _, c := range p {
		n += len(c)
	}
	return n
}

// Equal reports whether two patterns hold the same kinds at the same places.
func (p Pattern) Equal(o Pattern) bool {
	return slices.EqualFunc(p, o, func(a, b Course) bool { return slices.Equal(a, b) })
}

// Clone returns a deep copy of p.
func (p Pattern) Clone() Pattern {
	out := make(Pattern, len(p))
	for i, c := range p {
		out[i] = slices.Clone(c)
	}
	return out
}

// CheckPattern verifies that p is structurally valid for s: every kind is
// known, every course spans exactly the wall width and the courses stack to
// exactly the wall height.
func CheckPattern(s Spec, p Pattern) error {
	if len(p) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "pattern has no courses")
	}
	if h := float64(len(p)) * s.CourseHeight(); !Eq(h, s.Height) {
		return errors.New(errors.ErrCodeTilingInfeasible,
			"%d courses of height %v stack to %v, wall height is %v", len(p), s.CourseHeight(), h, s.Height)
	}
	for i, c := range p {
		if len(c) == 0 {
			return errors.New(errors.ErrCodeInvalidInput, "course %d is empty", i)
		}
		for j, k := range c {
			if _, ok := s.Bricks[k]; !ok {
				return errors.New(errors.ErrCodeInvalidInput, "course %d brick %d: unknown kind %q", i, j, k.String())
			}
		}
		if l := c.BuiltLength(s); !Eq(l, s.Width) {
			return errors.New(errors.ErrCodeTilingInfeasible,
				"course %d is %v long, wall width is %v", i, l, s.Width)
		}
	}
	return nil
}
