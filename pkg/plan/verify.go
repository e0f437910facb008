package plan

import (
	"github.com/matzehuels/bricklayer/pkg/errors"
	"github.com/matzehuels/bricklayer/pkg/geom"
	"github.com/matzehuels/bricklayer/pkg/wall"
)

// Verify checks that in builds p exactly once, brick by brick, without
// laying a brick before its support and without leaving the envelope. It
// returns an INVALID_INSTRUCTIONS error naming the first violation.
func Verify(s wall.Spec, p wall.Pattern, in Instructions) error {
	if err := wall.CheckPattern(s, p); err != nil {
		return err
	}
	l := geom.NewLayout(s, p)
	laid := make([][]bool, len(p))
	for i, c := range p {
		laid[i] = make([]bool, len(c))
	}

	n := 0
	for si, st := range in {
		env := geom.Rect{X: st.Envelope.X, Y: st.Envelope.Y, W: s.Envelope.Length, H: s.Envelope.Height}
		for _, pos := range st.Steps {
			if !l.Valid(pos) {
				return errors.New(errors.ErrCodeInvalidInstructions,
					"stride %d: brick %v is not part of the pattern", si, pos)
			}
			if laid[pos.Course][pos.Column] {
				return errors.New(errors.ErrCodeInvalidInstructions,
					"stride %d: brick %v is laid twice", si, pos)
			}
			if !env.Contains(l.Rect(pos)) {
				return errors.New(errors.ErrCodeInvalidInstructions,
					"stride %d: brick %v lies outside the envelope at (%g, %g)", si, pos, env.X, env.Y)
			}
			for _, j := range l.Below(pos) {
				if !laid[pos.Course-1][j] {
					return errors.New(errors.ErrCodeInvalidInstructions,
						"stride %d: brick %v is laid before its support {%d %d}", si, pos, j, pos.Course-1)
				}
			}
			laid[pos.Course][pos.Column] = true
			n++
		}
	}

	if n != l.Count() {
		for _, pos := range l.Positions() {
			if !laid[pos.Course][pos.Column] {
				return errors.New(errors.ErrCodeInvalidInstructions,
					"%d of %d bricks laid, first missing is %v", n, l.Count(), pos)
			}
		}
	}
	return nil
}
