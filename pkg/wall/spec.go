package wall

import (
	"math"

	"github.com/matzehuels/bricklayer/pkg/errors"
)

// Epsilon is the absolute tolerance for every length comparison.
const Epsilon = 1e-8

// Eq reports whether a and b differ by less than Epsilon.
func Eq(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Dimensions is the size of a brick or of the reach envelope.
type Dimensions struct {
	Length float64
	Height float64
}

// Spec describes the wall to build. It is shared read-only by the bond
// generators, the planner and the renderers.
type Spec struct {
	Width     float64
	Height    float64
	HeadJoint float64
	BedJoint  float64

	// Envelope is the reach window of the laying tool. Length is the
	// horizontal extent.
	Envelope Dimensions

	Bricks map[Kind]Dimensions

	// Bond names the generator used for this wall.
	Bond string
}

// Length returns the configured length of kind k, or zero when unknown.
func (s Spec) Length(k Kind) float64 {
	return s.Bricks[k].Length
}

// BrickHeight returns the configured height of kind k, or zero when unknown.
func (s Spec) BrickHeight(k Kind) float64 {
	return s.Bricks[k].Height
}

// CourseHeight is the vertical pitch between courses: a full brick plus one
// bed joint.
func (s Spec) CourseHeight() float64 {
	return s.Bricks[Full].Height + s.BedJoint
}

// Validate checks that every dimension is usable. It does not check that the
// wall can be tiled; that is the generators' job.
func (s Spec) Validate() error {
	if err := errors.ValidatePositive("wall.width", s.Width); err != nil {
		return err
	}
	if err := errors.ValidatePositive("wall.height", s.Height); err != nil {
		return err
	}
	if err := errors.ValidateNonNegative("joints.head", s.HeadJoint); err != nil {
		return err
	}
	if err := errors.ValidateNonNegative("joints.bed", s.BedJoint); err != nil {
		return err
	}
	if err := errors.ValidatePositive("envelope.width", s.Envelope.Length); err != nil {
		return err
	}
	if err := errors.ValidatePositive("envelope.height", s.Envelope.Height); err != nil {
		return err
	}

	for _, k := range Kinds {
		d, ok := s.Bricks[k]
		if !ok {
			return errors.New(errors.ErrCodeInvalidConfig, "bricks.%s is missing", k)
		}
		if err := errors.ValidatePositive("bricks."+k.String()+".length", d.Length); err != nil {
			return err
		}
		if err := errors.ValidatePositive("bricks."+k.String()+".height", d.Height); err != nil {
			return err
		}
		// Courses are stacked at a single pitch.
		if !Eq(d.Height, s.Bricks[Full].Height) {
			return errors.New(errors.ErrCodeInvalidConfig,
				"bricks.%s.height %v differs from bricks.f.height %v", k, d.Height, s.Bricks[Full].Height)
		}
		if d.Length > s.Envelope.Length+Epsilon || d.Height > s.Envelope.Height+Epsilon {
			return errors.New(errors.ErrCodeInvalidConfig,
				"%s brick %vx%v does not fit in envelope %vx%v",
				k.Name(), d.Length, d.Height, s.Envelope.Length, s.Envelope.Height)
		}
	}
	return nil
}
