package bond

import (
	"github.com/matzehuels/bricklayer/pkg/geom"
	"github.com/matzehuels/bricklayer/pkg/wall"
)

// MaxTeeth bounds the length of a stepped joint chain. A candidate whose
// left or right chain would exceed it is rejected.
const MaxTeeth = 5

// Teeth holds the fallen teeth chain lengths ending at one brick.
//
// A left tooth is counted when the brick's right edge sits one quarter brick
// plus a head joint to the right of a joint in the course below; a right
// tooth when it sits the same distance to the left. Chains inherit the count
// of the brick below and grow by one per course.
type Teeth struct {
	Left  int
	Right int
}

// Exceeds reports whether either chain is longer than MaxTeeth.
func (t Teeth) Exceeds() bool {
	return t.Left > MaxTeeth || t.Right > MaxTeeth
}

// placed is a brick with its horizontal span and fallen teeth state, as held
// by the wild bond builder while a course is under construction.
type placed struct {
	kind        wall.Kind
	left, right float64
	teeth       Teeth
}

// scoreTeeth computes the chain lengths for x laid on top of below.
func scoreTeeth(s wall.Spec, below []placed, x placed) Teeth {
	t := Teeth{Left: 1, Right: 1}
	q, hj := s.Length(wall.Quarter), s.HeadJoint
	for _, b := range below {
		if wall.Eq(b.right+hj-x.right, -q) {
			t.Left = b.teeth.Left + 1
		}
		if wall.Eq(b.right-x.right-hj, q) {
			t.Right = b.teeth.Right + 1
		}
	}
	return t
}

// FallenTeeth replays the scoring rule over a finished pattern and returns
// the chain lengths of every brick, indexed like the pattern.
func FallenTeeth(s wall.Spec, p wall.Pattern) [][]Teeth {
	l := geom.NewLayout(s, p)
	out := make([][]Teeth, len(p))
	var below []placed
	for i, course := range p {
		row := make([]placed, len(course))
		out[i] = make([]Teeth, len(course))
		for j, k := range course {
			r := l.Rect(geom.Position{Column: j, Course: i})
			x := placed{kind: k, left: r.X, right: r.Right()}
			x.teeth = scoreTeeth(s, below, x)
			row[j] = x
			out[i][j] = x.teeth
		}
		below = row
	}
	return out
}

// LongestTeeth returns the longest chain in p and the position of the brick
// it ends at.
func LongestTeeth(s wall.Spec, p wall.Pattern) (int, geom.Position) {
	longest, at := 0, geom.Position{}
	for i, row := range FallenTeeth(s, p) {
		for j, t := range row {
			if m := max(t.Left, t.Right); m > longest {
				longest, at = m, geom.Position{Column: j, Course: i}
			}
		}
	}
	return longest, at
}
