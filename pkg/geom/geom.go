// Package geom maps brick positions in a pattern to real-world coordinates.
//
// The origin is the bottom-left corner of the wall, x grows to the right and
// y grows upwards. A brick's rectangle covers only the brick itself, never
// the surrounding mortar.
package geom

import (
	"github.com/matzehuels/bricklayer/pkg/wall"
)

// Position identifies one brick in a pattern.
type Position struct {
	Column int
	Course int
}

// Less orders positions by course, then by column.
func (p Position) Less(o Position) bool {
	if p.Course != o.Course {
		return p.Course < o.Course
	}
	return p.Column < o.Column
}

// Point is a real-world coordinate.
type Point struct {
	X float64
	Y float64
}

// Rect is an axis-aligned rectangle anchored at its bottom-left corner.
type Rect struct {
	X, Y float64
	W, H float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Top returns the y coordinate of the top edge.
func (r Rect) Top() float64 { return r.Y + r.H }

// Origin returns the bottom-left corner.
func (r Rect) Origin() Point { return Point{X: r.X, Y: r.Y} }

// Contains reports whether inner lies entirely within r. Edges may touch;
// the comparison allows wall.Epsilon of slack on each side.
func (r Rect) Contains(inner Rect) bool {
	return inner.X >= r.X-wall.Epsilon &&
		inner.Y >= r.Y-wall.Epsilon &&
		inner.Right() <= r.Right()+wall.Epsilon &&
		inner.Top() <= r.Top()+wall.Epsilon
}

// OverlapsX reports whether the horizontal spans of r and o intersect.
// Touching edges count as overlapping.
func (r Rect) OverlapsX(o Rect) bool {
	return o.X <= r.Right() && o.Right() >= r.X
}

// BottomLeft returns the bottom-left coordinate of the brick at pos.
// It walks the course from the left and costs O(column); use [Layout] when
// many positions are needed.
func BottomLeft(pos Position, s wall.Spec, p wall.Pattern) Point {
	course := p[pos.Course]
	y := float64(pos.Course) * (s.BrickHeight(course[pos.Column]) + s.BedJoint)
	var x float64
	for _, k := range course[:pos.Column] {
		x += s.Length(k) + s.HeadJoint
	}
	return Point{X: x, Y: y}
}
