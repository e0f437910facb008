package geom

import (
	"github.com/matzehuels/bricklayer/pkg/wall"
)

// Layout caches the rectangle of every brick in a pattern. It is immutable
// after construction and safe for concurrent readers.
type Layout struct {
	rects [][]Rect
	count int
}

// NewLayout computes per-course prefix sums for p.
func NewLayout(s wall.Spec, p wall.Pattern) *Layout {
	l := &Layout{rects: make([][]Rect, len(p))}
	for i, course := range p {
		row := make([]Rect, len(course))
		var x float64
		for j, k := range course {
			h := s.BrickHeight(k)
			row[j] = Rect{X: x, Y: float64(i) * (h + s.BedJoint), W: s.Length(k), H: h}
			x += s.Length(k) + s.HeadJoint
		}
		l.rects[i] = row
		l.count += len(row)
	}
	return l
}

// Rect returns the rectangle of the brick at pos.
func (l *Layout) Rect(pos Position) Rect {
	return l.rects[pos.Course][pos.Column]
}

// Course returns the rectangles of course i, left to right.
// The returned slice must not be modified.
func (l *Layout) Course(i int) []Rect {
	return l.rects[i]
}

// Courses returns the number of courses.
func (l *Layout) Courses() int {
	return len(l.rects)
}

// Count returns the total number of bricks.
func (l *Layout) Count() int {
	return l.count
}

// Valid reports whether pos names a brick of the pattern.
func (l *Layout) Valid(pos Position) bool {
	return pos.Course >= 0 && pos.Course < len(l.rects) &&
		pos.Column >= 0 && pos.Column < len(l.rects[pos.Course])
}

// Positions returns every position ordered by course, then column.
func (l *Layout) Positions() []Position {
	out := make([]Position, 0, l.count)
	for i, row := range l.rects {
		for j := range row {
			out = append(out, Position{Column: j, Course: i})
		}
	}
	return out
}

// Below returns the columns of course pos.Course-1 whose span overlaps the
// brick at pos. It returns nil for the bottom course.
func (l *Layout) Below(pos Position) []int {
	if pos.Course == 0 {
		return nil
	}
	r := l.Rect(pos)
	var cols []int
	for j, b := range l.rects[pos.Course-1] {
		if r.OverlapsX(b) {
			cols = append(cols, j)
		}
	}
	return cols
}
