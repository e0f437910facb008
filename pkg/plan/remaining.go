package plan

import (
	"github.com/matzehuels/bricklayer/pkg/geom"
	"github.com/matzehuels/bricklayer/pkg/wall"
)

// Remaining is the set of bricks not yet laid. Iteration always runs by
// course, then column, so every "first match" is deterministic.
type Remaining struct {
	grid [][]bool
	n    int
}

func newRemaining(p wall.Pattern) *Remaining {
	r := &Remaining{grid: make([][]bool, len(p))}
	for i, c := range p {
		r.grid[i] = make([]bool, len(c))
		for j := range c {
			r.grid[i][j] = true
		}
		r.n += len(c)
	}
	return r
}

// Has reports whether pos is still to be laid.
func (r *Remaining) Has(pos geom.Position) bool {
	if pos.Course < 0 || pos.Course >= len(r.grid) {
		return false
	}
	row := r.grid[pos.Course]
	return pos.Column >= 0 && pos.Column < len(row) && row[pos.Column]
}

// Remove marks pos as laid.
func (r *Remaining) Remove(pos geom.Position) {
	if r.Has(pos) {
		r.grid[pos.Course][pos.Column] = false
		r.n--
	}
}

// Len returns the number of bricks still to be laid.
func (r *Remaining) Len() int {
	return r.n
}

// Clone returns an independent copy.
func (r *Remaining) Clone() *Remaining {
	out := &Remaining{grid: make([][]bool, len(r.grid)), n: r.n}
	for i, row := range r.grid {
		out.grid[i] = append([]bool(nil), row...)
	}
	return out
}

// Positions returns the bricks still to be laid, ordered by course, then
// column.
func (r *Remaining) Positions() []geom.Position {
	out := make([]geom.Position, 0, r.n)
	for i, row := range r.grid {
		for j, ok := range row {
			if ok {
				out = append(out, geom.Position{Column: j, Course: i})
			}
		}
	}
	return out
}
