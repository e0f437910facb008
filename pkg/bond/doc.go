// Package bond generates brick patterns for a wall.
//
// A bond is the rule family that decides how bricks are offset from one course
// to the next. Four generators are registered:
//
//   - "stretcher": full bricks, odd courses shifted by a half brick
//   - "english cross": courses of full bricks alternating with courses of
//     half bricks framed by quarter bricks
//   - "flemish": full and half bricks alternating within each course
//   - "wild": full and half bricks chosen at random under the fallen teeth
//     constraint, built by bounded randomized backtracking
//
// The three regular bonds are closed-form: every even course is identical, as
// is every odd course. The wild bond is generated course by course, left to
// right, with a rollback window and restart budget that bound its runtime.
//
// # Usage
//
//	p, err := bond.Generate(spec, bond.Options{Seed: 42})
//	if errors.Is(err, errors.ErrCodeTilingInfeasible) {
//	    // the wall width or height cannot be closed with the configured bricks
//	}
//
// Generation either returns a complete pattern or a coded error; partial
// patterns are never returned.
package bond
