// Package plan orders the bricks of a finished pattern into strides that a
// laying tool with a bounded reach window can execute.
//
// # Model
//
// The tool covers an axis-aligned envelope whose size is fixed by the wall
// configuration. Each [Stride] moves the envelope to a new origin, then lays
// a batch of bricks. A brick may be laid when
//
//   - its rectangle lies entirely inside the envelope, and
//   - every brick of the course below that overlaps it horizontally has
//     already been laid.
//
// Course 0 rests on the ground and has no support requirement.
//
// # Strategy
//
// The planner is greedy with one step of lookahead. The lowest unlaid brick
// is the anchor and fixes the envelope's vertical origin. Every brick in the
// anchor's course and the two courses above proposes a horizontal origin at
// its own left edge; the proposal that lays the most bricks wins, ties going
// to the first proposal in (course, column) order. The resulting stride count
// is not minimal.
//
// # Usage
//
//	p, err := plan.New(spec, pattern)
//	if err != nil {
//	    return err
//	}
//	instr, err := p.Plan()
//
// [Verify] checks any set of instructions, planned or loaded from a file,
// against coverage, support and envelope containment.
package plan
