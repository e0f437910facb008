// Package wall defines the shared, read-only description of a wall and the
// brick patterns laid on it.
//
// A [Spec] holds the wall dimensions, mortar joint sizes, the reach envelope of
// the laying tool and one [Dimensions] entry per brick [Kind]. It is loaded once
// from a TOML wall configuration with [Load] or [Decode] and never mutated.
//
// A [Pattern] is an ordered list of [Course] values, bottom to top; a course is
// an ordered list of brick kinds, left to right. Patterns carry no geometry:
// positions and coordinates are derived from the spec by package geom.
//
// # Configuration Format
//
//	bond = "stretcher"
//
//	[wall]
//	width = 2300
//	height = 2000
//
//	[joints]
//	head = 10
//	bed = 12.5
//
//	[bricks.f]
//	length = 210
//	height = 50
//
//	[bricks.h]
//	length = 100
//	height = 50
//
//	[bricks.q]
//	length = 45
//	height = 50
//
//	[bricks.d]
//	length = 45
//	height = 50
//
//	[envelope]
//	width = 800
//	height = 1300
//
// # Tolerance
//
// All length comparisons go through [Eq], an absolute-difference test with
// tolerance [Epsilon]. Exact float equality is never used.
package wall
