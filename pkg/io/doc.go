// Package io reads and writes brick patterns and laying instructions in a
// plain text form, so either stage can be reused without recomputing it.
//
// # Pattern Format
//
// One line per course, bricks separated by spaces, each brick written as its
// single-letter kind code (f, h, q or d):
//
//	f f f
//	h f f h
//	f f f
//
// Courses are written bottom course first by default; pass [TopFirst] to
// write and read them in the order a wall is drawn. Blank lines are ignored.
//
// # Instructions Format
//
// A "move" line starts a stride at the given envelope origin. Each "lay" line
// that follows records one brick laid in that stride, by column and course:
//
//	move 0 0
//	lay 0 0
//	lay 1 0
//	lay 0 1
//	move 220 0
//	lay 2 0
//
// Coordinates are written with the shortest representation that reads back
// to the same float64.
//
// # Errors
//
// Malformed input is reported as an INVALID_FORMAT error naming the line.
// Structural checks against a wall configuration are not done here; see
// [wall.CheckPattern] and [plan.Verify].
//
// [wall.CheckPattern]: github.com/matzehuels/bricklayer/pkg/wall.CheckPattern
// [plan.Verify]: github.com/matzehuels/bricklayer/pkg/plan.Verify
package io
