// Package pkg provides the core libraries for bricklayer.
//
// # Overview
//
// Bricklayer takes the dimensions of a wall and its bricks, generates a
// masonry bond pattern for it, and plans the order in which a robot whose
// reach is a fixed rectangular envelope lays the bricks. Every brick is laid
// only after the bricks it rests on, and the robot repositions as rarely as a
// bounded lookahead allows.
//
// The typical data flow:
//
//	wall config (TOML)
//	         ↓
//	    [wall] package (spec, validation, brick kinds)
//	         ↓
//	    [bond] package (stretcher, english cross, flemish, wild)
//	         ↓
//	    [plan] package (envelope strides, support order)
//	         ↓
//	    [io] text formats, [render] SVG/PDF/PNG
//
// # Quick Start
//
//	spec, _ := wall.Load("examples/stretcher.wallconfig")
//	p, _ := bond.Generate(spec, bond.Options{})
//	in, _ := plan.Build(spec, p)
//	_ = bio.WriteInstructions(os.Stdout, in)
//
// # Main Packages
//
// [wall] - Wall specification, brick kinds, patterns and their validation.
//
// [geom] - Brick rectangles, positions and the support relation between
// courses.
//
// [bond] - Pattern generators. Regular bonds are closed-form; the wild bond is
// a randomized search bounded by the fallen teeth rule.
//
// [plan] - The laying-order planner and the verifier for loaded instructions.
//
// [io] - Line-oriented text formats for patterns and instructions.
//
// [render] - Wall elevation SVG, support graph via Graphviz, and SVG to
// PDF/PNG conversion.
//
// [cache] - File and Redis caches for patterns and instructions.
//
// [pipeline] - Pattern and planning stages with caching, shared by the CLI
// and the HTTP server.
//
// [observability] - Optional hooks for metrics and tracing.
//
// [errors] - Coded errors shared by every stage.
//
// # Testing
//
//	go test ./...                  # All tests
//	go test ./pkg/plan/...         # Specific package
//	go test -run Example ./pkg/... # Examples only
package pkg
