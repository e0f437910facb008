// Package render draws walls and laying progress.
//
// # Overview
//
// The renderers consume the same three values the planner produces: the wall
// configuration, the pattern and, optionally, the instructions. They never
// change them.
//
//   - Elevation drawings of the wall (in [elevation] subpackage)
//   - Support graphs showing which bricks rest on which (in [support] subpackage)
//   - Generic format conversion (SVG to PDF/PNG)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg := elevation.RenderSVG(spec, pattern, elevation.WithInstructions(in))
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Support Graphs
//
// The [support] subpackage renders the support relation as a directed graph
// using Graphviz, one node per brick and one rank per course.
//
//	dot := support.ToDOT(spec, pattern, support.Options{})
//	svg, err := support.RenderSVG(dot)
//
// [elevation]: github.com/matzehuels/bricklayer/pkg/render/elevation
// [support]: github.com/matzehuels/bricklayer/pkg/render/support
package render
