// Package support renders the support relation of a pattern as a directed
// graph: one node per brick, one edge from each brick to every brick of the
// course above that rests on it. Courses become ranks, so the drawing reads
// bottom-up like the wall.
package support

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/bricklayer/pkg/geom"
	"github.com/matzehuels/bricklayer/pkg/plan"
	"github.com/matzehuels/bricklayer/pkg/wall"
)

// Options configures support graph rendering.
type Options struct {
	// Instructions, when set, adds the stride number to every node label and
	// colors nodes by stride.
	Instructions plan.Instructions
}

// palette cycles through stride colors.
var palette = []string{"#8dd3c7", "#ffffb3", "#bebada", "#fb8072", "#80b1d3", "#fdb462", "#b3de69", "#fccde5"}

// NodeID returns the DOT identifier of the brick at pos.
func NodeID(pos geom.Position) string {
	return fmt.Sprintf("b%d_%d", pos.Course, pos.Column)
}

// ToDOT converts the support relation of p to Graphviz DOT format.
func ToDOT(s wall.Spec, p wall.Pattern, opts Options) string {
	l := geom.NewLayout(s, p)
	stride := strideIndex(opts.Instructions)

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.2;\n")

	for i := range l.Courses() {
		fmt.Fprintf(&buf, "\n  subgraph course%d {\n    rank=same;\n", i)
		for j := range l.Course(i) {
			pos := geom.Position{Column: j, Course: i}
			label := fmt.Sprintf("%s %d,%d", p[i][j], j, i)
			attrs := fmt.Sprintf("label=%q", label)
			if n, ok := stride[pos]; ok {
				attrs = fmt.Sprintf("label=%q, fillcolor=%q", fmt.Sprintf("%s\nstride %d", label, n+1), palette[n%len(palette)])
			}
			fmt.Fprintf(&buf, "    %s [%s];\n", NodeID(pos), attrs)
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for _, pos := range l.Positions() {
		for _, j := range l.Below(pos) {
			fmt.Fprintf(&buf, "  %s -> %s;\n", NodeID(geom.Position{Column: j, Course: pos.Course - 1}), NodeID(pos))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func strideIndex(in plan.Instructions) map[geom.Position]int {
	out := make(map[geom.Position]int, in.Count())
	for i, st := range in {
		for _, pos := range st.Steps {
			out[pos] = i
		}
	}
	return out
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
