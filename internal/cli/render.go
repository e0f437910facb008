package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bricklayer/pkg/pipeline"
	"github.com/matzehuels/bricklayer/pkg/render"
	"github.com/matzehuels/bricklayer/pkg/render/elevation"
	"github.com/matzehuels/bricklayer/pkg/render/support"
)

const (
	renderWall    = "wall"    // front elevation with stride numbers
	renderSupport = "support" // support graph of the bricks
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output file; "-" writes to stdout
	vizType  string // renderWall or renderSupport
	format   string // svg, pdf or png
	laid     int    // bricks drawn as laid; negative draws all
	noLabels bool   // omit stride numbers
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var flags runFlags
	opts := renderOpts{vizType: renderWall, format: "svg", laid: -1}

	cmd := &cobra.Command{
		Use:   "render [wallconfig]",
		Short: "Render the wall or its support graph",
		Long: `Render the planned wall.

  -t wall     front elevation: laid bricks dark and numbered by stride,
              the envelope of the current stride shaded
  -t support  which bricks rest on which, ranked by course

Use --laid to draw the wall part way through the build.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains([]string{renderWall, renderSupport}, opts.vizType) {
				return fmt.Errorf("invalid type: %q (must be one of: wall, support)", opts.vizType)
			}
			if !slices.Contains(render.Formats, opts.format) {
				return fmt.Errorf("invalid format: %q (must be one of: %s)", opts.format, strings.Join(render.Formats, ", "))
			}
			return c.runRender(cmd, args[0], flags, opts)
		},
	}

	flags.register(cmd, true)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <config>.<type>.<format>, - for stdout)")
	cmd.Flags().StringVarP(&opts.vizType, "type", "t", opts.vizType, "what to draw: wall (default), support")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), pdf, png")
	cmd.Flags().IntVar(&opts.laid, "laid", opts.laid, "number of bricks drawn as laid (default: all)")
	cmd.Flags().BoolVar(&opts.noLabels, "no-labels", false, "omit stride numbers (wall)")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, config string, flags runFlags, opts renderOpts) error {
	res, err := c.execute(cmd, config, flags)
	if err != nil {
		return err
	}

	svg, err := renderSVG(res, opts)
	if err != nil {
		return err
	}
	data, err := render.Convert(svg, opts.format)
	if err != nil {
		return err
	}

	if opts.output == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	path := opts.output
	if path == "" {
		base := strings.TrimSuffix(config, filepath.Ext(config))
		path = fmt.Sprintf("%s.%s.%s", base, opts.vizType, opts.format)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}

	printSuccess("Rendered %s", opts.vizType)
	printFile(path)
	printStats(sourceOf(res.CacheInfo.PatternHit && res.CacheInfo.InstructionsHit, false),
		plural(res.Stats.Courses, "course"), plural(res.Stats.Strides, "stride"))
	return nil
}

// renderSVG draws the requested view of a pipeline result.
func renderSVG(res *pipeline.Result, opts renderOpts) ([]byte, error) {
	if opts.vizType == renderSupport {
		dot := support.ToDOT(res.Spec, res.Pattern, support.Options{Instructions: res.Instructions})
		svg, err := support.RenderSVG(dot)
		if err != nil {
			return nil, fmt.Errorf("render support graph: %w", err)
		}
		return svg, nil
	}

	eopts := []elevation.Option{elevation.WithInstructions(res.Instructions)}
	if opts.laid >= 0 {
		eopts = append(eopts, elevation.WithLaid(opts.laid))
	}
	if opts.noLabels {
		eopts = append(eopts, elevation.WithoutLabels())
	}
	return elevation.RenderSVG(res.Spec, res.Pattern, eopts...), nil
}
