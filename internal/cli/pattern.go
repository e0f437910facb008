package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bricklayer/pkg/bond"
	bio "github.com/matzehuels/bricklayer/pkg/io"
)

// patternCommand creates the pattern command.
func (c *CLI) patternCommand() *cobra.Command {
	var (
		flags  runFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "pattern [wallconfig]",
		Short: "Generate the bond pattern of a wall",
		Long: `Generate the bond pattern of a wall.

The pattern is printed one course per line, bottom course first, using the
brick codes f (full), h (half), q (quarter) and d (closer). Use --top-first to
print the top course first, the way the wall looks from the front.

Wild bond patterns are random. Pass --seed to get the same pattern again; the
seed of every run is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPattern(cmd, args[0], flags, output)
		},
	}

	flags.register(cmd, false)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

// runPattern loads the config, builds the pattern and writes it out.
func (c *CLI) runPattern(cmd *cobra.Command, config string, flags runFlags, output string) error {
	ctx := cmd.Context()
	spec, err := c.loadSpec(config)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, flags.noCache, nil)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Generating %s bond...", spec.Bond))
	spinner.Start()
	prog := newProgress(c.Logger)

	p, seed, hit, err := runner.PatternWithCacheInfo(ctx, spec, flags.options(config, c.Logger))
	if err != nil {
		spinner.StopWithError("Pattern generation failed")
		return fmt.Errorf("pattern: %w", err)
	}
	spinner.Stop()
	prog.done("pattern ready", "courses", len(p), "bricks", p.Count())

	w, closeOut, err := openOutput(cmd, output)
	if err != nil {
		return err
	}
	if err := bio.WritePattern(w, p, flags.order()); err != nil {
		closeOut()
		return err
	}
	if err := closeOut(); err != nil {
		return err
	}

	teeth, _ := bond.LongestTeeth(spec, p)
	printSuccess("Pattern complete")
	if toFile(output) {
		printFile(output)
	}
	printStats(sourceOf(hit, flags.patternFile != ""),
		plural(len(p), "course"), plural(p.Count(), "brick"), fmt.Sprintf("longest teeth %d", teeth))
	if seed != 0 {
		printDetail("Seed: %d", seed)
	}
	if toFile(output) {
		printNewline()
		printNextStep("Plan", fmt.Sprintf("%s steps %s --pattern %s", appName, config, output))
	}
	return nil
}
