package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	bio "github.com/matzehuels/bricklayer/pkg/io"
	"github.com/matzehuels/bricklayer/pkg/pipeline"
)

// stepsCommand creates the steps command.
func (c *CLI) stepsCommand() *cobra.Command {
	var (
		flags  runFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "steps [wallconfig]",
		Short: "Plan the laying instructions for a wall",
		Long: `Plan the laying instructions for a wall.

Each stride starts with a move line naming the envelope's bottom-left corner,
followed by one lay line per brick laid from there:

  move 0 0
  lay 0 0
  lay 1 0

The pattern is generated like 'pattern' does, or loaded with --pattern.
Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSteps(cmd, args[0], flags, output)
		},
	}

	flags.register(cmd, true)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

func (c *CLI) runSteps(cmd *cobra.Command, config string, flags runFlags, output string) error {
	res, err := c.execute(cmd, config, flags)
	if err != nil {
		return err
	}

	w, closeOut, err := openOutput(cmd, output)
	if err != nil {
		return err
	}
	if err := bio.WriteInstructions(w, res.Instructions); err != nil {
		closeOut()
		return err
	}
	if err := closeOut(); err != nil {
		return err
	}

	printSuccess("Instructions complete")
	if toFile(output) {
		printFile(output)
	}
	printStats(sourceOf(res.CacheInfo.InstructionsHit, res.CacheInfo.InstructionsLoaded),
		plural(res.Stats.Strides, "stride"), plural(res.Stats.Bricks, "brick"))
	if res.Seed != 0 {
		printDetail("Seed: %d", res.Seed)
	}
	return nil
}

// execute runs the whole pipeline for config behind a spinner.
func (c *CLI) execute(cmd *cobra.Command, config string, flags runFlags) (*pipeline.Result, error) {
	ctx := cmd.Context()
	spec, err := c.loadSpec(config)
	if err != nil {
		return nil, err
	}

	runner, err := c.newRunner(ctx, flags.noCache, nil)
	if err != nil {
		return nil, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Planning %s bond wall...", spec.Bond))
	spinner.Start()
	prog := newProgress(c.Logger)

	res, err := runner.Execute(ctx, spec, flags.options(config, c.Logger))
	if err != nil {
		spinner.StopWithError("Planning failed")
		return nil, err
	}
	spinner.Stop()
	prog.done("wall planned", "run", res.ID, "strides", res.Stats.Strides)

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return res, nil
}

// toFile reports whether output names a file rather than stdout.
func toFile(output string) bool {
	return output != "" && output != "-"
}
