package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/bricklayer/pkg/bond"
	"github.com/matzehuels/bricklayer/pkg/errors"
	bio "github.com/matzehuels/bricklayer/pkg/io"
	"github.com/matzehuels/bricklayer/pkg/plan"
	"github.com/matzehuels/bricklayer/pkg/wall"
)

// checkCommand creates the check command.
func (c *CLI) checkCommand() *cobra.Command {
	var (
		patternFile string
		stepsFile   string
		topFirst    bool
	)

	cmd := &cobra.Command{
		Use:   "check [wallconfig]",
		Short: "Verify a pattern and its instructions",
		Long: `Verify a pattern and its instructions against a wall config.

The pattern must fill every course exactly and carry the bond's shape. For the
wild bond, no stepped joint chain may be longer than five courses. When
--steps is given, every brick must be laid exactly once, inside the envelope,
after the bricks it rests on.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			order := bio.BottomFirst
			if topFirst {
				order = bio.TopFirst
			}
			return c.runCheck(args[0], patternFile, stepsFile, order)
		},
	}

	cmd.Flags().StringVar(&patternFile, "pattern", "", "pattern file to check (required)")
	cmd.Flags().StringVar(&stepsFile, "steps", "", "instructions file to check")
	cmd.Flags().BoolVar(&topFirst, "top-first", false, "the pattern file lists the top course first")
	_ = cmd.MarkFlagRequired("pattern")

	return cmd
}

func (c *CLI) runCheck(config, patternFile, stepsFile string, order bio.Order) error {
	spec, err := c.loadSpec(config)
	if err != nil {
		return err
	}
	p, err := bio.ImportPattern(patternFile, order)
	if err != nil {
		return err
	}

	if err := wall.CheckPattern(spec, p); err != nil {
		printError("Pattern does not fit the wall")
		return err
	}
	printSuccess("Pattern fits: %s, %s", plural(len(p), "course"), plural(p.Count(), "brick"))

	if err := checkTeeth(spec, p); err != nil {
		printError("Fallen teeth")
		return err
	}

	if stepsFile == "" {
		return nil
	}
	in, err := bio.ImportInstructions(stepsFile)
	if err != nil {
		return err
	}
	if err := plan.Verify(spec, p, in); err != nil {
		printError("Instructions are not buildable")
		return err
	}
	printSuccess("Instructions valid: %s", plural(len(in), "stride"))
	return nil
}

// checkTeeth enforces the stepped joint bound. Only the wild bond promises
// it; the regular bonds offset every course by a quarter brick.
func checkTeeth(spec wall.Spec, p wall.Pattern) error {
	n, at := bond.LongestTeeth(spec, p)
	g, err := bond.Get(spec.Bond)
	if err != nil || g.Name() != bond.NameWild {
		printDetail("Longest stepped joint: %d", n)
		return nil
	}
	if n > bond.MaxTeeth {
		return errors.New(errors.ErrCodeInvalidInput,
			"stepped joint of %d courses ends at course %d column %d (limit %d)", n, at.Course, at.Column, bond.MaxTeeth)
	}
	printSuccess("No fallen teeth: longest stepped joint %d", n)
	return nil
}
