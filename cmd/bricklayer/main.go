package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bricklayer/internal/cli"
	bricks "github.com/matzehuels/bricklayer/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func run(ctx context.Context) error {
	var verbose bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	originalPreRun := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		if originalPreRun != nil {
			return originalPreRun(cmd, args)
		}
		return nil
	}

	return root.ExecuteContext(ctx)
}

// exitCode separates bad input (2) from walls that cannot be built (3).
func exitCode(err error) int {
	switch bricks.GetCode(err) {
	case bricks.ErrCodeInvalidInput, bricks.ErrCodeInvalidConfig, bricks.ErrCodeInvalidFormat,
		bricks.ErrCodeFileNotFound, bricks.ErrCodeUnsupportedBond:
		return 2
	case bricks.ErrCodeTilingInfeasible, bricks.ErrCodeGenerationExhausted, bricks.ErrCodeInvalidInstructions:
		return 3
	}
	return 1
}
