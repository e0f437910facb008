package cli

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// visualizeCommand creates the visualize command.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		flags    runFlags
		interval time.Duration
		autoplay bool
	)

	cmd := &cobra.Command{
		Use:   "visualize [wallconfig]",
		Short: "Step through the laying order in the terminal",
		Long: `Step through the laying order in the terminal.

Laid bricks are drawn dark and the current envelope is shaded.

Keys:
  space     play or pause
  ←/→       lay or take back one brick
  [/]       jump to the previous or next stride
  q         quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.execute(cmd, args[0], flags)
			if err != nil {
				return err
			}
			printInfo("Visualizing %s in %s", plural(res.Stats.Bricks, "brick"), plural(res.Stats.Strides, "stride"))

			m := NewWallModel(res.Spec, res.Pattern, res.Instructions)
			m.Tick = interval
			var init tea.Cmd
			if autoplay {
				m.Playing = true
				init = m.tick()
			}
			p := tea.NewProgram(startModel{WallModel: m, init: init}, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("visualize: %w", err)
			}
			return nil
		},
	}

	flags.register(cmd, true)
	cmd.Flags().DurationVar(&interval, "interval", defaultTick, "time between bricks while playing")
	cmd.Flags().BoolVar(&autoplay, "play", false, "start playing immediately")

	return cmd
}

// startModel runs an initial command before handing over to WallModel.
type startModel struct {
	WallModel
	init tea.Cmd
}

func (m startModel) Init() tea.Cmd {
	return m.init
}
