package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	sbio "github.com/matzehuels/sunburst/pkg/io"
	"github.com/matzehuels/sunburst/pkg/pipeline"
)

// exploreCommand creates the interactive segment browser.
func (c *CLI) exploreCommand() *cobra.Command {
	var kind, labels string

	cmd := &cobra.Command{
		Use:   "explore [file]",
		Short: "Browse the segments of a chart interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := sbio.Import(args[0])
			if err != nil {
				return err
			}

			opts := optionsFromConfig(c.cfg)
			if cmd.Flags().Changed("kind") {
				opts.Kind = kind
			}
			if cmd.Flags().Changed("labels") {
				opts.Labels = labels
			}
			tree, err := pipeline.Bind(cmd.Context(), root, opts)
			if err != nil {
				return err
			}

			m := NewSegmentTreeModel(tree, opts.ChartKind(), opts.LabelProvider())
			final, err := tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return fmt.Errorf("explore: %w", err)
			}
			if sm, ok := final.(SegmentTreeModel); ok {
				if n := sm.Selected(); n != nil {
					printInfo("%s", n.ID)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", c.cfg.Chart.Kind, "chart kind: pie, donut")
	cmd.Flags().StringVarP(&labels, "labels", "l", c.cfg.Labels.Provider, "labels: percent, name-percent, name, none")

	return cmd
}
