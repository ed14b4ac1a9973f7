package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"timelanes/internal/config"
	"timelanes/internal/render"
	"timelanes/internal/tui"
)

func viewCmd(opts *globalOptions) *cobra.Command {
	var (
		input    string
		selector string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Browse the lanes interactively",
		Long: `View opens an interactive viewer. Use +/- to zoom, the arrow keys to
select and scroll, e to rename the selected task and q to quit. With
--output the final state, renames and zoom included, is written as an SVG.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, tasks, err := loadTasks(cmd, opts, input, selector)
			if err != nil {
				return err
			}

			final, err := tui.Run(tasks, cfg)
			if err != nil {
				return fmt.Errorf("error running viewer: %w", err)
			}
			if output == "" {
				return nil
			}
			return writeSnapshot(cmd.OutOrStdout(), final, cfg, output)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Task file (.csv, .yaml, .json) or calendar:<name> (required)")
	cmd.Flags().StringVarP(&selector, "selector", "l", "", "Label selector, e.g. 'team=core,phase!=done'")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the final layout as SVG on exit (optional)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

// writeSnapshot renders the layout the viewer was showing when it closed.
func writeSnapshot(out io.Writer, final tui.Model, cfg config.Config, output string) error {
	if err := os.WriteFile(output, []byte(render.SVG(final.Result(), cfg)), 0644); err != nil {
		return fmt.Errorf("error writing SVG file: %w", err)
	}
	fmt.Fprintf(out, "Timeline SVG generated successfully: %s\n", output)
	return nil
}
