package main

import (
	"github.com/spf13/cobra"

	"timelanes/internal/render"
	"timelanes/internal/timeline"
)

func lanesCmd(opts *globalOptions) *cobra.Command {
	var (
		input    string
		selector string
		chart    bool
		width    int
	)

	cmd := &cobra.Command{
		Use:   "lanes",
		Short: "Print the lane assignment",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, tasks, err := loadTasks(cmd, opts, input, selector)
			if err != nil {
				return err
			}

			// The chart is sized so that the full range fits into width columns.
			view := timeline.NewViewState(float64(width) * render.PixelsPerCell)
			res := timeline.Layout(tasks, view)

			out := cmd.OutOrStdout()
			if chart {
				render.Chart(out, res, width)
			}
			render.Lanes(out, res, tasks)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Task file (.csv, .yaml, .json) or calendar:<name> (required)")
	cmd.Flags().StringVarP(&selector, "selector", "l", "", "Label selector, e.g. 'team=core,phase!=done'")
	cmd.Flags().BoolVar(&chart, "chart", false, "Draw the lanes as a character chart above the listing")
	cmd.Flags().IntVar(&width, "width", 100, "Chart width in columns")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}
