package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"timelanes/internal/debug"
	"timelanes/internal/render"
	"timelanes/internal/timeline"
)

func renderCmd(opts *globalOptions) *cobra.Command {
	var (
		input    string
		output   string
		selector string
		zoom     float64
		viewport float64
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the lane layout as an SVG file",
		Long: `Render lays the tasks out into lanes and writes an SVG document with one
row per lane and one bar per task. If no output file is specified, the
input filename with .svg extension is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, tasks, err := loadTasks(cmd, opts, input, selector)
			if err != nil {
				return err
			}

			res := timeline.Layout(tasks, viewState(cmd, cfg, zoom, viewport))
			svgContent := render.SVG(res, cfg)
			debug.Printf("Generated %d bytes of SVG", len(svgContent))

			outputPath := render.OutputFilename(input, output)
			if err := os.WriteFile(outputPath, []byte(svgContent), 0644); err != nil {
				return fmt.Errorf("error writing SVG file: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, render.Summary(res, tasks))
			fmt.Fprintf(out, "Timeline SVG generated successfully: %s\n", outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Task file (.csv, .yaml, .json) or calendar:<name> (required)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output SVG filename (optional)")
	cmd.Flags().StringVarP(&selector, "selector", "l", "", "Label selector, e.g. 'team=core,phase!=done'")
	cmd.Flags().Float64Var(&zoom, "zoom", timeline.DefaultZoom, "Zoom factor, clamped to the configured bounds")
	cmd.Flags().Float64Var(&viewport, "viewport", 0, "Viewport width in pixels the timeline width is derived from")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}
