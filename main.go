package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"timelanes/internal/config"
	"timelanes/internal/debug"
	"timelanes/internal/source"
	"timelanes/internal/timeline"
)

// globalOptions are the flags shared by every command.
type globalOptions struct {
	debug  bool
	config string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "timelanes",
		Short: "Lay out dated tasks into non-overlapping lanes",
		Long: `Timelanes reads tasks with a start and end date from CSV, YAML, JSON or
Google Calendar, packs them into the fewest lanes in which no two tasks
overlap, and draws the result as an SVG, a terminal listing or an
interactive viewer.`,
		Example: `  timelanes render --input plan.csv --config config.yaml --output plan.svg
  timelanes lanes --input plan.yaml --selector 'team=core' --chart
  timelanes view --input calendar:Roadmap`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			debug.Enable(opts.debug)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug mode for verbose output")
	rootCmd.PersistentFlags().StringVar(&opts.config, "config", "", "YAML configuration file (optional)")

	rootCmd.AddCommand(renderCmd(opts))
	rootCmd.AddCommand(lanesCmd(opts))
	rootCmd.AddCommand(viewCmd(opts))

	return rootCmd
}

// loadTasks is the shared front half of every command: configuration,
// source and selector.
func loadTasks(cmd *cobra.Command, opts *globalOptions, input, selector string) (config.Config, []timeline.Task, error) {
	cfg, err := config.Load(opts.config)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("error loading configuration: %w", err)
	}
	debug.Printf("Configuration loaded. Font size: %d, Zoom: %.2f, Viewport: %d",
		cfg.Font.Size, cfg.Zoom.Initial, cfg.Layout.ViewportWidth)

	tasks, err := source.Load(cmd.Context(), input, cfg)
	if err != nil {
		return config.Config{}, nil, err
	}
	debug.Printf("Parsed %d tasks from %s", len(tasks), input)

	tasks, err = source.Select(tasks, selector)
	if err != nil {
		return config.Config{}, nil, err
	}
	if len(tasks) == 0 {
		return config.Config{}, nil, fmt.Errorf("no tasks found in %s", input)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d tasks from %s\n", len(tasks), input)
	return cfg, tasks, nil
}

// viewState applies the --zoom and --viewport overrides to the
// configured view.
func viewState(cmd *cobra.Command, cfg config.Config, zoom, viewport float64) timeline.ViewState {
	v := cfg.ViewState()
	if cmd.Flags().Changed("viewport") {
		v = v.WithViewport(viewport)
	}
	if cmd.Flags().Changed("zoom") {
		v = v.WithZoom(zoom)
	}
	return v
}
