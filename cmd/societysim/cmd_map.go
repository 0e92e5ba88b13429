package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/society/internal/config"
	"github.com/cory-johannsen/society/internal/sim/location"
)

var mapFlags struct {
	markdown bool
}

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Print the areas and the travel times between them",
	RunE:  runMap,
}

func init() {
	mapCmd.Flags().BoolVar(&mapFlags.markdown, "markdown", false, "render tables as Markdown")
}

func runMap(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(rootFlags.config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	loc, err := location.LoadFromFile(cfg.Simulation.AreasFile)
	if err != nil {
		return err
	}
	out, err := travelTable(loc, modeFor(mapFlags.markdown))
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), loc.View())
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
