package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gopanels/internal/config"
	"github.com/philipparndt/gopanels/internal/logging"
	"github.com/philipparndt/gopanels/pkg/obj"
	"github.com/philipparndt/gopanels/pkg/stl"
	"github.com/philipparndt/gopanels/version"
)

// globalFlags are shared by every subcommand
type globalFlags struct {
	configPath string
	verbose    bool
	jsonOutput bool
}

// app carries what PersistentPreRunE prepared for the subcommands
type app struct {
	flags  globalFlags
	config *config.Config
}

func newRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "gopanels",
		Short: "Measure the panels of a Wavefront mesh",
		Long: `gopanels reads a Wavefront OBJ mesh, treats every object or group as a
panel to be cut, and reports the outline edges of each panel with their
lengths. It also projects the mesh into front, side, top or perspective
views for an external renderer.`,
		Version:       version.GetFullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.Setup(cmd.ErrOrStderr(), a.flags.verbose)

			cfg := config.Default()
			if a.flags.configPath != "" {
				loaded, err := config.Load(a.flags.configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			a.config = cfg
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.flags.configPath, "config", "c", "", "Configuration file (.yaml, .yml, .toml, .json, .jsonc)")
	rootCmd.PersistentFlags().BoolVarP(&a.flags.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&a.flags.jsonOutput, "json", false, "Output in JSON format")

	rootCmd.AddCommand(newPanelsCommand(a))
	rootCmd.AddCommand(newEdgesCommand(a))
	rootCmd.AddCommand(newInfoCommand(a))
	rootCmd.AddCommand(newProjectCommand(a))
	rootCmd.AddCommand(newVersionCommand(a))

	return rootCmd
}

// loadModel parses filename as STL or OBJ depending on its extension and
// summarizes line failures in the log.
func loadModel(filename string) (*obj.Result, error) {
	parse := obj.Parse
	if strings.EqualFold(filepath.Ext(filename), ".stl") {
		parse = stl.Parse
	}

	result, err := parse(filename)
	if err != nil {
		return nil, fmt.Errorf("error parsing mesh file: %w", err)
	}
	if len(result.Errors) > 0 {
		slog.Warn("skipped malformed lines", "file", filename, "count", len(result.Errors))
	}
	return result, nil
}

// applyUnitFlags lets --divisor and --precision override the config file
func (a *app) applyUnitFlags(cmd *cobra.Command, divisor float64, precision int) error {
	if cmd.Flags().Changed("divisor") {
		a.config.Units.Divisor = divisor
	}
	if cmd.Flags().Changed("precision") {
		a.config.Units.Precision = precision
	}
	return a.config.Validate()
}
