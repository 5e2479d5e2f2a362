package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gopanels/pkg/analysis"
	"github.com/philipparndt/gopanels/pkg/panel"
	"github.com/philipparndt/gopanels/pkg/report"
	"github.com/philipparndt/gopanels/pkg/watcher"
)

const watchDebounce = 200 * time.Millisecond

type panelsFlags struct {
	output    string
	watch     bool
	divisor   float64
	precision int
}

func newPanelsCommand(a *app) *cobra.Command {
	flags := &panelsFlags{}

	cmd := &cobra.Command{
		Use:   "panels [file]",
		Short: "Report the outline edge lengths of every panel",
		Long: `Report every panel (object or group) with the number of outline edges and
their lengths, longest first, as CSV or JSON.

Lengths are divided by the unit divisor (12 by default, inches to feet).

Examples:
  gopanels panels costume.obj
  gopanels panels costume.obj -o edges.csv --watch
  gopanels panels costume.obj --divisor 1 --precision 3 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.applyUnitFlags(cmd, flags.divisor, flags.precision); err != nil {
				return err
			}
			return runPanels(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), a, flags, args[0])
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "Regenerate the report whenever the file changes")
	cmd.Flags().Float64Var(&flags.divisor, "divisor", analysis.DefaultUnits.Divisor, "Divide model lengths by this value")
	cmd.Flags().IntVar(&flags.precision, "precision", analysis.DefaultUnits.Precision, "Decimals in reported lengths")

	return cmd
}

func runPanels(ctx context.Context, stdout, stderr io.Writer, a *app, flags *panelsFlags, filename string) error {
	generate := func() error {
		return writePanelsReport(stdout, stderr, a, flags.output, filename)
	}

	if err := generate(); err != nil {
		return err
	}
	if !flags.watch {
		return nil
	}

	fw, err := watcher.NewFileWatcher(watchDebounce)
	if err != nil {
		return err
	}
	defer fw.Close()

	err = fw.Watch([]string{filename}, func(string) {
		if err := generate(); err != nil {
			slog.Error("failed to regenerate report", "file", filename, "error", err)
		}
	})
	if err != nil {
		return err
	}
	fw.Start()

	fmt.Fprintf(stderr, "Watching %s for changes, press Ctrl+C to stop\n", filename)
	<-ctx.Done()
	return fw.RemoveAll()
}

// writePanelsReport parses filename from scratch and writes the report.
func writePanelsReport(stdout, stderr io.Writer, a *app, output, filename string) error {
	result, err := loadModel(filename)
	if err != nil {
		return err
	}

	records := report.Build(
		analysis.MeasurePanels(panel.FromModel(result.Model)),
		a.config.AnalysisUnits(),
	)

	w := stdout
	if output != "" {
		file, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer file.Close()
		w = file
	}

	if a.flags.jsonOutput {
		err = report.WriteJSON(w, records)
	} else {
		err = report.WriteCSV(w, records)
	}
	if err != nil {
		return err
	}

	if output != "" {
		fmt.Fprintf(stderr, "Report written to %s (%d panels)\n", output, len(records))
	}
	return nil
}
