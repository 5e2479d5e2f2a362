package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gopanels/pkg/analysis"
	"github.com/philipparndt/gopanels/pkg/panel"
)

type edgesFlags struct {
	panel     string
	count     int
	shortest  bool
	divisor   float64
	precision int
}

func newEdgesCommand(a *app) *cobra.Command {
	flags := &edgesFlags{}

	cmd := &cobra.Command{
		Use:   "edges [file]",
		Short: "List the outline edges of one panel",
		Long:  "List the outline edges of a panel with their endpoints, converted length and feet/inches.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.applyUnitFlags(cmd, flags.divisor, flags.precision); err != nil {
				return err
			}
			return runEdges(cmd.OutOrStdout(), a, flags, args[0])
		},
	}

	cmd.Flags().StringVarP(&flags.panel, "panel", "p", "", "Panel name")
	cmd.Flags().IntVarP(&flags.count, "count", "n", 0, "Number of edges to display (0 for all)")
	cmd.Flags().BoolVarP(&flags.shortest, "shortest", "s", false, "Show shortest edges first")
	cmd.Flags().Float64Var(&flags.divisor, "divisor", analysis.DefaultUnits.Divisor, "Divide model lengths by this value")
	cmd.Flags().IntVar(&flags.precision, "precision", analysis.DefaultUnits.Precision, "Decimals in reported lengths")
	_ = cmd.MarkFlagRequired("panel")

	return cmd
}

type edgeOutput struct {
	Start   [3]float64 `json:"start"`
	End     [3]float64 `json:"end"`
	Length  float64    `json:"length"`
	Display string     `json:"display"`
	Feet    string     `json:"feetAndInches"`
}

func runEdges(w io.Writer, a *app, flags *edgesFlags, filename string) error {
	result, err := loadModel(filename)
	if err != nil {
		return err
	}

	measurements := analysis.MeasurePanels(panel.FromModel(result.Model))
	m, ok := analysis.FindPanel(measurements, flags.panel)
	if !ok {
		return fmt.Errorf("panel %q not found in %s", flags.panel, filename)
	}

	edges := m.Edges
	if flags.shortest {
		edges = append([]analysis.EdgeInfo(nil), edges...)
		sort.SliceStable(edges, func(i, j int) bool {
			return edges[i].Length < edges[j].Length
		})
	}
	if flags.count > 0 && flags.count < len(edges) {
		edges = edges[:flags.count]
	}

	units := a.config.AnalysisUnits()

	if a.flags.jsonOutput {
		out := make([]edgeOutput, 0, len(edges))
		for _, edge := range edges {
			s, e := edge.Start.Position, edge.End.Position
			out = append(out, edgeOutput{
				Start:   [3]float64{s.X, s.Y, s.Z},
				End:     [3]float64{e.X, e.Y, e.Z},
				Length:  edge.Length,
				Display: units.Format(edge.Length),
				Feet:    analysis.FeetAndInches(edge.Length),
			})
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Fprintf(w, "Panel %q\n", m.Name)
	fmt.Fprintln(w, "====================")
	fmt.Fprintf(w, "Outline edges: %d\n", m.EdgeCount())
	fmt.Fprintf(w, "Perimeter: %s (%s)\n\n", units.Format(m.Perimeter), analysis.FeetAndInches(m.Perimeter))

	if len(edges) == 0 {
		fmt.Fprintln(w, "Panel has no outline edges.")
		return nil
	}

	fmt.Fprintf(w, "%-6s %-35s %-35s %-10s %-12s\n", "Index", "Start", "End", "Length", "Feet/Inches")
	fmt.Fprintln(w, "-------------------------------------------------------------------------------------------------------")
	for i, edge := range edges {
		fmt.Fprintf(w, "%-6d %-35s %-35s %-10s %-12s\n",
			i+1,
			analysis.FormatVector(edge.Start.Position),
			analysis.FormatVector(edge.End.Position),
			units.Format(edge.Length),
			analysis.FeetAndInches(edge.Length))
	}
	return nil
}
