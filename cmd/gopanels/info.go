package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gopanels/pkg/analysis"
	"github.com/philipparndt/gopanels/pkg/geometry"
	"github.com/philipparndt/gopanels/pkg/panel"
)

func newInfoCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info [file]",
		Short: "Display general information about a mesh file",
		Long:  "Show panels, face and vertex counts, the bounding box and any lines that failed to parse.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd.OutOrStdout(), a, args[0])
		},
	}
}

type panelInfo struct {
	Name       string `json:"name"`
	Faces      int    `json:"faces"`
	OuterEdges int    `json:"outerEdges"`
	Perimeter  string `json:"perimeter"`
}

type lineFailure struct {
	Line  int    `json:"line"`
	Text  string `json:"text"`
	Error string `json:"error"`
}

type infoOutput struct {
	File       string        `json:"file"`
	Vertices   int           `json:"vertices"`
	Used       int           `json:"usedVertices"`
	Faces      int           `json:"faces"`
	Panels     []panelInfo   `json:"panels"`
	Min        *[3]float64   `json:"min,omitempty"`
	Max        *[3]float64   `json:"max,omitempty"`
	ParseError []lineFailure `json:"parseErrors"`
}

func runInfo(w io.Writer, a *app, filename string) error {
	result, err := loadModel(filename)
	if err != nil {
		return err
	}
	model := result.Model
	units := a.config.AnalysisUnits()

	out := infoOutput{
		File:       filename,
		Vertices:   result.Vertices,
		Used:       model.VertexCount(),
		Faces:      model.FaceCount(),
		Panels:     []panelInfo{},
		ParseError: []lineFailure{},
	}
	for _, p := range panel.FromModel(model) {
		m := analysis.MeasurePanel(p)
		out.Panels = append(out.Panels, panelInfo{
			Name:       p.Name,
			Faces:      len(p.Faces),
			OuterEdges: m.EdgeCount(),
			Perimeter:  units.Format(m.Perimeter),
		})
	}
	for _, e := range result.Errors {
		out.ParseError = append(out.ParseError, lineFailure{Line: e.Line, Text: e.Text, Error: e.Err.Error()})
	}

	bbox, bboxErr := model.Bounds()
	if bboxErr == nil {
		out.Min = &[3]float64{bbox.Min.X, bbox.Min.Y, bbox.Min.Z}
		out.Max = &[3]float64{bbox.Max.X, bbox.Max.Y, bbox.Max.Z}
	}

	if a.flags.jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Fprintln(w, "Mesh File Information")
	fmt.Fprintln(w, "=====================")
	fmt.Fprintf(w, "File: %s\n\n", filename)

	fmt.Fprintln(w, "Model Statistics:")
	fmt.Fprintf(w, "  Vertices: %d (%d distinct positions in faces)\n", out.Vertices, out.Used)
	fmt.Fprintf(w, "  Faces: %d\n", out.Faces)
	fmt.Fprintf(w, "  Panels: %d\n\n", len(out.Panels))

	if bboxErr != nil {
		fmt.Fprintf(w, "Bounding Box: %v\n\n", bboxErr)
	} else {
		fmt.Fprintln(w, "Bounding Box:")
		fmt.Fprintf(w, "  Min: %s\n", analysis.FormatVector(bbox.Min))
		fmt.Fprintf(w, "  Max: %s\n", analysis.FormatVector(bbox.Max))
		fmt.Fprintf(w, "  Center: %s\n", analysis.FormatVector(bbox.Center()))
		printDimensions(w, bbox)
	}

	fmt.Fprintln(w, "Panels:")
	for _, p := range out.Panels {
		fmt.Fprintf(w, "  %-20q faces: %-5d outline edges: %-5d perimeter: %s\n", p.Name, p.Faces, p.OuterEdges, p.Perimeter)
	}

	if len(out.ParseError) > 0 {
		fmt.Fprintf(w, "\nParse Errors: %d\n", len(out.ParseError))
		for _, e := range out.ParseError {
			fmt.Fprintf(w, "  line %d: %s (%s)\n", e.Line, e.Text, e.Error)
		}
	}
	return nil
}

func printDimensions(w io.Writer, bbox geometry.BoundingBox) {
	size := bbox.Size()
	fmt.Fprintf(w, "  Width (X): %.6f units\n", size.X)
	fmt.Fprintf(w, "  Height (Y): %.6f units\n", size.Y)
	fmt.Fprintf(w, "  Depth (Z): %.6f units\n", size.Z)
	fmt.Fprintf(w, "  Diagonal: %.6f units\n\n", bbox.Diagonal())
}
