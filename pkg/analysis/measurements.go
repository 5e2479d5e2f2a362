package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/philipparndt/gopanels/pkg/geometry"
	"github.com/philipparndt/gopanels/pkg/mesh"
	"github.com/philipparndt/gopanels/pkg/panel"
)

// Units controls how raw model lengths are reported
type Units struct {
	// Divisor converts model units to report units, 12 for inches to feet
	Divisor float64
	// Precision is the number of decimals in formatted lengths
	Precision int
}

// DefaultUnits reports inch models in feet with two decimals
var DefaultUnits = Units{Divisor: 12, Precision: 2}

// Format converts a raw length into report units
func (u Units) Format(length float64) string {
	return fmt.Sprintf("%.*f", u.Precision, length/u.Divisor)
}

// EdgeInfo contains information about an outer edge of a panel
type EdgeInfo struct {
	Start  mesh.Vertex
	End    mesh.Vertex
	Length float64
}

// PanelMeasurement holds the outline of one panel, longest edge first
type PanelMeasurement struct {
	Name      string
	Edges     []EdgeInfo
	Perimeter float64
}

// EdgeCount returns the number of outer edges
func (m PanelMeasurement) EdgeCount() int {
	return len(m.Edges)
}

// Lengths returns the raw edge lengths in descending order
func (m PanelMeasurement) Lengths() []float64 {
	lengths := make([]float64, len(m.Edges))
	for i, edge := range m.Edges {
		lengths[i] = edge.Length
	}
	return lengths
}

// FormattedLengths returns the edge lengths converted and formatted by units
func (m PanelMeasurement) FormattedLengths(units Units) []string {
	formatted := make([]string, len(m.Edges))
	for i, edge := range m.Edges {
		formatted[i] = units.Format(edge.Length)
	}
	return formatted
}

// MeasurePanel computes the outer edges of p sorted by descending length
func MeasurePanel(p panel.Panel) PanelMeasurement {
	outer := p.OuterEdges()
	result := PanelMeasurement{
		Name:  p.Name,
		Edges: make([]EdgeInfo, 0, len(outer)),
	}

	for _, edge := range outer {
		length := edge.Length()
		result.Edges = append(result.Edges, EdgeInfo{
			Start:  edge.A,
			End:    edge.B,
			Length: length,
		})
		result.Perimeter += length
	}

	sort.SliceStable(result.Edges, func(i, j int) bool {
		return result.Edges[i].Length > result.Edges[j].Length
	})

	return result
}

// MeasurePanels measures every panel, keeping the panel order
func MeasurePanels(panels []panel.Panel) []PanelMeasurement {
	results := make([]PanelMeasurement, 0, len(panels))
	for _, p := range panels {
		results = append(results, MeasurePanel(p))
	}
	return results
}

// FindPanel returns the measurement with the given name
func FindPanel(results []PanelMeasurement, name string) (PanelMeasurement, bool) {
	for _, result := range results {
		if result.Name == name {
			return result, true
		}
	}
	return PanelMeasurement{}, false
}

// FeetAndInches formats a length in inches as F'II.cc", e.g. 30 -> 2'6.00"
func FeetAndInches(inches float64) string {
	feet := int(math.Floor(inches / 12))
	remainder := inches - float64(feet)*12
	return fmt.Sprintf("%d'%.2f\"", feet, remainder)
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
