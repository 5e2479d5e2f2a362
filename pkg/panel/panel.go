// Package panel finds the cut outline of each named piece of a mesh.
package panel

import (
	"log/slog"

	"github.com/philipparndt/gopanels/pkg/mesh"
)

// Panel is one physical piece to be cut: a named group of faces
type Panel struct {
	Name  string
	Faces []mesh.Face
}

// FromModel creates one panel per group, keeping the model order
func FromModel(model *mesh.Model) []Panel {
	panels := make([]Panel, 0, len(model.Groups))
	for _, group := range model.Groups {
		panels = append(panels, Panel{Name: group.Label, Faces: group.Faces})
	}
	return panels
}

// OuterEdges returns the boundary edges of the panel.
//
// Every edge of every face toggles membership in a set: the first
// occurrence inserts it, the next removes it, and so on. An edge shared by
// two faces cancels out; whatever is left after all faces is the outline.
// The result is ordered by first occurrence.
func (p Panel) OuterEdges() []mesh.Edge {
	set := make(map[mesh.EdgeKey]struct{})
	seen := make(map[mesh.EdgeKey]struct{})
	var order []mesh.Edge
	instances := 0

	for _, face := range p.Faces {
		for _, edge := range face.Edges() {
			instances++
			key := edge.Key()
			if _, ok := seen[key]; !ok {
				seen[key] = struct{}{}
				order = append(order, edge)
			}
			if _, ok := set[key]; ok {
				delete(set, key)
			} else {
				set[key] = struct{}{}
			}
		}
	}

	outer := make([]mesh.Edge, 0, len(set))
	for _, edge := range order {
		if _, ok := set[edge.Key()]; ok {
			outer = append(outer, edge)
		}
	}

	if len(outer) != instances {
		slog.Debug("eliminated duplicate edges", "panel", p.Name, "instances", instances, "outer", len(outer))
	}

	return outer
}

// Perimeter returns the total length of the outer edges
func (p Panel) Perimeter() float64 {
	total := 0.0
	for _, edge := range p.OuterEdges() {
		total += edge.Length()
	}
	return total
}
