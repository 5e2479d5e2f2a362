// Package scene turns a model and a projection into an ordered list of
// things for an external renderer to paint. Nothing here rasterizes; the
// renderer scales the unit square to its viewport and paints the list in
// order, which is farthest first.
package scene

import (
	"encoding/json"
	"math"
	"sort"

	"github.com/philipparndt/gopanels/pkg/geometry"
	"github.com/philipparndt/gopanels/pkg/mesh"
	"github.com/philipparndt/gopanels/pkg/projection"
)

// LabelBias puts a group label just in front of its nearest face.
const LabelBias = 0.00001

// Kind tells the renderer what a drawable is
type Kind int

const (
	// FacePolygon is a filled and outlined face
	FacePolygon Kind = iota
	// GroupLabel is the group name drawn at the group center
	GroupLabel
)

func (k Kind) String() string {
	switch k {
	case FacePolygon:
		return "face"
	case GroupLabel:
		return "label"
	default:
		return "unknown"
	}
}

// MarshalText lets JSON output use the kind name
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Drawable is a projected face or label
type Drawable struct {
	Kind     Kind              `json:"kind"`
	Group    string            `json:"group"`
	Line     int               `json:"line,omitempty"`
	Polygon  []geometry.Point2 `json:"polygon,omitempty"`
	Anchor   geometry.Point2   `json:"anchor"`
	Distance float64           `json:"distance"`
	Visible  bool              `json:"visible"`
}

// MarshalJSON writes a non-finite distance as null, like the coordinates.
func (d Drawable) MarshalJSON() ([]byte, error) {
	type plain Drawable
	return json.Marshal(struct {
		plain
		Distance *float64 `json:"distance"`
	}{plain(d), geometry.Finite(d.Distance)})
}

// Build projects every face and group label of the model and returns them
// in painter's order.
func Build(model *mesh.Model, proj projection.Projection) []Drawable {
	var drawables []Drawable

	for _, group := range model.Groups {
		nearest := math.MaxFloat64

		for _, face := range group.Faces {
			polygon := make([]geometry.Point2, len(face.Vertices))
			for i, vertex := range face.Vertices {
				polygon[i] = proj.Project(vertex)
			}

			center := mesh.Vertex{Position: face.Center()}
			distance := proj.Distance(center)
			if distance < nearest {
				nearest = distance
			}

			drawables = append(drawables, Drawable{
				Kind:     FacePolygon,
				Group:    group.Label,
				Line:     face.Line,
				Polygon:  polygon,
				Anchor:   proj.Project(center),
				Distance: distance,
				Visible:  proj.IsVisible(center),
			})
		}

		if len(group.Faces) == 0 {
			continue
		}

		center := mesh.Vertex{Position: group.Center()}
		drawables = append(drawables, Drawable{
			Kind:     GroupLabel,
			Group:    group.Label,
			Anchor:   proj.Project(center),
			Distance: nearest - LabelBias,
			Visible:  proj.IsVisible(center),
		})
	}

	Sort(drawables)
	return drawables
}

// Sort orders drawables farthest first. Equal distances keep their order.
func Sort(drawables []Drawable) {
	sort.SliceStable(drawables, func(i, j int) bool {
		return drawables[i].Distance > drawables[j].Distance
	})
}

// Visible returns only the drawables on the selected half of the model
func Visible(drawables []Drawable) []Drawable {
	out := make([]Drawable, 0, len(drawables))
	for _, d := range drawables {
		if d.Visible {
			out = append(out, d)
		}
	}
	return out
}
