package projection

import (
	"fmt"

	"github.com/philipparndt/gopanels/pkg/geometry"
	"github.com/philipparndt/gopanels/pkg/mesh"
)

// bounds caches the model box once so projecting a vertex is O(1)
type bounds struct {
	min  geometry.Vector3
	max  geometry.Vector3
	size geometry.Vector3
}

func newBounds(model *mesh.Model) (bounds, error) {
	bbox, err := model.Bounds()
	if err != nil {
		return bounds{}, fmt.Errorf("cannot project model: %w", err)
	}
	return bounds{min: bbox.Min, max: bbox.Max, size: bbox.Size()}, nil
}

// FrontProjection looks along the X axis: Z goes right, Y goes down.
type FrontProjection struct {
	bounds
	near   bool
	middle float64
}

// NewFront creates a front projection of the model
func NewFront(model *mesh.Model, near bool) (*FrontProjection, error) {
	b, err := newBounds(model)
	if err != nil {
		return nil, err
	}
	return &FrontProjection{bounds: b, near: near, middle: b.size.X/2 + b.min.X}, nil
}

// Project maps Z to the horizontal and Y to the vertical axis, both
// normalized to the model bounds.
func (p *FrontProjection) Project(vertex mesh.Vertex) geometry.Point2 {
	v := vertex.Position
	return geometry.Point2{
		X: (v.Z - p.min.Z) / p.size.Z,
		Y: (v.Y - p.min.Y) / p.size.Y,
	}
}

// Distance is the normalized X coordinate.
func (p *FrontProjection) Distance(vertex mesh.Vertex) float64 {
	return (vertex.Position.X - p.min.X) / p.size.X
}

// IsVisible reports whether the vertex lies on the selected half along X.
func (p *FrontProjection) IsVisible(vertex mesh.Vertex) bool {
	if p.near {
		return vertex.Position.X > p.middle
	}
	return vertex.Position.X < p.middle
}

// Kind returns Front.
func (p *FrontProjection) Kind() Kind { return Front }

// String names the projection and the selected half.
func (p *FrontProjection) String() string {
	return fmt.Sprintf("front(near=%t)", p.near)
}

// SideProjection looks along the Z axis: X goes right, Y goes down.
type SideProjection struct {
	bounds
	near   bool
	middle float64
}

// NewSide creates a side projection of the model
func NewSide(model *mesh.Model, near bool) (*SideProjection, error) {
	b, err := newBounds(model)
	if err != nil {
		return nil, err
	}
	return &SideProjection{bounds: b, near: near, middle: b.size.Z/2 + b.min.Z}, nil
}

// Project maps X to the horizontal and Y to the vertical axis.
func (p *SideProjection) Project(vertex mesh.Vertex) geometry.Point2 {
	v := vertex.Position
	return geometry.Point2{
		X: (v.X - p.min.X) / p.size.X,
		Y: (v.Y - p.min.Y) / p.size.Y,
	}
}

// Distance is measured from the min Z side when near, else from max Z.
func (p *SideProjection) Distance(vertex mesh.Vertex) float64 {
	if p.near {
		return (vertex.Position.Z - p.min.Z) / p.size.Z
	}
	return (p.max.Z - vertex.Position.Z) / p.size.Z
}

// IsVisible reports whether the vertex lies on the selected half along Z.
func (p *SideProjection) IsVisible(vertex mesh.Vertex) bool {
	if p.near {
		return vertex.Position.Z > p.middle
	}
	return vertex.Position.Z < p.middle
}

// Kind returns Side.
func (p *SideProjection) Kind() Kind { return Side }

// String names the projection and the selected half.
func (p *SideProjection) String() string {
	return fmt.Sprintf("side(near=%t)", p.near)
}

// TopProjection looks along the Y axis: X goes right, Z goes up.
type TopProjection struct {
	bounds
	near   bool
	middle float64
}

// NewTop creates a top projection of the model
func NewTop(model *mesh.Model, near bool) (*TopProjection, error) {
	b, err := newBounds(model)
	if err != nil {
		return nil, err
	}
	return &TopProjection{bounds: b, near: near, middle: b.size.Y/2 + b.min.Y}, nil
}

// Project maps X to the horizontal axis and Z, flipped, to the vertical.
func (p *TopProjection) Project(vertex mesh.Vertex) geometry.Point2 {
	v := vertex.Position
	return geometry.Point2{
		X: (v.X - p.min.X) / p.size.X,
		Y: (p.max.Z - v.Z) / p.size.Z,
	}
}

// Distance is the normalized Y coordinate.
func (p *TopProjection) Distance(vertex mesh.Vertex) float64 {
	return (vertex.Position.Y - p.min.Y) / p.size.Y
}

// IsVisible reports whether the vertex lies on the selected half along Y.
func (p *TopProjection) IsVisible(vertex mesh.Vertex) bool {
	if p.near {
		return vertex.Position.Y > p.middle
	}
	return vertex.Position.Y < p.middle
}

// Kind returns Top.
func (p *TopProjection) Kind() Kind { return Top }

// String names the projection and the selected half.
func (p *TopProjection) String() string {
	return fmt.Sprintf("top(near=%t)", p.near)
}
