package projection

import (
	"fmt"

	"github.com/philipparndt/gopanels/pkg/geometry"
	"github.com/philipparndt/gopanels/pkg/mesh"
)

// PerspectiveProjection normalizes the model into the unit cube and
// projects it through a pinhole at Eye. The screen plane is at z = 0 and
// the eye sits Eye.Z in front of it:
//
//	Sx = Ez*(Px-Ex)/(Ez+Pz) + Ex
//	Sy = Ez*(Py-Ey)/(Ez+Pz) + Ey
type PerspectiveProjection struct {
	box geometry.BoundingBox
	Eye geometry.Vector3
}

// NewPerspective creates a perspective projection of the model
func NewPerspective(model *mesh.Model, eye geometry.Vector3) (*PerspectiveProjection, error) {
	bbox, err := model.Bounds()
	if err != nil {
		return nil, fmt.Errorf("cannot project model: %w", err)
	}
	return &PerspectiveProjection{box: bbox, Eye: eye}, nil
}

// Project normalizes the vertex into the unit cube and casts it onto the
// screen plane through Eye.
func (p *PerspectiveProjection) Project(vertex mesh.Vertex) geometry.Point2 {
	n := p.box.Normalize(vertex.Position)
	return geometry.Point2{
		X: p.Eye.Z*(n.X-p.Eye.X)/(p.Eye.Z+n.Z) + p.Eye.X,
		Y: p.Eye.Z*(n.Y-p.Eye.Y)/(p.Eye.Z+n.Z) + p.Eye.Y,
	}
}

// Distance is constant; perspective output is not depth sorted.
func (p *PerspectiveProjection) Distance(mesh.Vertex) float64 {
	return 1.0
}

// IsVisible is always true; perspective output is never culled.
func (p *PerspectiveProjection) IsVisible(mesh.Vertex) bool {
	return true
}

// Kind returns Perspective.
func (p *PerspectiveProjection) Kind() Kind { return Perspective }

// String names the projection and its eye for diagnostics.
func (p *PerspectiveProjection) String() string {
	return fmt.Sprintf("perspective(eye=%v)", p.Eye)
}
