// Package projection maps model vertices to normalized 2D view coordinates.
//
// Three orthographic views (front, side, top) place the model bounding box
// on the unit square and report a depth in [0, 1] plus a near/far
// visibility split at the middle of the viewing axis. The perspective view
// normalizes into the unit cube and applies a pinhole projection from a
// fixed eye; it neither culls nor orders by depth.
package projection

import (
	"fmt"
	"strings"

	"github.com/philipparndt/gopanels/pkg/geometry"
	"github.com/philipparndt/gopanels/pkg/mesh"
)

// Projection maps vertices of one model into view space
type Projection interface {
	// Project returns the 2D view position of the vertex
	Project(vertex mesh.Vertex) geometry.Point2
	// Distance returns the depth of the vertex, lower is nearer
	Distance(vertex mesh.Vertex) float64
	// IsVisible reports whether the vertex is on the selected half of the model
	IsVisible(vertex mesh.Vertex) bool
	// Kind identifies the projection variant
	Kind() Kind
}

// Kind enumerates the available projections
type Kind int

const (
	Front Kind = iota
	Side
	Top
	Perspective
)

var kindNames = []string{"front", "side", "top", "perspective"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Kinds returns all projection kinds in declaration order
func Kinds() []Kind {
	return []Kind{Front, Side, Top, Perspective}
}

// ParseKind converts a name such as "front" into a Kind
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if strings.EqualFold(name, n) {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown projection %q (valid: %s)", name, strings.Join(kindNames, ", "))
}

// DefaultEye is the eye used by the perspective view unless configured
var DefaultEye = geometry.NewVector3(15, 15, 100)

// Options select the variant specific parameters
type Options struct {
	// Near selects the half of the model facing the viewer
	Near bool
	// Eye is the perspective eye in normalized model space
	Eye geometry.Vector3
}

// New creates the projection of the given kind for model
func New(kind Kind, model *mesh.Model, opts Options) (Projection, error) {
	var (
		p   Projection
		err error
	)
	switch kind {
	case Front:
		p, err = NewFront(model, opts.Near)
	case Side:
		p, err = NewSide(model, opts.Near)
	case Top:
		p, err = NewTop(model, opts.Near)
	case Perspective:
		p, err = NewPerspective(model, opts.Eye)
	default:
		return nil, fmt.Errorf("unsupported projection %v", kind)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
