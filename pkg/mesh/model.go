// Package mesh holds the immutable polygon model produced by the parser:
// vertices, faces, named groups and the model that owns them.
package mesh

import (
	"errors"
	"fmt"

	"github.com/philipparndt/gopanels/pkg/geometry"
)

var (
	// ErrEmptyModel is returned when a model has no vertex to measure.
	ErrEmptyModel = errors.New("model has no vertices")
	// ErrDegenerateFace is returned for faces with fewer than three vertices.
	ErrDegenerateFace = errors.New("face needs at least 3 vertices")
)

// Vertex is a point of the mesh. Line is the 1-based source line that
// declared it, or 0 when unknown.
type Vertex struct {
	Position geometry.Vector3
	Line     int
}

// NewVertex creates a vertex without source information
func NewVertex(x, y, z float64) Vertex {
	return Vertex{Position: geometry.NewVector3(x, y, z)}
}

// Equal compares positions only; the source line is provenance.
func (v Vertex) Equal(other Vertex) bool {
	return v.Position == other.Position
}

// Distance returns the euclidean distance between two vertices
func (v Vertex) Distance(other Vertex) float64 {
	return v.Position.Distance(other.Position)
}

func (v Vertex) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.Position.X, v.Position.Y, v.Position.Z)
}

// Face is a closed polygon; vertex i connects to vertex (i+1) mod n.
type Face struct {
	Vertices []Vertex
	Line     int
}

// NewFace creates a face declared on the given source line
func NewFace(vertices []Vertex, line int) (Face, error) {
	if len(vertices) < 3 {
		return Face{}, fmt.Errorf("%w: got %d", ErrDegenerateFace, len(vertices))
	}
	return Face{Vertices: vertices, Line: line}, nil
}

// Center returns the arithmetic mean of the face vertices
func (f Face) Center() geometry.Vector3 {
	points := make([]geometry.Vector3, len(f.Vertices))
	for i, v := range f.Vertices {
		points[i] = v.Position
	}
	return geometry.Mean(points)
}

// Edges returns the n edges of the polygon including the closing one.
func (f Face) Edges() []Edge {
	n := len(f.Vertices)
	edges := make([]Edge, 0, n)
	for i := range f.Vertices {
		edges = append(edges, NewEdge(f.Vertices[i], f.Vertices[(i+1)%n]))
	}
	return edges
}

// Group is a labeled set of faces, one physical piece of the mesh.
type Group struct {
	Label string
	Faces []Face
}

// Center returns the mean of the face centers
func (g Group) Center() geometry.Vector3 {
	points := make([]geometry.Vector3, len(g.Faces))
	for i, f := range g.Faces {
		points[i] = f.Center()
	}
	return geometry.Mean(points)
}

// Model is an ordered list of groups
type Model struct {
	Groups []Group
}

// NewModel creates a model from the given groups
func NewModel(groups []Group) *Model {
	return &Model{Groups: groups}
}

// Bounds scans every vertex of every face and returns the axis-aligned
// bounding box. It fails with ErrEmptyModel when there is no vertex.
func (m *Model) Bounds() (geometry.BoundingBox, error) {
	bbox := geometry.NewBoundingBox()
	for _, group := range m.Groups {
		for _, face := range group.Faces {
			for _, vertex := range face.Vertices {
				bbox.Extend(vertex.Position)
			}
		}
	}
	if bbox.IsEmpty() {
		return bbox, ErrEmptyModel
	}
	return bbox, nil
}

// Min returns the minimum corner of the bounding box
func (m *Model) Min() (geometry.Vector3, error) {
	bbox, err := m.Bounds()
	return bbox.Min, err
}

// Max returns the maximum corner of the bounding box
func (m *Model) Max() (geometry.Vector3, error) {
	bbox, err := m.Bounds()
	return bbox.Max, err
}

// FaceCount returns the number of faces over all groups
func (m *Model) FaceCount() int {
	count := 0
	for _, group := range m.Groups {
		count += len(group.Faces)
	}
	return count
}

// VertexCount returns the number of distinct vertex positions referenced by faces
func (m *Model) VertexCount() int {
	seen := make(map[geometry.Vector3]struct{})
	for _, group := range m.Groups {
		for _, face := range group.Faces {
			for _, vertex := range face.Vertices {
				seen[vertex.Position] = struct{}{}
			}
		}
	}
	return len(seen)
}
