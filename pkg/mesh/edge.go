package mesh

import "github.com/philipparndt/gopanels/pkg/geometry"

// Edge connects two vertices. It has no orientation: Edge(a, b) equals
// Edge(b, a).
type Edge struct {
	A, B Vertex
}

// EdgeKey identifies an edge independently of its orientation and of the
// source lines of its endpoints. It is comparable and usable as a map key.
type EdgeKey [2]geometry.Vector3

// NewEdge creates an edge between two vertices
func NewEdge(a, b Vertex) Edge {
	return Edge{A: a, B: b}
}

// Key returns the canonical key with the lexicographically smaller endpoint first.
func (e Edge) Key() EdgeKey {
	a, b := e.A.Position, e.B.Position
	if b.Less(a) {
		a, b = b, a
	}
	return EdgeKey{a, b}
}

// Equal reports whether both edges join the same two positions
func (e Edge) Equal(other Edge) bool {
	return e.Key() == other.Key()
}

// Length returns the distance between the endpoints
func (e Edge) Length() float64 {
	return e.A.Distance(e.B)
}
