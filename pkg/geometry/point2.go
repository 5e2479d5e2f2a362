package geometry

import (
	"encoding/json"
	"fmt"
	"math"
)

// Point2 is a point in 2D view space
type Point2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point2) String() string {
	return fmt.Sprintf("(%.4f, %.4f)", p.X, p.Y)
}

// MarshalJSON writes NaN and infinite coordinates as null. A model that is
// flat along a projection axis produces them.
func (p Point2) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		X *float64 `json:"x"`
		Y *float64 `json:"y"`
	}{Finite(p.X), Finite(p.Y)})
}

// Finite returns &v, or nil when v is NaN or infinite
func Finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
