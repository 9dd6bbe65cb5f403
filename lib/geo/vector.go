package geo

import "math"

// Vector is a 2D displacement.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func NewVector(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

func (a Vector) Add(b Vector) Vector {
	return Vector{X: a.X + b.X, Y: a.Y + b.Y}
}

func (a Vector) Minus(b Vector) Vector {
	return Vector{X: a.X - b.X, Y: a.Y - b.Y}
}

func (a Vector) Multiply(v float64) Vector {
	return Vector{X: a.X * v, Y: a.Y * v}
}

func (a Vector) Length() float64 {
	return math.Hypot(a.X, a.Y)
}

// Degenerate reports whether the vector is too short to have a direction.
func (a Vector) Degenerate() bool {
	return a.Length() <= Epsilon
}

// Unit returns a unit vector in the same direction. Degenerate vectors are
// returned unchanged.
func (a Vector) Unit() Vector {
	l := a.Length()
	if l <= Epsilon {
		return a
	}
	return a.Multiply(1 / l)
}

// Perpendicular is a rotated 90 degrees counter-clockwise in screen space.
func (a Vector) Perpendicular() Vector {
	return Vector{X: -a.Y, Y: a.X}
}

func (a Vector) Reverse() Vector {
	return Vector{X: -a.X, Y: -a.Y}
}

