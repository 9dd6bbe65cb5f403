package geo

import "fmt"

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) Add(v Vector) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// VectorTo returns the vector from p to q.
func (p Point) VectorTo(q Point) Vector {
	return Vector{X: q.X - p.X, Y: q.Y - p.Y}
}

func (p Point) DistanceTo(q Point) float64 {
	return EuclideanDistance(p.X, p.Y, q.X, q.Y)
}

func (p Point) String() string {
	return fmt.Sprintf("(%v, %v)", p.X, p.Y)
}
