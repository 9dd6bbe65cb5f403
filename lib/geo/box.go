package geo

import "math"

type Box struct {
	TopLeft Point
	Width   float64
	Height  float64
}

func NewBox(x, y, width, height float64) Box {
	return Box{TopLeft: Point{X: x, Y: y}, Width: width, Height: height}
}

func (b Box) Center() Point {
	return Point{X: b.TopLeft.X + b.Width/2, Y: b.TopLeft.Y + b.Height/2}
}

// Face is a side of a box used as an edge anchor.
type Face int

const (
	FaceTop Face = iota
	FaceBottom
	FaceLeft
	FaceRight
)

func (f Face) String() string {
	switch f {
	case FaceTop:
		return "top"
	case FaceBottom:
		return "bottom"
	case FaceLeft:
		return "left"
	default:
		return "right"
	}
}

// Normal is the outward unit normal of the face.
func (f Face) Normal() Vector {
	switch f {
	case FaceTop:
		return Vector{Y: -1}
	case FaceBottom:
		return Vector{Y: 1}
	case FaceLeft:
		return Vector{X: -1}
	default:
		return Vector{X: 1}
	}
}

// Tangent is a unit vector running along the face.
func (f Face) Tangent() Vector {
	return f.Normal().Perpendicular()
}

// FaceTowards picks the face of b that points at target.
// The primary axis is the one with the larger centre offset; ties go to the
// vertical axis.
func (b Box) FaceTowards(target Point) Face {
	d := b.Center().VectorTo(target)
	if math.Abs(d.X) > math.Abs(d.Y) {
		if d.X < 0 {
			return FaceLeft
		}
		return FaceRight
	}
	if d.Y < 0 {
		return FaceTop
	}
	return FaceBottom
}

// FaceMidpoint returns the centre of the given face.
func (b Box) FaceMidpoint(f Face) Point {
	c := b.Center()
	switch f {
	case FaceTop:
		return Point{X: c.X, Y: b.TopLeft.Y}
	case FaceBottom:
		return Point{X: c.X, Y: b.TopLeft.Y + b.Height}
	case FaceLeft:
		return Point{X: b.TopLeft.X, Y: c.Y}
	default:
		return Point{X: b.TopLeft.X + b.Width, Y: c.Y}
	}
}

