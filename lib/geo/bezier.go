package geo

// CubicBezier is a cubic curve from P0 to P3 with control points P1 and P2.
type CubicBezier struct {
	P0, P1, P2, P3 Point
}

// arcLengthSamples is the number of chords used to approximate arc length.
const arcLengthSamples = 64

func NewCubicBezier(p0, p1, p2, p3 Point) CubicBezier {
	return CubicBezier{P0: p0, P1: p1, P2: p2, P3: p3}
}

// At returns the point at t along the curve, where 0 ≤ t ≤ 1
func (c CubicBezier) At(t float64) Point {
	u := 1 - t
	b0 := u * u * u
	b1 := 3 * u * u * t
	b2 := 3 * u * t * t
	b3 := t * t * t
	return Point{
		X: b0*c.P0.X + b1*c.P1.X + b2*c.P2.X + b3*c.P3.X,
		Y: b0*c.P0.Y + b1*c.P1.Y + b2*c.P2.Y + b3*c.P3.Y,
	}
}

// Reverse returns the same curve traversed from P3 to P0.
func (c CubicBezier) Reverse() CubicBezier {
	return CubicBezier{P0: c.P3, P1: c.P2, P2: c.P1, P3: c.P0}
}

// Length approximates the arc length by summing chords.
func (c CubicBezier) Length() float64 {
	length := 0.
	prev := c.P0
	for i := 1; i <= arcLengthSamples; i++ {
		p := c.At(float64(i) / arcLengthSamples)
		length += prev.DistanceTo(p)
		prev = p
	}
	return length
}

// StartTangent is the direction the curve leaves P0 in.
// Falls back to P2 - P0 and then P3 - P0 when control points coincide with P0.
func (c CubicBezier) StartTangent() (Vector, bool) {
	for _, q := range []Point{c.P1, c.P2, c.P3} {
		v := c.P0.VectorTo(q)
		if !v.Degenerate() {
			return v, true
		}
	}
	return Vector{}, false
}
