package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCubicBezierLength(t *testing.T) {
	t.Parallel()

	// Collinear control points make a straight line.
	c := NewCubicBezier(NewPoint(0, 0), NewPoint(10, 0), NewPoint(20, 0), NewPoint(30, 0))
	assert.InDelta(t, 30, c.Length(), 1e-6)

	assert.Equal(t, NewPoint(0, 0), c.At(0))
	assert.Equal(t, NewPoint(30, 0), c.At(1))
}

func TestCubicBezierStartTangent(t *testing.T) {
	t.Parallel()

	c := NewCubicBezier(NewPoint(10, 10), NewPoint(20, 10), NewPoint(30, 30), NewPoint(40, 40))
	v, ok := c.StartTangent()
	assert.True(t, ok)
	assert.Equal(t, NewVector(10, 0), v)

	c = NewCubicBezier(NewPoint(10, 10), NewPoint(10, 10), NewPoint(10, 25), NewPoint(40, 40))
	v, ok = c.StartTangent()
	assert.True(t, ok)
	assert.Equal(t, NewVector(0, 15), v)

	c = NewCubicBezier(NewPoint(1, 1), NewPoint(1, 1), NewPoint(1, 1), NewPoint(1, 1))
	_, ok = c.StartTangent()
	assert.False(t, ok)
}

func TestFaceTowards(t *testing.T) {
	t.Parallel()

	b := NewBox(0, 0, 100, 50)
	assert.Equal(t, FaceRight, b.FaceTowards(NewPoint(300, 30)))
	assert.Equal(t, FaceLeft, b.FaceTowards(NewPoint(-300, 30)))
	assert.Equal(t, FaceBottom, b.FaceTowards(NewPoint(50, 300)))
	assert.Equal(t, FaceTop, b.FaceTowards(NewPoint(60, -300)))

	assert.Equal(t, NewPoint(50, 0), b.FaceMidpoint(FaceTop))
	assert.Equal(t, NewPoint(100, 25), b.FaceMidpoint(FaceRight))
}

func TestVectorUnit(t *testing.T) {
	t.Parallel()

	v := NewVector(3, 4).Unit()
	assert.InDelta(t, 1, v.Length(), 1e-12)
	assert.True(t, NewVector(0, 0).Degenerate())
	assert.Equal(t, NewVector(-4, 3), NewVector(3, 4).Perpendicular())
	assert.False(t, math.IsNaN(NewVector(0, 0).Unit().X))
}
