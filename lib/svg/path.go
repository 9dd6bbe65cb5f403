package svg

import (
	"fmt"
	"strings"

	"github.com/azriel91/disposition-sub001/lib/geo"
)

// SvgPathContext accumulates absolute path commands relative to TopLeft.
type SvgPathContext struct {
	Commands []string
	Start    geo.Point
	Current  geo.Point
	TopLeft  geo.Point
}

func NewSVGPathContext(tl geo.Point) *SvgPathContext {
	return &SvgPathContext{TopLeft: tl}
}

func (c *SvgPathContext) Absolute(x, y float64) geo.Point {
	return geo.NewPoint(geo.Round(c.TopLeft.X+x), geo.Round(c.TopLeft.Y+y))
}

func (c *SvgPathContext) StartAt(x, y float64) {
	p := c.Absolute(x, y)
	c.Start = p
	c.Current = p
	c.Commands = append(c.Commands, fmt.Sprintf("M %v %v", p.X, p.Y))
}

func (c *SvgPathContext) Z() {
	c.Commands = append(c.Commands, "Z")
	c.Current = c.Start
}

func (c *SvgPathContext) L(x, y float64) {
	p := c.Absolute(x, y)
	c.Commands = append(c.Commands, fmt.Sprintf("L %v %v", p.X, p.Y))
	c.Current = p
}

func (c *SvgPathContext) H(x float64) {
	p := c.Absolute(x, 0)
	p.Y = c.Current.Y
	c.Commands = append(c.Commands, fmt.Sprintf("H %v", p.X))
	c.Current = p
}

func (c *SvgPathContext) V(y float64) {
	p := c.Absolute(0, y)
	p.X = c.Current.X
	c.Commands = append(c.Commands, fmt.Sprintf("V %v", p.Y))
	c.Current = p
}

func (c *SvgPathContext) C(x1, y1, x2, y2, x3, y3 float64) {
	p1 := c.Absolute(x1, y1)
	p2 := c.Absolute(x2, y2)
	p3 := c.Absolute(x3, y3)
	c.Commands = append(c.Commands, fmt.Sprintf(
		"C %v %v %v %v %v %v",
		p1.X, p1.Y,
		p2.X, p2.Y,
		p3.X, p3.Y,
	))
	c.Current = p3
}

// A draws an elliptical arc with no x-axis rotation.
func (c *SvgPathContext) A(rx, ry float64, largeArc, sweep bool, x, y float64) {
	p := c.Absolute(x, y)
	c.Commands = append(c.Commands, fmt.Sprintf(
		"A %v %v 0 %d %d %v %v",
		geo.Round(rx), geo.Round(ry),
		flag(largeArc), flag(sweep),
		p.X, p.Y,
	))
	c.Current = p
}

func (c *SvgPathContext) PathData() string {
	return strings.Join(c.Commands, " ")
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Corners holds a radius per rectangle corner.
type Corners struct {
	TopLeft     float64
	TopRight    float64
	BottomLeft  float64
	BottomRight float64
}

// RoundedRect returns the path for a w by h rectangle whose corners are
// rounded by r. Zero radii produce square corners with no arc command.
func RoundedRect(w, h float64, r Corners) string {
	c := NewSVGPathContext(geo.Point{})
	c.StartAt(r.TopLeft, 0)
	c.H(w - r.TopRight)
	if r.TopRight > 0 {
		c.A(r.TopRight, r.TopRight, false, true, w, r.TopRight)
	}
	c.V(h - r.BottomRight)
	if r.BottomRight > 0 {
		c.A(r.BottomRight, r.BottomRight, false, true, w-r.BottomRight, h)
	}
	c.H(r.BottomLeft)
	if r.BottomLeft > 0 {
		c.A(r.BottomLeft, r.BottomLeft, false, true, 0, h-r.BottomLeft)
	}
	c.V(r.TopLeft)
	if r.TopLeft > 0 {
		c.A(r.TopLeft, r.TopLeft, false, true, r.TopLeft, 0)
	}
	c.Z()
	return c.PathData()
}

// Circle returns a circle of radius r centred on (cx, cy), drawn as two
// half arcs.
func Circle(cx, cy, r float64) string {
	c := NewSVGPathContext(geo.Point{})
	c.StartAt(cx-r, cy)
	c.A(r, r, false, true, cx+r, cy)
	c.A(r, r, false, true, cx-r, cy)
	c.Z()
	return c.PathData()
}
