package dispcompiler

import (
	"strconv"

	"github.com/azriel91/disposition-sub001/dispir"
	"github.com/azriel91/disposition-sub001/dispmodel"
)

const defaultGap = 4.

// containerLayouts are the inbuilt containers that group tags, processes and
// things at the top of every diagram.
var containerLayouts = []dispmodel.Pair[dispir.NodeID, dispir.NodeLayout]{
	{Key: dispir.RootID, Value: dispir.NodeLayout{Kind: dispir.LayoutFlex, Direction: dispir.ColumnReverse, Wrap: true, Gap: 8}},
	{Key: dispir.TagsContainerID, Value: dispir.NodeLayout{Kind: dispir.LayoutFlex, Direction: dispir.Row, Wrap: true, Gap: 4}},
	{Key: dispir.ThingsAndProcessesContainerID, Value: dispir.NodeLayout{Kind: dispir.LayoutFlex, Direction: dispir.Row, Gap: 8}},
	{Key: dispir.ProcessesContainerID, Value: dispir.NodeLayout{Kind: dispir.LayoutFlex, Direction: dispir.Column, Gap: 4}},
	{Key: dispir.ThingsContainerID, Value: dispir.NodeLayout{Kind: dispir.LayoutFlex, Direction: dispir.Row, Wrap: true, Gap: 8}},
}

func (c *compiler) length(id string, a attrs, attr dispmodel.ThemeAttr) (float64, bool) {
	v, ok := a[attr]
	if !ok || v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		c.issuef(dispmodel.ThemeAttrUnknown, []string{id, string(attr)},
			"%s of %q: expected a non negative number, got %q", attr, id, v)
		return 0, false
	}
	return f, true
}

// spacing resolves the shorthand, axis and per side attrs, most specific
// winning.
func (c *compiler) spacing(id string, a attrs, all, x, y, top, right, bottom, left dispmodel.ThemeAttr) dispir.Spacing {
	var s dispir.Spacing
	if v, ok := c.length(id, a, all); ok {
		s = dispir.Uniform(v)
	}
	if v, ok := c.length(id, a, x); ok {
		s.Left, s.Right = v, v
	}
	if v, ok := c.length(id, a, y); ok {
		s.Top, s.Bottom = v, v
	}
	for _, side := range []struct {
		attr dispmodel.ThemeAttr
		dst  *float64
	}{{top, &s.Top}, {right, &s.Right}, {bottom, &s.Bottom}, {left, &s.Left}} {
		if v, ok := c.length(id, a, side.attr); ok {
			*side.dst = v
		}
	}
	return s
}

func (c *compiler) compileLayouts() {
	c.ir.NodeLayouts = dispmodel.NewMap(containerLayouts...)
	c.ir.NodeShapes = dispmodel.NewMap[dispir.NodeID, dispir.NodeShape]()

	c.ir.NodeHierarchy.Walk(func(e dispir.NodeEntry, _ dispir.NodeID, depth int) {
		id := string(e.ID)
		a := c.folds[dispmodel.ID(id)]
		kind, _ := c.ir.NodeKinds.Get(e.ID)

		l := dispir.NodeLayout{
			Kind: dispir.LayoutNone,
			Padding: c.spacing(id, a, dispmodel.AttrPadding, dispmodel.AttrPaddingX, dispmodel.AttrPaddingY,
				dispmodel.AttrPaddingTop, dispmodel.AttrPaddingRight, dispmodel.AttrPaddingBottom, dispmodel.AttrPaddingLeft),
			Margin: c.spacing(id, a, dispmodel.AttrMargin, dispmodel.AttrMarginX, dispmodel.AttrMarginY,
				dispmodel.AttrMarginTop, dispmodel.AttrMarginRight, dispmodel.AttrMarginBottom, dispmodel.AttrMarginLeft),
		}
		if len(e.Children) > 0 {
			l.Kind = dispir.LayoutFlex
			l.Gap = defaultGap
			if v, ok := c.length(id, a, dispmodel.AttrGap); ok {
				l.Gap = v
			}
			// Nested things alternate between columns and rows.
			if kind == dispir.NodeThing && depth%2 == 1 {
				l.Direction = dispir.Row
				l.Wrap = true
			} else {
				l.Direction = dispir.Column
			}
		}
		c.ir.NodeLayouts.Set(e.ID, l)

		shape := dispir.NodeShape{Kind: dispir.ShapeRect}
		r := dispir.DefaultRadius
		if v, ok := c.length(id, a, dispmodel.AttrRadius); ok {
			r = v
		}
		shape.Radii = dispir.Corners{TopLeft: r, TopRight: r, BottomLeft: r, BottomRight: r}
		for _, corner := range []struct {
			attr dispmodel.ThemeAttr
			dst  *float64
		}{
			{dispmodel.AttrRadiusTopLeft, &shape.Radii.TopLeft},
			{dispmodel.AttrRadiusTopRight, &shape.Radii.TopRight},
			{dispmodel.AttrRadiusBottomLeft, &shape.Radii.BottomLeft},
			{dispmodel.AttrRadiusBottomRight, &shape.Radii.BottomRight},
		} {
			if v, ok := c.length(id, a, corner.attr); ok {
				*corner.dst = v
			}
		}
		if v, ok := c.length(id, a, dispmodel.AttrCircleRadius); ok && v > 0 {
			shape.Kind = dispir.ShapeCircle
			shape.CircleRadius = v
		}
		c.ir.NodeShapes.Set(e.ID, shape)
	})
}
