// Package displayout lays out an IR diagram with flex boxes and reports the
// absolute box of every node.
package displayout

import (
	"context"
	"fmt"
	"math"

	"oss.terrastruct.com/util-go/xdefer"

	"cdr.dev/slog"

	"github.com/azriel91/disposition-sub001/dispir"
	"github.com/azriel91/disposition-sub001/dispmodel"
	"github.com/azriel91/disposition-sub001/lib/flex"
	"github.com/azriel91/disposition-sub001/lib/geo"
	"github.com/azriel91/disposition-sub001/lib/log"
	"github.com/azriel91/disposition-sub001/lib/textmeasure"
)

// Shape is how an IR node maps onto flex nodes.
type Shape int

const (
	// Leaf is a single text node.
	Leaf Shape = iota
	// LeafWithCircle is a row holding a circle and a text node.
	LeafWithCircle
	// Wrapper is a column holding a text node and a container of children.
	Wrapper
	// WrapperWithCircle is a column holding a row of circle and text, then a
	// container of children.
	WrapperWithCircle
	// Container is one of the inbuilt containers, holding only children.
	Container
)

func (s Shape) String() string {
	switch s {
	case Leaf:
		return "leaf"
	case LeafWithCircle:
		return "leaf_with_circle"
	case Wrapper:
		return "wrapper"
	case WrapperWithCircle:
		return "wrapper_with_circle"
	default:
		return "container"
	}
}

const none flex.NodeID = -1

// LayoutIDs are the flex nodes owned by one IR node. Fields that the shape
// does not use are -1.
type LayoutIDs struct {
	Shape Shape
	// Outer is the node whose box is the IR node's box.
	Outer    flex.NodeID
	Text     flex.NodeID
	Circle   flex.NodeID
	Label    flex.NodeID
	Children flex.NodeID
}

// NodeBox is the laid out geometry of an IR node.
type NodeBox struct {
	Shape Shape
	// Box is absolute.
	Box geo.Box
	// Text is nil for containers. TextOffset is relative to Box.
	Text       *textmeasure.TextLayout
	TextOffset geo.Point
	// Circle is relative to Box, nil unless the node's shape is a circle.
	Circle *geo.Box
}

type Result struct {
	Width  float64
	Height float64
	Boxes  dispmodel.Map[dispir.NodeID, NodeBox]

	Tree    *flex.Tree
	Layouts map[dispir.NodeID]LayoutIDs
	// Nodes maps flex nodes back to the IR node owning them.
	Nodes map[flex.NodeID]dispir.NodeID
}

type layouter struct {
	ctx    context.Context
	d      *dispir.Diagram
	lod    LevelOfDetail
	ruler  *textmeasure.Ruler
	tree   *flex.Tree
	res    *Result
	texts  map[dispir.NodeID]*textmeasure.TextLayout
	issues dispmodel.Issues
	err    error
}

// Layout lays out d for the viewport. The ruler must not be shared with a
// concurrent call.
func Layout(ctx context.Context, d *dispir.Diagram, vp Viewport, lod LevelOfDetail, ruler *textmeasure.Ruler) (_ *Result, _ dispmodel.Issues, err error) {
	defer xdefer.Errorf(&err, "failed to lay out diagram")

	if ruler == nil {
		ruler = textmeasure.NewRuler(textmeasure.DefaultFontSize)
	}
	l := &layouter{
		ctx:   ctx,
		d:     d,
		lod:   lod,
		ruler: ruler,
		tree:  flex.New(),
		texts: make(map[dispir.NodeID]*textmeasure.TextLayout),
		res: &Result{
			Layouts: make(map[dispir.NodeID]LayoutIDs),
			Nodes:   make(map[flex.NodeID]dispir.NodeID),
		},
	}
	l.res.Tree = l.tree
	done := log.Stage(ctx, "layout")

	root := l.buildContainers()
	if err := l.tree.ComputeLayout(root, flex.Available{
		Width:  flex.DefiniteSpace(vp.Width),
		Height: flex.AvailableSpace{Kind: flex.MaxContent},
	}); err != nil {
		return nil, l.issues, err
	}
	if l.err != nil {
		return nil, l.issues, l.err
	}
	l.collect()

	done(slog.F("viewport", vp.String()), slog.F("flex_nodes", l.tree.Len()),
		slog.F("width", l.res.Width), slog.F("height", l.res.Height))
	return l.res, l.issues, nil
}

func toFlex(d dispir.FlexDirection) flex.Direction {
	switch d {
	case dispir.Column:
		return flex.Column
	case dispir.RowReverse:
		return flex.RowReverse
	case dispir.ColumnReverse:
		return flex.ColumnReverse
	default:
		return flex.Row
	}
}

func edges(s dispir.Spacing) flex.Edges {
	return flex.Edges{Top: s.Top, Right: s.Right, Bottom: s.Bottom, Left: s.Left}
}

func (l *layouter) nodeLayout(id dispir.NodeID) dispir.NodeLayout {
	nl, ok := l.d.NodeLayouts.Get(id)
	if !ok {
		return dispir.NodeLayout{Kind: dispir.LayoutNone}
	}
	return nl
}

func (l *layouter) containerStyle(id dispir.NodeID) flex.Style {
	nl := l.nodeLayout(id)
	return flex.Style{
		Direction: toFlex(nl.Direction),
		Wrap:      nl.Wrap,
		Padding:   edges(nl.Padding),
		Margin:    edges(nl.Margin),
		Gap:       nl.Gap,
	}
}

func (l *layouter) container(id dispir.NodeID, children ...flex.NodeID) flex.NodeID {
	n := l.tree.NewWithChildren(l.containerStyle(id), children...)
	l.res.Layouts[id] = LayoutIDs{Shape: Container, Outer: n, Text: none, Circle: none, Label: none, Children: n}
	l.res.Nodes[n] = id
	return n
}

// buildContainers builds the inbuilt containers:
//
//	_root (column reverse): _things_and_processes_container, _tags_container
//	_things_and_processes_container (row): _processes_container, _things_container
//
// so tags sit above processes and things. Empty containers are left out of
// the tree so they take no gap.
func (l *layouter) buildContainers() flex.NodeID {
	var tags, processes, things []flex.NodeID
	for _, e := range l.d.NodeHierarchy {
		n := l.build(e)
		switch k, _ := l.d.NodeKinds.Get(e.ID); k {
		case dispir.NodeTag:
			tags = append(tags, n)
		case dispir.NodeProcess, dispir.NodeProcessStep:
			processes = append(processes, n)
		default:
			things = append(things, n)
		}
	}
	nonEmpty := func(id dispir.NodeID, children []flex.NodeID) []flex.NodeID {
		n := l.container(id, children...)
		if len(children) == 0 {
			return nil
		}
		return []flex.NodeID{n}
	}
	tap := l.container(dispir.ThingsAndProcessesContainerID, append(
		nonEmpty(dispir.ProcessesContainerID, processes),
		nonEmpty(dispir.ThingsContainerID, things)...,
	)...)
	return l.container(dispir.RootID, append([]flex.NodeID{tap}, nonEmpty(dispir.TagsContainerID, tags)...)...)
}

// measureText returns a measure function for a node's text. The last
// layout computed is kept for the node, which is the one the final geometry
// uses.
func (l *layouter) measureText(id dispir.NodeID) flex.MeasureFunc {
	label, _ := l.d.Nodes.Get(id)
	desc := ""
	if l.lod == Normal {
		desc, _ = l.d.EntityDescs.Get(dispmodel.ID(id))
	}
	return func(known flex.KnownDimensions, avail flex.Available) (float64, float64) {
		var maxWidth *float64
		switch {
		case avail.Width.IsDefinite():
			w := avail.Width.Value
			maxWidth = &w
		case known.Width != nil:
			maxWidth = known.Width
		case avail.Width.Kind == flex.MinContent:
			w := 0.
			maxWidth = &w
		}
		tl, err := l.ruler.LayoutText(label, desc, maxWidth)
		if err != nil {
			if l.err == nil {
				l.err = fmt.Errorf("failed to measure %q: %w", id, err)
			}
			return 0, 0
		}
		l.texts[id] = tl
		return tl.Width, tl.Height
	}
}

func circleMeasure(r float64) flex.MeasureFunc {
	return func(flex.KnownDimensions, flex.Available) (float64, float64) {
		return 2 * r, 2 * r
	}
}

// build creates the flex nodes of e and its descendants.
func (l *layouter) build(e dispir.NodeEntry) flex.NodeID {
	nl := l.nodeLayout(e.ID)
	shape, _ := l.d.NodeShapes.Get(e.ID)
	circle := shape.Kind == dispir.ShapeCircle && shape.CircleRadius > 0
	outerStyle := flex.Style{Padding: edges(nl.Padding), Margin: edges(nl.Margin), Gap: nl.Gap}

	ids := LayoutIDs{Text: none, Circle: none, Label: none, Children: none}
	own := func(n flex.NodeID) flex.NodeID {
		l.res.Nodes[n] = e.ID
		return n
	}

	// label is the text, or circle and text side by side.
	label := func(style flex.Style) flex.NodeID {
		if !circle {
			ids.Text = own(l.tree.NewLeaf(style, l.measureText(e.ID)))
			return ids.Text
		}
		ids.Circle = own(l.tree.NewLeaf(flex.Style{}, circleMeasure(shape.CircleRadius)))
		ids.Text = own(l.tree.NewLeaf(flex.Style{}, l.measureText(e.ID)))
		style.Direction = flex.Row
		style.AlignItems = flex.AlignStart
		if style.Gap == 0 {
			style.Gap = shape.CircleRadius
		}
		ids.Label = own(l.tree.NewWithChildren(style, ids.Circle, ids.Text))
		return ids.Label
	}

	if len(e.Children) == 0 {
		ids.Shape = Leaf
		if circle {
			ids.Shape = LeafWithCircle
		}
		ids.Outer = label(outerStyle)
		l.res.Layouts[e.ID] = ids
		return ids.Outer
	}

	ids.Shape = Wrapper
	if circle {
		ids.Shape = WrapperWithCircle
	}
	head := label(flex.Style{})
	var children []flex.NodeID
	for _, c := range e.Children {
		children = append(children, l.build(c))
	}
	ids.Children = own(l.tree.NewWithChildren(flex.Style{
		Direction: toFlex(nl.Direction),
		Wrap:      nl.Wrap,
		Gap:       nl.Gap,
	}, children...))
	outerStyle.Direction = flex.Column
	ids.Outer = own(l.tree.NewWithChildren(outerStyle, head, ids.Children))
	l.res.Layouts[e.ID] = ids
	return ids.Outer
}

// absolute sums parent relative positions up to the root.
func (l *layouter) absolute(n flex.NodeID) geo.Point {
	var p geo.Point
	for {
		fl := l.tree.Layout(n)
		p.X += fl.X
		p.Y += fl.Y
		parent, ok := l.tree.Parent(n)
		if !ok {
			return p
		}
		n = parent
	}
}

func (l *layouter) collect() {
	rootIDs := l.res.Layouts[dispir.RootID]
	rootLayout := l.tree.Layout(rootIDs.Outer)
	l.res.Width = rootLayout.X + rootLayout.Width + l.tree.Style(rootIDs.Outer).Margin.Right
	l.res.Height = rootLayout.Y + rootLayout.Height + l.tree.Style(rootIDs.Outer).Margin.Bottom

	boxOf := func(n flex.NodeID) geo.Box {
		p := l.absolute(n)
		fl := l.tree.Layout(n)
		return geo.NewBox(p.X, p.Y, fl.Width, fl.Height)
	}

	l.res.Boxes = dispmodel.NewMap[dispir.NodeID, NodeBox]()
	add := func(id dispir.NodeID) {
		ids := l.res.Layouts[id]
		nb := NodeBox{Shape: ids.Shape, Box: boxOf(ids.Outer)}
		if ids.Text != none {
			tb := boxOf(ids.Text)
			nb.Text = l.texts[id]
			pad := l.tree.Style(ids.Text).Padding
			nb.TextOffset = geo.NewPoint(tb.TopLeft.X-nb.Box.TopLeft.X+pad.Left, tb.TopLeft.Y-nb.Box.TopLeft.Y+pad.Top)
			if nb.Text != nil && nb.Text.HardBreaks > 0 {
				l.issues.Add(dispmodel.MeasurementOverflow, []string{string(id)},
					"text of %q does not fit in %vpx and is broken mid word", id, math.Round(tb.Width))
			}
		}
		if ids.Circle != none {
			cb := boxOf(ids.Circle)
			cb.TopLeft = geo.NewPoint(cb.TopLeft.X-nb.Box.TopLeft.X, cb.TopLeft.Y-nb.Box.TopLeft.Y)
			nb.Circle = &cb
		}
		l.res.Boxes.Set(id, nb)
	}

	for _, id := range []dispir.NodeID{
		dispir.RootID, dispir.TagsContainerID, dispir.ThingsAndProcessesContainerID,
		dispir.ProcessesContainerID, dispir.ThingsContainerID,
	} {
		add(id)
	}
	l.d.NodeHierarchy.Walk(func(e dispir.NodeEntry, _ dispir.NodeID, _ int) {
		add(e.ID)
	})
}
