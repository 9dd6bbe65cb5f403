// Package flex is a small flex-box solver.
//
// It covers the subset of flex layout needed to stack diagram nodes:
// direction (including reversed directions), wrapping, padding, margin, a
// uniform gap, and start or stretch cross axis alignment. Containers are
// always sized to their content; items never grow or shrink. Leaf sizes come
// from a MeasureFunc.
package flex

import (
	"fmt"
	"math"
)

type Direction int

const (
	Row Direction = iota
	Column
	RowReverse
	ColumnReverse
)

func (d Direction) IsRow() bool {
	return d == Row || d == RowReverse
}

func (d Direction) IsReverse() bool {
	return d == RowReverse || d == ColumnReverse
}

func (d Direction) String() string {
	switch d {
	case Row:
		return "row"
	case Column:
		return "column"
	case RowReverse:
		return "row-reverse"
	default:
		return "column-reverse"
	}
}

type AlignItems int

const (
	AlignStretch AlignItems = iota
	AlignStart
)

// Edges are per side lengths, used for padding and margin.
type Edges struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

func (e Edges) Horizontal() float64 { return e.Left + e.Right }
func (e Edges) Vertical() float64   { return e.Top + e.Bottom }

type Style struct {
	Direction  Direction
	Wrap       bool
	Padding    Edges
	Margin     Edges
	Gap        float64
	AlignItems AlignItems
}

type SpaceKind int

const (
	Definite SpaceKind = iota
	MinContent
	MaxContent
)

// AvailableSpace is the room a node may occupy along one axis.
type AvailableSpace struct {
	Kind  SpaceKind
	Value float64
}

func DefiniteSpace(v float64) AvailableSpace {
	return AvailableSpace{Kind: Definite, Value: v}
}

func (a AvailableSpace) IsDefinite() bool {
	return a.Kind == Definite
}

func (a AvailableSpace) shrink(by float64) AvailableSpace {
	if a.Kind != Definite {
		return a
	}
	return AvailableSpace{Kind: Definite, Value: math.Max(0, a.Value-by)}
}

type Available struct {
	Width  AvailableSpace
	Height AvailableSpace
}

// KnownDimensions are sizes already fixed by the layout. Nil means unknown.
type KnownDimensions struct {
	Width  *float64
	Height *float64
}

// MeasureFunc returns the content size of a leaf, excluding padding.
type MeasureFunc func(known KnownDimensions, available Available) (width, height float64)

// Layout is the computed box of a node. X and Y are relative to the parent's
// border box.
type Layout struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// NodeID is an opaque handle into a Tree.
type NodeID int

type node struct {
	style    Style
	measure  MeasureFunc
	parent   NodeID
	children []NodeID
	layout   Layout
}

// Tree owns every node of one layout.
type Tree struct {
	nodes []*node
}

func New() *Tree {
	return &Tree{}
}

func (t *Tree) NewLeaf(style Style, measure MeasureFunc) NodeID {
	t.nodes = append(t.nodes, &node{style: style, measure: measure, parent: -1})
	return NodeID(len(t.nodes) - 1)
}

func (t *Tree) NewWithChildren(style Style, children ...NodeID) NodeID {
	id := t.NewLeaf(style, nil)
	for _, c := range children {
		t.AddChild(id, c)
	}
	return id
}

func (t *Tree) AddChild(parent, child NodeID) {
	t.nodes[parent].children = append(t.nodes[parent].children, child)
	t.nodes[child].parent = parent
}

func (t *Tree) Children(id NodeID) []NodeID {
	return t.nodes[id].children
}

// Parent returns the parent of id, or false for roots.
func (t *Tree) Parent(id NodeID) (NodeID, bool) {
	p := t.nodes[id].parent
	return p, p >= 0
}

func (t *Tree) Style(id NodeID) Style {
	return t.nodes[id].style
}

func (t *Tree) Layout(id NodeID) Layout {
	return t.nodes[id].layout
}

func (t *Tree) Len() int {
	return len(t.nodes)
}

// ComputeLayout lays out the subtree at root within available.
func (t *Tree) ComputeLayout(root NodeID, available Available) error {
	if int(root) < 0 || int(root) >= len(t.nodes) {
		return fmt.Errorf("unknown layout node %d", root)
	}
	n := t.nodes[root]
	t.compute(root, Available{
		Width:  available.Width.shrink(n.style.Margin.Horizontal()),
		Height: available.Height.shrink(n.style.Margin.Vertical()),
	})
	n.layout.X = n.style.Margin.Left
	n.layout.Y = n.style.Margin.Top
	return nil
}

type item struct {
	id    NodeID
	main  float64
	cross float64
}

// compute sizes id and positions its children. Sizes exclude margin.
func (t *Tree) compute(id NodeID, avail Available) {
	n := t.nodes[id]
	s := n.style
	pad := s.Padding
	inner := Available{
		Width:  avail.Width.shrink(pad.Horizontal()),
		Height: avail.Height.shrink(pad.Vertical()),
	}

	if len(n.children) == 0 {
		var w, h float64
		if n.measure != nil {
			w, h = n.measure(KnownDimensions{}, inner)
		}
		n.layout.Width = w + pad.Horizontal()
		n.layout.Height = h + pad.Vertical()
		return
	}

	row := s.Direction.IsRow()
	innerMain, innerCross := inner.Width, inner.Height
	if !row {
		innerMain, innerCross = innerCross, innerMain
	}
	axes := func(m Edges) (mainSum, crossSum float64) {
		if row {
			return m.Horizontal(), m.Vertical()
		}
		return m.Vertical(), m.Horizontal()
	}

	var lines [][]item
	var line []item
	lineMain, consumed := 0., 0.
	for _, c := range n.children {
		mMain, mCross := axes(t.nodes[c].style.Margin)
		childMain := innerMain.shrink(mMain)
		if !s.Wrap {
			childMain = innerMain.shrink(mMain + consumed)
		}
		childCross := innerCross.shrink(mCross)
		if row {
			t.compute(c, Available{Width: childMain, Height: childCross})
		} else {
			t.compute(c, Available{Width: childCross, Height: childMain})
		}

		cl := t.nodes[c].layout
		it := item{id: c, main: cl.Width + mMain, cross: cl.Height + mCross}
		if !row {
			it.main, it.cross = cl.Height+mMain, cl.Width+mCross
		}

		if s.Wrap && innerMain.IsDefinite() && len(line) > 0 && lineMain+s.Gap+it.main > innerMain.Value+1e-9 {
			lines = append(lines, line)
			line, lineMain = nil, 0
		}
		if len(line) > 0 {
			lineMain += s.Gap
		}
		lineMain += it.main
		consumed += it.main + s.Gap
		line = append(line, it)
	}
	lines = append(lines, line)

	contentMain, contentCross := 0., 0.
	lineCross := make([]float64, len(lines))
	for i, l := range lines {
		m := 0.
		for j, it := range l {
			if j > 0 {
				m += s.Gap
			}
			m += it.main
			lineCross[i] = math.Max(lineCross[i], it.cross)
		}
		contentMain = math.Max(contentMain, m)
		if i > 0 {
			contentCross += s.Gap
		}
		contentCross += lineCross[i]
	}

	padMain, padCross := pad.Left, pad.Top
	if !row {
		padMain, padCross = pad.Top, pad.Left
	}

	crossPos := 0.
	for i, l := range lines {
		mainPos := 0.
		for _, it := range l {
			c := t.nodes[it.id]
			m := c.style.Margin
			mMainStart, mCrossStart := m.Left, m.Top
			if !row {
				mMainStart, mCrossStart = m.Top, m.Left
			}
			if s.AlignItems == AlignStretch && it.cross < lineCross[i] {
				_, mCross := axes(m)
				if row {
					c.layout.Height = lineCross[i] - mCross
				} else {
					c.layout.Width = lineCross[i] - mCross
				}
			}

			start := mainPos
			if s.Direction.IsReverse() {
				start = contentMain - mainPos - it.main
			}
			mainAt := padMain + start + mMainStart
			crossAt := padCross + crossPos + mCrossStart
			if row {
				c.layout.X, c.layout.Y = mainAt, crossAt
			} else {
				c.layout.X, c.layout.Y = crossAt, mainAt
			}
			mainPos += it.main + s.Gap
		}
		crossPos += lineCross[i] + s.Gap
	}

	if row {
		n.layout.Width = contentMain + pad.Horizontal()
		n.layout.Height = contentCross + pad.Vertical()
	} else {
		n.layout.Width = contentCross + pad.Horizontal()
		n.layout.Height = contentMain + pad.Vertical()
	}
}
