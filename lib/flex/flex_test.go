package flex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixed(w, h float64) MeasureFunc {
	return func(KnownDimensions, Available) (float64, float64) {
		return w, h
	}
}

var unbounded = Available{
	Width:  AvailableSpace{Kind: MaxContent},
	Height: AvailableSpace{Kind: MaxContent},
}

func TestRowWithGapAndPadding(t *testing.T) {
	t.Parallel()

	tr := New()
	a := tr.NewLeaf(Style{}, fixed(10, 10))
	b := tr.NewLeaf(Style{}, fixed(20, 5))
	root := tr.NewWithChildren(Style{
		Direction:  Row,
		Gap:        5,
		Padding:    Edges{2, 2, 2, 2},
		AlignItems: AlignStart,
	}, a, b)

	require.NoError(t, tr.ComputeLayout(root, unbounded))
	assert.Equal(t, Layout{X: 2, Y: 2, Width: 10, Height: 10}, tr.Layout(a))
	assert.Equal(t, Layout{X: 17, Y: 2, Width: 20, Height: 5}, tr.Layout(b))
	assert.Equal(t, Layout{Width: 39, Height: 14}, tr.Layout(root))
}

func TestColumnReverse(t *testing.T) {
	t.Parallel()

	tr := New()
	a := tr.NewLeaf(Style{}, fixed(10, 10))
	b := tr.NewLeaf(Style{}, fixed(10, 20))
	root := tr.NewWithChildren(Style{Direction: ColumnReverse}, a, b)

	require.NoError(t, tr.ComputeLayout(root, unbounded))
	assert.Equal(t, 20., tr.Layout(a).Y)
	assert.Equal(t, 0., tr.Layout(b).Y)
	assert.Equal(t, 30., tr.Layout(root).Height)
}

func TestRowWrap(t *testing.T) {
	t.Parallel()

	tr := New()
	var leaves []NodeID
	for i := 0; i < 3; i++ {
		leaves = append(leaves, tr.NewLeaf(Style{}, fixed(10, 10)))
	}
	root := tr.NewWithChildren(Style{Direction: Row, Wrap: true}, leaves...)

	require.NoError(t, tr.ComputeLayout(root, Available{
		Width:  DefiniteSpace(25),
		Height: AvailableSpace{Kind: MaxContent},
	}))
	assert.Equal(t, Layout{X: 0, Y: 0, Width: 10, Height: 10}, tr.Layout(leaves[0]))
	assert.Equal(t, Layout{X: 10, Y: 0, Width: 10, Height: 10}, tr.Layout(leaves[1]))
	assert.Equal(t, Layout{X: 0, Y: 10, Width: 10, Height: 10}, tr.Layout(leaves[2]))
	assert.Equal(t, Layout{Width: 20, Height: 20}, tr.Layout(root))
}

func TestStretch(t *testing.T) {
	t.Parallel()

	tr := New()
	a := tr.NewLeaf(Style{}, fixed(10, 10))
	b := tr.NewLeaf(Style{}, fixed(10, 30))
	root := tr.NewWithChildren(Style{Direction: Row}, a, b)

	require.NoError(t, tr.ComputeLayout(root, unbounded))
	assert.Equal(t, 30., tr.Layout(a).Height)
}

func TestMeasureReceivesInnerSpace(t *testing.T) {
	t.Parallel()

	var got Available
	tr := New()
	leaf := tr.NewLeaf(Style{Margin: Edges{Left: 3, Right: 2}}, func(_ KnownDimensions, a Available) (float64, float64) {
		got = a
		return 1, 1
	})
	root := tr.NewWithChildren(Style{Direction: Column, Padding: Edges{5, 5, 5, 5}}, leaf)

	require.NoError(t, tr.ComputeLayout(root, Available{
		Width:  DefiniteSpace(100),
		Height: AvailableSpace{Kind: MinContent},
	}))
	assert.Equal(t, DefiniteSpace(85), got.Width)
	assert.Equal(t, MinContent, got.Height.Kind)
	assert.Equal(t, 8., tr.Layout(leaf).X)
	assert.Equal(t, 5., tr.Layout(leaf).Y)
}

func TestNoWrapRowShrinksAvailableSpace(t *testing.T) {
	t.Parallel()

	var widths []float64
	measure := func(_ KnownDimensions, a Available) (float64, float64) {
		widths = append(widths, a.Width.Value)
		return 30, 10
	}
	tr := New()
	a := tr.NewLeaf(Style{}, measure)
	b := tr.NewLeaf(Style{}, measure)
	root := tr.NewWithChildren(Style{Direction: Row, Gap: 10}, a, b)

	require.NoError(t, tr.ComputeLayout(root, Available{Width: DefiniteSpace(100), Height: DefiniteSpace(100)}))
	assert.Equal(t, []float64{100, 60}, widths)
}

func TestParentAndChildren(t *testing.T) {
	t.Parallel()

	tr := New()
	a := tr.NewLeaf(Style{}, nil)
	root := tr.NewWithChildren(Style{}, a)

	p, ok := tr.Parent(a)
	assert.True(t, ok)
	assert.Equal(t, root, p)
	_, ok = tr.Parent(root)
	assert.False(t, ok)
	assert.Equal(t, []NodeID{a}, tr.Children(root))
	assert.Error(t, tr.ComputeLayout(NodeID(42), unbounded))
}
