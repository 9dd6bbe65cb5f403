package displayout_test

import (
	"context"
	"testing"

	tassert "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oss.terrastruct.com/util-go/assert"

	"github.com/azriel91/disposition-sub001/dispcompiler"
	"github.com/azriel91/disposition-sub001/dispir"
	"github.com/azriel91/disposition-sub001/displayout"
	"github.com/azriel91/disposition-sub001/dispmodel"
	"github.com/azriel91/disposition-sub001/lib/geo"
	"github.com/azriel91/disposition-sub001/lib/log"
)

func layout(t *testing.T, text string, vp displayout.Viewport, lod displayout.LevelOfDetail) (*dispir.Diagram, *displayout.Result, dispmodel.Issues) {
	ctx := log.WithTB(context.Background(), t)
	in, err := dispmodel.Parse([]byte(text))
	require.NoError(t, err)
	d, _, err := dispcompiler.Compile(ctx, in)
	require.NoError(t, err)
	res, issues, err := displayout.Layout(ctx, d, vp, lod, nil)
	require.NoError(t, err)
	return d, res, issues
}

func box(t *testing.T, res *displayout.Result, id dispir.NodeID) displayout.NodeBox {
	b, ok := res.Boxes.Get(id)
	require.True(t, ok, "no box for %s", id)
	return b
}

func contains(outer, inner geo.Box) bool {
	const e = 1e-6
	return inner.TopLeft.X >= outer.TopLeft.X-e &&
		inner.TopLeft.Y >= outer.TopLeft.Y-e &&
		inner.TopLeft.X+inner.Width <= outer.TopLeft.X+outer.Width+e &&
		inner.TopLeft.Y+inner.Height <= outer.TopLeft.Y+outer.Height+e
}

func TestSingleThing(t *testing.T) {
	t.Parallel()

	_, res, issues := layout(t, `things: { a: A }`, displayout.DefaultViewport, displayout.Normal)
	tassert.Empty(t, issues)

	b := box(t, res, "a")
	tassert.Equal(t, displayout.Leaf, b.Shape)
	tassert.Equal(t, geo.NewPoint(0, 0), b.Box.TopLeft)
	// One grapheme plus one of slack at 6.6px, and 4px of padding each side.
	tassert.InDelta(t, 2*6.6+8, b.Box.Width, 1e-9)
	tassert.InDelta(t, 13.2+8, b.Box.Height, 1e-9)
	tassert.Equal(t, geo.NewPoint(4, 4), b.TextOffset)
	require.NotNil(t, b.Text)
	tassert.Len(t, b.Text.Spans, 1)
	tassert.InDelta(t, b.Box.Width, res.Width, 1e-9)
}

func TestLayout(t *testing.T) {
	t.Parallel()

	d, res, _ := layout(t, `
things: { t1: Thing one, t2: Thing two, t3: Nested }
thing_hierarchy:
  t2:
    t3: {}
processes:
  p1:
    name: Deploy
    steps: { s1: Build, s2: Ship }
tags: { tag1: Tag one }
`, displayout.DefaultViewport, displayout.Normal)

	res.Boxes.Range(func(id dispir.NodeID, b displayout.NodeBox) bool {
		tassert.GreaterOrEqual(t, b.Box.TopLeft.X, 0., id)
		tassert.GreaterOrEqual(t, b.Box.TopLeft.Y, 0., id)
		return true
	})

	// Absolute positions are the sum of parent relative ones.
	for id, ids := range res.Layouts {
		sum := geo.Point{}
		for n, ok := ids.Outer, true; ok; n, ok = res.Tree.Parent(n) {
			sum.X += res.Tree.Layout(n).X
			sum.Y += res.Tree.Layout(n).Y
		}
		tassert.Equal(t, sum, box(t, res, id).Box.TopLeft, id)
	}

	p1 := box(t, res, "p1")
	tassert.Equal(t, displayout.Wrapper, p1.Shape)
	steps := 0.
	for _, s := range []dispir.NodeID{"s1", "s2"} {
		sb := box(t, res, s)
		tassert.True(t, contains(p1.Box, sb.Box), s)
		steps += sb.Box.Height
	}
	tassert.Less(t, steps, p1.Box.Height)

	tassert.True(t, contains(box(t, res, "t2").Box, box(t, res, "t3").Box))
	tassert.Less(t, box(t, res, "tag1").Box.TopLeft.Y, box(t, res, "t1").Box.TopLeft.Y)
	tassert.Less(t, p1.Box.TopLeft.X, box(t, res, "t1").Box.TopLeft.X)
	tassert.Equal(t, d.Nodes.Len()+5, res.Boxes.Len())
}

func TestLevelOfDetail(t *testing.T) {
	t.Parallel()

	text := `
things: { a: A }
entity_descs:
  a: |
    Some words.

    ` + "```go" + `
    func main() {}
    ` + "```" + `
`
	_, normal, _ := layout(t, text, displayout.DefaultViewport, displayout.Normal)
	_, simple, _ := layout(t, text, displayout.DefaultViewport, displayout.Simple)

	nb, sb := box(t, normal, "a"), box(t, simple, "a")
	tassert.Greater(t, nb.Box.Height, sb.Box.Height)
	tassert.Len(t, sb.Text.Spans, 1)
	tassert.Greater(t, len(nb.Text.Spans), 2)
}

func TestMeasurementOverflow(t *testing.T) {
	t.Parallel()

	_, res, issues := layout(t, `things: { a: Supercalifragilisticexpialidocious }`,
		displayout.CustomViewport(60, 100), displayout.Normal)
	tassert.Len(t, issues.Of(dispmodel.MeasurementOverflow), 1)
	// Wrapped to 7 graphemes a line instead of one long line.
	tassert.Less(t, box(t, res, "a").Box.Width, 100.)
}

func TestCircle(t *testing.T) {
	t.Parallel()

	_, res, _ := layout(t, `
things: { a: A }
theme_default:
  base_styles:
    a: { circle_radius: "5" }
`, displayout.DefaultViewport, displayout.Normal)
	b := box(t, res, "a")
	tassert.Equal(t, displayout.LeafWithCircle, b.Shape)
	require.NotNil(t, b.Circle)
	tassert.Equal(t, geo.NewBox(4, 4, 10, 10), *b.Circle)
	tassert.InDelta(t, 4+10+5, b.TextOffset.X, 1e-9)
}

func TestParseViewport(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		in     string
		exp    displayout.Viewport
		expErr string
	}{
		{in: "sm", exp: displayout.Viewport{Kind: displayout.Sm, Width: 640, Height: 480}},
		{in: "2XL", exp: displayout.Viewport{Kind: displayout.XXl, Width: 1536, Height: 1152}},
		{in: "800x600", exp: displayout.CustomViewport(800, 600)},
		{in: "huge", expErr: `invalid viewport "huge": expected sm, md, lg, xl, 2xl or WIDTHxHEIGHT`},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.in, func(t *testing.T) {
			t.Parallel()

			vp, err := displayout.ParseViewport(tc.in)
			if tc.expErr != "" {
				assert.ErrorString(t, err, tc.expErr)
				return
			}
			assert.Success(t, err)
			tassert.Equal(t, tc.exp, vp)
			if tc.exp.Kind == displayout.Custom {
				assert.String(t, tc.in, vp.String())
			}
		})
	}
}
