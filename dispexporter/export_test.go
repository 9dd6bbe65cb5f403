package dispexporter_test

import (
	"context"
	"strconv"
	"strings"
	"testing"

	tassert "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oss.terrastruct.com/util-go/assert"

	"github.com/azriel91/disposition-sub001/dispcompiler"
	"github.com/azriel91/disposition-sub001/dispexporter"
	"github.com/azriel91/disposition-sub001/displayout"
	"github.com/azriel91/disposition-sub001/dispmodel"
	"github.com/azriel91/disposition-sub001/disptarget"
	"github.com/azriel91/disposition-sub001/lib/geo"
	"github.com/azriel91/disposition-sub001/lib/log"
)

func export(t *testing.T, text string) *disptarget.Diagram {
	ctx := log.WithTB(context.Background(), t)
	in, err := dispmodel.Parse([]byte(text))
	assert.Success(t, err)
	ir, _, err := dispcompiler.Compile(ctx, in)
	assert.Success(t, err)
	lay, _, err := displayout.Layout(ctx, ir, displayout.DefaultViewport, displayout.Normal, nil)
	assert.Success(t, err)
	d, err := dispexporter.Export(ctx, ir, lay, nil)
	assert.Success(t, err)
	return d
}

func TestArrowHead(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		curve geo.CubicBezier
		exp   string
	}{
		{
			name:  "along_x",
			curve: geo.NewCubicBezier(geo.NewPoint(10, 10), geo.NewPoint(20, 10), geo.NewPoint(30, 10), geo.NewPoint(40, 10)),
			exp:   "M 18 6 L 10 10 L 18 14 Z",
		},
		{
			name:  "degenerate_first_control",
			curve: geo.NewCubicBezier(geo.NewPoint(10, 10), geo.NewPoint(10, 10), geo.NewPoint(10, 20), geo.NewPoint(10, 30)),
			exp:   "M 14 18 L 10 10 L 6 18 Z",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.String(t, tc.exp, dispexporter.ArrowHead(tc.curve))
		})
	}
}

func TestRoute(t *testing.T) {
	t.Parallel()

	a := geo.NewBox(0, 0, 10, 10)
	b := geo.NewBox(100, 0, 10, 10)

	c := dispexporter.Route(a, b, false, false)
	tassert.Equal(t, geo.NewPoint(100, 5), c.P0)
	tassert.Equal(t, geo.NewPoint(10, 5), c.P3)
	assert.String(t, "M 100 5 C 64 5 46 5 10 5", dispexporter.PathD(c))

	there := dispexporter.Route(a, b, false, true)
	back := dispexporter.Route(b, a, false, true)
	tassert.Equal(t, 9., there.P0.Y)
	tassert.Equal(t, 9., there.P3.Y)
	tassert.Equal(t, 1., back.P0.Y)
	tassert.Equal(t, 1., back.P3.Y)

	loop := dispexporter.Route(a, a, true, false)
	tassert.Equal(t, loop.P0, loop.P3)
	tassert.Equal(t, geo.NewPoint(10, 5), loop.P0)
}

func TestSelfLoop(t *testing.T) {
	t.Parallel()

	d := export(t, `
things: { x: X }
thing_dependencies:
  edge_s: { kind: cyclic, things: [x] }
`)
	require.Len(t, d.Edges, 1)
	e := d.Edges[0]
	tassert.Equal(t, dispmodel.EdgeID("edge_s__0"), e.EdgeID)
	f := strings.Fields(e.PathD)
	tassert.Equal(t, f[1:3], f[len(f)-2:])
	tassert.Empty(t, e.Dasharray)
	tassert.Equal(t, "fill-none", e.PathClasses)
}

func TestNodes(t *testing.T) {
	t.Parallel()

	d := export(t, `
things: { t1: Thing one, t2: "" }
thing_copy_text: { t1: copy me }
entity_tooltips: { t1: tip }
thing_hierarchy:
  t1: { t2: {} }
`)
	require.Len(t, d.Nodes, 2)
	t1, t2 := d.Node("t1"), d.Node("t2")
	require.NotNil(t, t1)
	require.NotNil(t, t2)

	tassert.Equal(t, uint32(1), t1.TabIndex)
	tassert.Equal(t, uint32(2), t2.TabIndex)
	tassert.Equal(t, "copy me", t1.CopyText)
	tassert.Equal(t, "tip", t1.Tooltip)
	tassert.Equal(t, "Thing one", t1.TextSpans[0].Text)
	tassert.Equal(t, "label", t1.TextSpans[0].Kind)
	tassert.Empty(t, t2.TextSpans)
	tassert.True(t, strings.HasPrefix(t1.PathDCollapsed, "M 4 0 H "), t1.PathDCollapsed)

	// Translates are relative to the parent node.
	classes := strings.Fields(t2.Classes)
	tassert.Contains(t, classes, "translate-x-["+num(t2.X-t1.X)+"px]")
	tassert.Contains(t, classes, "translate-y-["+num(t2.Y-t1.Y)+"px]")
	tassert.Contains(t, classes, "[&>path:first-of-type]:[d:path('"+strings.ReplaceAll(t2.PathDCollapsed, " ", "_")+"')]")
}

func TestProcesses(t *testing.T) {
	t.Parallel()

	d := export(t, `
processes:
  p1:
    steps: { s1: Step one, s2: Step two }
  p2:
    steps: { s3: Step three }
  p3: {}
`)
	p1, p2, p3 := d.Node("p1"), d.Node("p2"), d.Node("p3")
	require.NotNil(t, p1.ProcessInfo)
	require.NotNil(t, p2.ProcessInfo)
	require.NotNil(t, p3.ProcessInfo)

	tassert.Greater(t, p1.ProcessInfo.TotalStepsHeight, 0.)
	tassert.InDelta(t, p1.ProcessInfo.HeightToExpandTo-p1.ProcessInfo.TotalStepsHeight, p1.HeightCollapsed, 1e-3)
	tassert.NotEmpty(t, p1.ProcessInfo.PathDExpanded)
	tassert.NotEqual(t, p1.PathDCollapsed, p1.ProcessInfo.PathDExpanded)
	tassert.Equal(t, 0, p1.ProcessInfo.ProcessIndex)
	tassert.Equal(t, 1, p2.ProcessInfo.ProcessIndex)

	tassert.Equal(t, p1.Y, p1.ProcessInfo.BaseY)
	tassert.InDelta(t, p2.Y-p1.ProcessInfo.TotalStepsHeight, p2.ProcessInfo.BaseY, 1e-3)
	focusP1 := `group-has-[#p1:focus-within,#s1:focus-within,#s2:focus-within]:`
	tassert.Contains(t, strings.Fields(p2.Classes), focusP1+"translate-y-["+num(p2.ProcessInfo.BaseY+p1.ProcessInfo.TotalStepsHeight)+"px]")
	tassert.Contains(t, strings.Fields(p1.Classes), focusP1+"[&>path:first-of-type]:[d:path('"+strings.ReplaceAll(p1.ProcessInfo.PathDExpanded, " ", "_")+"')]")

	s1 := strings.Fields(d.Node("s1").Classes)
	tassert.Contains(t, s1, "invisible")
	tassert.Contains(t, s1, focusP1+"visible")
	tassert.NotContains(t, s1, "visible")

	// A process without steps never expands.
	tassert.Equal(t, p3.ProcessInfo.HeightToExpandTo, p3.HeightCollapsed)
	tassert.Empty(t, p3.ProcessInfo.PathDExpanded)
	tassert.NotContains(t, p3.Classes, "group-has-[#p3")
}

func TestInteractionAnimation(t *testing.T) {
	t.Parallel()

	d := export(t, `
things: { p: P, q: Q }
thing_interactions:
  edge_r: { kind: symmetric, things: [p, q] }
`)
	require.Len(t, d.Edges, 2)
	req, resp := d.Edges[0], d.Edges[1]

	tassert.Equal(t, "edge-r--0", req.AnimationName)
	tassert.Equal(t, "edge-r--1", resp.AnimationName)
	tassert.Equal(t, req.AnimationDurationS, resp.AnimationDurationS)
	tassert.Contains(t, req.KeyframeCSS, "@keyframes edge-r--0{")
	tassert.Contains(t, req.KeyframeCSS, "@keyframes edge-r--0-arrow-head{")
	tassert.Contains(t, req.PathClasses, "[stroke-dasharray:"+req.Dasharray+"]")
	tassert.Contains(t, req.ArrowHeadClasses, "[offset-rotate:reverse]")
	assert.String(t, dispexporter.MovingArrowHead(), req.ArrowHeadPathD)

	// The pair does not overlap.
	tassert.NotEqual(t, req.PathD, resp.PathD)
	tassert.Greater(t, req.PathLength, 0.)
}

func num(v float64) string {
	return strconv.FormatFloat(geo.Round(v), 'f', -1, 64)
}
