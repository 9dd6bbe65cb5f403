package dispexporter

import (
	"fmt"
	"math"
	"strings"

	"github.com/azriel91/disposition-sub001/dispcompiler"
	"github.com/azriel91/disposition-sub001/dispir"
	"github.com/azriel91/disposition-sub001/dispmodel"
	"github.com/azriel91/disposition-sub001/disprenderers/dispanimate"
	"github.com/azriel91/disposition-sub001/disptarget"
	"github.com/azriel91/disposition-sub001/lib/geo"
	"github.com/azriel91/disposition-sub001/lib/svg"
	"github.com/azriel91/disposition-sub001/lib/tailwind"
)

// Route returns the curve of an edge from box from to box to. The curve runs
// from the to node back to the from node, so it starts at the arrowhead's
// tip. Self loops leave and re-enter the right face at the same point.
// paired moves both anchors off the face midpoints, to the left of the
// direction of travel, so an edge and its reverse stay apart.
func Route(from, to geo.Box, self, paired bool) geo.CubicBezier {
	if self {
		f := geo.FaceRight
		a := from.FaceMidpoint(f)
		out := f.Normal().Multiply(SelfLoopSize)
		along := f.Tangent().Multiply(SelfLoopSize / 2)
		return geo.NewCubicBezier(a, a.Add(out.Add(along)), a.Add(out.Minus(along)), a)
	}

	fromFace := from.FaceTowards(to.Center())
	toFace := to.FaceTowards(from.Center())
	start := from.FaceMidpoint(fromFace)
	end := to.FaceMidpoint(toFace)
	if paired {
		side := from.Center().VectorTo(to.Center()).Unit().Perpendicular()
		start = start.Add(slide(fromFace, side))
		end = end.Add(slide(toFace, side))
	}

	pull := math.Max(start.DistanceTo(end)*CurveFactor, ArrowHeadLength)
	c := geo.NewCubicBezier(
		start,
		start.Add(fromFace.Normal().Multiply(pull)),
		end.Add(toFace.Normal().Multiply(pull)),
		end,
	)
	return c.Reverse()
}

// slide moves an anchor PairGap along its face, towards side.
func slide(f geo.Face, side geo.Vector) geo.Vector {
	t := f.Tangent()
	if t.X*side.X+t.Y*side.Y < 0 {
		t = t.Reverse()
	}
	return t.Multiply(PairGap)
}

// PathD renders a curve as absolute path data.
func PathD(c geo.CubicBezier) string {
	p := svg.NewSVGPathContext(geo.Point{})
	p.StartAt(c.P0.X, c.P0.Y)
	p.C(c.P1.X, c.P1.Y, c.P2.X, c.P2.Y, c.P3.X, c.P3.Y)
	return p.PathData()
}

// ArrowHead is a closed V with its tip at the start of c, opening along the
// curve so that it points at the node the curve starts on.
func ArrowHead(c geo.CubicBezier) string {
	tangent, ok := c.StartTangent()
	if !ok {
		tangent = geo.NewVector(1, 0)
	}
	t := tangent.Unit()
	n := t.Perpendicular()
	tip := c.P0
	back := tip.Add(t.Multiply(ArrowHeadLength))
	w1 := back.Add(n.Multiply(-ArrowHeadHalfWidth))
	w2 := back.Add(n.Multiply(ArrowHeadHalfWidth))

	p := svg.NewSVGPathContext(geo.Point{})
	p.StartAt(w1.X, w1.Y)
	p.L(tip.X, tip.Y)
	p.L(w2.X, w2.Y)
	p.Z()
	return p.PathData()
}

// MovingArrowHead is a V with its tip at the origin pointing along +x. It is
// placed on the edge by offset-path.
func MovingArrowHead() string {
	p := svg.NewSVGPathContext(geo.Point{})
	p.StartAt(-ArrowHeadLength, -ArrowHeadHalfWidth)
	p.L(0, 0)
	p.L(-ArrowHeadLength, ArrowHeadHalfWidth)
	p.Z()
	return p.PathData()
}

type routed struct {
	edge  dispir.Edge
	group dispmodel.EdgeGroupID
	rel   dispir.Relation
	curve geo.CubicBezier
}

func (e *exporter) exportEdges() error {
	type pair struct{ from, to dispir.NodeID }
	exists := make(map[pair]struct{})
	for _, edge := range e.d.Edges() {
		exists[pair{edge.From, edge.To}] = struct{}{}
	}

	var all []routed
	var err error
	e.d.EdgeGroups.Range(func(gid dispmodel.EdgeGroupID, g dispir.EdgeGroup) bool {
		for _, edge := range g.Edges {
			from, ok1 := e.lay.Boxes.Get(edge.From)
			to, ok2 := e.lay.Boxes.Get(edge.To)
			if !ok1 || !ok2 {
				err = fmt.Errorf("edge %q connects nodes that were not laid out", edge.ID)
				return false
			}
			self := edge.From == edge.To
			_, paired := exists[pair{edge.To, edge.From}]
			all = append(all, routed{
				edge:  edge,
				group: gid,
				rel:   g.Relation,
				curve: Route(from.Box, to.Box, self, paired && !self),
			})
		}
		return true
	})
	if err != nil {
		return err
	}

	animations := e.animate(all)
	for i, r := range all {
		e.out.Edges = append(e.out.Edges, e.edge(r, animations[i]))
	}
	return nil
}

// animate plans the animation of every interaction edge, group by group.
func (e *exporter) animate(all []routed) []*dispanimate.Animation {
	out := make([]*dispanimate.Animation, len(all))
	for start := 0; start < len(all); {
		end := start
		for end < len(all) && all[end].group == all[start].group {
			end++
		}
		if all[start].rel == dispir.Interaction {
			paths := make([]dispanimate.EdgePath, 0, end-start)
			for _, r := range all[start:end] {
				paths = append(paths, dispanimate.EdgePath{
					ID:       r.edge.ID,
					Length:   r.curve.Length(),
					Response: r.edge.Direction == dispir.Reverse,
				})
			}
			for i, a := range dispanimate.Group(paths, e.opts.Animation) {
				a := a
				out[start+i] = &a
			}
		}
		start = end
	}
	return out
}

func (e *exporter) edge(r routed, a *dispanimate.Animation) disptarget.SvgEdgeInfo {
	pathD := PathD(r.curve)
	info := disptarget.SvgEdgeInfo{
		EdgeID:      r.edge.ID,
		EdgeGroupID: r.group,
		FromNodeID:  r.edge.From,
		ToNodeID:    r.edge.To,
		PathD:       pathD,
		PathLength:  geo.Round(r.curve.Length()),
		Classes:     e.d.Classes(dispmodel.ID(r.edge.ID)),
	}
	if tt, ok := e.d.EntityTooltips.Get(dispmodel.ID(r.edge.ID)); ok {
		info.Tooltip = tt
	} else {
		info.Tooltip, _ = e.d.EntityTooltips.Get(dispmodel.ID(r.group))
	}

	pathClasses := []string{"fill-none"}
	headClasses := []string{dispcompiler.DashArray("solid")}
	if a == nil {
		info.ArrowHeadPathD = ArrowHead(r.curve)
	} else {
		info.ArrowHeadPathD = MovingArrowHead()
		info.Dasharray = a.Dasharray
		info.AnimationName = a.Name
		info.KeyframeCSS = a.Keyframes + "\n" + a.ArrowHeadKeyframes
		info.AnimationDurationS = a.DurationS
		duration := num(a.DurationS) + "s"
		pathClasses = append(pathClasses,
			"[stroke-dasharray:"+a.Dasharray+"]",
			"animate-["+a.Name+"_"+duration+"_linear_infinite]",
		)
		headClasses = append(headClasses,
			"[offset-path:path('"+tailwind.Arbitrary(pathD)+"')]",
			"[offset-rotate:reverse]",
			"animate-["+a.ArrowHeadName+"_"+duration+"_linear_infinite]",
		)
	}
	info.PathClasses = strings.Join(pathClasses, " ")
	info.ArrowHeadClasses = strings.Join(headClasses, " ")
	return info
}
