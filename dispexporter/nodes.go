package dispexporter

import (
	"fmt"
	"math"
	"strings"

	"github.com/azriel91/disposition-sub001/dispir"
	"github.com/azriel91/disposition-sub001/displayout"
	"github.com/azriel91/disposition-sub001/dispmodel"
	"github.com/azriel91/disposition-sub001/disptarget"
	"github.com/azriel91/disposition-sub001/lib/geo"
	"github.com/azriel91/disposition-sub001/lib/svg"
	"github.com/azriel91/disposition-sub001/lib/tailwind"
)

// shapePath selects a node's own outline and not its circle or the paths of
// nested nodes.
const shapePath = "[&>path:first-of-type]:"

// processState is what a process and its steps need to collapse and expand.
type processState struct {
	info *disptarget.SvgProcessInfo
	// focus is the variant prefix active while the process or a step has
	// focus.
	focus string
}

func (e *exporter) processStates() map[dispir.NodeID]*processState {
	states := make(map[dispir.NodeID]*processState)
	shift := 0.
	i := 0
	e.d.ProcessSteps.Range(func(p dispir.NodeID, steps []dispir.NodeID) bool {
		nb, ok := e.lay.Boxes.Get(p)
		if !ok {
			return true
		}
		total := 0.
		if ids := e.lay.Layouts[p]; len(steps) > 0 && ids.Children >= 0 {
			total = e.lay.Tree.Layout(ids.Children).Height + e.lay.Tree.Style(ids.Outer).Gap
		}
		focusIDs := []string{string(p)}
		for _, s := range steps {
			focusIDs = append(focusIDs, string(s))
		}
		states[p] = &processState{
			info: &disptarget.SvgProcessInfo{
				ProcessID:        p,
				ProcessStepIDs:   steps,
				ProcessIndex:     i,
				HeightToExpandTo: geo.Round(nb.Box.Height),
				TotalStepsHeight: geo.Round(total),
				BaseY:            geo.Round(nb.Box.TopLeft.Y - shift),
			},
			focus: tailwind.GroupHasFocus(focusIDs...),
		}
		shift += total
		i++
		return true
	})
	return states
}

func (e *exporter) exportNodes() error {
	states := e.processStates()
	var processOrder []*processState
	e.d.ProcessSteps.Range(func(p dispir.NodeID, _ []dispir.NodeID) bool {
		if st, ok := states[p]; ok {
			processOrder = append(processOrder, st)
		}
		return true
	})
	stepOf := make(map[dispir.NodeID]*processState)
	for _, st := range processOrder {
		for _, s := range st.info.ProcessStepIDs {
			stepOf[s] = st
		}
	}

	var err error
	e.d.NodeHierarchy.Walk(func(entry dispir.NodeEntry, parent dispir.NodeID, _ int) {
		if err != nil {
			return
		}
		nb, ok := e.lay.Boxes.Get(entry.ID)
		if !ok {
			err = fmt.Errorf("node %q was not laid out", entry.ID)
			return
		}
		rel := nb.Box.TopLeft
		if parent != "" {
			if pb, ok := e.lay.Boxes.Get(parent); ok {
				rel = geo.NewPoint(rel.X-pb.Box.TopLeft.X, rel.Y-pb.Box.TopLeft.Y)
			}
		}

		n := e.node(entry.ID, nb)
		classes := strings.Fields(e.d.Classes(dispmodel.ID(entry.ID)))
		y := rel.Y
		collapsedPath := n.PathDCollapsed

		switch kind, _ := e.d.NodeKinds.Get(entry.ID); kind {
		case dispir.NodeProcess:
			st, ok := states[entry.ID]
			if !ok {
				break
			}
			n.ProcessInfo = st.info
			n.HeightCollapsed = geo.Round(nb.Box.Height - st.info.TotalStepsHeight)
			n.PathDCollapsed = e.rect(entry.ID, nb.Box.Width, n.HeightCollapsed)
			collapsedPath = n.PathDCollapsed
			y = st.info.BaseY
			if st.info.TotalStepsHeight > 0 {
				st.info.PathDExpanded = e.rect(entry.ID, nb.Box.Width, nb.Box.Height)
				classes = append(classes, st.focus+shapePath+pathClass(st.info.PathDExpanded))
			}
			// Earlier processes push this one down while they are expanded.
			for _, prev := range processOrder[:st.info.ProcessIndex] {
				if prev.info.TotalStepsHeight > 0 {
					classes = append(classes, prev.focus+"translate-y-["+px(y+prev.info.TotalStepsHeight)+"]")
				}
			}
		case dispir.NodeProcessStep:
			if st, ok := stepOf[entry.ID]; ok {
				n.ProcessInfo = st.info
				classes = append(withoutVisibility(classes), "invisible", st.focus+"visible")
			}
		}

		classes = append(classes,
			"translate-x-["+px(rel.X)+"]",
			"translate-y-["+px(y)+"]",
			shapePath+pathClass(collapsedPath),
		)
		n.Classes = strings.Join(classes, " ")
		e.out.Nodes = append(e.out.Nodes, n)
	})
	return err
}

func (e *exporter) node(id dispir.NodeID, nb displayout.NodeBox) disptarget.SvgNodeInfo {
	tab, _ := e.d.NodeOrdering.Get(id)
	n := disptarget.SvgNodeInfo{
		NodeID:          id,
		TabIndex:        tab,
		X:               geo.Round(nb.Box.TopLeft.X),
		Y:               geo.Round(nb.Box.TopLeft.Y),
		Width:           geo.Round(nb.Box.Width),
		HeightCollapsed: geo.Round(nb.Box.Height),
		PathDCollapsed:  e.rect(id, nb.Box.Width, nb.Box.Height),
	}
	n.Tooltip, _ = e.d.EntityTooltips.Get(dispmodel.ID(id))
	n.CopyText, _ = e.d.NodeCopyText.Get(id)

	if nb.Circle != nil {
		r := nb.Circle.Width / 2
		c := nb.Circle.Center()
		n.CirclePathD = svg.Circle(c.X, c.Y, r)
	}
	if nb.Text != nil {
		for _, s := range nb.Text.Spans {
			if s.Text == "" {
				continue
			}
			n.TextSpans = append(n.TextSpans, disptarget.TextSpan{
				Text: s.Text,
				X:    geo.Round(nb.TextOffset.X + s.X),
				Y:    geo.Round(nb.TextOffset.Y + s.Y),
				Fill: s.Fill,
				Kind: s.Kind.String(),
			})
		}
	}
	return n
}

// rect is the outline of a node at the given size. Radii are clamped so
// that opposite arcs never overlap.
func (e *exporter) rect(id dispir.NodeID, w, h float64) string {
	shape, ok := e.d.NodeShapes.Get(id)
	radii := dispir.Corners{
		TopLeft: dispir.DefaultRadius, TopRight: dispir.DefaultRadius,
		BottomLeft: dispir.DefaultRadius, BottomRight: dispir.DefaultRadius,
	}
	if ok {
		radii = shape.Radii
	}
	limit := math.Max(0, math.Min(w, h)/2)
	clamp := func(r float64) float64 {
		return math.Min(math.Max(r, 0), limit)
	}
	return svg.RoundedRect(w, h, svg.Corners{
		TopLeft:     clamp(radii.TopLeft),
		TopRight:    clamp(radii.TopRight),
		BottomLeft:  clamp(radii.BottomLeft),
		BottomRight: clamp(radii.BottomRight),
	})
}

// pathClass sets the d property of the selected path.
func pathClass(d string) string {
	return "[d:path('" + tailwind.Arbitrary(d) + "')]"
}

func withoutVisibility(classes []string) []string {
	out := classes[:0:0]
	for _, c := range classes {
		switch c {
		case "visible", "invisible", "collapse":
			continue
		}
		out = append(out, c)
	}
	return out
}
