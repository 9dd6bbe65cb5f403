// Package dispsvg serializes positioned diagram records into a standalone
// SVG document.
//
// Interactivity lives entirely in the generated stylesheet: nodes are
// focusable groups and every focus effect is a selector on the root
// element, which carries the "group" class.
package dispsvg

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/azriel91/disposition-sub001/dispir"
	"github.com/azriel91/disposition-sub001/disptarget"
	"github.com/azriel91/disposition-sub001/dispthemes"
	"github.com/azriel91/disposition-sub001/lib/geo"
	"github.com/azriel91/disposition-sub001/lib/svg"
	"github.com/azriel91/disposition-sub001/lib/tailwind"
	"github.com/azriel91/disposition-sub001/lib/textmeasure"
)

const DEFAULT_PADDING = 0

type RenderOpts struct {
	Pad      *int64
	FontSize *float64
	// OmitStyle leaves out the style element, for pages that already carry
	// the diagram's stylesheet.
	OmitStyle *bool
}

func num(v float64) string {
	return strconv.FormatFloat(geo.Round(v), 'f', -1, 64)
}

// Stylesheet compiles the classes of every record and appends the keyframes
// they animate with and the diagram's own css. Classes that compile to
// nothing are returned in unknown.
func Stylesheet(d *disptarget.Diagram) (css string, unknown []string) {
	classes := d.Classes()
	css, unknown = tailwind.Compile(classes...)

	var sb strings.Builder
	sb.WriteString(css)
	for _, kf := range dispthemes.Keyframes(classes...) {
		sb.WriteString(kf)
		sb.WriteByte('\n')
	}
	seen := make(map[string]struct{})
	for _, e := range d.Edges {
		for _, kf := range strings.Split(e.KeyframeCSS, "\n") {
			if kf == "" {
				continue
			}
			if _, ok := seen[kf]; ok {
				continue
			}
			seen[kf] = struct{}{}
			sb.WriteString(kf)
			sb.WriteByte('\n')
		}
	}
	if d.Css != "" {
		sb.WriteString(d.Css)
		if !strings.HasSuffix(d.Css, "\n") {
			sb.WriteByte('\n')
		}
	}
	return sb.String(), unknown
}

// cdata wraps css so that selectors like .a>b need no escaping.
func cdata(s string) string {
	return "<![CDATA[" + strings.ReplaceAll(svg.Sanitize(s), "]]>", "]]]]><![CDATA[>") + "]]>"
}

func Render(d *disptarget.Diagram, opts *RenderOpts) ([]byte, error) {
	pad := float64(DEFAULT_PADDING)
	fontSize := textmeasure.DefaultFontSize
	omitStyle := false
	if opts != nil {
		if opts.Pad != nil {
			pad = float64(*opts.Pad)
		}
		if opts.FontSize != nil {
			fontSize = *opts.FontSize
		}
		if opts.OmitStyle != nil {
			omitStyle = *opts.OmitStyle
		}
	}

	nodes := make(map[dispir.NodeID]*disptarget.SvgNodeInfo, len(d.Nodes))
	for i := range d.Nodes {
		nodes[d.Nodes[i].NodeID] = &d.Nodes[i]
	}

	buf := &bytes.Buffer{}
	w, h := d.Width+2*pad, d.Height+2*pad
	fmt.Fprintf(buf,
		`<svg xmlns="http://www.w3.org/2000/svg" version="1.1" width="%s" height="%s" viewBox="%s %s %s %s" font-family="monospace" font-size="%s" class="group">`,
		num(w), num(h), num(-pad), num(-pad), num(w), num(h), num(fontSize),
	)

	if !omitStyle {
		if css, _ := Stylesheet(d); css != "" {
			fmt.Fprintf(buf, `<style type="text/css">%s</style>`, cdata(css))
		}
	}

	var err error
	var drawNodes func(h dispir.NodeHierarchy, parent *disptarget.SvgNodeInfo)
	drawNodes = func(h dispir.NodeHierarchy, parent *disptarget.SvgNodeInfo) {
		for _, e := range h {
			n, ok := nodes[e.ID]
			if !ok {
				if err == nil {
					err = fmt.Errorf("no record for node %q", e.ID)
				}
				return
			}
			openNode(buf, n, parent)
			drawNodes(e.Children, n)
			buf.WriteString(`</g>`)
		}
	}
	drawNodes(tabOrdered(d.Hierarchy, nodes), nil)
	if err != nil {
		return nil, err
	}

	for _, e := range d.Edges {
		drawEdge(buf, e)
	}

	buf.WriteString(`</svg>`)
	return buf.Bytes(), nil
}

// tabOrdered sorts the top level entries by tab index. Every group is
// focusable at tabindex 0, so keyboard order is document order. Nested
// entries already follow tab order.
func tabOrdered(h dispir.NodeHierarchy, nodes map[dispir.NodeID]*disptarget.SvgNodeInfo) dispir.NodeHierarchy {
	tab := func(id dispir.NodeID) uint32 {
		if n, ok := nodes[id]; ok {
			return n.TabIndex
		}
		return 0
	}
	out := append(dispir.NodeHierarchy(nil), h...)
	sort.SliceStable(out, func(i, j int) bool {
		return tab(out[i].ID) < tab(out[j].ID)
	})
	return out
}

// openNode writes a node's group up to, and not including, its children and
// closing tag. The transform attribute mirrors the translate classes for
// renderers without CSS.
func openNode(buf *bytes.Buffer, n, parent *disptarget.SvgNodeInfo) {
	x, y := n.X, n.Y
	if parent != nil {
		x, y = x-parent.X, y-parent.Y
	}
	if n.ProcessInfo != nil && n.ProcessInfo.ProcessID == n.NodeID {
		y = n.ProcessInfo.BaseY
	}

	fmt.Fprintf(buf, `<g id="%s" tabindex="0" class="%s" transform="translate(%s %s)"`,
		svg.EscapeText(string(n.NodeID)), svg.EscapeClass(n.Classes), num(x), num(y))
	if n.CopyText != "" {
		fmt.Fprintf(buf, ` data-copy-text="%s"`, svg.EscapeText(n.CopyText))
	}
	buf.WriteByte('>')

	if n.Tooltip != "" {
		fmt.Fprintf(buf, `<title>%s</title>`, svg.EscapeText(n.Tooltip))
	}
	fmt.Fprintf(buf, `<path d="%s"></path>`, n.PathDCollapsed)
	if n.CirclePathD != "" {
		fmt.Fprintf(buf, `<path d="%s"></path>`, n.CirclePathD)
	}
	for _, s := range n.TextSpans {
		text := svg.EscapeText(s.Text)
		if s.Fill != "" {
			// A tspan's own fill outranks the fill its text inherits from
			// the node's classes.
			text = fmt.Sprintf(`<tspan fill="%s">%s</tspan>`, svg.EscapeText(s.Fill), text)
		}
		fmt.Fprintf(buf, `<text x="%s" y="%s" class="%s">%s</text>`, num(s.X), num(s.Y), s.Kind, text)
	}
}

func drawEdge(buf *bytes.Buffer, e disptarget.SvgEdgeInfo) {
	fmt.Fprintf(buf, `<g id="%s" class="%s">`, svg.EscapeText(string(e.EdgeID)), svg.EscapeClass(e.Classes))
	if e.Tooltip != "" {
		fmt.Fprintf(buf, `<title>%s</title>`, svg.EscapeText(e.Tooltip))
	}
	fmt.Fprintf(buf, `<path d="%s" class="%s"></path>`, e.PathD, svg.EscapeClass(e.PathClasses))
	fmt.Fprintf(buf, `<path d="%s" class="%s"></path>`, e.ArrowHeadPathD, svg.EscapeClass(e.ArrowHeadClasses))
	buf.WriteString(`</g>`)
}
