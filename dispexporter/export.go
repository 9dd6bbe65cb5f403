// Package dispexporter turns a laid out IR diagram into the positioned node
// and edge records that the SVG renderer serializes.
package dispexporter

import (
	"context"
	"strconv"

	"oss.terrastruct.com/util-go/xdefer"

	"cdr.dev/slog"

	"github.com/azriel91/disposition-sub001/dispir"
	"github.com/azriel91/disposition-sub001/displayout"
	"github.com/azriel91/disposition-sub001/disprenderers/dispanimate"
	"github.com/azriel91/disposition-sub001/disptarget"
	"github.com/azriel91/disposition-sub001/lib/geo"
	"github.com/azriel91/disposition-sub001/lib/log"
)

const (
	ArrowHeadLength    = 8.
	ArrowHeadHalfWidth = 4.
	// PairGap is how far the anchors of an edge whose reverse also exists
	// move off the face midpoint.
	PairGap = 4.
	// CurveFactor scales the distance between the endpoints into the
	// distance control points are pulled out of their faces.
	CurveFactor  = .4
	SelfLoopSize = 24.
)

type Options struct {
	// Animation defaults to dispanimate.DefaultOptions.
	Animation *dispanimate.Options
}

type exporter struct {
	ctx  context.Context
	d    *dispir.Diagram
	lay  *displayout.Result
	opts *Options
	out  *disptarget.Diagram

	parents map[dispir.NodeID]dispir.NodeID
}

// Export builds the records of every node and edge in d.
func Export(ctx context.Context, d *dispir.Diagram, lay *displayout.Result, opts *Options) (_ *disptarget.Diagram, err error) {
	defer xdefer.Errorf(&err, "failed to export diagram")

	if opts == nil {
		opts = &Options{}
	}
	done := log.Stage(ctx, "export")
	e := &exporter{
		ctx:  ctx,
		d:    d,
		lay:  lay,
		opts: opts,
		out: &disptarget.Diagram{
			Width:     geo.Round(lay.Width),
			Height:    geo.Round(lay.Height),
			Hierarchy: d.NodeHierarchy,
			Css:       d.Css,
		},
		parents: d.NodeHierarchy.Parents(),
	}

	if err := e.exportNodes(); err != nil {
		return nil, err
	}
	if err := e.exportEdges(); err != nil {
		return nil, err
	}

	done(slog.F("nodes", len(e.out.Nodes)), slog.F("edges", len(e.out.Edges)))
	return e.out, nil
}

// px formats a length for an arbitrary value.
func px(v float64) string {
	return num(v) + "px"
}

func num(v float64) string {
	return strconv.FormatFloat(geo.Round(v), 'f', -1, 64)
}
