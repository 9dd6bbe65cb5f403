// Package displib renders a diagram in one call: model, IR, layout, records
// and finally the SVG document.
package displib

import (
	"context"
	"strings"

	"cdr.dev/slog"

	"github.com/azriel91/disposition-sub001/dispcompiler"
	"github.com/azriel91/disposition-sub001/dispexporter"
	"github.com/azriel91/disposition-sub001/dispir"
	"github.com/azriel91/disposition-sub001/displayout"
	"github.com/azriel91/disposition-sub001/dispmodel"
	"github.com/azriel91/disposition-sub001/disprenderers/dispanimate"
	"github.com/azriel91/disposition-sub001/disprenderers/dispsvg"
	"github.com/azriel91/disposition-sub001/disptarget"
	"github.com/azriel91/disposition-sub001/lib/log"
	"github.com/azriel91/disposition-sub001/lib/textmeasure"
)

type RenderOpts struct {
	FontSize  *float64
	Pad       *int64
	OmitStyle *bool
	Animation *dispanimate.Options
	// Ruler is used instead of a new one sized by FontSize. It must not be
	// shared with a concurrent render.
	Ruler *textmeasure.Ruler
}

type Result struct {
	SVG []byte
	// Diagnostics are in order of discovery.
	Diagnostics dispmodel.Issues

	IR     *dispir.Diagram
	Target *disptarget.Diagram
}

// Render compiles in and renders it for the viewport. Diagnostics never fail
// a render; the error is set only for fatal problems.
func Render(ctx context.Context, in *dispmodel.InputDiagram, vp displayout.Viewport, lod displayout.LevelOfDetail, opts *RenderOpts) (*Result, error) {
	if opts == nil {
		opts = &RenderOpts{}
	}
	ruler := opts.Ruler
	if ruler == nil {
		fontSize := textmeasure.DefaultFontSize
		if opts.FontSize != nil {
			fontSize = *opts.FontSize
		}
		ruler = textmeasure.NewRuler(fontSize)
	}

	res := &Result{}
	ir, issues, err := dispcompiler.Compile(ctx, in)
	res.Diagnostics = append(res.Diagnostics, issues...)
	if err != nil {
		return nil, err
	}
	res.IR = ir

	lay, issues, err := displayout.Layout(ctx, ir, vp, lod, ruler)
	res.Diagnostics = append(res.Diagnostics, issues...)
	if err != nil {
		return nil, err
	}

	res.Target, err = dispexporter.Export(ctx, ir, lay, &dispexporter.Options{Animation: opts.Animation})
	if err != nil {
		return nil, err
	}

	if _, unknown := dispsvg.Stylesheet(res.Target); len(unknown) > 0 {
		log.Warn(ctx, "classes without a utility rule", slog.F("classes", strings.Join(unknown, " ")))
	}
	fontSize := ruler.FontSize
	res.SVG, err = dispsvg.Render(res.Target, &dispsvg.RenderOpts{
		Pad:       opts.Pad,
		FontSize:  &fontSize,
		OmitStyle: opts.OmitStyle,
	})
	if err != nil {
		return nil, err
	}

	for _, is := range res.Diagnostics {
		log.Debug(ctx, "diagnostic", slog.F("kind", is.Kind), slog.F("message", is.Message))
	}
	return res, nil
}

// RenderYAML parses src and renders it.
func RenderYAML(ctx context.Context, src []byte, vp displayout.Viewport, lod displayout.LevelOfDetail, opts *RenderOpts) (*Result, error) {
	in, err := dispmodel.Parse(src)
	if err != nil {
		return nil, err
	}
	return Render(ctx, in, vp, lod, opts)
}
