// Package dispcli is the disposition command line: render diagrams to SVG,
// format, validate and inspect them.
package dispcli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"cdr.dev/slog"
	"cdr.dev/slog/sloggers/sloghuman"

	"oss.terrastruct.com/util-go/xdefer"
	"oss.terrastruct.com/util-go/xmain"

	"github.com/azriel91/disposition-sub001/displayout"
	"github.com/azriel91/disposition-sub001/displib"
	"github.com/azriel91/disposition-sub001/disprenderers/dispsvg"
	"github.com/azriel91/disposition-sub001/lib/log"
	"github.com/azriel91/disposition-sub001/lib/textmeasure"
	"github.com/azriel91/disposition-sub001/lib/version"
)

// renderSettings is everything a render needs besides the paths.
type renderSettings struct {
	viewport displayout.Viewport
	lod      displayout.LevelOfDetail
	opts     displib.RenderOpts
}

func Run(ctx context.Context, ms *xmain.State) (err error) {
	ctx = log.With(ctx, slog.Make(sloghuman.Sink(ms.Stderr)))

	configFlag := ms.Opts.String("DISPOSITION_CONFIG", "config", "", DefaultConfigPath, "project config file. Flags and DISPOSITION_* variables override it")
	watchFlag, err := ms.Opts.Bool("DISPOSITION_WATCH", "watch", "w", false, "re-render the output whenever the input changes")
	if err != nil {
		return err
	}
	viewportFlag := ms.Opts.String("DISPOSITION_VIEWPORT", "viewport", "", displayout.DefaultViewport.String(), "the viewport to lay out for: sm, md, lg, xl, 2xl or WIDTHxHEIGHT")
	lodFlag := ms.Opts.String("DISPOSITION_LOD", "lod", "", displayout.Normal.String(), "level of detail: normal, or simple to leave out descriptions")
	fontSizeFlag, err := ms.Opts.Float64("DISPOSITION_FONT_SIZE", "font-size", "", textmeasure.DefaultFontSize, "font size in pixels that text is measured and drawn at")
	if err != nil {
		return err
	}
	padFlag, err := ms.Opts.Int64("DISPOSITION_PAD", "pad", "", dispsvg.DEFAULT_PADDING, "pixels padded around the rendered diagram")
	if err != nil {
		return err
	}
	omitStyleFlag, err := ms.Opts.Bool("DISPOSITION_OMIT_STYLE", "omit-style", "", false, "leave the style element out of the SVG")
	if err != nil {
		return err
	}
	checkFlag, err := ms.Opts.Bool("DISPOSITION_CHECK", "check", "", false, "with fmt, report unformatted files instead of rewriting them")
	if err != nil {
		return err
	}
	debugFlag, err := ms.Opts.Bool("DEBUG", "debug", "d", false, "print debug logs.")
	if err != nil {
		ms.Log.Warn.Printf("Invalid DEBUG flag value ignored")
		debugFlag = new(bool)
	}
	versionFlag, err := ms.Opts.Bool("", "version", "v", false, "get the version")
	if err != nil {
		return err
	}

	err = ms.Opts.Flags.Parse(ms.Opts.Args)
	if !errors.Is(err, pflag.ErrHelp) && err != nil {
		return xmain.UsageErrorf("failed to parse flags: %v", err)
	}
	if errors.Is(err, pflag.ErrHelp) {
		help(ms)
		return nil
	}

	if *debugFlag {
		ms.Env.Setenv("DEBUG", "1")
		ctx = log.Leveled(ctx, slog.LevelDebug)
	}

	if len(ms.Opts.Flags.Args()) > 0 {
		switch ms.Opts.Flags.Arg(0) {
		case "fmt":
			return fmtCmd(ctx, ms, *checkFlag)
		case "validate":
			return validateCmd(ctx, ms)
		case "ir":
			return irCmd(ctx, ms)
		case "version":
			if len(ms.Opts.Flags.Args()) > 1 {
				return xmain.UsageErrorf("version subcommand accepts no arguments")
			}
			fmt.Fprintln(ms.Stdout, version.Version)
			return nil
		}
	}

	if len(ms.Opts.Flags.Args()) == 0 {
		if *versionFlag {
			fmt.Fprintln(ms.Stdout, version.Version)
			return nil
		}
		help(ms)
		return nil
	} else if len(ms.Opts.Flags.Args()) >= 3 {
		return xmain.UsageErrorf("too many arguments passed")
	}

	cfg, err := LoadConfig(ms.AbsPath(*configFlag))
	if err != nil {
		return err
	}
	changed := make(map[string]bool)
	ms.Opts.Flags.Visit(func(f *pflag.Flag) {
		changed[f.Name] = true
	})
	if !changed["viewport"] && cfg.Viewport != "" {
		*viewportFlag = cfg.Viewport
	}
	if !changed["lod"] && cfg.LevelOfDetail != "" {
		*lodFlag = cfg.LevelOfDetail
	}
	if !changed["font-size"] && cfg.FontSize > 0 {
		*fontSizeFlag = cfg.FontSize
	}
	if !changed["pad"] && cfg.Pad > 0 {
		*padFlag = cfg.Pad
	}
	if !changed["omit-style"] && cfg.OmitStyle {
		*omitStyleFlag = true
	}
	if !changed["watch"] && cfg.Watch {
		*watchFlag = true
	}

	vp, err := displayout.ParseViewport(*viewportFlag)
	if err != nil {
		return xmain.UsageErrorf("invalid --viewport: %v", err)
	}
	lod, err := displayout.ParseLevelOfDetail(*lodFlag)
	if err != nil {
		return xmain.UsageErrorf("invalid --lod: %v", err)
	}
	settings := renderSettings{
		viewport: vp,
		lod:      lod,
		opts: displib.RenderOpts{
			FontSize:  fontSizeFlag,
			Pad:       padFlag,
			OmitStyle: omitStyleFlag,
		},
	}

	inputPath := ms.Opts.Flags.Arg(0)
	var outputPath string
	if len(ms.Opts.Flags.Args()) >= 2 {
		outputPath = ms.Opts.Flags.Arg(1)
	} else if inputPath == "-" {
		outputPath = "-"
	} else {
		outputPath = renameExt(inputPath, ".svg")
	}
	if inputPath != "-" {
		inputPath = ms.AbsPath(inputPath)
	}
	if outputPath != "-" {
		outputPath = ms.AbsPath(outputPath)
	}
	ms.Log.Debug.Printf("using viewport %s, level of detail %s", vp, lod)

	if *watchFlag {
		if inputPath == "-" {
			return xmain.UsageErrorf("-w[atch] cannot be combined with reading input from stdin")
		}
		ms.Log.SetTS(true)
		w, err := newWatcher(ctx, ms, watcherOpts{
			settings:   settings,
			inputPath:  inputPath,
			outputPath: outputPath,
		})
		if err != nil {
			return err
		}
		return w.run()
	}

	ctx, cancel := log.WithTimeout(ctx, time.Minute*2)
	defer cancel()

	_, err = renderFile(ctx, ms, settings, inputPath, outputPath)
	return err
}

// renderFile renders inputPath into outputPath. Diagnostics are logged as
// warnings and never fail the render.
func renderFile(ctx context.Context, ms *xmain.State, s renderSettings, inputPath, outputPath string) (_ []byte, err error) {
	defer xdefer.Errorf(&err, "failed to render %s", ms.HumanPath(inputPath))

	start := time.Now()
	input, err := ms.ReadPath(inputPath)
	if err != nil {
		return nil, err
	}
	opts := s.opts
	res, err := displib.RenderYAML(ctx, input, s.viewport, s.lod, &opts)
	if err != nil {
		return nil, err
	}
	for _, is := range res.Diagnostics {
		ms.Log.Warn.Printf("%s", is)
	}
	if err := ms.WritePath(outputPath, res.SVG); err != nil {
		return nil, err
	}
	ms.Log.Success.Printf("successfully rendered %s to %s in %s", ms.HumanPath(inputPath), ms.HumanPath(outputPath), time.Since(start))
	return res.SVG, nil
}

func renameExt(fp string, newExt string) string {
	ext := filepath.Ext(fp)
	if ext == "" {
		return fp + newExt
	}
	return strings.TrimSuffix(fp, ext) + newExt
}
