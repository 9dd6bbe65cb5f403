package dispcli

import (
	"context"

	"oss.terrastruct.com/util-go/xdefer"
	"oss.terrastruct.com/util-go/xmain"

	"github.com/azriel91/disposition-sub001/dispcompiler"
	"github.com/azriel91/disposition-sub001/dispir"
	"github.com/azriel91/disposition-sub001/dispmodel"
)

// validateCmd compiles the input without laying it out. Diagnostics are
// printed as warnings; only fatal errors fail.
func validateCmd(ctx context.Context, ms *xmain.State) (err error) {
	defer xdefer.Errorf(&err, "failed to validate")

	_, issues, err := compileArg(ctx, ms, "validate")
	if err != nil {
		return err
	}
	for _, is := range issues {
		ms.Log.Warn.Printf("%s", is)
	}
	if len(issues) == 0 {
		ms.Log.Success.Printf("%s is valid", ms.HumanPath(ms.Opts.Args[0]))
	} else {
		ms.Log.Info.Printf("%s is valid with %d diagnostics", ms.HumanPath(ms.Opts.Args[0]), len(issues))
	}
	return nil
}

// compileArg reads and compiles the single input argument of subcommand.
func compileArg(ctx context.Context, ms *xmain.State, subcommand string) (*dispir.Diagram, dispmodel.Issues, error) {
	ms.Opts = xmain.NewOpts(ms.Env, ms.Opts.Flags.Args()[1:])
	if len(ms.Opts.Args) == 0 {
		return nil, nil, xmain.UsageErrorf("%s must be passed an input file", subcommand)
	}
	if len(ms.Opts.Args) > 1 {
		return nil, nil, xmain.UsageErrorf("%s accepts only one input file", subcommand)
	}

	inputPath := ms.Opts.Args[0]
	if inputPath != "-" {
		inputPath = ms.AbsPath(inputPath)
	}
	input, err := ms.ReadPath(inputPath)
	if err != nil {
		return nil, nil, err
	}
	in, err := dispmodel.Parse(input)
	if err != nil {
		return nil, nil, err
	}
	return dispcompiler.Compile(ctx, in)
}
