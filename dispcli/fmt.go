package dispcli

import (
	"bytes"
	"context"

	"oss.terrastruct.com/util-go/xdefer"
	"oss.terrastruct.com/util-go/xmain"

	"github.com/azriel91/disposition-sub001/dispmodel"
	"github.com/azriel91/disposition-sub001/lib/log"
)

func fmtCmd(ctx context.Context, ms *xmain.State, check bool) (err error) {
	defer xdefer.Errorf(&err, "failed to fmt")

	ms.Opts = xmain.NewOpts(ms.Env, ms.Opts.Flags.Args()[1:])
	if len(ms.Opts.Args) == 0 {
		return xmain.UsageErrorf("fmt must be passed at least one file to be formatted")
	}

	unformattedCount := 0

	for _, inputPath := range ms.Opts.Args {
		if inputPath != "-" {
			inputPath = ms.AbsPath(inputPath)
		}

		input, err := ms.ReadPath(inputPath)
		if err != nil {
			return err
		}

		output, err := dispmodel.Format(input)
		if err != nil {
			return err
		}
		if bytes.Equal(output, input) {
			continue
		}
		if check {
			unformattedCount++
			log.Warn(ctx, ms.HumanPath(inputPath))
			continue
		}
		if err := ms.WritePath(inputPath, output); err != nil {
			return err
		}
	}

	if unformattedCount > 0 {
		pluralFiles := "file"
		if unformattedCount > 1 {
			pluralFiles = "files"
		}
		return xmain.ExitErrorf(1, "found %d unformatted %s. Run disposition fmt to fix.", unformattedCount, pluralFiles)
	}
	return nil
}
