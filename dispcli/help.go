package dispcli

import (
	"fmt"
	"path/filepath"

	"oss.terrastruct.com/util-go/xmain"

	"github.com/azriel91/disposition-sub001/lib/version"
)

func help(ms *xmain.State) {
	fmt.Fprintf(ms.Stdout, `%[1]s %[2]s
Usage:
  %[1]s [--watch=false] [--viewport=md] [--lod=normal] file.yaml [file.svg]
  %[1]s fmt [--check] file.yaml ...
  %[1]s validate file.yaml
  %[1]s ir file.yaml

%[1]s lays out and renders file.yaml to file.svg.
It defaults to file.svg if an output path is not provided.

Use - to have %[1]s read from stdin or write to stdout.

Settings are read from %[3]s when present, then from DISPOSITION_*
environment variables. Flags take precedence over both.

Flags:
%[4]s

Subcommands:
  %[1]s fmt file.yaml ... - Format passed files
  %[1]s validate file.yaml - Compile file.yaml and print its diagnostics
  %[1]s ir file.yaml - Print the compiled intermediate representation as YAML
  %[1]s version - Print the version
`, filepath.Base(ms.Name), version.Version, DefaultConfigPath, ms.Opts.Defaults())
}
