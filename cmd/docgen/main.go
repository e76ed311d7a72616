package main

import (
	"github.com/alecthomas/kong"

	"github.com/streamfold/docgen/cmd/docgen/commands"
	"github.com/streamfold/docgen/internal/version"
)

func main() {
	cli := &commands.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("docgen"),
		kong.Description("Post-processes and validates the streamfold router documentation."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)
	err := ctx.Run(&commands.Global{})
	ctx.FatalIfErrorf(err)
}
