// Command strand exposes the line-origin attribution engine over a JSON
// repository fixture, for demo and local testing purposes.
package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/strandvcs/strand/pkg/command"
)

// App is the root kong command, one cmd-tagged field per subcommand.
type App struct {
	command.Globals

	Blame   command.Blame      `cmd:"" help:"Attribute each line of a file to the commit that introduced it."`
	Version command.VersionCmd `cmd:"" help:"Print the strand version."`
}

func main() {
	var app App
	ctx := kong.Parse(&app,
		kong.Name("strand"),
		kong.Description("Line-origin attribution for a Git-compatible object store."),
		kong.UsageOnError(),
	)
	if err := ctx.Run(); err != nil {
		ctx.FatalIfErrorf(err)
		os.Exit(1)
	}
}
