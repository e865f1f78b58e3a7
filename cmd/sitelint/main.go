package main

import (
	stderrors "errors"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/sitelint/cmd/sitelint/commands"
	"git.home.luguber.info/inful/sitelint/internal/foundation/errors"
	"git.home.luguber.info/inful/sitelint/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("sitelint"),
		kong.Description("Validate site content, links, accessibility and SEO before publishing."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	err := parser.Run(&commands.Global{Logger: slog.Default()})
	if stderrors.Is(err, commands.ErrValidationFailed) {
		os.Exit(errors.ExitValidationFailed)
	}
	errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}
