package main

import (
	"errors"
	"fmt"
	"os"

	logging "github.com/ipfs/go-log/v2"
	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"

	"github.com/langpacks/langpacks/build"
	"github.com/langpacks/langpacks/localecheck"
)

var log = logging.Logger("locale-check")

func main() {
	app := &cli.App{
		Name:      "locale-check",
		Usage:     "Validate a locale code pair before generating a language pack",
		ArgsUsage: "<locale> <locale-underscore>",
		Version:   build.UserVersion(),
		Action: func(cctx *cli.Context) error {
			if cctx.NArg() != 2 {
				return xerrors.Errorf("expected a locale and its underscore form, got %d arguments", cctx.NArg())
			}
			return localecheck.Validate(cctx.Args().Get(0), cctx.Args().Get(1))
		},
	}

	if err := app.Run(os.Args); err != nil {
		// Scaffolding hooks read the diagnostic from stdout.
		var ferr *localecheck.FormatError
		if errors.As(err, &ferr) {
			fmt.Println(ferr.Message)
			os.Exit(1)
		}
		log.Errorf("%+v", err)
		os.Exit(1)
	}
}
