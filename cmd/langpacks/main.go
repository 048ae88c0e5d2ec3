package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	logging "github.com/ipfs/go-log/v2"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"

	"github.com/langpacks/langpacks/build"
	"github.com/langpacks/langpacks/lib/langlog"
)

var log = logging.Logger("langpacks")

// Progress notices are colored only when stdout is a terminal.
func init() {
	color.NoColor = !isatty.IsTerminal(os.Stdout.Fd()) &&
		!isatty.IsCygwinTerminal(os.Stdout.Fd())
}

func main() {
	langlog.SetupLogLevels()

	local := []*cli.Command{
		updateCmd,
		versionCmd,
	}

	app := &cli.App{
		Name:    "langpacks",
		Usage:   "Keeps translation catalogs in step with the repository map",
		Version: build.UserVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "repo-root",
				EnvVars: []string{"LANGPACKS_REPOROOT"},
				Usage:   "language-packs repository root",
				Value:   ".",
			},
			&cli.StringFlag{
				Name:    "config",
				EnvVars: []string{"LANGPACKS_CONFIG"},
				Usage:   "tool configuration file",
				Value:   "langpacks.toml",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: "info",
			},
		},
		Before: func(cctx *cli.Context) error {
			return logging.SetLogLevel("langpacks", cctx.String("log-level"))
		},
		Commands: local,
	}

	if err := app.Run(os.Args); err != nil {
		log.Errorf("%+v", err)
		os.Exit(1)
		return
	}
}

var versionCmd = &cli.Command{
	Name:  "version",
	Usage: "Print version",
	Action: func(cctx *cli.Context) error {
		cli.VersionPrinter(cctx)
		return nil
	},
}

// reqContext returns a context cancelled on SIGTERM/SIGINT/SIGHUP, so
// in-flight subprocesses are killed instead of orphaned.
func reqContext(cctx *cli.Context) context.Context {
	tCtx := context.Background()
	if cctx.Context != nil {
		tCtx = cctx.Context
	}

	ctx, done := context.WithCancel(tCtx)
	sigChan := make(chan os.Signal, 2)
	go func() {
		<-sigChan
		done()
	}()
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT, syscall.SIGHUP)

	return ctx
}
