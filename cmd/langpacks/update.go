package main

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/langpacks/langpacks/config"
	"github.com/langpacks/langpacks/pipeline"
	"github.com/langpacks/langpacks/proc"
)

var updateCmd = &cli.Command{
	Name:      "update",
	Usage:     "Synchronize the translation config and regenerate catalogs",
	ArgsUsage: "[package]",
	Description: `Update rewrites the crowdin configuration's files section from the
   repository map, then refreshes each selected package: clone or fetch its
   source mirror, check out the mapped version, and regenerate its gettext
   template catalog.

   With no arguments every package in the repository map is processed, in
   name order. With a single package name only that package is processed.
   Any other argument count is a no-op.`,
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "workers",
			EnvVars: []string{"LANGPACKS_WORKERS"},
			Usage:   "number of packages to process in parallel",
			Value:   1,
		},
	},
	Action: func(cctx *cli.Context) error {
		cfg, err := loadConfig(cctx)
		if err != nil {
			return err
		}

		p := pipeline.New(cfg, proc.NewRunner(), os.Stdout)
		return p.Execute(reqContext(cctx), cctx.Args().Slice())
	},
}

// loadConfig layers the configuration sources: defaults, then the
// config file, then LANGPACKS_* environment variables, then flags.
func loadConfig(cctx *cli.Context) (*config.Config, error) {
	cfg, err := config.FromFile(cctx.String("config"))
	if err != nil {
		return nil, err
	}
	if err := config.FromEnv(cfg); err != nil {
		return nil, err
	}

	if cctx.IsSet("repo-root") || cfg.RepoRoot == "" {
		cfg.RepoRoot = cctx.String("repo-root")
	}
	if cctx.IsSet("workers") {
		cfg.Workers = cctx.Int("workers")
	}

	if err := cfg.ExpandRoot(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
