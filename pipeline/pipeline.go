// Package pipeline orchestrates a catalog update run: translation
// config sync first, then mirror update and catalog extraction for
// every package in scope.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/hako/durafmt"
	"github.com/hashicorp/go-multierror"
	logging "github.com/ipfs/go-log/v2"
	"golang.org/x/sync/errgroup"

	"github.com/langpacks/langpacks/build"
	"github.com/langpacks/langpacks/catalog"
	"github.com/langpacks/langpacks/config"
	"github.com/langpacks/langpacks/crowdin"
	"github.com/langpacks/langpacks/mirror"
	"github.com/langpacks/langpacks/proc"
	"github.com/langpacks/langpacks/repomap"
)

var log = logging.Logger("pipeline")

// Pipeline wires the loader, synchronizer, mirror updater, and catalog
// extractor together for one run.
type Pipeline struct {
	cfg *config.Config

	mirrors  *mirror.Updater
	catalogs *catalog.Extractor

	outLk sync.Mutex
	out   io.Writer
}

func New(cfg *config.Config, run proc.Runner, out io.Writer) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		mirrors:  mirror.NewUpdater(cfg, run),
		catalogs: catalog.NewExtractor(cfg, run),
		out:      out,
	}
}

// Execute performs a full run for the given package arguments: no
// arguments selects every package in the map, one argument selects
// that package (if mapped), and more than one ends the run before
// anything is read or written. The synchronizer always runs once
// before any package is processed. A package failure does not stop
// the run; failures are aggregated and returned together.
func (p *Pipeline) Execute(ctx context.Context, args []string) error {
	if len(args) > 1 {
		// Deliberate no-op, not an error.
		log.Debugf("called with %d package arguments, nothing to do", len(args))
		return nil
	}

	start := build.Clock.Now()

	m, err := repomap.Load(p.cfg.RepoMapPath())
	if err != nil {
		return err
	}
	if !m.Has(p.cfg.RootPackage) {
		log.Warnf("root package %q is not in the repository map; its mirror and catalog will not be updated", p.cfg.RootPackage)
	}

	if err := crowdin.Sync(p.cfg.CrowdinPath(), m, p.cfg); err != nil {
		return err
	}

	errs := p.process(ctx, m, p.scope(m, args))

	elapsed := build.Clock.Since(start).Round(time.Second)
	p.notify(color.GreenString("\nCatalogs updated in %s\n", durafmt.Parse(elapsed).LimitFirstN(2)))

	return errs
}

// scope resolves the package arguments against the map: every package
// in sorted order when none is given, a single package when it is
// mapped, nothing otherwise.
func (p *Pipeline) scope(m repomap.Map, args []string) []string {
	if len(args) == 1 {
		if m.Has(args[0]) {
			return []string{args[0]}
		}
		log.Warnf("package %q is not in the repository map, skipping", args[0])
		return nil
	}
	return m.Names()
}

// process updates mirrors and catalogs for the named packages.
// Workers=1 keeps the fully sequential behavior; higher values let
// packages proceed in parallel: every package's mirror and catalog
// paths are disjoint, and the shared progress writer is serialized
// through notify.
func (p *Pipeline) process(ctx context.Context, m repomap.Map, names []string) error {
	var (
		mu   sync.Mutex
		errs *multierror.Error
	)

	var g errgroup.Group
	g.SetLimit(p.cfg.Workers)

	for _, name := range names {
		g.Go(func() error {
			if err := p.processOne(ctx, name, m[name]); err != nil {
				log.Errorf("updating %s: %+v", name, err)
				mu.Lock()
				errs = multierror.Append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait() // failures are collected per package above

	return errs.ErrorOrNil()
}

func (p *Pipeline) processOne(ctx context.Context, name string, ent repomap.Entry) error {
	p.notify(color.CyanString("\nUpdating catalog for %q\n", name))

	if err := p.mirrors.Update(ctx, name, ent); err != nil {
		return err
	}
	return p.catalogs.Update(ctx, name)
}

// notify prints a run notice. Workers share the writer, so every
// write goes through one lock.
func (p *Pipeline) notify(notice string) {
	p.outLk.Lock()
	defer p.outLk.Unlock()
	fmt.Fprintln(p.out, notice)
}
