// Package catalog regenerates gettext template catalogs: it feeds a
// package mirror's directory tree to the message-extraction tool and
// post-processes the resulting .pot file.
package catalog

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	logging "github.com/ipfs/go-log/v2"
	"github.com/samber/lo"
	"golang.org/x/xerrors"

	"github.com/langpacks/langpacks/config"
	"github.com/langpacks/langpacks/proc"
	"github.com/langpacks/langpacks/repomap"
)

var log = logging.Logger("catalog")

// Keywords are the call signatures the extraction tool treats as
// translation markers: plain, contextual, plural, and contextual
// plural. The indices name which argument holds the translatable
// string and, where present, the context (c) and plural forms.
var Keywords = []string{"_:1", "_p:1c,2", "_n:1,2", "_np:1c,2,3"}

// Extractor regenerates template catalogs from package mirrors.
type Extractor struct {
	cfg *config.Config
	run proc.Runner
}

func NewExtractor(cfg *config.Config, run proc.Runner) *Extractor {
	return &Extractor{cfg: cfg, run: run}
}

// Update regenerates the template catalog for name from its mirror.
// Every directory below the mirror root is passed to the extraction
// tool as source scope, the catalog is written to OutputPath, and
// every occurrence of the mirror's absolute path is stripped from the
// result so the catalog references mirror-relative paths only. Prior
// catalog content is overwritten, never merged.
func (e *Extractor) Update(ctx context.Context, name string) error {
	mirrorDir, err := filepath.Abs(e.cfg.MirrorPath(name))
	if err != nil {
		return xerrors.Errorf("resolving mirror path for %s: %w", name, err)
	}

	dirs, err := sourceDirs(mirrorDir)
	if err != nil {
		return xerrors.Errorf("scanning mirror for %s: %w", name, err)
	}

	out, err := filepath.Abs(e.OutputPath(name))
	if err != nil {
		return xerrors.Errorf("resolving catalog path for %s: %w", name, err)
	}
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return xerrors.Errorf("creating catalog directory for %s: %w", name, err)
	}

	args := append([]string{}, e.cfg.ExtractCommand[1:]...)
	args = append(args, dirs...)
	args = append(args, "-o", out, "--no-default-keywords", "-w", strconv.Itoa(e.cfg.LineWidth))
	for _, kw := range Keywords {
		args = append(args, "-k", kw)
	}

	if _, err := e.run.Run(ctx, e.cfg.RepoRoot, e.cfg.ExtractCommand[0], args...); err != nil {
		return xerrors.Errorf("extracting catalog for %s: %w", name, err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		return xerrors.Errorf("reading catalog for %s: %w", name, err)
	}

	stripped := strings.ReplaceAll(string(data), mirrorDir+string(filepath.Separator), "")
	if err := os.WriteFile(out, []byte(stripped), 0644); err != nil {
		return xerrors.Errorf("writing catalog for %s: %w", name, err)
	}

	// TODO: refresh the per-locale .po catalogs from the regenerated
	// template.

	log.Debugf("catalog %s written (%s)", out, humanize.Bytes(uint64(len(stripped))))
	return nil
}

// OutputPath is where the catalog for name lives: the root package at
// its fixed top-level location, everything else under the plugins
// namespace. Path segments use the normalized package name.
func (e *Extractor) OutputPath(name string) string {
	norm := repomap.NormalizeName(name)
	if name == e.cfg.RootPackage {
		return filepath.Join(e.cfg.RepoRoot, norm, e.cfg.LocaleDir, norm+".pot")
	}
	return filepath.Join(e.cfg.RepoRoot, e.cfg.PluginsDir, norm, e.cfg.LocaleDir, norm+".pot")
}

// sourceDirs lists every directory below root, deepest first. The
// mirror root itself is not part of the extraction scope.
func sourceDirs(root string) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && path != root {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lo.Reverse(dirs), nil
}
