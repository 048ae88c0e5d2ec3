// Package mirror maintains the local working copies the extractor
// reads from: one git clone per package, kept at the version reference
// the repository map declares.
package mirror

import (
	"context"
	"os"
	"strings"

	logging "github.com/ipfs/go-log/v2"
	"golang.org/x/xerrors"

	"github.com/langpacks/langpacks/config"
	"github.com/langpacks/langpacks/proc"
	"github.com/langpacks/langpacks/repomap"
)

var log = logging.Logger("mirror")

// Updater clones and refreshes package mirrors through the git CLI.
type Updater struct {
	cfg *config.Config
	run proc.Runner
}

func NewUpdater(cfg *config.Config, run proc.Runner) *Updater {
	return &Updater{cfg: cfg, run: run}
}

// Update ensures the mirror for name exists and sits at the entry's
// version reference: clone when the mirror directory is missing, fetch
// from origin inside the mirror when it is present, then check out the
// reference. Not transactional: a failed clone can leave a partial
// directory, and a failed checkout leaves whatever clone or fetch
// produced. Tool failures surface as wrapped *proc.ToolError values.
func (u *Updater) Update(ctx context.Context, name string, ent repomap.Entry) error {
	mirrorsDir := u.cfg.MirrorsPath()
	if err := os.MkdirAll(mirrorsDir, 0755); err != nil {
		return xerrors.Errorf("creating mirrors directory: %w", err)
	}

	dir := u.cfg.MirrorPath(name)
	if fi, err := os.Stat(dir); err == nil && fi.IsDir() {
		log.Debugf("fetching origin for %s", name)
		if _, err := u.run.Run(ctx, dir, "git", "fetch", "origin"); err != nil {
			return xerrors.Errorf("fetching %s: %w", name, err)
		}
	} else {
		log.Debugf("cloning %s from %s", name, ent.URL)
		if _, err := u.run.Run(ctx, mirrorsDir, "git", "clone", ent.URL+".git", name); err != nil {
			return xerrors.Errorf("cloning %s: %w", name, err)
		}
	}

	if _, err := u.run.Run(ctx, dir, "git", "checkout", ent.CurrentVersionTag); err != nil {
		return xerrors.Errorf("checking out %s at %s: %w", name, ent.CurrentVersionTag, err)
	}
	return nil
}

// CurrentRef reports the reference the mirror for name has checked
// out: the branch name when on a branch, the commit hash when detached.
func (u *Updater) CurrentRef(ctx context.Context, name string) (string, error) {
	dir := u.cfg.MirrorPath(name)

	res, err := u.run.Run(ctx, dir, "git", "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", xerrors.Errorf("resolving ref for %s: %w", name, err)
	}
	ref := strings.TrimSpace(string(res.Output))
	if ref != "HEAD" {
		return ref, nil
	}

	res, err = u.run.Run(ctx, dir, "git", "rev-parse", "HEAD")
	if err != nil {
		return "", xerrors.Errorf("resolving commit for %s: %w", name, err)
	}
	return strings.TrimSpace(string(res.Output)), nil
}
