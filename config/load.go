package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
	"github.com/mitchellh/go-homedir"
	"golang.org/x/xerrors"
)

// FromFile loads the tool configuration from a TOML file, starting from
// Default. A missing file is not an error; the defaults already describe the
// conventional repository layout.
func FromFile(path string) (*Config, error) {
	cfg := Default()

	path, err := homedir.Expand(path)
	if err != nil {
		return nil, xerrors.Errorf("expanding config path: %w", err)
	}

	file, err := os.Open(path)
	switch {
	case os.IsNotExist(err):
		return cfg, nil
	case err != nil:
		return nil, xerrors.Errorf("opening config %s: %w", path, err)
	}
	defer file.Close() //nolint:errcheck // The file is RO

	if _, err := toml.NewDecoder(file).Decode(cfg); err != nil {
		return nil, xerrors.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// FromEnv overrides cfg from LANGPACKS_* environment variables
// (LANGPACKS_REPOROOT, LANGPACKS_WORKERS, ...).
func FromEnv(cfg *Config) error {
	if err := envconfig.Process("langpacks", cfg); err != nil {
		return xerrors.Errorf("reading environment overrides: %w", err)
	}
	return nil
}

// Validate rejects configurations no component can work with.
func (c *Config) Validate() error {
	if c.RootPackage == "" {
		return xerrors.New("config: root package must be set")
	}
	if len(c.ExtractCommand) == 0 {
		return xerrors.New("config: extract command must not be empty")
	}
	if c.LineWidth <= 0 {
		return xerrors.New("config: line width must be positive")
	}
	if c.Workers < 1 {
		return xerrors.New("config: workers must be at least 1")
	}
	return nil
}

// ExpandRoot resolves a ~ prefix in RepoRoot. Called once after all override
// layers have been applied.
func (c *Config) ExpandRoot() error {
	root, err := homedir.Expand(c.RepoRoot)
	if err != nil {
		return xerrors.Errorf("expanding repository root: %w", err)
	}
	c.RepoRoot = root
	return nil
}

// RepoMapPath is the repository map location.
func (c *Config) RepoMapPath() string {
	return filepath.Join(c.RepoRoot, c.RepoMapFile)
}

// CrowdinPath is the translation-service config location.
func (c *Config) CrowdinPath() string {
	return filepath.Join(c.RepoRoot, c.CrowdinFile)
}

// MirrorsPath is the directory holding all package mirrors.
func (c *Config) MirrorsPath() string {
	return filepath.Join(c.RepoRoot, c.MirrorsDir)
}

// MirrorPath is the working copy of one package, named by its raw map key.
func (c *Config) MirrorPath(name string) string {
	return filepath.Join(c.MirrorsPath(), name)
}
