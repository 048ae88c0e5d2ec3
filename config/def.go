package config

// Config carries every path and tool setting the pipeline components need.
// Components receive it explicitly; nothing reads package-level path
// constants, so tests can point a whole run at a temporary directory.
type Config struct {
	// RepoRoot is the language-packs repository root. Every relative path
	// below hangs off it.
	RepoRoot string

	// RepoMapFile is the repository map, relative to RepoRoot.
	RepoMapFile string

	// CrowdinFile is the translation-service configuration, relative to
	// RepoRoot.
	CrowdinFile string

	// MirrorsDir is the directory package sources are cloned into.
	MirrorsDir string

	// PluginsDir is the namespace directory for non-root package catalogs.
	PluginsDir string

	// LocaleDir is the locale directory name inside a package's output
	// directory.
	LocaleDir string

	// RootPackage is the distinguished main project package. Its catalog
	// lives at a fixed top-level location instead of the plugins namespace.
	RootPackage string

	// ExtractCommand is the argv prefix of the message-extraction tool.
	ExtractCommand []string

	// LineWidth is passed to the extraction tool as its message line width.
	// Large values keep references on a single line.
	LineWidth int

	// Workers is how many packages are processed concurrently. 1 keeps the
	// fully sequential behavior.
	Workers int
}

func Default() *Config {
	return &Config{
		RepoRoot:       ".",
		RepoMapFile:    "repository-map.yml",
		CrowdinFile:    "crowdin.yml",
		MirrorsDir:     "repos",
		PluginsDir:     "plugins",
		LocaleDir:      "locale",
		RootPackage:    "core",
		ExtractCommand: []string{"pybabel", "extract"},
		LineWidth:      100000,
		Workers:        1,
	}
}
