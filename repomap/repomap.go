// Package repomap loads the repository map that drives catalog
// synchronization: package names mapped to their source repository URL
// and the version tag whose strings should be extracted.
package repomap

import (
	"fmt"
	"net/url"
	"os"
	"sort"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"
)

// Entry describes where a package's sources live and which tag is
// currently being translated.
type Entry struct {
	URL               string `yaml:"url"`
	CurrentVersionTag string `yaml:"current-version-tag"`
}

// Map holds every tracked package keyed by its raw (unnormalized) name.
type Map map[string]Entry

// ParseError describes a repository map file that could not be loaded,
// either because the YAML is malformed or because an entry fails
// validation.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("repository map %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Load reads and validates the repository map at path. Any failure,
// from an unreadable file to an invalid entry, is a *ParseError; the
// run has not mutated anything when it is returned.
func Load(path string) (Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	var m Map
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if m == nil {
		m = Map{}
	}

	for name, ent := range m {
		if err := ent.validate(); err != nil {
			return nil, &ParseError{Path: path, Err: xerrors.Errorf("package %q: %w", name, err)}
		}
	}

	return m, nil
}

func (e Entry) validate() error {
	if e.URL == "" {
		return xerrors.New("missing url")
	}
	u, err := url.Parse(e.URL)
	if err != nil {
		return xerrors.Errorf("invalid url %q: %w", e.URL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return xerrors.Errorf("url %q is not absolute", e.URL)
	}
	// The mirror layer appends .git when cloning.
	if strings.HasSuffix(u.Path, ".git") {
		return xerrors.Errorf("url %q must not end in .git", e.URL)
	}
	if e.CurrentVersionTag == "" {
		return xerrors.New("missing current-version-tag")
	}
	return nil
}

// Names returns every package name in the map, sorted.
func (m Map) Names() []string {
	names := lo.Keys(m)
	sort.Strings(names)
	return names
}

// Has reports whether name is a tracked package.
func (m Map) Has(name string) bool {
	_, ok := m[name]
	return ok
}

// NormalizeName returns the catalog identifier for a package name, with
// hyphens replaced by underscores. Mirror directories keep the raw
// name; catalog paths and gettext domains use the normalized one.
func NormalizeName(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}
