// Package crowdin keeps the translation-service configuration in step
// with the repository map: it regenerates the files section of
// crowdin.yml while leaving every other part of the document alone.
package crowdin

import (
	"bytes"
	"fmt"
	"os"

	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"

	"github.com/langpacks/langpacks/config"
	"github.com/langpacks/langpacks/repomap"
)

// FileEntry is one source/translation pattern pair in the files
// section. The translation path keeps the service's placeholders
// verbatim; they are expanded service-side, not here.
type FileEntry struct {
	Source      string `yaml:"source"`
	Translation string `yaml:"translation"`
}

// StructureError reports a crowdin configuration that lacks a section
// the synchronizer expects. The file has to be fixed by an operator;
// nothing is written when this is returned.
type StructureError struct {
	Path    string
	Missing string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("crowdin config %s: missing %q section", e.Path, e.Missing)
}

// Entries builds the files section for the given repository map: the
// root package first at its fixed location, then every other package
// in lexicographic name order. Paths use normalized package names.
func Entries(m repomap.Map, cfg *config.Config) []FileEntry {
	root := repomap.NormalizeName(cfg.RootPackage)
	entries := []FileEntry{{
		Source:      fmt.Sprintf("/%s/%s/%s.pot", root, cfg.LocaleDir, root),
		Translation: fmt.Sprintf("/%s/%s/%%locale_with_underscore%%/LC_MESSAGES/%%file_name%%.po", root, cfg.LocaleDir),
	}}

	for _, name := range m.Names() {
		if name == cfg.RootPackage {
			continue
		}
		norm := repomap.NormalizeName(name)
		entries = append(entries, FileEntry{
			Source:      fmt.Sprintf("/%s/%s/%s/%s.pot", cfg.PluginsDir, norm, cfg.LocaleDir, norm),
			Translation: fmt.Sprintf("/%s/%s/%s/%%locale_with_underscore%%/LC_MESSAGES/%%file_name%%.po", cfg.PluginsDir, norm, cfg.LocaleDir),
		})
	}
	return entries
}

// Sync rewrites the files section of the crowdin configuration at path
// to match the repository map. The document is manipulated as a YAML
// node tree so unrelated sections, their order, and their comments
// survive the round trip; resyncing an unchanged map yields
// byte-identical output. The file is rewritten even when its content
// did not change.
func Sync(path string, m repomap.Map, cfg *config.Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return xerrors.Errorf("reading crowdin config: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return xerrors.Errorf("parsing crowdin config %s: %w", path, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return &StructureError{Path: path, Missing: "files"}
	}

	files := mappingValue(doc.Content[0], "files")
	if files == nil {
		return &StructureError{Path: path, Missing: "files"}
	}

	var repl yaml.Node
	if err := repl.Encode(Entries(m, cfg)); err != nil {
		return xerrors.Errorf("encoding files section: %w", err)
	}
	*files = repl

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return xerrors.Errorf("encoding crowdin config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return xerrors.Errorf("encoding crowdin config: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return xerrors.Errorf("writing crowdin config: %w", err)
	}
	return nil
}

// mappingValue returns the value node for key in a mapping node, or
// nil when the key is absent.
func mappingValue(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}
