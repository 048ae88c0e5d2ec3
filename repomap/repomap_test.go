package repomap

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeMap(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "repository-map.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeMap(t, `
mainapp:
  url: https://github.com/skyatlas/mainapp
  current-version-tag: v0.4.12
plugin-console:
  url: https://github.com/skyatlas/plugin-console
  current-version-tag: v0.1.8
`)

	m, err := Load(path)
	require.NoError(t, err)
	require.Len(t, m, 2)

	require.Equal(t, Entry{
		URL:               "https://github.com/skyatlas/mainapp",
		CurrentVersionTag: "v0.4.12",
	}, m["mainapp"])

	require.True(t, m.Has("plugin-console"))
	require.False(t, m.Has("plugin_console"))
	require.Equal(t, []string{"mainapp", "plugin-console"}, m.Names())
}

func TestLoadEmptyFile(t *testing.T) {
	m, err := Load(writeMap(t, ""))
	require.NoError(t, err)
	require.Empty(t, m)
	require.Empty(t, m.Names())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
}

func TestLoadMalformedYAML(t *testing.T) {
	_, err := Load(writeMap(t, "mainapp: [not : valid : yaml"))
	require.Error(t, err)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
}

func TestLoadRejectsBadEntries(t *testing.T) {
	for _, tc := range []struct {
		name string
		body string
	}{
		{
			"missing url",
			"mainapp:\n  current-version-tag: v1.0.0\n",
		},
		{
			"relative url",
			"mainapp:\n  url: skyatlas/mainapp\n  current-version-tag: v1.0.0\n",
		},
		{
			"url with .git suffix",
			"mainapp:\n  url: https://github.com/skyatlas/mainapp.git\n  current-version-tag: v1.0.0\n",
		},
		{
			"missing version tag",
			"mainapp:\n  url: https://github.com/skyatlas/mainapp\n",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeMap(t, tc.body))
			require.Error(t, err)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			require.Contains(t, perr.Error(), "mainapp")
		})
	}
}

func TestNormalizeName(t *testing.T) {
	require.Equal(t, "plugin_console", NormalizeName("plugin-console"))
	require.Equal(t, "mainapp", NormalizeName("mainapp"))
	require.Equal(t, "a_b_c", NormalizeName("a-b-c"))
}
