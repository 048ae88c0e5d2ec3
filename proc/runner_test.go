package proc

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunCapturesOutput(t *testing.T) {
	res, err := NewRunner().Run(context.Background(), "", "sh", "-c", "echo hello")
	require.NoError(t, err)
	require.Equal(t, 0, res.ExitCode)
	require.Equal(t, "hello\n", string(res.Output))
}

func TestRunNonZeroExit(t *testing.T) {
	res, err := NewRunner().Run(context.Background(), "", "sh", "-c", "echo broken >&2; exit 7")
	require.Error(t, err)
	require.NotNil(t, res)
	require.Equal(t, 7, res.ExitCode)

	var te *ToolError
	require.True(t, errors.As(err, &te))
	require.Equal(t, "sh", te.Name)
	require.Equal(t, 7, te.Result.ExitCode)
	require.Contains(t, te.Error(), "exit code 7")
	require.Contains(t, te.Error(), "broken")
}

func TestRunMissingBinary(t *testing.T) {
	_, err := NewRunner().Run(context.Background(), "", "definitely-not-a-real-tool-xyz")
	require.Error(t, err)

	var te *ToolError
	require.True(t, errors.As(err, &te))
	require.Nil(t, te.Result)
	require.Error(t, te.Unwrap())
}

func TestRunRespectsDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "marker.txt"), nil, 0644))

	res, err := NewRunner().Run(context.Background(), dir, "ls")
	require.NoError(t, err)
	require.Contains(t, string(res.Output), "marker.txt")
}

func TestFakeRunnerRecordsCalls(t *testing.T) {
	fake := &FakeRunner{}
	_, err := fake.Run(context.Background(), "/tmp", "git", "fetch", "origin")
	require.NoError(t, err)

	calls := fake.Calls()
	require.Len(t, calls, 1)
	require.Equal(t, Call{Dir: "/tmp", Name: "git", Args: []string{"fetch", "origin"}}, calls[0])
}
