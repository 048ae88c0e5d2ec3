package proc

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("proc")

// Result carries what an external tool left behind: its exit code and the
// combined stdout/stderr it produced.
type Result struct {
	ExitCode int
	Output   []byte
}

// ToolError is returned when an external tool exits non-zero or cannot be
// started at all. It keeps the full invocation context so callers can report
// exactly what failed without re-running anything.
type ToolError struct {
	Name string
	Args []string
	Dir  string

	Result *Result // nil when the process never started
	Err    error   // non-nil when the process never started
}

func (e *ToolError) Error() string {
	argv := e.Name
	if len(e.Args) > 0 {
		argv += " " + strings.Join(e.Args, " ")
	}
	if e.Err != nil {
		return fmt.Sprintf("running %s: %v", argv, e.Err)
	}
	msg := fmt.Sprintf("%s: exit code %d", argv, e.Result.ExitCode)
	if out := strings.TrimSpace(string(e.Result.Output)); out != "" {
		msg += ": " + out
	}
	return msg
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// Runner abstracts subprocess execution so components driving external tools
// can be tested without git or an extraction tool on PATH.
type Runner interface {
	// Run executes name with args in dir (the process working directory; ""
	// means inherit), blocking until it exits. A non-zero exit returns both
	// the Result and a *ToolError describing it.
	Run(ctx context.Context, dir, name string, args ...string) (*Result, error)
}

type execRunner struct{}

// NewRunner returns a Runner backed by os/exec.
func NewRunner() Runner {
	return execRunner{}
}

func (execRunner) Run(ctx context.Context, dir, name string, args ...string) (*Result, error) {
	log.Debugf("running %s %s (dir=%s)", name, strings.Join(args, " "), dir)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	out, err := cmd.CombinedOutput()
	res := &Result{Output: out}
	if err == nil {
		return res, nil
	}

	var ee *exec.ExitError
	if errors.As(err, &ee) {
		res.ExitCode = ee.ExitCode()
		return res, &ToolError{Name: name, Args: args, Dir: dir, Result: res}
	}

	// exec failed before the tool produced an exit status (not found,
	// permission, cancelled context).
	return nil, &ToolError{Name: name, Args: args, Dir: dir, Err: err}
}
