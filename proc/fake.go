package proc

import (
	"context"
	"sync"
)

// Call records one Runner invocation.
type Call struct {
	Dir  string
	Name string
	Args []string
}

// FakeRunner is a Runner for tests. Every invocation is recorded; results
// come from Script when set, otherwise every call succeeds with an empty
// Result.
type FakeRunner struct {
	mu    sync.Mutex
	calls []Call

	Script func(call Call) (*Result, error)
}

var _ Runner = (*FakeRunner)(nil)

func (f *FakeRunner) Run(ctx context.Context, dir, name string, args ...string) (*Result, error) {
	call := Call{Dir: dir, Name: name, Args: append([]string(nil), args...)}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()

	if f.Script != nil {
		return f.Script(call)
	}
	return &Result{}, nil
}

// Calls returns a copy of everything run so far, in order.
func (f *FakeRunner) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}
