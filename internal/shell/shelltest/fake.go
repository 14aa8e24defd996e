// Package shelltest provides a scripted shell.Runner for tests.
package shelltest

import (
	"context"
	"strings"
	"sync"

	"github.com/quickr-dev/labctl/internal/shell"
)

// Call is one recorded invocation.
type Call struct {
	Name string
	Args []string
}

// String renders the call the way it would be typed.
func (c Call) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Response is what the fake returns for a matching call.
type Response struct {
	Result shell.Result
	Err    error
}

// Runner records calls and answers them from Responses, keyed by the
// rendered call. Unmatched calls get Default.
type Runner struct {
	mu        sync.Mutex
	Calls     []Call
	Responses map[string]Response
	Default   Response
}

func NewRunner() *Runner {
	return &Runner{Responses: make(map[string]Response)}
}

// On registers a response for the call rendered as "name arg1 arg2 ...".
func (r *Runner) On(call string, res shell.Result, err error) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Responses[call] = Response{Result: res, Err: err}
	return r
}

func (r *Runner) Run(_ context.Context, name string, args ...string) (shell.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	call := Call{Name: name, Args: append([]string(nil), args...)}
	r.Calls = append(r.Calls, call)

	if resp, ok := r.Responses[call.String()]; ok {
		return resp.Result, resp.Err
	}
	return r.Default.Result, r.Default.Err
}

// Rendered returns every recorded call as a string.
func (r *Runner) Rendered() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		out[i] = c.String()
	}
	return out
}
