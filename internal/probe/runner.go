package probe

import (
	"context"
	"os/exec"
)

// Runner executes the external ping utility and returns its combined
// output. It exists so parsing can be tested with canned textual reports
// instead of a live subprocess.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs the real command via os/exec. The context deadline is
// enforced by the runtime: when it expires the subprocess is killed, which
// distinguishes "tool is slow" from "tool hung".
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}
