// Package shell runs external toolchain commands.
package shell

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/appsandbox/depkit/internal/core/domain"
	"github.com/appsandbox/depkit/internal/core/ports"
	"go.trai.ch/zerr"
)

// Runner implements ports.ToolRunner using os/exec. It inherits the process
// environment and applies the invocation's entries on top; there is no
// retry and no partial success, success is the subprocess's exit status.
type Runner struct {
	logger ports.Logger
}

// New creates a new Runner.
func New(logger ports.Logger) *Runner {
	return &Runner{logger: logger}
}

// Run executes the invocation, streaming output into the given writers and
// blocking until the subprocess exits.
func (r *Runner) Run(ctx context.Context, inv domain.Invocation, stdout, stderr io.Writer) error {
	r.logger.Info(inv.Stage + ": " + inv.Name + " " + strings.Join(inv.Args, " "))

	cmd := exec.CommandContext(ctx, inv.Name, inv.Args...) //nolint:gosec // invocations are assembled from the schema
	cmd.Dir = inv.Dir
	cmd.Env = mergeEnvironment(os.Environ(), inv.Env)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		exitCode := -1 // unknown or killed by signal
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		wrapped := zerr.With(zerr.Wrap(domain.ErrExternalTool, err.Error()), "stage", inv.Stage)
		wrapped = zerr.With(wrapped, "tool", inv.Name)
		return zerr.With(wrapped, "exit_code", exitCode)
	}
	return nil
}

// mergeEnvironment overlays the invocation's variables on the inherited
// environment, last writer wins.
func mergeEnvironment(base []string, extra map[string]string) []string {
	if len(extra) == 0 {
		return base
	}

	envMap := make(map[string]string, len(base)+len(extra))
	order := make([]string, 0, len(base)+len(extra))
	for _, entry := range base {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if _, seen := envMap[k]; !seen {
			order = append(order, k)
		}
		envMap[k] = v
	}
	for k, v := range extra {
		if _, seen := envMap[k]; !seen {
			order = append(order, k)
		}
		envMap[k] = v
	}

	result := make([]string, 0, len(order))
	for _, k := range order {
		result = append(result, k+"="+envMap[k])
	}
	return result
}
