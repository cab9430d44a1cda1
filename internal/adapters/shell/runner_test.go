package shell_test

import (
	"bytes"
	"context"
	"errors"
	"runtime"
	"testing"

	"github.com/appsandbox/depkit/internal/adapters/shell"
	"github.com/appsandbox/depkit/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"
)

type nopLogger struct{}

func (nopLogger) Info(string) {}
func (nopLogger) Warn(string) {}
func (nopLogger) Error(error) {}

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("test drives a POSIX shell")
	}
}

func TestRun_StreamsOutput(t *testing.T) {
	skipOnWindows(t)

	var stdout, stderr bytes.Buffer
	r := shell.New(nopLogger{})

	err := r.Run(context.Background(), domain.Invocation{
		Stage: "configure",
		Name:  "sh",
		Args:  []string{"-c", "echo out; echo err 1>&2"},
	}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Equal(t, "out\n", stdout.String())
	assert.Equal(t, "err\n", stderr.String())
}

func TestRun_NonZeroExit(t *testing.T) {
	skipOnWindows(t)

	var stdout, stderr bytes.Buffer
	r := shell.New(nopLogger{})

	err := r.Run(context.Background(), domain.Invocation{
		Stage: "compile",
		Name:  "sh",
		Args:  []string{"-c", "exit 3"},
	}, &stdout, &stderr)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrExternalTool))

	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	assert.Equal(t, 3, zErr.Metadata()["exit_code"])
}

func TestRun_EnvironmentOverlay(t *testing.T) {
	skipOnWindows(t)

	t.Setenv("DEPKIT_TEST_BASE", "inherited")

	var stdout, stderr bytes.Buffer
	r := shell.New(nopLogger{})

	err := r.Run(context.Background(), domain.Invocation{
		Stage: "configure",
		Name:  "sh",
		Args:  []string{"-c", "echo $DEPKIT_TEST_BASE $DEPKIT_TEST_EXTRA"},
		Env:   map[string]string{"DEPKIT_TEST_EXTRA": "overlay"},
	}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Equal(t, "inherited overlay\n", stdout.String())
}

func TestRun_WorkingDirectory(t *testing.T) {
	skipOnWindows(t)

	dir := t.TempDir()
	var stdout, stderr bytes.Buffer
	r := shell.New(nopLogger{})

	err := r.Run(context.Background(), domain.Invocation{
		Stage: "configure",
		Name:  "pwd",
		Dir:   dir,
	}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), dir)
}
