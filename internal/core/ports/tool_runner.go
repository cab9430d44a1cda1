package ports

import (
	"context"
	"io"

	"github.com/appsandbox/depkit/internal/core/domain"
)

// ToolRunner executes one external toolchain command, blocking until the
// subprocess exits. Success is determined solely by the exit status.
//
//go:generate go run go.uber.org/mock/mockgen -source=tool_runner.go -destination=mocks/mock_tool_runner.go -package=mocks
type ToolRunner interface {
	Run(ctx context.Context, inv domain.Invocation, stdout, stderr io.Writer) error
}
