package ports

import (
	"context"
	"io"
)

// Telemetry records build progress, one vertex per pipeline stage.
//
//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks
type Telemetry interface {
	// Record starts a new vertex with the given display name.
	Record(ctx context.Context, name string) Vertex

	// Close flushes and closes the recording session.
	Close() error
}

// Vertex represents one running pipeline stage.
type Vertex interface {
	// Stdout returns a writer capturing the stage's standard output.
	Stdout() io.Writer

	// Stderr returns a writer capturing the stage's error output.
	Stderr() io.Writer

	// Complete marks the vertex as finished (successfully or with an error).
	Complete(err error)

	// Cached marks the vertex as a cache hit.
	Cached()
}
