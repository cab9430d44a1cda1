package ports

import (
	"context"

	"github.com/appsandbox/depkit/internal/core/domain"
)

// Fetcher downloads a library's source archive into the archive cache.
//
//go:generate go run go.uber.org/mock/mockgen -source=fetcher.go -destination=mocks/mock_fetcher.go -package=mocks
type Fetcher interface {
	// Fetch returns the local path of the library's archive, downloading it
	// unless a copy with a matching checksum already sits in destDir.
	// cached reports whether the download was skipped.
	Fetch(ctx context.Context, lib domain.LibrarySpec, destDir string) (path string, cached bool, err error)
}
