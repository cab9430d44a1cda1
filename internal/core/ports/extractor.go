package ports

import "context"

// Extractor unpacks a source archive.
//
//go:generate go run go.uber.org/mock/mockgen -source=extractor.go -destination=mocks/mock_extractor.go -package=mocks
type Extractor interface {
	// Extract unpacks archivePath under destDir and returns the path of the
	// archive's top-level directory.
	Extract(ctx context.Context, archivePath, destDir string) (rootDir string, err error)
}
