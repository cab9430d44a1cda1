// Package ports defines the core interfaces for the application.
package ports

import "github.com/appsandbox/depkit/internal/core/domain"

// ConfigLoader loads the checked-in default schema and the optional
// consumer-supplied override document.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// LoadDefaults reads the fixed, versioned schema document. Failure to
	// locate it is fatal; there is no fallback.
	LoadDefaults() (domain.Schema, error)

	// LoadOverrides reads the override document at path. A missing file is
	// not an error: it returns nil, meaning "use all defaults".
	LoadOverrides(path string) (*domain.OverrideDocument, error)
}
