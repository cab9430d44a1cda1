// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/appsandbox/depkit/internal/adapters/archive"
	_ "github.com/appsandbox/depkit/internal/adapters/config"
	_ "github.com/appsandbox/depkit/internal/adapters/fetch"
	_ "github.com/appsandbox/depkit/internal/adapters/logger"
	_ "github.com/appsandbox/depkit/internal/adapters/patch"
	_ "github.com/appsandbox/depkit/internal/adapters/shell"
	_ "github.com/appsandbox/depkit/internal/adapters/telemetry"
	// Register app nodes.
	_ "github.com/appsandbox/depkit/internal/app"
)
