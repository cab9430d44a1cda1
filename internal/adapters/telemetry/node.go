package telemetry

import (
	"context"
	"os"

	"github.com/appsandbox/depkit/internal/adapters/logger"
	progrockadapter "github.com/appsandbox/depkit/internal/adapters/telemetry/progrock"
	"github.com/appsandbox/depkit/internal/core/ports"
	"github.com/grindlemire/graft"
)

const NodeID graft.ID = "adapter.telemetry"

// uiEnvVar selects the telemetry backend. "progrock" renders an
// interactive tape; anything else logs plain lines.
const uiEnvVar = "DEPKIT_UI"

func init() {
	graft.Register(graft.Node[ports.Telemetry]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Telemetry, error) {
			if os.Getenv(uiEnvVar) == "progrock" {
				return progrockadapter.New(), nil
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(log), nil
		},
	})
}
