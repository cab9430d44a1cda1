package config

import (
	"context"

	"github.com/appsandbox/depkit/internal/core/ports"
	"github.com/grindlemire/graft"
)

const NodeID graft.ID = "adapter.config_loader"

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ConfigLoader, error) {
			return &Loader{}, nil
		},
	})
}
