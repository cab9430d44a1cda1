package patch

import (
	"context"

	"github.com/appsandbox/depkit/internal/adapters/logger"
	"github.com/appsandbox/depkit/internal/core/ports"
	"github.com/grindlemire/graft"
)

const NodeID graft.ID = "adapter.patcher"

func init() {
	graft.Register(graft.Node[ports.Patcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Patcher, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(log), nil
		},
	})
}
