package fetch

import (
	"context"
	"net/http"

	"github.com/appsandbox/depkit/internal/adapters/logger"
	"github.com/appsandbox/depkit/internal/core/ports"
	"github.com/grindlemire/graft"
)

const NodeID graft.ID = "adapter.fetcher"

func init() {
	graft.Register(graft.Node[ports.Fetcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Fetcher, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(http.DefaultClient, log), nil
		},
	})
}
