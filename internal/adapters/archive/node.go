package archive

import (
	"context"

	"github.com/appsandbox/depkit/internal/core/ports"
	"github.com/grindlemire/graft"
)

const NodeID graft.ID = "adapter.extractor"

func init() {
	graft.Register(graft.Node[ports.Extractor]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Extractor, error) {
			return New(), nil
		},
	})
}
