package app

import (
	"context"

	"github.com/appsandbox/depkit/internal/adapters/archive"
	"github.com/appsandbox/depkit/internal/adapters/config"
	"github.com/appsandbox/depkit/internal/adapters/fetch"
	"github.com/appsandbox/depkit/internal/adapters/logger"
	"github.com/appsandbox/depkit/internal/adapters/patch"
	"github.com/appsandbox/depkit/internal/adapters/shell"
	"github.com/appsandbox/depkit/internal/adapters/telemetry"
	"github.com/appsandbox/depkit/internal/core/ports"
	"github.com/grindlemire/graft"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			fetch.NodeID,
			archive.NodeID,
			patch.NodeID,
			shell.NodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}
	fetcher, err := graft.Dep[ports.Fetcher](ctx)
	if err != nil {
		return nil, err
	}
	extractor, err := graft.Dep[ports.Extractor](ctx)
	if err != nil {
		return nil, err
	}
	patcher, err := graft.Dep[ports.Patcher](ctx)
	if err != nil {
		return nil, err
	}
	runner, err := graft.Dep[ports.ToolRunner](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	tel, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}
	return New(loader, fetcher, extractor, patcher, runner, log, tel), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	tel, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}
	return &Components{
		App:       app,
		Logger:    log,
		Telemetry: tel,
	}, nil
}
