package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/targets/internal/adapters/config"   //nolint:depguard // Wired in app layer
	"go.trai.ch/targets/internal/adapters/logger"   //nolint:depguard // Wired in app layer
	"go.trai.ch/targets/internal/adapters/manifest" //nolint:depguard // Wired in app layer
	"go.trai.ch/targets/internal/adapters/watcher"  //nolint:depguard // Wired in app layer
	"go.trai.ch/targets/internal/core/ports"
	"go.trai.ch/targets/internal/engine/scheduler"
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
			config.EnvNodeID,
			manifest.NodeID,
			scheduler.NodeID,
			watcher.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	envLoader, err := graft.Dep[ports.EnvDefaultsLoader](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.DescriptorStore](ctx)
	if err != nil {
		return nil, err
	}

	sched, err := graft.Dep[*scheduler.Scheduler](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, envLoader, store, sched, log).WithWatcher(w), nil
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

	return &Components{
		App:    app,
		Logger: log,
	}, nil
}
