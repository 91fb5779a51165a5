package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/targets/internal/adapters/logger"
	"go.trai.ch/targets/internal/core/ports"
)

const (
	// NodeID is the graft node providing ports.ConfigLoader.
	NodeID graft.ID = "adapter.config_loader"
	// EnvNodeID is the graft node providing ports.EnvDefaultsLoader.
	EnvNodeID graft.ID = "adapter.env_defaults"
)

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ConfigLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})

	graft.Register(graft.Node[ports.EnvDefaultsLoader]{
		ID:        EnvNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.EnvDefaultsLoader, error) {
			return NewDotEnv(), nil
		},
	})
}
