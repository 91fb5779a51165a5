package watcher

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/targets/internal/core/ports"
)

// NodeID is the unique identifier for the declaration watcher Graft node.
const NodeID graft.ID = "adapter.watcher"

func init() {
	graft.Register(graft.Node[ports.Watcher]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Watcher, error) {
			return NewWatcher(DefaultDebounceWindow), nil
		},
	})
}
