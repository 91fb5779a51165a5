package manifest

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/targets/internal/core/domain"
	"go.trai.ch/targets/internal/core/ports"
)

// NodeID is the graft node providing ports.DescriptorStore.
const NodeID graft.ID = "adapter.descriptor_store"

func init() {
	graft.Register(graft.Node[ports.DescriptorStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.DescriptorStore, error) {
			return NewStore(domain.DefaultManifestPath()), nil
		},
	})
}
