package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/telly/internal/core/ports"
)

// NodeID is the unique identifier for the deploy record store Graft node.
const NodeID graft.ID = "adapter.deploy_store"

func init() {
	graft.Register(graft.Node[ports.DeployStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.DeployStore, error) {
			return NewStore(), nil
		},
	})
}
