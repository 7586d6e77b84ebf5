package tvos

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/telly/internal/adapters/cas"
	"go.trai.ch/telly/internal/adapters/logger"
	"go.trai.ch/telly/internal/adapters/shell"
	"go.trai.ch/telly/internal/adapters/toolchain"
	"go.trai.ch/telly/internal/core/domain"
	"go.trai.ch/telly/internal/core/ports"
)

// NodeID is the unique identifier for the task graph Graft node.
const NodeID graft.ID = "tvos.graph"

func init() {
	graft.Register(graft.Node[*domain.Graph]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, toolchain.NodeID, logger.NodeID, cas.NodeID},
		Run: func(ctx context.Context) (*domain.Graph, error) {
			runner, err := graft.Dep[ports.ProcessRunner](ctx)
			if err != nil {
				return nil, err
			}
			tc, err := graft.Dep[ports.Toolchain](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[ports.DeployStore](ctx)
			if err != nil {
				return nil, err
			}
			return NewCatalog(runner, tc, log, store).Graph()
		},
	})
}
