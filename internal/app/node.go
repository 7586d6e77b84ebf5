package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/telly/internal/adapters/cas"    //nolint:depguard // Wired in app layer
	"go.trai.ch/telly/internal/adapters/config" //nolint:depguard // Wired in app layer
	"go.trai.ch/telly/internal/adapters/logger" //nolint:depguard // Wired in app layer
	"go.trai.ch/telly/internal/core/domain"
	"go.trai.ch/telly/internal/core/ports"
	"go.trai.ch/telly/internal/tvos"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains all the initialized application components.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			tvos.NodeID,
			logger.NodeID,
			cas.NodeID,
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
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	graph, err := graft.Dep[*domain.Graph](ctx)
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

	return New(loader, graph, log, store), nil
}
