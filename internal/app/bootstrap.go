// Package app is the composition root: bootstrap stays orchestration-only.
package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"driftlab.io/driftlab/internal/api/graphqlapi"
	"driftlab.io/driftlab/internal/api/handlers"
	"driftlab.io/driftlab/internal/api/xmlapi"
	"driftlab.io/driftlab/internal/config"
	"driftlab.io/driftlab/internal/pkg/worker"
	"driftlab.io/driftlab/internal/sim"
)

// Application holds composed application dependencies.
type Application struct {
	Config *config.Config
	Router *gin.Engine
	Pool   *worker.Pool
	Sim    *sim.Simulator
}

// simConfig maps the loaded configuration onto the engine's knobs.
func simConfig(cfg config.SimulatorConfig) sim.Config {
	return sim.Config{
		OrderProcessingDelay: cfg.OrderProcessingDelay,
		OrderCompletionDelay: cfg.OrderCompletionDelay,
		OrderSuccessRate:     cfg.OrderSuccessRate,
		JobDefaultDelay:      cfg.JobDefaultDelay,
		JobSuccessRate:       cfg.JobSuccessRate,
		ResourceInitDelay:    cfg.ResourceInitDelay,
		ResourceReadyDelay:   cfg.ResourceReadyDelay,
		ResourceSuccessRate:  cfg.ResourceSuccessRate,
		CachedAfter:          cfg.CachedAfter,
		SearchAfter:          cfg.SearchAfter,
		AnalyticsAfter:       cfg.AnalyticsAfter,
		Seed:                 cfg.Seed,
	}
}

// Bootstrap initializes all dependencies using manual DI.
func Bootstrap(ctx context.Context, cfg *config.Config) (*Application, error) {
	pool, err := worker.NewPool(ctx, worker.Config{Size: cfg.Worker.PoolSize})
	if err != nil {
		return nil, fmt.Errorf("init worker pool: %w", err)
	}

	simulator := sim.New(simConfig(cfg.Simulator), pool)

	restServer := handlers.NewServer(handlers.ServerDeps{
		Sim:  simulator,
		Pool: pool,
	})
	xmlServer := xmlapi.NewServer(simulator)

	schema, err := graphqlapi.NewSchema(simulator)
	if err != nil {
		pool.Shutdown()
		return nil, fmt.Errorf("build graphql schema: %w", err)
	}

	return &Application{
		Config: cfg,
		Router: newRouter(restServer, xmlServer, graphqlapi.Handler(schema)),
		Pool:   pool,
		Sim:    simulator,
	}, nil
}
