// Package handlers implements the REST surface. Handlers translate HTTP
// into Simulator calls and push failures through the centralized error
// middleware; none of them hold state of their own.
package handlers

import (
	"driftlab.io/driftlab/internal/pkg/worker"
	"driftlab.io/driftlab/internal/sim"
)

// Server implements all REST API handlers.
type Server struct {
	sim  *sim.Simulator
	pool *worker.Pool
}

// ServerDeps holds all dependencies for creating a Server. Manual DI,
// no Wire/Dig.
type ServerDeps struct {
	Sim  *sim.Simulator
	Pool *worker.Pool
}

// NewServer creates a new Server with all dependencies.
func NewServer(deps ServerDeps) *Server {
	return &Server{
		sim:  deps.Sim,
		pool: deps.Pool,
	}
}
