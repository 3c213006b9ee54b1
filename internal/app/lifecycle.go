package app

import (
	"driftlab.io/driftlab/internal/pkg/logger"
)

// Shutdown releases application resources. The pool drain is bounded;
// lifecycle timers still pending at shutdown are abandoned with the
// process, which is fine for volatile state.
func (a *Application) Shutdown() {
	if a.Pool != nil {
		a.Pool.Shutdown()
	}
	logger.Info("Application shut down")
}
