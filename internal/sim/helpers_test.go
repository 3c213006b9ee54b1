package sim

import (
	"context"
	"testing"
	"time"

	"driftlab.io/driftlab/internal/pkg/logger"
	"driftlab.io/driftlab/internal/pkg/worker"
)

func init() {
	_ = logger.Init("error", "json")
}

// fastConfig compresses the timing contract so lifecycle tests finish in
// tens of milliseconds. Probabilities default to certain success; tests
// flip them to force the failure branch.
func fastConfig() Config {
	return Config{
		OrderProcessingDelay: 20 * time.Millisecond,
		OrderCompletionDelay: 20 * time.Millisecond,
		OrderSuccessRate:     1.0,
		JobDefaultDelay:      20 * time.Millisecond,
		JobSuccessRate:       1.0,
		ResourceInitDelay:    20 * time.Millisecond,
		ResourceReadyDelay:   20 * time.Millisecond,
		ResourceSuccessRate:  1.0,
		CachedAfter:          30 * time.Millisecond,
		SearchAfter:          60 * time.Millisecond,
		AnalyticsAfter:       90 * time.Millisecond,
		Seed:                 1,
	}
}

func newTestSim(t *testing.T, mutate func(*Config)) *Simulator {
	t.Helper()

	cfg := fastConfig()
	if mutate != nil {
		mutate(&cfg)
	}

	pool, err := worker.NewPool(context.Background(), worker.Config{Size: 64})
	if err != nil {
		t.Fatalf("NewPool() error = %v", err)
	}
	t.Cleanup(pool.Shutdown)

	return New(cfg, pool)
}

// eventually polls cond until it holds or the deadline passes.
func eventually(t *testing.T, timeout time.Duration, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal(msg)
}
