package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"driftlab.io/driftlab/internal/pkg/logger"
)

func init() {
	// Initialize logger for tests
	_ = logger.Init("error", "json")
}

func TestNewPool(t *testing.T) {
	pool, err := NewPool(context.Background(), DefaultConfig())
	if err != nil {
		t.Fatalf("NewPool() error = %v", err)
	}
	defer pool.Shutdown()

	m := pool.Metrics()
	if m["cap"] != DefaultConfig().Size {
		t.Errorf("cap = %d, want %d", m["cap"], DefaultConfig().Size)
	}
}

func TestPool_SubmitDetached(t *testing.T) {
	pool, err := NewPool(context.Background(), Config{Size: 8})
	if err != nil {
		t.Fatalf("NewPool() error = %v", err)
	}
	defer pool.Shutdown()

	var executed atomic.Bool
	var wg sync.WaitGroup
	wg.Add(1)

	err = pool.SubmitDetached(func(ctx context.Context) {
		executed.Store(true)
		wg.Done()
	})
	if err != nil {
		t.Fatalf("SubmitDetached() error = %v", err)
	}

	wg.Wait()
	if !executed.Load() {
		t.Error("Task was not executed")
	}
}

func TestPool_SubmitDetached_AfterShutdown(t *testing.T) {
	pool, err := NewPool(context.Background(), Config{Size: 8})
	if err != nil {
		t.Fatalf("NewPool() error = %v", err)
	}
	pool.Shutdown()

	err = pool.SubmitDetached(func(ctx context.Context) {
		t.Error("Task should not execute after shutdown")
	})
	if err == nil {
		t.Error("SubmitDetached() after shutdown expected error, got nil")
	}
}

func TestPool_SubmitAfter(t *testing.T) {
	pool, err := NewPool(context.Background(), Config{Size: 8})
	if err != nil {
		t.Fatalf("NewPool() error = %v", err)
	}
	defer pool.Shutdown()

	var fired atomic.Int64
	done := make(chan struct{})
	start := time.Now()

	pool.SubmitAfter(20*time.Millisecond, func(ctx context.Context) {
		fired.Store(time.Since(start).Milliseconds())
		close(done)
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduled task never fired")
	}

	if fired.Load() < 20 {
		t.Errorf("task fired after %dms, want >= 20ms", fired.Load())
	}
}

func TestPool_SubmitAfter_ZeroDelay(t *testing.T) {
	pool, err := NewPool(context.Background(), Config{Size: 8})
	if err != nil {
		t.Fatalf("NewPool() error = %v", err)
	}
	defer pool.Shutdown()

	done := make(chan struct{})
	pool.SubmitAfter(0, func(ctx context.Context) { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("zero-delay task never fired")
	}
}

func TestSleep(t *testing.T) {
	ctx := context.Background()

	start := time.Now()
	if !Sleep(ctx, 10*time.Millisecond) {
		t.Error("Sleep() = false, want true")
	}
	if time.Since(start) < 10*time.Millisecond {
		t.Error("Sleep returned before the delay elapsed")
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if Sleep(cancelled, time.Hour) {
		t.Error("Sleep() with cancelled context = true, want false")
	}
	if Sleep(cancelled, 0) {
		t.Error("Sleep(0) with cancelled context = true, want false")
	}
}
