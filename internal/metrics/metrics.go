// Package metrics exposes Prometheus counters for the simulation engine.
// The fixture's own observability is deliberately minimal; these exist so
// test harnesses can assert that background activity actually happened
// without polling every entity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EntitiesCreated counts create operations by entity kind.
	EntitiesCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "driftlab",
		Name:      "entities_created_total",
		Help:      "Entities created, by kind.",
	}, []string{"kind"})

	// Transitions counts state-machine transitions applied, by kind and
	// resulting status. Includes timer-driven and manual transitions.
	Transitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "driftlab",
		Name:      "transitions_total",
		Help:      "State transitions applied, by kind and resulting status.",
	}, []string{"kind", "status"})

	// TransitionsSkipped counts scheduled transitions that found their
	// entity deleted and became no-ops.
	TransitionsSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "driftlab",
		Name:      "transitions_skipped_total",
		Help:      "Scheduled transitions skipped because the entity was gone.",
	}, []string{"kind"})

	// PropagationWrites counts view writes by tier.
	PropagationWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "driftlab",
		Name:      "propagation_writes_total",
		Help:      "Eventual-consistency view writes, by tier.",
	}, []string{"tier"})

	// FaultInjections counts responses from the pure-chance endpoints.
	FaultInjections = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "driftlab",
		Name:      "fault_injections_total",
		Help:      "Fault-injection endpoint outcomes.",
	}, []string{"endpoint", "outcome"})

	// Resets counts global state resets.
	Resets = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "driftlab",
		Name:      "resets_total",
		Help:      "Global state resets.",
	})
)
