// Package middleware provides HTTP middleware for logging, metrics,
// tracing, and rate limiting.
package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "circle_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// FriendshipTransitions counts friendship state machine outcomes by
	// action and result (the new status, "deleted", or "rejected").
	FriendshipTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "circle_friendship_transitions_total",
		Help: "Total friendship state transitions by action and result",
	}, []string{"action", "result"})

	// CounterRecomputes counts denormalized counter recomputations by kind.
	CounterRecomputes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "circle_counter_recomputes_total",
		Help: "Total denormalized counter recomputations by counter kind",
	}, []string{"counter"})

	// ReactionOutcomes counts reaction toggle outcomes (created, removed, replaced).
	ReactionOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "circle_reaction_outcomes_total",
		Help: "Total reaction toggle outcomes",
	}, []string{"outcome"})
)

var (
	promOnce     sync.Once
	promInstance *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the Prometheus HTTP middleware for the given service
// name. The instance is shared process-wide; collectors can only be
// registered once per registry.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promInstance = fiberprometheus.New(serviceName)
	})
	return promInstance
}

// MetricsMiddleware wraps the fiberprometheus middleware as a fiber.Handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
