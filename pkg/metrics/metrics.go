// Package metrics holds the Prometheus collectors for the session and guard
// layers. Collectors register on the default registry and are served by
// promhttp at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "talent_onboarding"

var (
	// GuardDecisions counts guard outcomes by guard ("auth", "role") and
	// outcome ("render", "redirect", "pending", "loading").
	GuardDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Route guard decisions by guard and outcome.",
	}, []string{"guard", "outcome"})

	// DraftWrites counts durable draft writes by result ("ok", "error", "stale").
	DraftWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "draft_writes_total",
		Help:      "Fire-and-forget durable writes of session drafts.",
	}, []string{"result"})

	// HydrationSeconds observes how long a store takes to hydrate.
	HydrationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "draft_hydration_seconds",
		Help:      "Time from store open to hydration complete.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .15, .25, .5, 1, 2.5},
	})

	// UnknownRoles counts unrecognised role strings in identity documents.
	UnknownRoles = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "unknown_roles_total",
		Help:      "Role strings mapped through the talent fallback.",
	})

	// OpenStores tracks live session stores held by the registry.
	OpenStores = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "open_session_stores",
		Help:      "Session stores currently held in memory.",
	})
)

var (
	// RateLimited counts requests rejected by a rate limiter, by limiter
	// name and reason ("exceeded", "backend_unavailable").
	RateLimited = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Requests rejected by a rate limiter.",
	}, []string{"limiter", "reason"})

	// JWKSRefreshes counts signing key fetches by result ("ok", "error").
	JWKSRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "jwks_refreshes_total",
		Help:      "Fetches of the identity provider's signing keys.",
	}, []string{"result"})
)
