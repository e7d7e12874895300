// Package metrics exposes Prometheus instruments for the component tree.
//
// Instruments register with the default registry on import; binaries serve
// them with promhttp.Handler.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pocketdash"

var (
	// Renders counts render passes that reached a component's Paint body.
	Renders = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "renders_total",
		Help:      "Render passes that invoked a component's paint body.",
	})

	// CacheHits counts renders answered from a component's render cache.
	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "render_cache_hits_total",
		Help:      "Renders skipped because the input matched the cached input.",
	})

	// Reconciliations counts reconciliation passes by result.
	Reconciliations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reconciliations_total",
		Help:      "Reconciliation requests by result (changed, unchanged, coalesced, failed).",
	}, []string{"result"})

	// IntervalOverruns counts interval ticks whose callback outlasted the period.
	IntervalOverruns = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "interval_overruns_total",
		Help:      "Interval executions that took longer than their period.",
	})

	// LiveComponents tracks components created and not yet destroyed.
	LiveComponents = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "components_live",
		Help:      "Components currently alive in any tree.",
	})

	// LiveIntervals tracks intervals not yet cancelled.
	LiveIntervals = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "intervals_live",
		Help:      "Intervals created and not yet cancelled.",
	})

	// TransitionsStarted counts transitions by kind.
	TransitionsStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transitions_total",
		Help:      "Animated transitions started, by kind.",
	}, []string{"kind"})

	// Frames counts frames pushed to a display.
	Frames = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "frames_total",
		Help:      "Frames rendered by the engine and sent to the display.",
	})
)

// Reconciliation results.
const (
	ResultChanged   = "changed"
	ResultUnchanged = "unchanged"
	ResultCoalesced = "coalesced"
	ResultFailed    = "failed"
)
