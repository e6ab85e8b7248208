package queue

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are labelled by queue name (or id when the queue has no name).
var (
	// runsTotal counts drain runs by how they finished: "drained" or "stopped".
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "timed_queue_runs_total",
		Help: "Total number of timed queue drain runs by queue and outcome (drained or stopped)",
	}, []string{"queue", "outcome"})

	ticksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "timed_queue_ticks_total",
		Help: "Total number of tick events emitted by timed queues",
	}, []string{"queue"})

	drainedItemsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "timed_queue_drained_items_total",
		Help: "Total number of items removed from timed queues by ticks",
	}, []string{"queue"})

	pendingItems = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "timed_queue_pending_items",
		Help: "Number of items waiting in a timed queue",
	}, []string{"queue"})

	listenerPanicsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "timed_queue_listener_panics_total",
		Help: "Total number of panics recovered from timed queue listeners",
	}, []string{"queue", "event"})
)

const (
	outcomeDrained = "drained"
	outcomeStopped = "stopped"
)
