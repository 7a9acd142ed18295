// Package metrics exposes Prometheus counters for the cuboid server.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cuboid"

// Collector holds the game server metrics.
type Collector struct {
	gatherer prometheus.Gatherer

	sessions      prometheus.Counter
	active        prometheus.Gauge
	moves         prometheus.Counter
	falls         prometheus.Counter
	levelsCleared *prometheus.CounterVec
	completed     prometheus.Counter
	levelSeconds  prometheus.Histogram
}

// New creates the collectors and registers them with reg. A nil reg uses
// a private registry, which keeps tests and multiple servers apart.
func New(reg *prometheus.Registry) *Collector {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	c := &Collector{
		gatherer: reg,
		sessions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_total",
			Help:      "Game sessions started.",
		}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Game sessions currently connected.",
		}),
		moves: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moves_total",
			Help:      "Accepted tips across all sessions.",
		}),
		falls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "falls_total",
			Help:      "Falls that sent a player back to the start of a level.",
		}),
		levelsCleared: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "levels_cleared_total",
			Help:      "Levels cleared through the goal, by 1-indexed level.",
		}, []string{"level"}),
		completed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "campaigns_completed_total",
			Help:      "Sessions that cleared the last level.",
		}),
		levelSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "level_clear_seconds",
			Help:      "Level timer value when a level is cleared.",
			Buckets:   prometheus.ExponentialBuckets(5, 2, 8),
		}),
	}
	reg.MustRegister(c.sessions, c.active, c.moves, c.falls, c.levelsCleared, c.completed, c.levelSeconds)
	return c
}

// SessionStarted records a new connected session.
func (c *Collector) SessionStarted() {
	c.sessions.Inc()
	c.active.Inc()
}

// SessionEnded records a disconnect.
func (c *Collector) SessionEnded() {
	c.active.Dec()
}

// Move records an accepted tip.
func (c *Collector) Move() {
	c.moves.Inc()
}

// Fell records a fall that restarted a level.
func (c *Collector) Fell() {
	c.falls.Inc()
}

// LevelCleared records a cleared level (0-indexed) and its timer value.
func (c *Collector) LevelCleared(level, seconds int) {
	c.levelsCleared.WithLabelValues(strconv.Itoa(level + 1)).Inc()
	c.levelSeconds.Observe(float64(seconds))
}

// CampaignCompleted records a session that cleared every level.
func (c *Collector) CampaignCompleted() {
	c.completed.Inc()
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}
