package metrics

import (
	"time"

	"streambuddy/internal/logging"
)

// StatsProvider supplies history totals for the periodic collector.
type StatsProvider interface {
	GetStats() Stats
}

// Stats holds the current history totals.
type Stats struct {
	TotalEpisodes int
	TotalBumpers  int
}

// Collector periodically copies history totals into gauges.
type Collector struct {
	statsProvider StatsProvider
	interval      time.Duration
	stopChan      chan struct{}
}

// NewCollector creates a new metrics collector
func NewCollector(provider StatsProvider, interval time.Duration) *Collector {
	return &Collector{
		statsProvider: provider,
		interval:      interval,
		stopChan:      make(chan struct{}),
	}
}

// Start begins the metrics collection loop
func (c *Collector) Start() {
	go c.collectLoop()
}

// Stop stops the metrics collection
func (c *Collector) Stop() {
	close(c.stopChan)
}

func (c *Collector) collectLoop() {
	c.collect()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.collect()
		case <-c.stopChan:
			return
		}
	}
}

func (c *Collector) collect() {
	if c.statsProvider == nil {
		return
	}

	stats := c.statsProvider.GetStats()

	HistoryAiringsTotal.WithLabelValues("episode").Set(float64(stats.TotalEpisodes))
	HistoryAiringsTotal.WithLabelValues("bumper").Set(float64(stats.TotalBumpers))

	logging.Debug("Metrics collected: episodes=%d, bumpers=%d", stats.TotalEpisodes, stats.TotalBumpers)
}
