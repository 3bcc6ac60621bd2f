package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestInitializeMetricsExportsLabels(t *testing.T) {
	InitializeMetrics()

	tests := []struct {
		name     string
		count    int
		expected int
	}{
		{"AiringsTotal", testutil.CollectAndCount(AiringsTotal), 6},
		{"EpisodeReloadsTotal", testutil.CollectAndCount(EpisodeReloadsTotal), 3},
		{"OverlayWritesTotal", testutil.CollectAndCount(OverlayWritesTotal), 4},
		{"FolderEventsTotal", testutil.CollectAndCount(FolderEventsTotal), 4},
		{"FilesystemRetryAttempts", testutil.CollectAndCount(FilesystemRetryAttempts), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.count < tt.expected {
				t.Errorf("%s exports %d series, want at least %d", tt.name, tt.count, tt.expected)
			}
		})
	}
}

func TestFilesystemObserver(t *testing.T) {
	obs := NewFilesystemObserver()

	before := testutil.ToFloat64(FilesystemRetryAttempts.WithLabelValues("readdir"))
	obs.ObserveRetryAttempt("readdir")
	obs.ObserveRetryAttempt("readdir")
	after := testutil.ToFloat64(FilesystemRetryAttempts.WithLabelValues("readdir"))

	if after-before != 2 {
		t.Errorf("retry attempts increased by %v, want 2", after-before)
	}

	beforeEvents := testutil.ToFloat64(FolderEventsTotal.WithLabelValues("create"))
	obs.ObserveFolderEvent("create")
	if got := testutil.ToFloat64(FolderEventsTotal.WithLabelValues("create")) - beforeEvents; got != 1 {
		t.Errorf("folder create events increased by %v, want 1", got)
	}
}

type staticStats struct {
	stats Stats
}

func (s staticStats) GetStats() Stats {
	return s.stats
}

func TestCollectorCopiesStats(t *testing.T) {
	c := NewCollector(staticStats{Stats{TotalEpisodes: 12, TotalBumpers: 7}}, time.Hour)
	c.collect()

	if got := testutil.ToFloat64(HistoryAiringsTotal.WithLabelValues("episode")); got != 12 {
		t.Errorf("episode gauge = %v, want 12", got)
	}
	if got := testutil.ToFloat64(HistoryAiringsTotal.WithLabelValues("bumper")); got != 7 {
		t.Errorf("bumper gauge = %v, want 7", got)
	}
}

func TestCollectorNilProvider(t *testing.T) {
	c := NewCollector(nil, time.Hour)
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("collect panicked with nil provider: %v", r)
		}
	}()
	c.collect()
}

func TestCollectorStartStop(t *testing.T) {
	c := NewCollector(staticStats{}, 10*time.Millisecond)
	c.Start()
	c.Stop()
}
