package metrics

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is exported from the first Prometheus scrape.
func InitializeMetrics() {
	for _, kind := range []string{"episode", "bumper"} {
		for _, status := range []string{"success", "error", "cancelled"} {
			AiringsTotal.WithLabelValues(kind, status)
		}
		PlaybackDuration.WithLabelValues(kind)
		HistoryAiringsTotal.WithLabelValues(kind)
	}

	for _, status := range []string{"success", "empty", "error"} {
		EpisodeReloadsTotal.WithLabelValues(status)
	}

	for _, target := range []string{"text", "card"} {
		OverlayWritesTotal.WithLabelValues(target, "success")
		OverlayWritesTotal.WithLabelValues(target, "error")
	}

	for _, op := range []string{"create", "write", "remove", "rename"} {
		FolderEventsTotal.WithLabelValues(op)
	}

	for _, status := range []string{"success", "error"} {
		HistoryWritesTotal.WithLabelValues(status)
	}

	for _, op := range []string{"record_airing", "recent_airings", "count_airings", "load_cursor", "save_cursor"} {
		DBQueryTotal.WithLabelValues(op, "success")
		DBQueryTotal.WithLabelValues(op, "error")
		DBQueryDuration.WithLabelValues(op)
	}

	for _, op := range []string{"stat", "readfile", "readdir", "write"} {
		FilesystemRetryAttempts.WithLabelValues(op)
		FilesystemRetrySuccess.WithLabelValues(op)
		FilesystemRetryFailures.WithLabelValues(op)
	}
}
