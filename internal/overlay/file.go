package overlay

import (
	"errors"
	"fmt"

	"streambuddy/internal/filesystem"
	"streambuddy/internal/logging"
	"streambuddy/internal/metrics"
)

// Paths holds the three text files the overlay reads.
type Paths struct {
	Last    string
	Current string
	Next    string
}

// FilePublisher writes each title to its own text file.
type FilePublisher struct {
	paths Paths
	retry filesystem.RetryConfig
}

// NewFilePublisher creates a FilePublisher. Empty paths are skipped, so an
// overlay that only shows the upcoming episode can leave Last unset.
func NewFilePublisher(paths Paths) *FilePublisher {
	return &FilePublisher{
		paths: paths,
		retry: filesystem.DefaultRetryConfig(),
	}
}

// Publish writes all three files. Every file is attempted even if an earlier
// one fails.
func (p *FilePublisher) Publish(titles Titles) error {
	targets := []struct {
		path string
		text string
	}{
		{p.paths.Last, titles.Last},
		{p.paths.Current, titles.Current},
		{p.paths.Next, titles.Next},
	}

	var errs []error
	for _, target := range targets {
		if target.path == "" {
			continue
		}
		if err := filesystem.WriteFileAtomic(target.path, []byte(target.text), 0o644, p.retry); err != nil {
			logging.Error("Error updating %s: %v", target.path, err)
			errs = append(errs, fmt.Errorf("write %s: %w", target.path, err))
		}
	}

	if len(errs) > 0 {
		metrics.OverlayWritesTotal.WithLabelValues("text", "error").Inc()
		return errors.Join(errs...)
	}

	metrics.OverlayWritesTotal.WithLabelValues("text", "success").Inc()
	if titles.IsClear() {
		logging.Debug("Cleared overlay titles")
	} else {
		logging.Debug("Updated overlay titles: last=%q current=%q next=%q", titles.Last, titles.Current, titles.Next)
	}
	return nil
}
