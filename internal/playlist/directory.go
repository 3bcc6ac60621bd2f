package playlist

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"streambuddy/internal/filesystem"
	"streambuddy/internal/logging"
	"streambuddy/internal/mediatypes"
)

// DirectorySource lists the video files directly inside a folder.
type DirectorySource struct {
	dir   string
	retry filesystem.RetryConfig
}

// NewDirectorySource creates a DirectorySource for dir.
func NewDirectorySource(dir string) *DirectorySource {
	return &DirectorySource{
		dir:   dir,
		retry: filesystem.DefaultRetryConfig(),
	}
}

// Items scans the folder and returns its videos sorted by full path.
func (s *DirectorySource) Items(ctx context.Context) ([]MediaItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := filesystem.ReadDirWithRetry(s.dir, s.retry)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if !mediatypes.IsVideo(filepath.Ext(name)) {
			logging.Debug("Skipping non-video file %s", name)
			continue
		}
		paths = append(paths, filepath.Join(s.dir, name))
	}

	sort.Strings(paths)

	items := make([]MediaItem, len(paths))
	for i, p := range paths {
		items[i] = NewMediaItem(p)
	}
	return items, nil
}

func (s *DirectorySource) String() string {
	return "folder " + s.dir
}
