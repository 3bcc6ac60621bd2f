package playlist

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"streambuddy/internal/filesystem"
	"streambuddy/internal/mediatypes"
	"streambuddy/internal/title"
)

var (
	// ErrParse is returned when a playlist document is malformed.
	ErrParse = errors.New("playlist parse error")
	// ErrSourceUnavailable is returned when a source path cannot be read.
	ErrSourceUnavailable = errors.New("playlist source unavailable")
	// ErrUnsupported is returned by Open for paths that are not a folder,
	// an XSPF playlist or a video file.
	ErrUnsupported = errors.New("unsupported playlist source")
)

// MediaItem is a playable file and the title shown for it on the overlay.
type MediaItem struct {
	Path  string `json:"path"`
	Title string `json:"title"`
}

// NewMediaItem builds a MediaItem whose title is derived from the filename.
func NewMediaItem(path string) MediaItem {
	return MediaItem{
		Path:  path,
		Title: title.FromPath(path),
	}
}

// Source produces an ordered list of media items. Implementations re-read
// their backing storage on every call.
type Source interface {
	Items(ctx context.Context) ([]MediaItem, error)
	String() string
}

// Open returns the Source variant matching what exists at path.
func Open(path string) (Source, error) {
	info, err := filesystem.StatWithRetry(path, filesystem.DefaultRetryConfig())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	if info.IsDir() {
		return NewDirectorySource(path), nil
	}

	switch mediatypes.GetFileType(filepath.Ext(path)) {
	case mediatypes.FileTypePlaylist:
		return NewXSPFSource(path), nil
	case mediatypes.FileTypeVideo:
		return NewFileSource(path), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, path)
	}
}

// FileSource is a Source holding exactly one video file.
type FileSource struct {
	path string
}

// NewFileSource creates a FileSource for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Items returns the single item, or ErrSourceUnavailable if the file is gone.
func (s *FileSource) Items(ctx context.Context) ([]MediaItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := filesystem.StatWithRetry(s.path, filesystem.DefaultRetryConfig())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrSourceUnavailable, s.path)
	}

	return []MediaItem{NewMediaItem(s.path)}, nil
}

func (s *FileSource) String() string {
	return "file " + s.path
}

// fileExists reports whether path names an existing regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
