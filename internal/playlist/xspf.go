package playlist

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"

	"streambuddy/internal/filesystem"
	"streambuddy/internal/logging"
)

// XSPF structure, reduced to the elements the rotation consumes
type XSPF struct {
	XMLName   xml.Name       `xml:"playlist"`
	Title     string         `xml:"title"`
	TrackList *XSPFTrackList `xml:"trackList"`
}

type XSPFTrackList struct {
	Tracks []XSPFTrack `xml:"track"`
}

type XSPFTrack struct {
	Locations []string `xml:"location"`
}

// XSPFSource reads track locations from an XSPF playlist file.
type XSPFSource struct {
	path  string
	retry filesystem.RetryConfig
}

// NewXSPFSource creates an XSPFSource for the playlist at path.
func NewXSPFSource(path string) *XSPFSource {
	return &XSPFSource{
		path:  path,
		retry: filesystem.DefaultRetryConfig(),
	}
}

// Items re-reads and parses the playlist file.
func (s *XSPFSource) Items(ctx context.Context) ([]MediaItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := filesystem.ReadFileWithRetry(s.path, s.retry)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	paths, err := ParseXSPF(data, filepath.Dir(s.path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}

	items := make([]MediaItem, len(paths))
	for i, p := range paths {
		items[i] = NewMediaItem(p)
		if !fileExists(p) {
			logging.Warn("Playlist %s references missing file %s", filepath.Base(s.path), p)
		}
	}
	return items, nil
}

func (s *XSPFSource) String() string {
	return "playlist " + s.path
}

// ParseXSPF returns the filesystem paths of every track location in data, in
// document order. Relative locations are resolved against baseDir. Locations
// with a scheme other than file are skipped.
func ParseXSPF(data []byte, baseDir string) ([]string, error) {
	var doc XSPF
	decoder := xml.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	if doc.TrackList == nil {
		return nil, fmt.Errorf("%w: no trackList element", ErrParse)
	}

	var paths []string
	for _, track := range doc.TrackList.Tracks {
		for _, location := range track.Locations {
			location = strings.TrimSpace(location)
			if location == "" {
				continue
			}

			path, ok, err := locationToPath(location, baseDir)
			if err != nil {
				return nil, fmt.Errorf("%w: location %q: %w", ErrParse, location, err)
			}
			if !ok {
				logging.Warn("Skipping non-file playlist location %s", location)
				continue
			}
			paths = append(paths, path)
		}
	}

	return paths, nil
}

var windowsDrivePath = regexp.MustCompile(`^/[A-Za-z]:/`)

// locationToPath converts an XSPF location URI to a filesystem path. The
// boolean is false for remote schemes the player cannot open from disk.
func locationToPath(location, baseDir string) (string, bool, error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", false, err
	}

	switch strings.ToLower(u.Scheme) {
	case "file":
		p := u.Path
		if windowsDrivePath.MatchString(p) {
			// file:///C:/Videos/x.mp4
			p = p[1:]
		}
		if u.Host != "" && u.Host != "localhost" {
			// file://server/share/x.mp4
			p = "//" + u.Host + p
		}
		return filepath.FromSlash(p), true, nil
	case "":
		p, err := url.PathUnescape(location)
		if err != nil {
			return "", false, err
		}
		p = filepath.FromSlash(p)
		if !filepath.IsAbs(p) {
			p = filepath.Join(baseDir, p)
		}
		return p, true, nil
	default:
		return "", false, nil
	}
}
