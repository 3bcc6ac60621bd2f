package title

import "strings"

// Separator splits a filename into show, episode code and episode title.
const Separator = " - "

// Extract returns the display title for filename. An empty filename yields
// an empty title; callers substitute their own placeholder text.
func Extract(filename string) string {
	if filename == "" {
		return ""
	}

	name := StripExtension(filename)
	segments := strings.Split(name, Separator)

	switch len(segments) {
	case 3:
		// Show - Code - Title: the episode code is not shown on air
		return segments[0] + Separator + segments[2]
	case 2:
		return segments[0] + Separator + segments[1]
	default:
		return name
	}
}

// FromPath applies Extract to the last element of a slash or backslash
// separated path, so playlists written on Windows resolve the same way.
func FromPath(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		path = path[i+1:]
	}
	return Extract(path)
}

// StripExtension removes everything from the last dot onward. A name with no
// dot is returned unchanged.
func StripExtension(filename string) string {
	if i := strings.LastIndex(filename, "."); i >= 0 {
		return filename[:i]
	}
	return filename
}
