package mediatypes

// FileType represents the type of a media file.
type FileType string

const (
	// FileTypeVideo represents a playable video file.
	FileTypeVideo FileType = "video"
	// FileTypePlaylist represents a playlist document.
	FileTypePlaylist FileType = "playlist"
	// FileTypeOther represents an unknown or unsupported file type.
	FileTypeOther FileType = "other"
)

// VideoExtensions is the allow-list used when scanning a folder for episodes
// or bumpers. Keys are compared exactly, including case.
var VideoExtensions = map[string]bool{
	".mp4": true,
	".avi": true,
	".mkv": true,
	".flv": true,
	".mov": true,
}

// PlaylistExtensions maps file extensions to supported playlist formats.
var PlaylistExtensions = map[string]bool{
	".xspf": true,
}

// GetFileType returns the FileType for a given file extension, including the
// leading dot (e.g., ".mkv"). Returns FileTypeOther if the extension is not
// recognized.
func GetFileType(ext string) FileType {
	if VideoExtensions[ext] {
		return FileTypeVideo
	}
	if PlaylistExtensions[ext] {
		return FileTypePlaylist
	}
	return FileTypeOther
}

// IsVideo reports whether ext is on the video allow-list.
func IsVideo(ext string) bool {
	return VideoExtensions[ext]
}
