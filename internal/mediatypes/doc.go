// Package mediatypes holds the file-type tables shared by the playlist
// sources and the folder watcher.
//
// Extension matching is case-sensitive: "a.mp4" is a video, "a.MP4" is not.
//
//	fileType := mediatypes.GetFileType(filepath.Ext(name))
//	if fileType == mediatypes.FileTypeVideo {
//	    // queue it
//	}
package mediatypes
