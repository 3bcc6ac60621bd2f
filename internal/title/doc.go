// Package title derives overlay display titles from media filenames.
//
// Episode files are expected to follow one of two naming conventions:
//
//	Show Name - S01E02 - Episode Title.mkv   ->  "Show Name - Episode Title"
//	Show Name - Episode Title.mp4            ->  "Show Name - Episode Title"
//
// Any other name is returned without its extension. The functions in this
// package are pure and never fail.
package title
