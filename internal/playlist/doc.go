// Package playlist provides the ordered media sources the rotation draws
// from.
//
// Three variants implement Source:
//   - DirectorySource: a non-recursive scan of a folder, keeping files on the
//     case-sensitive video allow-list, sorted by full path. Every call
//     re-reads the folder, so files dropped in between passes are picked up.
//   - XSPFSource: an XSPF playlist (as saved by VLC) whose track locations
//     are file:// URLs. Locations are decoded to filesystem paths and kept in
//     document order.
//   - FileSource: a single video file, used for a lone bumper.
//
// Open chooses the variant from what exists at a path.
package playlist
