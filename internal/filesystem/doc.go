/*
Package filesystem provides the file operations StreamBuddy performs against
folders it does not own: the episode drop folder, the bumper folder, playlist
files being edited by another program, and the overlay text files that OBS
is reading at the same time.

# Retry

StatWithRetry, ReadFileWithRetry and ReadDirWithRetry retry transient errors
(ESTALE on NFS mounts, EBUSY/EAGAIN while another process holds the file)
with exponential backoff. Any other error is returned immediately.

	data, err := filesystem.ReadFileWithRetry(path, filesystem.DefaultRetryConfig())

# Atomic writes

WriteFileAtomic writes to a temporary file in the target directory and
renames it into place, so a reader never observes a half-written title.

# Watching

Watcher wraps fsnotify and coalesces bursts of events on video files into a
single notification on Changes(). The rotation engine uses it to stop
waiting early when an empty episode folder receives new files.

# Metrics

Retry outcomes and folder events are reported through the package-level
Observer. The metrics package provides the Prometheus implementation; when
no observer is set, recording is skipped.
*/
package filesystem
