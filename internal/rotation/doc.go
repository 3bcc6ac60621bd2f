// Package rotation drives the bumper/episode cycle.
//
// Each Step publishes the last, current and next episode titles, plays one
// bumper, clears the overlay and plays one episode. The bumper queue wraps
// forever; the episode queue is reloaded from its Source once the final
// episode has aired, so files dropped into the folder are picked up at the
// start of the next pass.
//
// A Step is never concurrent with itself. Snapshot may be called from other
// goroutines (the status API) at any time.
package rotation
