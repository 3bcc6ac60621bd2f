// Package overlay publishes the last/current/next title triple for the
// broadcast overlay.
//
// FilePublisher writes each title to its own text file, which OBS "Text
// (GDI+)" or "Text (FreeType 2)" sources read with "Read from file". The
// clear step publishes three empty strings. CardPublisher renders the current
// title onto a PNG lower-third for an image source. MemoryPublisher keeps
// every published triple in memory for tests.
//
// Publish failures are logged and returned; the rotation keeps going either
// way.
package overlay
