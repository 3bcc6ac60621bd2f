// Package handlers provides the HTTP handlers of the read-only status API.
//
// It includes handlers for:
//   - Health and liveness checks
//   - The currently airing item and overlay titles
//   - Recent play history
//   - Version and Prometheus metrics
package handlers
