// Package middleware provides HTTP middleware for the status API.
//
// It includes:
//   - Request logging in W3C Extended Log Format, with health checks
//     optionally filtered out
//   - Prometheus request counters and latency histograms
package middleware
