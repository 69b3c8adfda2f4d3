// Package metrics groups Recorder implementations.
//
// Implementations:
//   - prometheus: per-operation counters and latency histograms
package metrics
