// Package dedup materializes the set of canonical keys already present in
// the store so one merge cycle can classify incoming records as new or
// duplicate with in-memory probes.
//
// The index is loaded once per cycle with a single bulk query bounded by
// the batch's own date span. The feed only ever appends records inside the
// window it reports, so keys outside the span cannot collide with the
// batch; loading them would be wasted memory on large stores. Per-row
// store lookups are deliberately impossible through this package.
package dedup
