// Package merge orchestrates one ingestion cycle: canonicalize the batch,
// snapshot the dedup index and code registry under the exclusive cycle
// lock, partition records into new and duplicate, and commit the new
// records together with any newly observed codes as one transaction.
//
// Duplicates are expected, normal input and are counted rather than
// reported as errors. A cycle either fully commits or leaves the store
// untouched, so re-running any batch is always safe. No state survives a
// cycle beyond what the store persists.
package merge
