// Command cityfeed ingests a public inspection-violation feed into a local
// SQLite store without creating duplicate records, keeping a normalized
// violation-code lookup table consistent as new codes appear.
//
// Typical daily automation runs `cityfeed sync`, which fetches the feed,
// stages a CSV snapshot, and merges the batch in one cycle. The remaining
// commands expose the individual steps plus reporting over the store.
package main
