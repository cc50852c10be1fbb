// Package store persists violation records and the canonical violation-code
// lookup table in SQLite.
//
// The Store owns the database connection, schema initialization, the bulk
// canonical-key query backing the dedup index, and the single-transaction
// commit used by the merge engine. Both relations are append-only: records
// are inserted exactly once and never updated, and a code's description is
// written only on first registration.
//
// Components receive an explicit *Store for the duration of one merge cycle;
// there is no process-wide handle. Schema changes bump the version in
// schema.go.
package store
