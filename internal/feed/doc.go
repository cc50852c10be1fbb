// Package feed retrieves raw violation records from the upstream open-data
// portal and stages them as CSV snapshots.
//
// The client pages through a CKAN datastore_search resource and maps the
// portal's column names onto violation.RawRecord fields, scrubbing the
// literal "nan"/"NaT" placeholders the upstream exporter emits for absent
// values. Snapshot helpers mirror the same column layout on disk so a
// merge can run offline from the last fetched file.
//
// The feed is a collaborator, not part of the merge core: it performs no
// retries and makes no guarantees about upstream wire formats beyond the
// fields it maps.
package feed
