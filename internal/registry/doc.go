// Package registry maintains the canonical violation-code lookup for one
// merge cycle.
//
// A Registry is loaded from the store at the start of a cycle and staged
// registrations accumulate in memory; the merge engine commits them
// together with the new records in the same transaction. Registration is
// idempotent and first-write-wins: once a code has a description, later
// observations with a different description are ignored rather than
// overwriting it, so every code keeps exactly one authoritative
// description.
package registry
