// Package violation defines the domain types for inspection violation
// records and the canonicalization rules that give each record a stable
// identity.
//
// A raw record arrives from the upstream feed with inconsistent casing,
// stray whitespace, and optionally-absent fields. Canonicalize reduces the
// four identity-bearing fields (business name, address, violation code,
// date) to a single Key so that two records a human would consider the same
// violation compare equal regardless of surface formatting. The dedup index
// and the merge engine both key off this value, so any change to the
// canonicalization rules invalidates existing stored keys.
package violation
