package violation

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// RawRecord is one violation event as delivered by the source feed. Every
// field is optionally-absent text; absence is represented by the empty
// string.
type RawRecord struct {
	BusinessName string
	Address      string
	Code         string
	Description  string
	Date         string
	Status       string
	Neighborhood string
}

// Record is a violation row as persisted in the store. Records are created
// exactly once by the merge engine and never mutated afterwards.
type Record struct {
	ID           int64
	BusinessName string
	Address      string
	Code         string
	// LegacyDescription carries the per-record description column kept for
	// compatibility with older consumers. The authoritative description for
	// a code lives in the code registry; nothing in the merge path reads
	// this field back.
	LegacyDescription string
	Neighborhood      string
	Date              string
	Status            string
	CanonicalKey      Key
	CreatedAt         time.Time
}

// Code is a canonical violation code descriptor.
type Code struct {
	Code        string
	Description string
}

// Batch is the unit of work for one merge cycle: an ordered sequence of raw
// records plus an identifier used only in logs and diagnostics.
type Batch struct {
	ID      string
	Records []RawRecord
}

// NewBatch wraps raw records in a batch with a fresh identifier.
func NewBatch(records []RawRecord) Batch {
	return Batch{ID: uuid.NewString(), Records: records}
}

// NewRecord builds a storable record from a raw record and its canonical
// key. Field values keep their original casing; only surrounding whitespace
// is removed. The date is stored in its canonical YYYY-MM-DD form so range
// queries stay cheap.
func NewRecord(raw RawRecord, key Key) Record {
	date, _ := normalizeDate(raw.Date)
	return Record{
		BusinessName:      strings.TrimSpace(raw.BusinessName),
		Address:           strings.TrimSpace(raw.Address),
		Code:              strings.TrimSpace(raw.Code),
		LegacyDescription: strings.TrimSpace(raw.Description),
		Neighborhood:      strings.TrimSpace(raw.Neighborhood),
		Date:              date,
		Status:            strings.TrimSpace(raw.Status),
		CanonicalKey:      key,
		CreatedAt:         time.Now().UTC(),
	}
}
