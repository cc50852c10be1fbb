package violation

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Key is the canonical identity of a violation record: the four
// identity-bearing fields, folded and joined with an ASCII unit separator.
type Key string

// keySeparator joins the identity fields. The unit separator never appears
// in feed data, so the concatenation cannot be ambiguous.
const keySeparator = "\x1f"

// dateLayouts are the timestamp shapes observed in the upstream feed, most
// specific first.
var dateLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// MalformedRecordError reports a record whose structural fields cannot be
// reduced to a comparable form. The merge engine skips and counts such
// records without failing the cycle.
type MalformedRecordError struct {
	Field string
	Value string
	Err   error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record: field %s value %q: %v", e.Field, e.Value, e.Err)
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}

// Canonicalize reduces a raw record to its canonical key. Identity fields
// are trimmed, Unicode case-folded, and joined; absent fields collapse to
// the empty sentinel. A date that is present but unparseable yields a
// MalformedRecordError; a missing date does not.
func Canonicalize(raw RawRecord) (Key, error) {
	date, err := normalizeDate(raw.Date)
	if err != nil {
		return "", &MalformedRecordError{Field: "date", Value: raw.Date, Err: err}
	}

	parts := []string{
		foldField(raw.BusinessName),
		foldField(raw.Address),
		foldField(raw.Code),
		date,
	}
	return Key(strings.Join(parts, keySeparator)), nil
}

// HasDate reports whether the raw record carries a date value at all.
func (r RawRecord) HasDate() bool {
	return strings.TrimSpace(r.Date) != ""
}

func foldField(value string) string {
	// cases.Caser is stateful, so take a fresh one per fold.
	return cases.Fold().String(strings.TrimSpace(value))
}

// normalizeDate coerces a feed timestamp to YYYY-MM-DD. An absent value
// normalizes to the empty sentinel rather than an error.
func normalizeDate(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", nil
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed.Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("unrecognized date %q", trimmed)
}
