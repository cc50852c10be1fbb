package store

import (
	"context"
	"fmt"
	"time"

	"cityfeed/internal/violation"
)

// CanonicalKeys returns the canonical keys of stored records whose date
// falls inside [from, to]. When includeUndated is set, records without a
// date are returned as well. This is the one bulk query the dedup index is
// allowed per cycle; callers never probe the store per row.
func (s *Store) CanonicalKeys(ctx context.Context, from, to string, includeUndated bool) ([]violation.Key, error) {
	query := "SELECT canonical_key FROM violations WHERE 0"
	args := make([]any, 0, 2)
	if from != "" && to != "" {
		query += " OR (date >= ? AND date <= ?)"
		args = append(args, from, to)
	}
	if includeUndated {
		query += " OR date IS NULL OR date = ''"
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query canonical keys: %w", err)
	}
	defer rows.Close()

	var keys []violation.Key
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan canonical key: %w", err)
		}
		keys = append(keys, violation.Key(key))
	}
	return keys, rows.Err()
}

// CommitMerge inserts new records and newly registered codes as one atomic
// unit. Codes go first so the records' foreign keys resolve. Any failure
// rolls back the entire batch; the store never retains a partial merge.
func (s *Store) CommitMerge(ctx context.Context, records []violation.Record, codes []violation.Code) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin merge tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339Nano)

	for _, code := range codes {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO violation_codes (code, description, first_seen_at) VALUES (?, ?, ?)`,
			code.Code,
			nullableString(code.Description),
			now,
		); err != nil {
			return fmt.Errorf("insert code %s: %w", code.Code, err)
		}
	}

	for _, record := range records {
		createdAt := record.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO violations (
                business_name, address, violation_code, violation_desc,
                neighborhood, date, status, canonical_key, created_at
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			nullableString(record.BusinessName),
			nullableString(record.Address),
			nullableString(record.Code),
			nullableString(record.LegacyDescription),
			nullableString(record.Neighborhood),
			nullableString(record.Date),
			nullableString(record.Status),
			string(record.CanonicalKey),
			createdAt.Format(time.RFC3339Nano),
		); err != nil {
			return fmt.Errorf("insert record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit merge: %w", err)
	}
	return nil
}

// CountRecords returns the number of stored violation records.
func (s *Store) CountRecords(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM violations`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count violations: %w", err)
	}
	return count, nil
}
