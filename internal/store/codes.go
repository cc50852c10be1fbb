package store

import (
	"context"
	"database/sql"
	"fmt"

	"cityfeed/internal/violation"
)

// KnownCodes returns every registered code mapped to its authoritative
// description.
func (s *Store) KnownCodes(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT code, description FROM violation_codes`)
	if err != nil {
		return nil, fmt.Errorf("query codes: %w", err)
	}
	defer rows.Close()

	codes := make(map[string]string)
	for rows.Next() {
		var code string
		var description sql.NullString
		if err := rows.Scan(&code, &description); err != nil {
			return nil, fmt.Errorf("scan code: %w", err)
		}
		codes[code] = description.String
	}
	return codes, rows.Err()
}

// ListCodes returns the full code registry ordered by code.
func (s *Store) ListCodes(ctx context.Context) ([]violation.Code, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT code, description FROM violation_codes ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list codes: %w", err)
	}
	defer rows.Close()

	var codes []violation.Code
	for rows.Next() {
		var code violation.Code
		var description sql.NullString
		if err := rows.Scan(&code.Code, &description); err != nil {
			return nil, fmt.Errorf("scan code: %w", err)
		}
		code.Description = description.String
		codes = append(codes, code)
	}
	return codes, rows.Err()
}

// CodeCount pairs a violation code with how often it occurs, using the
// registry's description rather than the legacy per-record column.
type CodeCount struct {
	Code        string
	Description string
	Count       int64
}

// TopCodes returns the most frequent violation codes with their canonical
// descriptions.
func (s *Store) TopCodes(ctx context.Context, limit int) ([]CodeCount, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT v.violation_code, vc.description, COUNT(*) AS cnt
         FROM violations v
         JOIN violation_codes vc ON v.violation_code = vc.code
         WHERE v.violation_code IS NOT NULL
         GROUP BY v.violation_code
         ORDER BY cnt DESC, v.violation_code
         LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query top codes: %w", err)
	}
	defer rows.Close()

	var counts []CodeCount
	for rows.Next() {
		var entry CodeCount
		var description sql.NullString
		if err := rows.Scan(&entry.Code, &description, &entry.Count); err != nil {
			return nil, fmt.Errorf("scan top code: %w", err)
		}
		entry.Description = description.String
		counts = append(counts, entry)
	}
	return counts, rows.Err()
}

// CountCodes returns the number of registered violation codes.
func (s *Store) CountCodes(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM violation_codes`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count codes: %w", err)
	}
	return count, nil
}
