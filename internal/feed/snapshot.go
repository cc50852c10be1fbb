package feed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"cityfeed/internal/violation"
)

// snapshotColumns is the on-disk column order, matching the portal's own
// field names so snapshots stay interchangeable with direct exports.
var snapshotColumns = []string{
	"businessname", "address", "violation", "violdesc", "violdttm", "result", "neighborhood",
}

// SnapshotPath returns the timestamped snapshot location for a fetch run.
func SnapshotPath(dataDir string, now time.Time) string {
	return filepath.Join(dataDir, fmt.Sprintf("inspections_%s.csv", now.Format("20060102_150405")))
}

// LatestPath returns the well-known location of the most recent snapshot.
func LatestPath(dataDir string) string {
	return filepath.Join(dataDir, "inspections_latest.csv")
}

// WriteSnapshot persists records as a CSV snapshot.
func WriteSnapshot(path string, records []violation.RawRecord) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create snapshot directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(snapshotColumns); err != nil {
		return fmt.Errorf("write snapshot header: %w", err)
	}
	for _, record := range records {
		row := []string{
			record.BusinessName,
			record.Address,
			record.Code,
			record.Description,
			record.Date,
			record.Status,
			record.Neighborhood,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write snapshot row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush snapshot: %w", err)
	}
	return file.Close()
}

// ReadSnapshot loads raw records from a CSV snapshot. Headers are matched
// case-insensitively and accept both portal and snake_case column names;
// unknown columns are ignored.
func ReadSnapshot(path string) ([]violation.RawRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read snapshot header: %w", err)
	}
	columns := make(map[int]string, len(header))
	for i, name := range header {
		if canonical, ok := columnAliases[normalizeHeader(name)]; ok {
			columns[i] = canonical
		}
	}

	var records []violation.RawRecord
	for {
		row, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read snapshot row: %w", err)
		}
		fields := make(map[string]string, len(columns))
		for i, value := range row {
			if canonical, ok := columns[i]; ok {
				fields[canonical] = scrub(value)
			}
		}
		records = append(records, violation.RawRecord{
			BusinessName: fields["business_name"],
			Address:      fields["address"],
			Code:         fields["violation_code"],
			Description:  fields["violation_desc"],
			Date:         fields["date"],
			Status:       fields["status"],
			Neighborhood: fields["neighborhood"],
		})
	}
	return records, nil
}
