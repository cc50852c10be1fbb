package merge_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gofrs/flock"

	"cityfeed/internal/config"
	"cityfeed/internal/merge"
	"cityfeed/internal/store"
	"cityfeed/internal/testsupport"
	"cityfeed/internal/violation"
)

func newEngine(t *testing.T) (*merge.Engine, *config.Config, *store.Store) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	return merge.NewEngine(cfg, st, nil), cfg, st
}

func TestMergeBatchInsertsNewRecords(t *testing.T) {
	engine, _, st := newEngine(t)
	ctx := context.Background()

	raw := violation.RawRecord{
		BusinessName: "Dunkin'",
		Address:      "157 Seaport Bl",
		Code:         "590.005/5-205.15-P",
		Description:  "Handwash sink access",
		Date:         "2025-10-07",
		Status:       "HE_Fail",
	}
	result, err := engine.MergeBatch(ctx, violation.NewBatch([]violation.RawRecord{raw}))
	if err != nil {
		t.Fatalf("MergeBatch: %v", err)
	}
	if result.Inserted != 1 || result.Duplicates != 0 || result.Rejected != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(result.NewCodes) != 1 || result.NewCodes[0] != raw.Code {
		t.Fatalf("expected code registration, got %v", result.NewCodes)
	}

	count, err := st.CountRecords(ctx)
	if err != nil {
		t.Fatalf("CountRecords: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 stored record, got %d", count)
	}
}

func TestMergeBatchIsIdempotent(t *testing.T) {
	engine, _, st := newEngine(t)
	ctx := context.Background()

	records := []violation.RawRecord{
		testsupport.RawRecord("1"),
		testsupport.RawRecord("2"),
		testsupport.RawRecord("3"),
	}

	first, err := engine.MergeBatch(ctx, violation.NewBatch(records))
	if err != nil {
		t.Fatalf("first MergeBatch: %v", err)
	}
	if first.Inserted != 3 {
		t.Fatalf("expected 3 inserts, got %d", first.Inserted)
	}

	second, err := engine.MergeBatch(ctx, violation.NewBatch(records))
	if err != nil {
		t.Fatalf("second MergeBatch: %v", err)
	}
	if second.Inserted != 0 {
		t.Fatalf("rerun must insert nothing, got %d", second.Inserted)
	}
	if second.Duplicates != 3 {
		t.Fatalf("rerun must report 3 duplicates, got %d", second.Duplicates)
	}

	count, err := st.CountRecords(ctx)
	if err != nil {
		t.Fatalf("CountRecords: %v", err)
	}
	if count != 3 {
		t.Fatalf("store grew on rerun: %d records", count)
	}
}

func TestMergeBatchMatchesFoldedVariants(t *testing.T) {
	engine, _, _ := newEngine(t)
	ctx := context.Background()

	original := violation.RawRecord{
		BusinessName: "Dunkin'",
		Address:      "157 Seaport Bl",
		Code:         "590.005",
		Date:         "2025-10-07",
	}
	refetched := violation.RawRecord{
		BusinessName: "DUNKIN' ",
		Address:      " 157 SEAPORT BL",
		Code:         "590.005",
		Date:         "2025-10-07 00:00:00",
	}

	first, err := engine.MergeBatch(ctx, violation.NewBatch([]violation.RawRecord{original}))
	if err != nil {
		t.Fatalf("MergeBatch: %v", err)
	}
	if first.Inserted != 1 {
		t.Fatalf("expected insert, got %+v", first)
	}

	second, err := engine.MergeBatch(ctx, violation.NewBatch([]violation.RawRecord{refetched}))
	if err != nil {
		t.Fatalf("MergeBatch: %v", err)
	}
	if second.Duplicates != 1 || second.Inserted != 0 {
		t.Fatalf("refetched variant must dedupe, got %+v", second)
	}
}

func TestMergeBatchSkipsMalformedRecords(t *testing.T) {
	engine, _, st := newEngine(t)
	ctx := context.Background()

	records := make([]violation.RawRecord, 0, 10)
	for _, suffix := range []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"} {
		records = append(records, testsupport.RawRecord(suffix))
	}
	bad := testsupport.RawRecord("bad")
	bad.Date = "not a date"
	records = append(records, bad)

	result, err := engine.MergeBatch(ctx, violation.NewBatch(records))
	if err != nil {
		t.Fatalf("MergeBatch: %v", err)
	}
	if result.Inserted != 9 {
		t.Fatalf("expected 9 inserts, got %d", result.Inserted)
	}
	if result.Rejected != 1 {
		t.Fatalf("expected 1 rejection, got %d", result.Rejected)
	}

	count, err := st.CountRecords(ctx)
	if err != nil {
		t.Fatalf("CountRecords: %v", err)
	}
	if count != 9 {
		t.Fatalf("expected 9 stored records, got %d", count)
	}
}

func TestMergeBatchCountsInBatchDuplicates(t *testing.T) {
	engine, _, _ := newEngine(t)
	ctx := context.Background()

	raw := testsupport.RawRecord("1")
	result, err := engine.MergeBatch(ctx, violation.NewBatch([]violation.RawRecord{raw, raw}))
	if err != nil {
		t.Fatalf("MergeBatch: %v", err)
	}
	if result.Inserted != 1 || result.Duplicates != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestMergeBatchRegistersCodesBeforeRecords(t *testing.T) {
	engine, _, st := newEngine(t)
	ctx := context.Background()

	first := testsupport.RawRecord("1")
	second := testsupport.RawRecord("2")
	second.Code = first.Code
	second.Description = "later description"

	result, err := engine.MergeBatch(ctx, violation.NewBatch([]violation.RawRecord{first, second}))
	if err != nil {
		t.Fatalf("MergeBatch: %v", err)
	}
	if len(result.NewCodes) != 1 {
		t.Fatalf("shared code must register once, got %v", result.NewCodes)
	}

	known, err := st.KnownCodes(ctx)
	if err != nil {
		t.Fatalf("KnownCodes: %v", err)
	}
	if desc := known[first.Code]; desc != first.Description {
		t.Fatalf("first observed description must win, got %q", desc)
	}
}

func TestMergeBatchHandlesUndatedRecords(t *testing.T) {
	engine, _, _ := newEngine(t)
	ctx := context.Background()

	undated := testsupport.RawRecord("1")
	undated.Date = ""

	first, err := engine.MergeBatch(ctx, violation.NewBatch([]violation.RawRecord{undated}))
	if err != nil {
		t.Fatalf("MergeBatch: %v", err)
	}
	if first.Inserted != 1 || first.Rejected != 0 {
		t.Fatalf("undated record must insert, got %+v", first)
	}

	second, err := engine.MergeBatch(ctx, violation.NewBatch([]violation.RawRecord{undated}))
	if err != nil {
		t.Fatalf("MergeBatch: %v", err)
	}
	if second.Duplicates != 1 {
		t.Fatalf("undated rerun must dedupe, got %+v", second)
	}
}

func TestMergeBatchReturnsErrBusyWhenLocked(t *testing.T) {
	engine, cfg, _ := newEngine(t)
	ctx := context.Background()

	holder := flock.New(cfg.LockPath())
	locked, err := holder.TryLock()
	if err != nil {
		t.Fatalf("TryLock: %v", err)
	}
	if !locked {
		t.Fatal("failed to pre-acquire cycle lock")
	}
	defer holder.Unlock()

	_, err = engine.MergeBatch(ctx, violation.NewBatch([]violation.RawRecord{testsupport.RawRecord("1")}))
	if !errors.Is(err, merge.ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
}

func TestMergeBatchEmptyBatch(t *testing.T) {
	engine, _, st := newEngine(t)
	ctx := context.Background()

	result, err := engine.MergeBatch(ctx, violation.NewBatch(nil))
	if err != nil {
		t.Fatalf("MergeBatch: %v", err)
	}
	if result.Inserted != 0 || result.Duplicates != 0 || result.Rejected != 0 {
		t.Fatalf("unexpected result for empty batch: %+v", result)
	}

	count, err := st.CountRecords(ctx)
	if err != nil {
		t.Fatalf("CountRecords: %v", err)
	}
	if count != 0 {
		t.Fatalf("empty batch must not write, got %d records", count)
	}
}
