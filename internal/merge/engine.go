package merge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/gofrs/flock"

	"cityfeed/internal/config"
	"cityfeed/internal/dedup"
	"cityfeed/internal/registry"
	"cityfeed/internal/store"
	"cityfeed/internal/violation"
)

// lockRetryDelay is how often lock acquisition is retried within the
// configured wait window.
const lockRetryDelay = 100 * time.Millisecond

// Result summarizes one merge cycle.
type Result struct {
	BatchID    string
	Inserted   int
	Duplicates int
	Rejected   int
	NewCodes   []string
}

// Engine runs merge cycles against a single store. It holds no state
// between cycles; every run recomputes from the store's current contents.
type Engine struct {
	store    *store.Store
	logger   *slog.Logger
	lockPath string
	lockWait time.Duration
}

// NewEngine constructs a merge engine bound to the given store.
func NewEngine(cfg *config.Config, st *store.Store, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{
		store:    st,
		logger:   logger,
		lockPath: cfg.LockPath(),
		lockWait: time.Duration(cfg.Merge.LockWaitSeconds) * time.Second,
	}
}

type candidate struct {
	raw    violation.RawRecord
	record violation.Record
}

// MergeBatch runs one ingestion cycle for the batch. Records that fail
// canonicalization are counted and skipped; the rest are partitioned
// against the dedup index and committed atomically together with any codes
// observed for the first time.
func (e *Engine) MergeBatch(ctx context.Context, batch violation.Batch) (Result, error) {
	logger := e.logger.With("batch", batch.ID)
	result := Result{BatchID: batch.ID}

	var (
		candidates []candidate
		span       dedup.Span
	)
	for _, raw := range batch.Records {
		key, err := violation.Canonicalize(raw)
		if err != nil {
			var malformed *violation.MalformedRecordError
			if errors.As(err, &malformed) {
				result.Rejected++
				logger.Warn("skipping malformed record",
					"field", malformed.Field,
					"value", malformed.Value)
				continue
			}
			return Result{}, fmt.Errorf("canonicalize record: %w", err)
		}
		record := violation.NewRecord(raw, key)
		span.Observe(record.Date)
		candidates = append(candidates, candidate{raw: raw, record: record})
	}

	lock := flock.New(e.lockPath)
	lockCtx, cancel := context.WithTimeout(ctx, e.lockWait)
	defer cancel()
	locked, err := lock.TryLockContext(lockCtx, lockRetryDelay)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return Result{}, fmt.Errorf("acquire cycle lock: %w", err)
	}
	if !locked {
		return Result{}, fmt.Errorf("%w: another cycle holds %s", ErrBusy, e.lockPath)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	index, err := dedup.Load(ctx, e.store, span)
	if err != nil {
		return Result{}, err
	}
	codes, err := registry.Load(ctx, e.store)
	if err != nil {
		return Result{}, err
	}
	logger.Debug("loaded cycle snapshot", "known_keys", index.Len())

	seen := make(map[violation.Key]struct{}, len(candidates))
	var newRecords []violation.Record
	for _, c := range candidates {
		key := c.record.CanonicalKey
		if index.Contains(key) {
			result.Duplicates++
			continue
		}
		if _, dup := seen[key]; dup {
			// The same violation appearing twice inside one batch is still
			// a duplicate; only the first occurrence is inserted.
			result.Duplicates++
			continue
		}
		seen[key] = struct{}{}
		newRecords = append(newRecords, c.record)

		if c.record.Code != "" {
			codes.RegisterIfAbsent(c.record.Code, c.raw.Description)
		}
	}

	pending := codes.Pending()
	if len(newRecords) > 0 || len(pending) > 0 {
		if err := e.store.CommitMerge(ctx, newRecords, pending); err != nil {
			return Result{}, fmt.Errorf("%w: %w", ErrCommit, err)
		}
	}

	result.Inserted = len(newRecords)
	for _, code := range pending {
		result.NewCodes = append(result.NewCodes, code.Code)
	}

	logger.Info("merge cycle complete",
		"inserted", result.Inserted,
		"duplicates", result.Duplicates,
		"rejected", result.Rejected,
		"new_codes", len(result.NewCodes))
	return result, nil
}
