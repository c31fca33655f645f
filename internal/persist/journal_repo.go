package persist

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/gridcrawl/crawl/internal/core/event"
)

// txBeginner is the slice of *pgxpool.Pool the journal needs.
type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TickBatch is every journal record of one tick.
type TickBatch struct {
	Tick    uint64
	Records []event.Record
}

// JournalRepo writes the event journal of one run. Record is called from the
// game loop and never blocks; Run drains the buffer on its own goroutine and
// writes whole batches in a single transaction.
type JournalRepo struct {
	db       txBeginner
	runID    uuid.UUID
	queue    chan TickBatch
	interval time.Duration
	log      *zap.Logger
	dropped  atomic.Int64
}

func NewJournalRepo(db *DB, runID uuid.UUID, buffer int, interval time.Duration, log *zap.Logger) *JournalRepo {
	return newJournalRepo(db.Pool, runID, buffer, interval, log)
}

func newJournalRepo(db txBeginner, runID uuid.UUID, buffer int, interval time.Duration, log *zap.Logger) *JournalRepo {
	if log == nil {
		log = zap.NewNop()
	}
	return &JournalRepo{
		db:       db,
		runID:    runID,
		queue:    make(chan TickBatch, buffer),
		interval: interval,
		log:      log,
	}
}

// RunID identifies this run in journal_runs.
func (r *JournalRepo) RunID() uuid.UUID { return r.runID }

// Dropped returns how many tick batches were discarded because the buffer
// was full.
func (r *JournalRepo) Dropped() int64 { return r.dropped.Load() }

// StartRun inserts the journal_runs row every event row refers to.
func (r *JournalRepo) StartRun(ctx context.Context, seed int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("journal begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`INSERT INTO journal_runs (run_id, seed) VALUES ($1, $2)`,
		r.runID, seed,
	); err != nil {
		return fmt.Errorf("journal start run: %w", err)
	}
	return tx.Commit(ctx)
}

// Record queues one tick's records. A full buffer drops the batch.
func (r *JournalRepo) Record(tick uint64, recs []event.Record) {
	select {
	case r.queue <- TickBatch{Tick: tick, Records: recs}:
	default:
		n := r.dropped.Add(1)
		r.log.Warn("journal buffer full, batch dropped",
			zap.Uint64("tick", tick),
			zap.Int("records", len(recs)),
			zap.Int64("dropped_total", n),
		)
	}
}

// Run flushes queued batches every interval until ctx is cancelled, then
// writes whatever is left with a short grace period.
func (r *JournalRepo) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	var pending []TickBatch
	for {
		select {
		case b := <-r.queue:
			pending = append(pending, b)
		case <-ticker.C:
			pending = r.flushPending(ctx, pending)
		case <-ctx.Done():
			pending = r.drain(pending)
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := r.Flush(flushCtx, pending); err != nil {
				return fmt.Errorf("final journal flush: %w", err)
			}
			return nil
		}
	}
}

func (r *JournalRepo) flushPending(ctx context.Context, pending []TickBatch) []TickBatch {
	pending = r.drain(pending)
	if len(pending) == 0 {
		return pending
	}
	if err := r.Flush(ctx, pending); err != nil {
		// keep the batches for the next interval
		r.log.Error("journal flush failed", zap.Error(err), zap.Int("batches", len(pending)))
		return pending
	}
	return pending[:0]
}

func (r *JournalRepo) drain(pending []TickBatch) []TickBatch {
	for {
		select {
		case b := <-r.queue:
			pending = append(pending, b)
		default:
			return pending
		}
	}
}

// Flush atomically writes the given batches in a single transaction.
func (r *JournalRepo) Flush(ctx context.Context, batches []TickBatch) error {
	if len(batches) == 0 {
		return nil
	}
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("journal begin: %w", err)
	}
	defer tx.Rollback(ctx)

	rows := 0
	for _, b := range batches {
		for seq, rec := range b.Records {
			if _, err := tx.Exec(ctx,
				`INSERT INTO journal_events (run_id, tick, seq, name, payload)
				 VALUES ($1, $2, $3, $4, $5)`,
				r.runID, int64(b.Tick), seq, rec.Name, string(rec.Payload),
			); err != nil {
				return fmt.Errorf("journal insert: %w", err)
			}
			rows++
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("journal commit: %w", err)
	}
	r.log.Debug("journal flushed", zap.Int("batches", len(batches)), zap.Int("rows", rows))
	return nil
}
