package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/gridcrawl/crawl/internal/core/ecs"
	"github.com/gridcrawl/crawl/internal/core/event"
)

// Recorder receives the journal records of one tick. It must not block;
// persist.JournalRepo buffers and flushes on its own goroutine.
type Recorder interface {
	Record(tick uint64, recs []event.Record)
}

// JournalSystem snapshots every event queued during the tick into journal
// records. Phase 4 (Output), so it sees everything systems emitted before
// the queue is cleared.
type JournalSystem struct {
	rec Recorder
	log *zap.Logger
}

func NewJournalSystem(rec Recorder, log *zap.Logger) *JournalSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &JournalSystem{rec: rec, log: log}
}

func (s *JournalSystem) Name() string     { return "journal" }
func (s *JournalSystem) Phase() ecs.Phase { return ecs.PhaseOutput }

func (s *JournalSystem) Update(w *ecs.World, _ time.Duration) error {
	events := w.AllEvents()
	if len(events) == 0 {
		return nil
	}
	recs := make([]event.Record, 0, len(events))
	for _, ev := range events {
		r, err := event.Describe(ev)
		if err != nil {
			s.log.Warn("journal skip", zap.Error(err))
			continue
		}
		recs = append(recs, r)
	}
	s.rec.Record(w.CurrentTick(), recs)
	return nil
}
