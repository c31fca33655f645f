package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/gridcrawl/crawl/internal/core/ecs"
)

// CleanupSystem flushes the deferred entity destruction queue at tick end.
// Phase 5 (Cleanup).
type CleanupSystem struct {
	log *zap.Logger
}

func NewCleanupSystem(log *zap.Logger) *CleanupSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &CleanupSystem{log: log}
}

func (s *CleanupSystem) Name() string     { return "cleanup" }
func (s *CleanupSystem) Phase() ecs.Phase { return ecs.PhaseCleanup }

func (s *CleanupSystem) Update(w *ecs.World, _ time.Duration) error {
	if n := w.FlushDestroyQueue(); n > 0 {
		s.log.Debug("entities destroyed", zap.Int("count", n), zap.Uint64("tick", w.CurrentTick()))
	}
	return nil
}
