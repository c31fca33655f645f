package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gridcrawl/crawl/internal/component"
	"github.com/gridcrawl/crawl/internal/core/ecs"
)

func newTestWorld() *ecs.World {
	w := ecs.NewWorld(nil)
	component.RegisterDependencies(w)
	return w
}

// place spawns an entity at (x, y) with the given extra components.
func place(t *testing.T, w *ecs.World, x, y int, atts ...ecs.Attachment) ecs.EntityID {
	t.Helper()
	all := append([]ecs.Attachment{ecs.With(&component.Position{X: x, Y: y, RoomID: -1})}, atts...)
	id, err := w.Spawn(all...)
	require.NoError(t, err)
	return id
}

func posOf(t *testing.T, w *ecs.World, id ecs.EntityID) component.Point {
	t.Helper()
	p, ok := ecs.Get[component.Position](w, id)
	require.True(t, ok)
	return p.Point()
}

// tap runs last in a tick and keeps a copy of every event it saw.
type tap struct {
	ticks [][]any
}

func (t *tap) Phase() ecs.Phase { return ecs.PhaseCleanup }
func (t *tap) Update(w *ecs.World, _ time.Duration) error {
	t.ticks = append(t.ticks, w.AllEvents())
	return nil
}

func (t *tap) last() []any {
	if len(t.ticks) == 0 {
		return nil
	}
	return t.ticks[len(t.ticks)-1]
}

func ofType[T any](events []any) []T {
	var out []T
	for _, ev := range events {
		if e, ok := ev.(T); ok {
			out = append(out, e)
		}
	}
	return out
}
