package event

import (
	"github.com/gridcrawl/crawl/internal/component"
	"github.com/gridcrawl/crawl/internal/core/ecs"
)

// Events are plain values queued with World.AddEvent and read back by type
// with ecs.Events / ecs.EachEvent. They live for one tick.

// MoveRequested asks the movement resolver to move Entity to To.
type MoveRequested struct {
	Entity ecs.EntityID
	From   component.Point
	To     component.Point
}

type MovementCompleted struct {
	Entity ecs.EntityID
	From   component.Point
	To     component.Point
}

// MoveFailure says why a MoveRequested was rejected. MoveOK is success.
type MoveFailure int

const (
	MoveOK MoveFailure = iota
	MoveNoPosition
	MoveImmobile
	MoveBlocked
	MovePushFailed
)

func (r MoveFailure) String() string {
	switch r {
	case MoveOK:
		return "ok"
	case MoveNoPosition:
		return "no_position"
	case MoveImmobile:
		return "immobile"
	case MoveBlocked:
		return "blocked"
	case MovePushFailed:
		return "push_failed"
	}
	return "unknown"
}

// MarshalText writes the reason by name.
func (r MoveFailure) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

type MovementFailed struct {
	Entity ecs.EntityID
	To     component.Point
	Reason MoveFailure
}

// EntityPushed reports a successful push. To is the pushee's new cell.
type EntityPushed struct {
	Pusher ecs.EntityID
	Pushee ecs.EntityID
	To     component.Point
}

// Damage requests hit point loss. Source is zero for environmental damage.
type Damage struct {
	Target ecs.EntityID
	Amount int
	Type   string
	Source ecs.EntityID
}

type DamageApplied struct {
	Target ecs.EntityID
	Amount int
	Died   bool
}

type Heal struct {
	Target ecs.EntityID
	Amount int
	Source ecs.EntityID
}

type HealingApplied struct {
	Target ecs.EntityID
	Amount int
}

type EntityDied struct {
	Entity ecs.EntityID
	Killer ecs.EntityID
}

// InteractRequested asks the interaction resolver to act. A zero Target
// means "whatever is next to the actor".
type InteractRequested struct {
	Actor  ecs.EntityID
	Target ecs.EntityID
}

type InteractionSucceeded struct {
	Actor  ecs.EntityID
	Target ecs.EntityID
	Kind   component.InteractionKind
}

// InteractFailure says why an interaction did not happen. InteractOK is success.
type InteractFailure int

const (
	InteractOK InteractFailure = iota
	InteractNoTarget
	InteractNotInteractable
	InteractTooFar
	InteractNoUsesLeft
	InteractLocked
	InteractUnsupported
	InteractRefused
)

func (r InteractFailure) String() string {
	switch r {
	case InteractOK:
		return "ok"
	case InteractNoTarget:
		return "no_target"
	case InteractNotInteractable:
		return "not_interactable"
	case InteractTooFar:
		return "too_far"
	case InteractNoUsesLeft:
		return "no_uses_left"
	case InteractLocked:
		return "locked"
	case InteractUnsupported:
		return "unsupported"
	case InteractRefused:
		return "refused"
	}
	return "unknown"
}

func (r InteractFailure) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

type InteractionFailed struct {
	Actor  ecs.EntityID
	Target ecs.EntityID
	Reason InteractFailure
}

type ExperienceGained struct {
	Entity ecs.EntityID
	Amount int
}

// LevelGained is emitted once per level crossed.
type LevelGained struct {
	Entity ecs.EntityID
	Level  int
	HPGain int
}
