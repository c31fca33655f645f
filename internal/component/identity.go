package component

import "github.com/gridcrawl/crawl/internal/core/ecs"

// PlayerControlled marks the entity driven by player input.
type PlayerControlled struct {
	PlayerID int
}

// Monster marks a hostile creature.
type Monster struct {
	Kind            string
	ChallengeRating int
}

// Item marks something that can be carried.
type Item struct {
	Weight    float64
	ValueCP   int // copper pieces
	Stackable bool
	MaxStack  int
}

// Category decides which BlocksMovement gate applies to a mover.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryPlayer
	CategoryMonster
	CategoryItem
)

func (c Category) String() string {
	switch c {
	case CategoryPlayer:
		return "player"
	case CategoryMonster:
		return "monster"
	case CategoryItem:
		return "item"
	}
	return "unknown"
}

// CategoryOf classifies an entity. Player wins over monster wins over item.
func CategoryOf(w *ecs.World, id ecs.EntityID) Category {
	switch {
	case ecs.Has[PlayerControlled](w, id):
		return CategoryPlayer
	case ecs.Has[Monster](w, id):
		return CategoryMonster
	case ecs.Has[Item](w, id):
		return CategoryItem
	}
	return CategoryUnknown
}
