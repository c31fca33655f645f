package component

// Movement lets an entity request moves.
type Movement struct {
	Speed             int // cells per turn
	CanMoveDiagonally bool
}

// BlocksMovement stops movers of the flagged categories from entering the cell.
type BlocksMovement struct {
	Player  bool
	Monster bool
	Item    bool
}

// Blocks reports whether a mover of category c is stopped. Unknown movers are
// stopped by every blocker.
func (b *BlocksMovement) Blocks(c Category) bool {
	switch c {
	case CategoryPlayer:
		return b.Player
	case CategoryMonster:
		return b.Monster
	case CategoryItem:
		return b.Item
	case CategoryUnknown:
		return true
	}
	return true
}

// Movable blockers can be pushed one cell by a strong enough mover.
type Movable struct {
	PushDifficulty int
	Weight         float64
}
