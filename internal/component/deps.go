package component

import "github.com/gridcrawl/crawl/internal/core/ecs"

// RegisterDependencies installs the component dependency table. Call once
// per world before spawning.
func RegisterDependencies(w *ecs.World) {
	ecs.Requires[Movement, Position](w)
	ecs.Requires[BlocksMovement, Position](w)
	ecs.Requires[Movable, Position](w)
	ecs.Requires[Interactable, Position](w)
	ecs.Requires[LightSource, Position](w)
	ecs.Requires[Flammable, Position](w)
	ecs.Requires[Door, Interactable](w)
	ecs.Requires[Container, Interactable](w)
}
