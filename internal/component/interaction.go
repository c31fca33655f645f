package component

import (
	"fmt"

	"github.com/gridcrawl/crawl/internal/core/ecs"
)

// InteractionKind selects how an Interactable responds.
type InteractionKind int

const (
	InteractGeneric InteractionKind = iota
	InteractDoor
	InteractContainer
	InteractLightSource
	InteractAltar
)

var interactionKindNames = map[InteractionKind]string{
	InteractGeneric:     "generic",
	InteractDoor:        "door",
	InteractContainer:   "container",
	InteractLightSource: "light_source",
	InteractAltar:       "altar",
}

func (k InteractionKind) String() string {
	if s, ok := interactionKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("InteractionKind(%d)", int(k))
}

func (k InteractionKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// ParseInteractionKind maps a table name to its kind.
func ParseInteractionKind(s string) (InteractionKind, error) {
	for k, name := range interactionKindNames {
		if name == s {
			return k, nil
		}
	}
	return InteractGeneric, fmt.Errorf("unknown interaction kind %q", s)
}

// UnlimitedUses is the MaxUses value of an Interactable without a usage cap.
const UnlimitedUses = -1

// Interactable can be used by an actor. Build it with NewInteractable; the
// zero value has MaxUses 0 and is already exhausted.
type Interactable struct {
	Kind             InteractionKind
	RequiresAdjacent bool
	Uses             int
	MaxUses          int
}

// NewInteractable returns an adjacent-only interactable with unlimited uses.
func NewInteractable(kind InteractionKind) *Interactable {
	return &Interactable{Kind: kind, RequiresAdjacent: true, MaxUses: UnlimitedUses}
}

func (i *Interactable) Exhausted() bool {
	return i.MaxUses >= 0 && i.Uses >= i.MaxUses
}

// Door toggles between open and closed.
type Door struct {
	Open        bool
	Locked      bool
	KeyRequired string
}

// Container holds other entities.
type Container struct {
	Contents    []ecs.EntityID
	Capacity    int
	Open        bool
	RequiresKey bool
	KeyName     string
}

// LightSource emits light while lit. Fuel -1 never runs out.
type LightSource struct {
	Brightness int
	Fuel       float64
	Lit        bool
	Color      Color
}

func (l *LightSource) IsLit() bool { return l.Lit && l.Fuel != 0 }
