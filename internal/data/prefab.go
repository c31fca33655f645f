package data

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Prefab is a named entity template. Every section is optional; a nil
// section means the component is not attached.
type Prefab struct {
	Name        string `yaml:"name"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Glyph       string `yaml:"glyph"`
	Color       []int  `yaml:"color"`
	Layer       int    `yaml:"layer"`

	Player  bool        `yaml:"player"`
	Monster *MonsterDef `yaml:"monster"`
	Item    *ItemDef    `yaml:"item"`
	Health  *HealthDef  `yaml:"health"`
	Stats   *StatsDef   `yaml:"stats"`
	XP      *XPDef      `yaml:"experience"`

	Movement  *MovementDef  `yaml:"movement"`
	Blocks    *BlocksDef    `yaml:"blocks"`
	Movable   *MovableDef   `yaml:"movable"`
	Flammable *FlammableDef `yaml:"flammable"`

	Interactable *InteractableDef `yaml:"interactable"`
	Door         *DoorDef         `yaml:"door"`
	Container    *ContainerDef    `yaml:"container"`
	Light        *LightDef        `yaml:"light"`

	Effects []EffectDef `yaml:"effects"`
}

type MonsterDef struct {
	Kind            string `yaml:"kind"`
	ChallengeRating int    `yaml:"challenge_rating"`
}

type ItemDef struct {
	Weight    float64 `yaml:"weight"`
	Value     int     `yaml:"value"`
	Stackable bool    `yaml:"stackable"`
	MaxStack  int     `yaml:"max_stack"`
}

type HealthDef struct {
	Current int `yaml:"current"`
	Max     int `yaml:"max"`
}

type StatsDef struct {
	Str int `yaml:"str"`
	Dex int `yaml:"dex"`
	Con int `yaml:"con"`
	Int int `yaml:"int"`
	Wis int `yaml:"wis"`
	Cha int `yaml:"cha"`
}

type XPDef struct {
	Level  int `yaml:"level"`
	XP     int `yaml:"xp"`
	HitDie int `yaml:"hit_die"`
}

type MovementDef struct {
	Speed    int  `yaml:"speed"`
	Diagonal bool `yaml:"diagonal"`
}

type BlocksDef struct {
	Player  bool `yaml:"player"`
	Monster bool `yaml:"monster"`
	Item    bool `yaml:"item"`
}

type MovableDef struct {
	PushDifficulty int     `yaml:"push_difficulty"`
	Weight         float64 `yaml:"weight"`
}

type FlammableDef struct {
	IgnitionChance float64 `yaml:"ignition_chance"`
	BurnDamage     int     `yaml:"burn_damage"`
	FireResistance int     `yaml:"fire_resistance"`
}

type InteractableDef struct {
	Kind             string `yaml:"kind"`
	RequiresAdjacent *bool  `yaml:"requires_adjacent"`
	MaxUses          *int   `yaml:"max_uses"`
}

type DoorDef struct {
	Open   bool   `yaml:"open"`
	Locked bool   `yaml:"locked"`
	Key    string `yaml:"key"`
}

type ContainerDef struct {
	Capacity    int    `yaml:"capacity"`
	Open        bool   `yaml:"open"`
	RequiresKey bool   `yaml:"requires_key"`
	Key         string `yaml:"key"`
}

type LightDef struct {
	Brightness int     `yaml:"brightness"`
	Fuel       float64 `yaml:"fuel"`
	Lit        bool    `yaml:"lit"`
	Color      []int   `yaml:"color"`
}

// SpawnEntry places one prefab instance.
type SpawnEntry struct {
	Prefab string `yaml:"prefab"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	Room   int    `yaml:"room"`
}

type prefabFile struct {
	Prefabs map[string]*Prefab `yaml:"prefabs"`
	Spawns  []SpawnEntry       `yaml:"spawns"`
}

// PrefabTable provides prefab lookup by name plus the initial spawn list.
type PrefabTable struct {
	prefabs map[string]*Prefab
	spawns  []SpawnEntry
}

// LoadPrefabTable loads prefabs.yaml. Every spawn entry must name a
// defined prefab.
func LoadPrefabTable(path string) (*PrefabTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prefab table: %w", err)
	}
	return ParsePrefabTable(raw)
}

// ParsePrefabTable parses prefab YAML already in memory.
func ParsePrefabTable(raw []byte) (*PrefabTable, error) {
	var f prefabFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse prefab table: %w", err)
	}
	t := &PrefabTable{
		prefabs: make(map[string]*Prefab, len(f.Prefabs)),
		spawns:  f.Spawns,
	}
	for name, p := range f.Prefabs {
		if p == nil {
			p = &Prefab{}
		}
		t.prefabs[name] = p
	}
	for i, s := range t.spawns {
		if _, ok := t.prefabs[s.Prefab]; !ok {
			return nil, fmt.Errorf("spawn %d: unknown prefab %q", i, s.Prefab)
		}
	}
	return t, nil
}

// Get returns the prefab with the given name, or nil if none.
func (t *PrefabTable) Get(name string) *Prefab {
	return t.prefabs[name]
}

// Names returns the prefab names in sorted order.
func (t *PrefabTable) Names() []string {
	names := make([]string, 0, len(t.prefabs))
	for n := range t.prefabs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Spawns returns the initial spawn list.
func (t *PrefabTable) Spawns() []SpawnEntry {
	return t.spawns
}

// Count returns the total number of prefabs loaded.
func (t *PrefabTable) Count() int {
	return len(t.prefabs)
}
