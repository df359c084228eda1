// Package types defines the shared data structures for the Asteria engine.
// This package contains only type definitions — no logic, no methods.
package types

// Position is a coordinate on the world grid.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ItemKind classifies what an item is for.
type ItemKind string

const (
	KindWeapon     ItemKind = "weapon"
	KindArmor      ItemKind = "armor"
	KindConsumable ItemKind = "consumable"
	KindKey        ItemKind = "key"
	KindMisc       ItemKind = "misc"
)

// Item is a value object owned by exactly one container at a time
// (a room's ground, the player's inventory, or a shop catalog template).
// Power means weapon/armor bonus or consumable heal amount depending on Kind.
type Item struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Kind        ItemKind `json:"kind"`
	Power       int      `json:"power"`
	Value       int      `json:"value"`
}

// Quest is one entry in the player's quest log.
type Quest struct {
	Description string `json:"description"`
	Done        bool   `json:"done"`
}

// Intent is the parsed representation of a player command.
type Intent struct {
	Verb string
	Arg  string // remainder of the line, joined
}

// Result is the output of a single game step.
type Result struct {
	Output []string
}

// AttackOutcome describes one resolved attack.
type AttackOutcome struct {
	Hit      bool
	Damage   int
	Critical bool
}
