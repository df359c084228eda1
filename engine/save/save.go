// Package save serializes a game snapshot to versioned JSON. The snapshot
// covers the player, the turn counter, and the RNG stream position, so a
// loaded game replays the same run of luck it would have had.
package save

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/nathoo/asteria/engine/entity"
	"github.com/nathoo/asteria/types"
)

const Version = 1

// Data is the on-disk snapshot.
type Data struct {
	Version     int        `json:"version"`
	Turn        int        `json:"turn"`
	Player      PlayerData `json:"player"`
	RNGSeed     int64      `json:"rng_seed"`
	RNGPosition int64      `json:"rng_position"`
}

// PlayerData mirrors entity.Player in plain serializable form.
type PlayerData struct {
	Name     string `json:"name"`
	MaxHP    int    `json:"max_hp"`
	HP       int    `json:"hp"`
	Attack   int    `json:"attack"`
	Defense  int    `json:"defense"`
	Dodge    int    `json:"dodge"`
	Level    int    `json:"level"`
	XP       int    `json:"xp"`
	XPToNext int    `json:"xp_to_next"`
	Gold     int    `json:"gold"`

	Pos        types.Position         `json:"pos"`
	Inventory  []types.Item           `json:"inventory"`
	WeaponID   string                 `json:"weapon_id,omitempty"`
	ArmorID    string                 `json:"armor_id,omitempty"`
	Quests     map[string]types.Quest `json:"quests,omitempty"`
	Discovered []types.Position       `json:"discovered"`
}

// Capture builds a snapshot from live state.
func Capture(p *entity.Player, turn int, rngSeed, rngPosition int64) *Data {
	discovered := make([]types.Position, 0, len(p.Discovered))
	for pos := range p.Discovered {
		discovered = append(discovered, pos)
	}
	sort.Slice(discovered, func(i, j int) bool {
		if discovered[i].Y != discovered[j].Y {
			return discovered[i].Y < discovered[j].Y
		}
		return discovered[i].X < discovered[j].X
	})

	return &Data{
		Version: Version,
		Turn:    turn,
		Player: PlayerData{
			Name:     p.Name,
			MaxHP:    p.MaxHP,
			HP:       p.HP,
			Attack:   p.Attack,
			Defense:  p.Defense,
			Dodge:    p.Dodge,
			Level:    p.Level,
			XP:       p.XP,
			XPToNext: p.XPToNext,
			Gold:     p.Gold,

			Pos:        p.Pos,
			Inventory:  append([]types.Item(nil), p.Inventory...),
			WeaponID:   p.WeaponID,
			ArmorID:    p.ArmorID,
			Quests:     p.Quests,
			Discovered: discovered,
		},
		RNGSeed:     rngSeed,
		RNGPosition: rngPosition,
	}
}

// Apply writes the snapshot's player state back onto a live player.
// Maps are rebuilt so a zero-value snapshot still leaves them usable.
func (d *Data) Apply(p *entity.Player) {
	pd := d.Player
	p.Name = pd.Name
	p.MaxHP = pd.MaxHP
	p.HP = pd.HP
	p.Attack = pd.Attack
	p.Defense = pd.Defense
	p.Dodge = pd.Dodge
	p.Level = pd.Level
	p.XP = pd.XP
	p.XPToNext = pd.XPToNext
	p.Gold = pd.Gold

	p.Pos = pd.Pos
	p.Inventory = append([]types.Item(nil), pd.Inventory...)
	p.WeaponID = pd.WeaponID
	p.ArmorID = pd.ArmorID

	p.Quests = map[string]types.Quest{}
	for id, q := range pd.Quests {
		p.Quests[id] = q
	}
	p.Discovered = map[types.Position]bool{}
	for _, pos := range pd.Discovered {
		p.Discovered[pos] = true
	}
	p.Discovered[p.Pos] = true
}

// Write marshals the snapshot to path, creating parent directories.
func Write(path string, d *Data) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating save directory: %w", err)
	}
	raw, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding save: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("writing save: %w", err)
	}
	return nil
}

// Read loads and validates a snapshot from path.
func Read(path string) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading save: %w", err)
	}
	var d Data
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("decoding save: %w", err)
	}
	if d.Version != Version {
		return nil, fmt.Errorf("unsupported save version %d (want %d)", d.Version, Version)
	}
	return &d, nil
}

// DefaultDir returns the per-user save directory, ~/.asteria/saves.
func DefaultDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".asteria", "saves")
}
