// Package world holds the static room grid and its mutable occupant state:
// ground items, resident enemies, and door locks. The engine only ever asks
// for a room by position or for a position's neighbors.
package world

import (
	"strings"

	"github.com/nathoo/asteria/engine/entity"
	"github.com/nathoo/asteria/types"
)

// Room is one grid tile's content.
type Room struct {
	Name        string
	Description string
	Pos         types.Position
	Items       []types.Item
	Enemy       *entity.Enemy // nil or inert once dead
	Locked      bool
	Special     string // "merchant", "villager", or ""
}

// TakeItem removes the first ground item whose name contains the given
// text, case-insensitively.
func (r *Room) TakeItem(name string) (types.Item, bool) {
	name = strings.ToLower(name)
	if name == "" {
		return types.Item{}, false
	}
	for i, it := range r.Items {
		if strings.Contains(strings.ToLower(it.Name), name) {
			r.Items = append(r.Items[:i], r.Items[i+1:]...)
			return it, true
		}
	}
	return types.Item{}, false
}

// FindItem returns a ground item by name without removing it.
func (r *Room) FindItem(name string) *types.Item {
	name = strings.ToLower(name)
	if name == "" {
		return nil
	}
	for i := range r.Items {
		if strings.Contains(strings.ToLower(r.Items[i].Name), name) {
			return &r.Items[i]
		}
	}
	return nil
}

// HostilePresent reports whether a living enemy occupies the room.
func (r *Room) HostilePresent() bool {
	return r.Enemy != nil && r.Enemy.Alive()
}

// EnemyTemplate is the stat block an enemy kind spawns from.
type EnemyTemplate struct {
	Name    string
	HP      int
	Attack  int
	Defense int
	Dodge   int
	XP      int
	Gold    int
	Final   bool
}

// Riddle is the single fixed puzzle guarding a locked room.
type Riddle struct {
	Room   types.Position
	Text   string
	Answer string // matched as a case-insensitive substring
	Reward types.Item
}

// Game holds world-level metadata from the content script.
type Game struct {
	Title   string
	Intro   string
	Start   types.Position
	Starter []types.Item // the player's opening inventory
}

// World is the full grid plus the catalogs the engine draws from.
type World struct {
	Width, Height int
	Rooms         map[types.Position]*Room
	Templates     map[string]EnemyTemplate
	ShopGoods     []types.Item // catalog templates, cloned on purchase
	SpawnKinds    []string     // wandering-enemy candidates
	Riddle        Riddle
	Game          Game
}

// Room returns the room at pos, or nil if out of the grid.
func (w *World) Room(pos types.Position) *Room {
	return w.Rooms[pos]
}

// Neighbors maps direction names to the adjacent in-bounds positions.
func (w *World) Neighbors(pos types.Position) map[string]types.Position {
	dirs := map[string]types.Position{
		"north": {X: pos.X, Y: pos.Y - 1},
		"south": {X: pos.X, Y: pos.Y + 1},
		"west":  {X: pos.X - 1, Y: pos.Y},
		"east":  {X: pos.X + 1, Y: pos.Y},
	}
	valid := map[string]types.Position{}
	for dir, p := range dirs {
		if p.X >= 0 && p.X < w.Width && p.Y >= 0 && p.Y < w.Height {
			valid[dir] = p
		}
	}
	return valid
}

// SpawnEnemy instantiates a fresh enemy of the given kind from its
// template. Returns nil for unknown kinds.
func (w *World) SpawnEnemy(kind string) *entity.Enemy {
	t, ok := w.Templates[kind]
	if !ok {
		return nil
	}
	return &entity.Enemy{
		Entity: entity.Entity{
			Name:    t.Name,
			MaxHP:   t.HP,
			HP:      t.HP,
			Attack:  t.Attack,
			Defense: t.Defense,
			Dodge:   t.Dodge,
		},
		Kind:       kind,
		XPReward:   t.XP,
		GoldReward: t.Gold,
		Final:      t.Final,
	}
}

// Minimap renders the grid with the player at @, living enemies as !,
// locked rooms as #, ground items as *, and visited empty tiles as dots.
// Undiscovered tiles are blank.
func (w *World) Minimap(player types.Position, discovered map[types.Position]bool) string {
	var sb strings.Builder
	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			pos := types.Position{X: x, Y: y}
			switch {
			case pos == player:
				sb.WriteByte('@')
			case !discovered[pos]:
				sb.WriteByte(' ')
			default:
				r := w.Rooms[pos]
				switch {
				case r == nil:
					sb.WriteByte(' ')
				case r.HostilePresent():
					sb.WriteByte('!')
				case r.Locked:
					sb.WriteByte('#')
				case len(r.Items) > 0:
					sb.WriteByte('*')
				default:
					sb.WriteByte('.')
				}
			}
		}
		if y < w.Height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
