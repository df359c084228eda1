package loader

import (
	"fmt"
	"math/rand"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/asteria/types"
	"github.com/nathoo/asteria/world"
)

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	if s, ok := tbl.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getBool returns a bool field from a Lua table, or the default if missing.
func getBool(tbl *lua.LTable, key string, def bool) bool {
	if b, ok := tbl.RawGetString(key).(lua.LBool); ok {
		return bool(b)
	}
	return def
}

// getInt returns an int field from a Lua table, or 0 if missing.
func getInt(tbl *lua.LTable, key string) int {
	if n, ok := tbl.RawGetString(key).(lua.LNumber); ok {
		return int(n)
	}
	return 0
}

// getFloat returns a float field from a Lua table, or 0 if missing.
func getFloat(tbl *lua.LTable, key string) float64 {
	if n, ok := tbl.RawGetString(key).(lua.LNumber); ok {
		return float64(n)
	}
	return 0
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	if t, ok := tbl.RawGetString(key).(*lua.LTable); ok {
		return t
	}
	return nil
}

// toPosition reads a {x=..., y=...} table.
func toPosition(tbl *lua.LTable) types.Position {
	if tbl == nil {
		return types.Position{}
	}
	return types.Position{X: getInt(tbl, "x"), Y: getInt(tbl, "y")}
}

// toItem reads an Item table into a types.Item.
func toItem(tbl *lua.LTable) (types.Item, error) {
	it := types.Item{
		ID:          getString(tbl, "id"),
		Name:        getString(tbl, "name"),
		Description: getString(tbl, "desc"),
		Kind:        types.ItemKind(getString(tbl, "kind")),
		Power:       getInt(tbl, "power"),
		Value:       getInt(tbl, "value"),
	}
	if it.ID == "" || it.Name == "" {
		return it, fmt.Errorf("item needs id and name: %+v", it)
	}
	if it.Kind == "" {
		it.Kind = types.KindMisc
	}
	switch it.Kind {
	case types.KindWeapon, types.KindArmor, types.KindConsumable, types.KindKey, types.KindMisc:
	default:
		return it, fmt.Errorf("item %s: unknown kind %q", it.ID, it.Kind)
	}
	return it, nil
}

// toItemList reads a sequence of Item (or Maybe) tables. Maybe entries are
// resolved against the seeded worldgen rng.
func toItemList(tbl *lua.LTable, rng *rand.Rand) ([]types.Item, error) {
	if tbl == nil {
		return nil, nil
	}
	var items []types.Item
	var err error
	tbl.ForEach(func(_, v lua.LValue) {
		entry, ok := v.(*lua.LTable)
		if !ok || err != nil {
			return
		}
		if chance, isMaybe := entry.RawGetString("__chance").(lua.LNumber); isMaybe {
			inner := getTable(entry, "item")
			if inner == nil {
				err = fmt.Errorf("Maybe entry without an item")
				return
			}
			if rng.Float64() >= float64(chance) {
				return
			}
			entry = inner
		}
		it, e := toItem(entry)
		if e != nil {
			err = e
			return
		}
		items = append(items, it)
	})
	return items, err
}

// compile turns collected Lua tables into a World.
func compile(coll *collector, rng *rand.Rand) (*world.World, error) {
	if coll.game == nil {
		return nil, fmt.Errorf("world script defines no Game block")
	}

	w := &world.World{
		Width:     getInt(coll.game, "width"),
		Height:    getInt(coll.game, "height"),
		Rooms:     map[types.Position]*world.Room{},
		Templates: map[string]world.EnemyTemplate{},
		Game: world.Game{
			Title: getString(coll.game, "title"),
			Intro: getString(coll.game, "intro"),
			Start: toPosition(getTable(coll.game, "start")),
		},
	}
	if w.Width <= 0 || w.Height <= 0 {
		return nil, fmt.Errorf("Game block needs positive width and height")
	}

	for _, re := range coll.enemies {
		w.Templates[re.kind] = world.EnemyTemplate{
			Name:    getString(re.table, "name"),
			HP:      getInt(re.table, "hp"),
			Attack:  getInt(re.table, "attack"),
			Defense: getInt(re.table, "defense"),
			Dodge:   getInt(re.table, "dodge"),
			XP:      getInt(re.table, "xp"),
			Gold:    getInt(re.table, "gold"),
			Final:   getBool(re.table, "final", false),
		}
	}

	for _, rr := range coll.rooms {
		items, err := toItemList(getTable(rr.table, "items"), rng)
		if err != nil {
			return nil, fmt.Errorf("room (%d,%d): %w", rr.pos.X, rr.pos.Y, err)
		}
		room := &world.Room{
			Name:        getString(rr.table, "name"),
			Description: getString(rr.table, "desc"),
			Pos:         rr.pos,
			Items:       items,
			Locked:      getBool(rr.table, "locked", false),
			Special:     getString(rr.table, "special"),
		}
		if kind := getString(rr.table, "enemy"); kind != "" {
			room.Enemy = w.SpawnEnemy(kind)
			if room.Enemy == nil {
				return nil, fmt.Errorf("room (%d,%d): unknown enemy kind %q", rr.pos.X, rr.pos.Y, kind)
			}
		}
		w.Rooms[rr.pos] = room
	}

	// Fill the gaps so every grid tile is walkable.
	for x := 0; x < w.Width; x++ {
		for y := 0; y < w.Height; y++ {
			pos := types.Position{X: x, Y: y}
			if _, ok := w.Rooms[pos]; !ok {
				w.Rooms[pos] = &world.Room{
					Name:        "Wilderness",
					Description: "Tall grass and nothing else.",
					Pos:         pos,
				}
			}
		}
	}

	var err error
	if w.ShopGoods, err = toItemList(coll.shop, rng); err != nil {
		return nil, fmt.Errorf("shop catalog: %w", err)
	}
	if w.Game.Starter, err = toItemList(coll.starter, rng); err != nil {
		return nil, fmt.Errorf("starter kit: %w", err)
	}

	if coll.spawns != nil {
		coll.spawns.ForEach(func(_, v lua.LValue) {
			if s, ok := v.(lua.LString); ok {
				w.SpawnKinds = append(w.SpawnKinds, string(s))
			}
		})
	}

	if coll.riddle != nil {
		reward, e := toItem(getTable(coll.riddle, "reward"))
		if e != nil {
			return nil, fmt.Errorf("riddle reward: %w", e)
		}
		w.Riddle = world.Riddle{
			Room:   toPosition(getTable(coll.riddle, "room")),
			Text:   getString(coll.riddle, "text"),
			Answer: getString(coll.riddle, "answer"),
			Reward: reward,
		}
	}

	return w, nil
}

// validate checks cross-references after compilation.
func validate(w *world.World) error {
	inBounds := func(p types.Position) bool {
		return p.X >= 0 && p.X < w.Width && p.Y >= 0 && p.Y < w.Height
	}
	if !inBounds(w.Game.Start) {
		return fmt.Errorf("start position (%d,%d) is outside the %dx%d grid",
			w.Game.Start.X, w.Game.Start.Y, w.Width, w.Height)
	}
	if start := w.Room(w.Game.Start); start != nil && start.Locked {
		return fmt.Errorf("start room is locked")
	}
	for _, kind := range w.SpawnKinds {
		if _, ok := w.Templates[kind]; !ok {
			return fmt.Errorf("spawn table references unknown enemy kind %q", kind)
		}
	}
	if w.Riddle.Text != "" {
		if !inBounds(w.Riddle.Room) {
			return fmt.Errorf("riddle room (%d,%d) is outside the grid", w.Riddle.Room.X, w.Riddle.Room.Y)
		}
		if w.Riddle.Answer == "" {
			return fmt.Errorf("riddle has no answer")
		}
	}
	return nil
}
