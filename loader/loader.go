// Package loader loads Lua world content into Go structs at startup.
// The Lua VM is discarded after loading — zero Lua at runtime.
package loader

import (
	_ "embed"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/asteria/types"
	"github.com/nathoo/asteria/world"
)

//go:embed content/world.lua
var defaultContent string

// rawRoom holds a room table before compilation.
type rawRoom struct {
	pos   types.Position
	table *lua.LTable
}

// rawEnemy holds an enemy template table before compilation.
type rawEnemy struct {
	kind  string
	table *lua.LTable
}

// collector accumulates Lua definitions during script execution.
type collector struct {
	game    *lua.LTable
	rooms   []rawRoom
	enemies []rawEnemy
	shop    *lua.LTable
	starter *lua.LTable
	spawns  *lua.LTable
	riddle  *lua.LTable
}

// Load builds a World from the first .lua file in dir, or from the
// embedded default script when dir is empty. seed drives the fixed
// world-generation rolls (chance-placed items), not runtime combat.
func Load(dir string, seed int64) (*world.World, error) {
	script := defaultContent
	name := "embedded world.lua"

	if dir != "" {
		path, err := findScript(dir)
		if err != nil {
			return nil, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading world script: %w", err)
		}
		script = string(data)
		name = path
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	if err := L.DoString(script); err != nil {
		return nil, fmt.Errorf("executing %s: %w", name, err)
	}

	w, err := compile(coll, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, fmt.Errorf("compiling world data: %w", err)
	}
	if err := validate(w); err != nil {
		return nil, err
	}
	return w, nil
}

// findScript returns the single .lua file expected in dir.
func findScript(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("reading content directory %s: %w", dir, err)
	}
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			return filepath.Join(dir, e.Name()), nil
		}
	}
	return "", fmt.Errorf("no .lua files found in %s", dir)
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes dangerous globals and functions.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}
	// Remove math.randomseed to preserve determinism.
	if mathTbl := L.GetGlobal("math"); mathTbl != lua.LNil {
		if tbl, ok := mathTbl.(*lua.LTable); ok {
			tbl.RawSetString("randomseed", lua.LNil)
		}
	}
}

// registerAPI registers all Lua constructors as globals.
func registerAPI(L *lua.LState, coll *collector) {
	// Game { title = "...", start = {x=..., y=...}, width = ..., height = ... }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		coll.game = L.CheckTable(1)
		return 0
	}))

	// Room(x, y) { ... } — curried: Room(x, y) returns a function taking a table.
	L.SetGlobal("Room", L.NewFunction(func(L *lua.LState) int {
		x := L.CheckInt(1)
		y := L.CheckInt(2)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.rooms = append(coll.rooms, rawRoom{pos: types.Position{X: x, Y: y}, table: tbl})
			return 0
		}))
		return 1
	}))

	// Enemy "kind" { ... } — curried.
	L.SetGlobal("Enemy", L.NewFunction(func(L *lua.LState) int {
		kind := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.enemies = append(coll.enemies, rawEnemy{kind: kind, table: tbl})
			return 0
		}))
		return 1
	}))

	// Item { id = "...", name = "...", ... } — pass-through, returns the table.
	L.SetGlobal("Item", L.NewFunction(func(L *lua.LState) int {
		L.Push(L.CheckTable(1))
		return 1
	}))

	// Maybe(chance, item) — the item is placed only if the worldgen roll
	// lands under chance.
	L.SetGlobal("Maybe", L.NewFunction(func(L *lua.LState) int {
		chance := L.CheckNumber(1)
		item := L.CheckTable(2)
		tbl := L.NewTable()
		tbl.RawSetString("__chance", chance)
		tbl.RawSetString("item", item)
		L.Push(tbl)
		return 1
	}))

	L.SetGlobal("Shop", L.NewFunction(func(L *lua.LState) int {
		coll.shop = L.CheckTable(1)
		return 0
	}))

	L.SetGlobal("Starter", L.NewFunction(func(L *lua.LState) int {
		coll.starter = L.CheckTable(1)
		return 0
	}))

	L.SetGlobal("Spawns", L.NewFunction(func(L *lua.LState) int {
		coll.spawns = L.CheckTable(1)
		return 0
	}))

	L.SetGlobal("Riddle", L.NewFunction(func(L *lua.LState) int {
		coll.riddle = L.CheckTable(1)
		return 0
	}))
}
