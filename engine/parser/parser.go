// Package parser converts command strings into Intent structs.
// Intentionally dumb: no NLP, just tokenizing and alias tables.
package parser

import (
	"strings"

	"github.com/nathoo/asteria/types"
)

// Directions that work as standalone commands ("north" == "go north").
var directionExpansions = map[string]string{
	"n":     "north",
	"s":     "south",
	"e":     "east",
	"w":     "west",
	"north": "north",
	"south": "south",
	"east":  "east",
	"west":  "west",
}

// Verb aliases all resolve to one canonical verb so short and long forms
// behave identically.
var verbAliases = map[string]string{
	// Movement
	"move": "go",
	"walk": "go",

	// Look
	"l": "look",

	// Map
	"m": "map",

	// Inventory
	"inv": "inventory",
	"i":   "inventory",

	// Examine
	"examine": "inspect",
	"x":       "inspect",
	"check":   "inspect",

	// Take
	"get":  "take",
	"grab": "take",

	// Attack
	"a":     "attack",
	"fight": "attack",
	"hit":   "attack",

	// Flee
	"run":    "flee",
	"escape": "flee",

	// Shop sub-commands
	"purchase": "buy",
	"exit":     "quit",

	// Help
	"?": "help",
}

// Parse converts a raw command line into an Intent. The verb is
// lower-cased; the argument keeps its word spacing but is also lowered,
// since item and direction matching is case-insensitive throughout.
func Parse(input string) types.Intent {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(input)))
	if len(words) == 0 {
		return types.Intent{}
	}

	verb := words[0]
	if alias, ok := verbAliases[verb]; ok {
		verb = alias
	}

	// Bare direction → go <direction>.
	if len(words) == 1 {
		if dir, ok := directionExpansions[verb]; ok {
			return types.Intent{Verb: "go", Arg: dir}
		}
	}

	arg := strings.Join(words[1:], " ")
	if verb == "go" {
		if dir, ok := directionExpansions[arg]; ok {
			arg = dir
		}
	}

	return types.Intent{Verb: verb, Arg: arg}
}

// Direction normalizes a direction word, expanding single letters.
// Returns ("", false) for anything that is not a direction.
func Direction(word string) (string, bool) {
	dir, ok := directionExpansions[strings.ToLower(word)]
	return dir, ok
}
