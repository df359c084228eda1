package parser

import (
	"testing"

	"github.com/nathoo/asteria/types"
)

func TestParse_Table(t *testing.T) {
	tests := []struct {
		input string
		want  types.Intent
	}{
		{"", types.Intent{}},
		{"   ", types.Intent{}},
		{"look", types.Intent{Verb: "look"}},
		{"l", types.Intent{Verb: "look"}},
		{"LOOK", types.Intent{Verb: "look"}},
		{"n", types.Intent{Verb: "go", Arg: "north"}},
		{"North", types.Intent{Verb: "go", Arg: "north"}},
		{"go e", types.Intent{Verb: "go", Arg: "east"}},
		{"go north", types.Intent{Verb: "go", Arg: "north"}},
		{"move south", types.Intent{Verb: "go", Arg: "south"}},
		{"walk west", types.Intent{Verb: "go", Arg: "west"}},
		{"i", types.Intent{Verb: "inventory"}},
		{"inv", types.Intent{Verb: "inventory"}},
		{"x statue", types.Intent{Verb: "inspect", Arg: "statue"}},
		{"examine rusty key", types.Intent{Verb: "inspect", Arg: "rusty key"}},
		{"get herb", types.Intent{Verb: "take", Arg: "herb"}},
		{"take  Healing   Herb", types.Intent{Verb: "take", Arg: "healing herb"}},
		{"a", types.Intent{Verb: "attack"}},
		{"fight wolf", types.Intent{Verb: "attack", Arg: "wolf"}},
		{"run", types.Intent{Verb: "flee"}},
		{"purchase potion", types.Intent{Verb: "buy", Arg: "potion"}},
		{"exit", types.Intent{Verb: "quit"}},
		{"?", types.Intent{Verb: "help"}},
		{"m", types.Intent{Verb: "map"}},
		{"equip iron sword", types.Intent{Verb: "equip", Arg: "iron sword"}},
	}

	for _, tt := range tests {
		got := Parse(tt.input)
		if got != tt.want {
			t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}

func TestParse_DirectionWordAsArgumentKept(t *testing.T) {
	// "talk north" is nonsense, but the parser must not rewrite it.
	got := Parse("talk north")
	want := types.Intent{Verb: "talk", Arg: "north"}
	if got != want {
		t.Errorf("Parse(%q) = %+v, want %+v", "talk north", got, want)
	}
}

func TestDirection(t *testing.T) {
	if dir, ok := Direction("N"); !ok || dir != "north" {
		t.Errorf("Direction(N) = %q,%v", dir, ok)
	}
	if _, ok := Direction("up"); ok {
		t.Error("up is not a direction on this grid")
	}
}
