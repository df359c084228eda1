package tui

import "testing"

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		line string
		want lineKind
	}{
		{"== Crossroads ==", kindRoomHeader},
		{"A dusty crossroads with a weathered sign.", kindNarrative},
		{"You see: Healing Herb.", kindYouSee},
		{"Exits: east, north, south", kindExits},
		{"You hit Wolf for 5 damage.", kindCombat},
		{"Wolf dodged the attack!", kindCombat},
		{"You have 37/40 HP remaining.", kindCombat},
		{"The Wolf has been defeated.", kindCombat},
		{"You gained 12 XP.", kindReward},
		{"You found 8 gold.", kindReward},
		{"*** You leveled up! Now level 2. Stats increased. ***", kindReward},
		{"Quest complete! You receive 15 gold.", kindReward},
		{"You don't have a 'sword'.", kindError},
		{"I don't understand 'dance'. Type 'help' for commands.", kindError},
		{`"Ah, a customer! Have a look." (buy <item>, sell <item>, list, leave)`, kindDialogue},
		{"@.!", kindMap},
		{"  #*.", kindMap},
		{"Gold: 30", kindNarrative},
	}

	for _, tt := range tests {
		if got := classifyLine(tt.line); got != tt.want {
			t.Errorf("classifyLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestIsMapRow(t *testing.T) {
	if !isMapRow("@ .#*") {
		t.Error("glyph rows must be map rows")
	}
	if isMapRow("") {
		t.Error("empty line is not a map row")
	}
	if isMapRow("     ") {
		t.Error("all-space line is not a map row")
	}
	if isMapRow("attack!") {
		t.Error("prose with a bang is not a map row")
	}
}
