package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nathoo/asteria/engine"
	"github.com/nathoo/asteria/loader"
)

// run feeds a scripted session through the CLI and returns the output.
func run(t *testing.T, input string) (string, *CLI) {
	t.Helper()

	w, err := loader.Load("", 42)
	if err != nil {
		t.Fatalf("loading embedded world: %v", err)
	}

	var out bytes.Buffer
	c := &CLI{
		Engine:  engine.New(w, engine.NewRNG(42)),
		In:      strings.NewReader(input),
		Out:     &out,
		SaveDir: t.TempDir(),
	}
	c.Run()
	return out.String(), c
}

func TestRun_IntroAndLook(t *testing.T) {
	out, _ := run(t, "look\nquit\n")

	if !strings.Contains(out, "Welcome to Echoes of Asteria") {
		t.Errorf("expected intro, got:\n%s", out)
	}
	if !strings.Contains(out, "Crossroads") {
		t.Errorf("expected starting room, got:\n%s", out)
	}
	if !strings.Contains(out, "Farewell") {
		t.Errorf("expected farewell on quit, got:\n%s", out)
	}
}

func TestRun_StopsOnQuit(t *testing.T) {
	out, c := run(t, "quit\nlook\n")

	if c.Engine.Running {
		t.Error("engine should have stopped")
	}
	// The look after quit must never be processed.
	if strings.Count(out, "== Crossroads ==") > 1 {
		t.Errorf("input after quit was processed:\n%s", out)
	}
}

func TestRun_SkipsCommentsAndBlanks(t *testing.T) {
	out, c := run(t, "# a script comment\n\nstats\nquit\n")

	if strings.Contains(out, "don't understand") {
		t.Errorf("comments must not reach the engine:\n%s", out)
	}
	if !strings.Contains(out, "Level 1") {
		t.Errorf("expected stats output:\n%s", out)
	}
	// Comment and blank line consume no turns; stats and quit do.
	if c.Engine.TurnCount != 2 {
		t.Errorf("expected 2 turns, got %d", c.Engine.TurnCount)
	}
}

func TestRun_EchoInput(t *testing.T) {
	w, err := loader.Load("", 42)
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	c := &CLI{
		Engine:    engine.New(w, engine.NewRNG(42)),
		In:        strings.NewReader("stats\nquit\n"),
		Out:       &out,
		SaveDir:   t.TempDir(),
		EchoInput: true,
	}
	c.Run()

	if !strings.Contains(out.String(), "> stats") {
		t.Errorf("expected echoed input, got:\n%s", out.String())
	}
}

func TestRun_AgainRepeatsLastCommand(t *testing.T) {
	out, _ := run(t, "stats\nagain\nquit\n")

	if got := strings.Count(out, "Level 1"); got != 2 {
		t.Errorf("expected stats twice via again, got %d:\n%s", got, out)
	}
}

func TestRun_AgainWithNoHistory(t *testing.T) {
	out, _ := run(t, "g\nquit\n")

	if !strings.Contains(out, "Nothing to repeat") {
		t.Errorf("expected repeat refusal, got:\n%s", out)
	}
}

func TestRun_SaveThenLoad(t *testing.T) {
	out, c := run(t, "stats\nsave slot1\nload slot1\nquit\n")

	if !strings.Contains(out, "Game saved to") {
		t.Fatalf("expected save confirmation, got:\n%s", out)
	}
	if !strings.Contains(out, "Game loaded (turn 1)") {
		t.Errorf("expected load confirmation at save-time turn, got:\n%s", out)
	}
	_ = c
}

func TestRun_LoadMissingSave(t *testing.T) {
	out, c := run(t, "load nosuch\nstats\nquit\n")

	if !strings.Contains(out, "Load failed") {
		t.Errorf("expected load failure message, got:\n%s", out)
	}
	// Live state must be untouched by the failed load.
	if c.Engine.Player.Gold != 30 {
		t.Errorf("failed load must not touch state, gold %d", c.Engine.Player.Gold)
	}
}

func TestRun_CombatPrompt(t *testing.T) {
	// Walking east from the crossroads reaches the Whispering Trees wolf.
	out, c := run(t, "east\nattack\nquit\n")

	if c.Engine.InCombat() && !strings.Contains(out, "[fight] >") {
		t.Errorf("expected combat prompt while fighting, got:\n%s", out)
	}
	if !strings.Contains(out, "Wolf") {
		t.Errorf("expected the wolf mentioned, got:\n%s", out)
	}
}
