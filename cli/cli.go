// Package cli provides the plain line-oriented terminal front end: prompt,
// input loop, output printing, and the save/load meta-commands.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/nathoo/asteria/engine"
	"github.com/nathoo/asteria/engine/save"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Engine    *engine.Engine
	In        io.Reader
	Out       io.Writer
	SaveDir   string
	EchoInput bool // echo each input line after the prompt (for script playback)
	lastCmd   string
}

// New creates a CLI wired to the given engine, reading stdin and writing
// stdout.
func New(eng *engine.Engine) *CLI {
	return &CLI{Engine: eng, In: os.Stdin, Out: os.Stdout, SaveDir: save.DefaultDir()}
}

// Run starts the game loop: intro, then prompt → input → dispatch → output
// until the engine stops running or input ends. Ctrl+C while waiting for
// input prints a farewell and exits cleanly.
func (c *CLI) Run() {
	if c.In == os.Stdin {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-sig
			fmt.Fprintln(c.Out, "\nFarewell, adventurer.")
			os.Exit(0)
		}()
	}

	c.printResult(c.Engine.Intro().Output)

	scanner := bufio.NewScanner(c.In)
	for c.Engine.Running {
		c.prompt()
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			fmt.Fprintln(c.Out, input)
		}

		// "again" / "g" repeats the last game command.
		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printSystem("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		// Save and load touch the filesystem, so the front end owns them.
		if handled := c.handleMeta(input); handled {
			continue
		}

		c.printResult(c.Engine.Step(input).Output)
	}
}

func (c *CLI) prompt() {
	if c.Engine.InCombat() {
		fmt.Fprint(c.Out, "[fight] > ")
		return
	}
	fmt.Fprint(c.Out, "> ")
}

// handleMeta intercepts save/load before the engine sees them. Returns
// true if the input was consumed.
func (c *CLI) handleMeta(input string) bool {
	parts := strings.Fields(strings.ToLower(input))
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch parts[0] {
	case "save":
		c.cmdSave(arg)
		return true
	case "load":
		c.cmdLoad(arg)
		return true
	}
	return false
}

func (c *CLI) savePath(name string) string {
	if name == "" {
		name = "savegame"
	}
	return filepath.Join(c.SaveDir, name+".json")
}

func (c *CLI) cmdSave(name string) {
	path := c.savePath(name)
	if err := save.Write(path, c.Engine.Snapshot()); err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}
	c.printSystem(fmt.Sprintf("Game saved to %s.", path))
}

func (c *CLI) cmdLoad(name string) {
	data, err := save.Read(c.savePath(name))
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}

	c.Engine.Restore(data)
	c.printSystem(fmt.Sprintf("Game loaded (turn %d).", data.Turn))
	c.printResult(c.Engine.Step("look").Output)
}

func (c *CLI) printResult(lines []string) {
	for _, line := range lines {
		fmt.Fprintln(c.Out, line)
	}
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
