package engine

import "github.com/nathoo/asteria/engine/save"

// Snapshot captures the restorable game state. Room contents are rebuilt
// from the content script on load, so only the player, the turn counter,
// and the RNG stream go to disk.
func (e *Engine) Snapshot() *save.Data {
	return save.Capture(e.Player, e.TurnCount, e.RNG.Seed(), e.RNG.Position())
}

// Restore replaces live state with a snapshot. Any fight, shop visit, or
// riddle in progress is abandoned.
func (e *Engine) Restore(d *save.Data) {
	d.Apply(e.Player)
	e.RNG = RestoreRNG(d.RNGSeed, d.RNGPosition)
	e.TurnCount = d.Turn
	e.mode = modeExplore
	e.enc = nil
	e.Running = true
}
