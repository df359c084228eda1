// Package entity holds the combat-capable actors: the base Entity stat
// block, Enemy templates instantiated into rooms, and the Player aggregate
// with leveling, inventory, and equipment.
package entity

// Entity is any combat-capable actor. HP is always kept in [0, MaxHP].
type Entity struct {
	Name    string
	MaxHP   int
	HP      int
	Attack  int
	Defense int
	Dodge   int
}

// Alive reports whether the entity can still act.
func (e *Entity) Alive() bool {
	return e.HP > 0
}

// ApplyDamage subtracts damage from HP, clamped at 0.
func (e *Entity) ApplyDamage(n int) {
	e.HP -= n
	if e.HP < 0 {
		e.HP = 0
	}
}

// Heal adds to HP, clamped at MaxHP.
func (e *Entity) Heal(n int) {
	e.HP += n
	if e.HP > e.MaxHP {
		e.HP = e.MaxHP
	}
}

// CombatStats returns the stats used when this entity attacks or is
// attacked. Base entities have no equipment, so these are the raw values.
func (e *Entity) CombatStats() (attack, defense, dodge int) {
	return e.Attack, e.Defense, e.Dodge
}

// Body returns the underlying stat block for HP bookkeeping.
func (e *Entity) Body() *Entity {
	return e
}

// Enemy is an Entity with rewards fixed at creation from its template.
// A dead enemy stays in its room but is inert.
type Enemy struct {
	Entity
	Kind       string
	XPReward   int
	GoldReward int
	Final      bool // defeating this enemy ends the game
}
