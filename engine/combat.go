package engine

import (
	"fmt"

	"github.com/nathoo/asteria/engine/entity"
	"github.com/nathoo/asteria/types"
)

// Combat tuning. The dodge convention is roll(1d20) + defender dodge > 20,
// so a dodge stat of n dodges n times in 20.
const (
	critChance     = 0.12
	critMultiplier = 1.8
	critBonus      = 2
	fleeChance     = 0.5
	dropChance     = 0.3
	defeatGoldTax  = 0.2
)

// Combatant is anything that can take part in an attack. Entity satisfies
// it with base stats; Player overrides CombatStats with equipment bonuses.
type Combatant interface {
	CombatStats() (attack, defense, dodge int)
	Body() *entity.Entity
}

// ResolveAttack resolves a single attack from attacker to defender:
// dodge check, damage, critical scaling, variability, minimum 1 on a hit.
// The only state touched is the defender's HP.
func ResolveAttack(attacker, defender Combatant, rng Roller) types.AttackOutcome {
	atk, _, _ := attacker.CombatStats()
	_, def, dodge := defender.CombatStats()

	if rng.Roll(20)+dodge > 20 {
		return types.AttackOutcome{}
	}

	base := atk - def
	if base < 0 {
		base = 0
	}

	crit := rng.Chance(critChance)
	if crit {
		base = int(float64(base)*critMultiplier) + critBonus
	}

	dmg := base + rng.Between(-1, 2)
	if dmg < 1 {
		dmg = 1
	}
	defender.Body().ApplyDamage(dmg)

	return types.AttackOutcome{Hit: true, Damage: dmg, Critical: crit}
}

// EncounterState is the combat state machine.
type EncounterState int

const (
	Ongoing EncounterState = iota
	PlayerVictory
	PlayerDefeat
	Fled
)

// Encounter orchestrates one continuous fight between the player and a
// single enemy, from first attack to victory, defeat, or escape.
type Encounter struct {
	Player  *entity.Player
	Enemy   *entity.Enemy
	State   EncounterState
	Rounds  int
	Respawn types.Position // where a defeated player wakes up

	rng Roller

	// Set by the victory transition for the caller to act on.
	DroppedLoot bool
	GoldLost    int
	LevelsUp    int
}

// NewEncounter starts a fight. respawn is the defeat teleport target.
func NewEncounter(p *entity.Player, e *entity.Enemy, respawn types.Position, rng Roller) *Encounter {
	return &Encounter{Player: p, Enemy: e, Respawn: respawn, rng: rng}
}

// Attack runs one attack round: the player strikes, and unless that ended
// the fight, the enemy retaliates. A player kill short-circuits retaliation.
func (enc *Encounter) Attack() []string {
	if enc.State != Ongoing {
		return nil
	}
	enc.Rounds++

	var out []string
	res := ResolveAttack(enc.Player, enc.Enemy, enc.rng)
	out = append(out, attackLine(enc.Player.Name, enc.Enemy.Name, res))

	if !enc.Enemy.Alive() {
		out = append(out, enc.victory()...)
		return out
	}

	out = append(out, enc.Retaliate()...)
	return out
}

// Retaliate resolves the enemy's counterattack. It also runs after a
// mid-combat item use or a failed flee — neither is a free action.
func (enc *Encounter) Retaliate() []string {
	if enc.State != Ongoing {
		return nil
	}

	res := ResolveAttack(enc.Enemy, enc.Player, enc.rng)
	out := []string{attackLine(enc.Enemy.Name, enc.Player.Name, res)}

	if !enc.Player.Alive() {
		out = append(out, enc.defeat()...)
		return out
	}
	out = append(out, fmt.Sprintf("You have %d/%d HP remaining.", enc.Player.HP, enc.Player.MaxHP))
	return out
}

// AttemptFlee tries to escape. Success ends the encounter with no further
// HP change this round; failure costs the player a retaliation.
func (enc *Encounter) AttemptFlee() []string {
	if enc.State != Ongoing {
		return nil
	}
	enc.Rounds++

	if enc.rng.Chance(fleeChance) {
		enc.State = Fled
		return []string{fmt.Sprintf("You break away from the %s and escape!", enc.Enemy.Name)}
	}

	out := []string{fmt.Sprintf("You try to run, but the %s cuts you off!", enc.Enemy.Name)}
	out = append(out, enc.Retaliate()...)
	return out
}

// victory applies the rewards: XP (with level-ups), gold, and a loot roll.
func (enc *Encounter) victory() []string {
	enc.State = PlayerVictory

	out := []string{fmt.Sprintf("The %s has been defeated.", enc.Enemy.Name)}
	out = append(out, fmt.Sprintf("You gained %d XP.", enc.Enemy.XPReward))

	enc.LevelsUp = enc.Player.GainXP(enc.Enemy.XPReward)
	if enc.LevelsUp > 0 {
		out = append(out, fmt.Sprintf("*** You leveled up! Now level %d. Stats increased. ***", enc.Player.Level))
	}

	enc.Player.Gold += enc.Enemy.GoldReward
	out = append(out, fmt.Sprintf("You found %d gold.", enc.Enemy.GoldReward))

	enc.DroppedLoot = enc.rng.Chance(dropChance)
	return out
}

// defeat applies the respawn penalty: half HP, a fifth of the gold, and a
// teleport back to the start. Not a game over.
func (enc *Encounter) defeat() []string {
	enc.State = PlayerDefeat

	enc.Player.HP = enc.Player.MaxHP / 2
	enc.GoldLost = int(float64(enc.Player.Gold) * defeatGoldTax)
	enc.Player.Gold -= enc.GoldLost
	enc.Player.Pos = enc.Respawn
	enc.Player.Discover(enc.Respawn)

	return []string{
		"You have been defeated... You wake up back where you started, battered and lighter in the purse.",
		fmt.Sprintf("You lost %d gold.", enc.GoldLost),
	}
}

func attackLine(attacker, defender string, res types.AttackOutcome) string {
	if !res.Hit {
		return fmt.Sprintf("%s dodged the attack!", defender)
	}
	suffix := ""
	if res.Critical {
		suffix = " (CRITICAL)"
	}
	return fmt.Sprintf("%s hit %s for %d damage%s.", attacker, defender, res.Damage, suffix)
}
