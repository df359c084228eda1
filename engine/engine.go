// Package engine is the deterministic game core. Front ends feed command
// strings into Step and print the returned lines; the engine never touches
// the terminal or the filesystem itself.
package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/nathoo/asteria/engine/entity"
	"github.com/nathoo/asteria/engine/parser"
	"github.com/nathoo/asteria/types"
	"github.com/nathoo/asteria/world"
)

// Random event odds after a successful move.
const (
	wanderSpawnChance = 0.12
	groundFindChance  = 0.06
)

const keyReachDistance = 2 // Manhattan range a key can unlock over

type mode int

const (
	modeExplore mode = iota
	modeCombat
	modeShop
	modeRiddle
)

// Engine holds the full mutable game state and dispatches commands.
type Engine struct {
	World     *world.World
	Player    *entity.Player
	RNG       *RNG
	Running   bool
	TurnCount int

	mode mode
	enc  *Encounter
}

// New builds a fresh game: player at the start tile with the starter kit,
// first weapon and armor in the kit pre-equipped.
func New(w *world.World, rng *RNG) *Engine {
	p := entity.NewPlayer("You", w.Game.Start)
	for _, it := range w.Game.Starter {
		it := it
		p.AddItem(it)
		if (it.Kind == types.KindWeapon && p.WeaponID == "") ||
			(it.Kind == types.KindArmor && p.ArmorID == "") {
			p.Equip(&it)
		}
	}
	return &Engine{World: w, Player: p, RNG: rng, Running: true}
}

// InCombat reports whether a fight is in progress. Used by front ends to
// decorate the prompt.
func (e *Engine) InCombat() bool { return e.mode == modeCombat }

// Intro returns the opening text plus the starting room description.
func (e *Engine) Intro() types.Result {
	out := []string{e.World.Game.Intro, ""}
	out = append(out, e.describeRoom()...)
	return types.Result{Output: out}
}

// Step processes one command. Empty input and unrecognized verbs are
// no-ops; every understood command consumes a turn.
func (e *Engine) Step(input string) types.Result {
	if !e.Running {
		return types.Result{}
	}
	in := parser.Parse(input)
	if in.Verb == "" {
		return types.Result{}
	}
	e.TurnCount++

	var out []string
	switch e.mode {
	case modeCombat:
		out = e.combatStep(in)
	case modeShop:
		out = e.shopStep(in)
	case modeRiddle:
		out = e.riddleStep(in)
	default:
		out = e.exploreStep(in)
	}
	return types.Result{Output: out}
}

func (e *Engine) exploreStep(in types.Intent) []string {
	switch in.Verb {
	case "look":
		return e.describeRoom()
	case "go":
		return e.move(in.Arg)
	case "map":
		return e.showMap()
	case "inventory":
		return e.showInventory()
	case "inspect":
		return e.inspect(in.Arg)
	case "equip":
		return e.equip(in.Arg)
	case "unequip":
		return e.unequip(in.Arg)
	case "use":
		return e.useItem(in.Arg)
	case "take":
		return e.take(in.Arg)
	case "drop":
		return e.drop(in.Arg)
	case "talk":
		return e.talk()
	case "shop":
		if e.room().Special == "merchant" {
			return e.enterShop()
		}
		return []string{"There is no shop here."}
	case "quests":
		return e.showQuests()
	case "stats":
		return e.showStats()
	case "riddle":
		return e.startRiddle()
	case "attack":
		return e.startCombat()
	case "flee":
		return []string{"There is nothing here to run from."}
	case "buy", "sell":
		return []string{"You need to find the merchant first."}
	case "help":
		return e.help()
	case "quit":
		e.Running = false
		return []string{"Farewell, adventurer."}
	}
	return e.notUnderstood(in.Verb)
}

// combatStep gates commands to the combat vocabulary.
func (e *Engine) combatStep(in types.Intent) []string {
	switch in.Verb {
	case "attack":
		out := e.enc.Attack()
		return append(out, e.afterCombat()...)
	case "flee":
		out := e.enc.AttemptFlee()
		return append(out, e.afterCombat()...)
	case "use":
		return e.useItem(in.Arg)
	case "stats":
		return e.showStats()
	case "inventory":
		return e.showInventory()
	case "help":
		return e.help()
	case "quit":
		e.Running = false
		return []string{"Farewell, adventurer."}
	}
	if !knownVerbs[in.Verb] {
		return e.notUnderstood(in.Verb)
	}
	return []string{fmt.Sprintf("No time for that while the %s is on you! (attack, use, flee)", e.enc.Enemy.Name)}
}

// riddleStep treats the whole input line as the answer attempt.
func (e *Engine) riddleStep(in types.Intent) []string {
	answer := strings.TrimSpace(in.Verb + " " + in.Arg)
	e.mode = modeExplore

	r := &e.World.Riddle
	if !strings.Contains(strings.ToLower(answer), strings.ToLower(r.Answer)) {
		return []string{"The door stays silent. That is not the answer."}
	}

	room := e.World.Room(r.Room)
	room.Locked = false
	room.Items = append(room.Items, r.Reward)
	return []string{
		"Stone grinds against stone as the door swings open!",
		fmt.Sprintf("Something glitters inside: %s.", r.Reward.Name),
	}
}

func (e *Engine) room() *world.Room {
	return e.World.Room(e.Player.Pos)
}

func (e *Engine) describeRoom() []string {
	r := e.room()
	out := []string{fmt.Sprintf("== %s ==", r.Name), r.Description}

	if r.HostilePresent() {
		out = append(out, fmt.Sprintf("A %s is here, watching you. (%d/%d HP)",
			r.Enemy.Name, r.Enemy.HP, r.Enemy.MaxHP))
	}
	switch r.Special {
	case "merchant":
		out = append(out, "A traveling merchant waves you over. (talk)")
	case "villager":
		out = append(out, "An old villager sits by the door. (talk)")
	}
	for _, it := range r.Items {
		out = append(out, fmt.Sprintf("You see: %s.", it.Name))
	}

	exits := e.World.Neighbors(e.Player.Pos)
	names := make([]string, 0, len(exits))
	for dir := range exits {
		names = append(names, dir)
	}
	sort.Strings(names)
	out = append(out, "Exits: "+strings.Join(names, ", "))
	return out
}

func (e *Engine) move(arg string) []string {
	dir, ok := parser.Direction(arg)
	if !ok {
		return []string{"Go where? Try north, south, east or west."}
	}
	dest, ok := e.World.Neighbors(e.Player.Pos)[dir]
	if !ok {
		return []string{"The land ends that way. You cannot go " + dir + "."}
	}
	if e.World.Room(dest).Locked {
		return []string{"A heavy stone door blocks the way. It is locked tight."}
	}

	e.Player.Pos = dest
	e.Player.Discover(dest)

	out := e.describeRoom()
	out = append(out, e.randomEvents()...)
	return out
}

// randomEvents rolls the post-movement surprises: a wandering enemy, or a
// small find on the ground. At most one fires per move.
func (e *Engine) randomEvents() []string {
	r := e.room()
	if !r.HostilePresent() && r.Special == "" && len(e.World.SpawnKinds) > 0 &&
		e.RNG.Chance(wanderSpawnChance) {
		kind := e.World.SpawnKinds[e.RNG.Between(0, len(e.World.SpawnKinds)-1)]
		r.Enemy = e.World.SpawnEnemy(kind)
		return []string{fmt.Sprintf("A wandering %s appears!", r.Enemy.Name)}
	}
	if e.RNG.Chance(groundFindChance) {
		coin := types.Item{
			ID:          freshID("silver_coin"),
			Name:        "Silver Coin",
			Description: "A worn silver coin. Someone's bad day, your good one.",
			Kind:        types.KindMisc,
			Value:       10,
		}
		r.Items = append(r.Items, coin)
		return []string{"Something glints in the dirt: a Silver Coin."}
	}
	return nil
}

func (e *Engine) showMap() []string {
	out := strings.Split(e.World.Minimap(e.Player.Pos, e.Player.Discovered), "\n")
	out = append(out, "", "@ you   ! enemy   # locked   * items   . explored")
	return out
}

func (e *Engine) showInventory() []string {
	p := e.Player
	if len(p.Inventory) == 0 {
		return []string{"Your pack is empty."}
	}
	out := []string{"You are carrying:"}
	for _, it := range p.Inventory {
		mark := ""
		if p.IsEquipped(it.ID) {
			mark = " [equipped]"
		}
		out = append(out, fmt.Sprintf("  %s (%s)%s", it.Name, it.Kind, mark))
	}
	out = append(out, fmt.Sprintf("Gold: %d", p.Gold))
	return out
}

func (e *Engine) inspect(arg string) []string {
	if arg == "" {
		return []string{"Inspect what?"}
	}
	it := e.Player.FindItem(arg)
	if it == nil {
		it = e.room().FindItem(arg)
	}
	if it == nil {
		return []string{fmt.Sprintf("You see no '%s' here or in your pack.", arg)}
	}

	out := []string{fmt.Sprintf("%s — %s", it.Name, it.Description)}
	switch it.Kind {
	case types.KindWeapon:
		out = append(out, fmt.Sprintf("Weapon, +%d attack. Worth %d gold.", it.Power, it.Value))
	case types.KindArmor:
		out = append(out, fmt.Sprintf("Armor, +%d defense. Worth %d gold.", it.Power, it.Value))
	case types.KindConsumable:
		out = append(out, fmt.Sprintf("Consumable, restores %d HP. Worth %d gold.", it.Power, it.Value))
	case types.KindKey:
		out = append(out, "A key. It must fit a lock somewhere nearby.")
	default:
		out = append(out, fmt.Sprintf("Worth %d gold, if you find a buyer.", it.Value))
	}
	return out
}

func (e *Engine) equip(arg string) []string {
	if arg == "" {
		return []string{"Equip what?"}
	}
	it := e.Player.FindItem(arg)
	if it == nil {
		return []string{fmt.Sprintf("You don't have a '%s'.", arg)}
	}
	if !e.Player.Equip(it) {
		return []string{fmt.Sprintf("You can't wield the %s.", it.Name)}
	}
	return []string{fmt.Sprintf("You equip the %s.", it.Name)}
}

func (e *Engine) unequip(arg string) []string {
	slot := strings.ToLower(arg)
	if slot != "weapon" && slot != "armor" {
		if it := e.Player.FindItem(arg); it != nil && e.Player.IsEquipped(it.ID) {
			slot = string(it.Kind)
		}
	}
	it := e.Player.Unequip(slot)
	if it == nil {
		return []string{"You have nothing like that equipped."}
	}
	return []string{fmt.Sprintf("You stow the %s.", it.Name)}
}

// useItem covers both explore and combat. Consumables heal; keys unlock a
// locked room within reach. Using anything mid-combat costs the round.
func (e *Engine) useItem(arg string) []string {
	if arg == "" {
		return []string{"Use what?"}
	}
	it := e.Player.FindItem(arg)
	if it == nil {
		return []string{fmt.Sprintf("You don't have a '%s'.", arg)}
	}

	switch it.Kind {
	case types.KindConsumable:
		e.Player.Heal(it.Power)
		used := *it
		e.Player.RemoveItem(it.ID)
		out := []string{fmt.Sprintf("You use the %s and recover %d HP. (%d/%d)",
			used.Name, used.Power, e.Player.HP, e.Player.MaxHP)}
		if e.mode == modeCombat {
			out = append(out, e.enc.Retaliate()...)
			out = append(out, e.afterCombat()...)
		}
		return out

	case types.KindKey:
		out := e.useKey(it)
		if e.mode == modeCombat {
			out = append(out, e.enc.Retaliate()...)
			out = append(out, e.afterCombat()...)
		}
		return out
	}
	return []string{fmt.Sprintf("You can't find a use for the %s right now.", it.Name)}
}

// useKey unlocks the nearest locked room within reach and consumes the key.
func (e *Engine) useKey(key *types.Item) []string {
	for _, r := range e.sortedRooms() {
		if r.Locked && manhattan(e.Player.Pos, r.Pos) <= keyReachDistance {
			r.Locked = false
			name := key.Name
			e.Player.RemoveItem(key.ID)
			return []string{fmt.Sprintf("The %s turns with a heavy click. The way to %s is open.", name, r.Name)}
		}
	}
	return []string{"You find no lock nearby that this key fits."}
}

func (e *Engine) take(arg string) []string {
	if arg == "" {
		return []string{"Take what?"}
	}
	it, ok := e.room().TakeItem(arg)
	if !ok {
		return []string{fmt.Sprintf("There is no '%s' here.", arg)}
	}
	e.Player.AddItem(it)
	return []string{fmt.Sprintf("You pick up the %s.", it.Name)}
}

func (e *Engine) drop(arg string) []string {
	if arg == "" {
		return []string{"Drop what?"}
	}
	it := e.Player.FindItem(arg)
	if it == nil {
		return []string{fmt.Sprintf("You don't have a '%s'.", arg)}
	}
	if e.Player.IsEquipped(it.ID) {
		return []string{fmt.Sprintf("The %s is equipped. Unequip it first.", it.Name)}
	}
	dropped, _ := e.Player.RemoveItem(it.ID)
	r := e.room()
	r.Items = append(r.Items, dropped)
	return []string{fmt.Sprintf("You drop the %s.", dropped.Name)}
}

func (e *Engine) talk() []string {
	r := e.room()
	switch {
	case r.Special == "merchant":
		return e.enterShop()
	case r.Special == "villager":
		return e.talkVillager()
	case r.HostilePresent():
		return []string{fmt.Sprintf("The %s snarls. It is not in a talking mood.", r.Enemy.Name)}
	}
	return []string{"There is no one here to talk to."}
}

// talkVillager drives the lost_herb quest: first talk grants it, talking
// again with the herb in hand completes it for a small reward.
func (e *Engine) talkVillager() []string {
	const questID = "lost_herb"
	const reward = 15

	p := e.Player
	q, started := p.Quests[questID]
	if started && q.Done {
		return []string{`"Thank you again, traveler. My knees feel twenty years younger."`}
	}

	if !started {
		p.Quests[questID] = types.Quest{
			Description: "Find a healing herb for the old villager.",
		}
		return []string{
			`"My knees ache something terrible... If you find a healing herb out there, bring it to me. I'll make it worth your while."`,
			"New quest: find a healing herb for the villager.",
		}
	}

	herb := p.FindItem("healing herb")
	if herb == nil {
		return []string{`"No herb yet? The meadows south of the crossroads used to be full of them."`}
	}

	p.RemoveItem(herb.ID)
	q.Done = true
	p.Quests[questID] = q
	p.Gold += reward
	return []string{
		`"Bless you, traveler! That's the one." The villager presses a few coins into your hand.`,
		fmt.Sprintf("Quest complete! You receive %d gold.", reward),
	}
}

func (e *Engine) showQuests() []string {
	p := e.Player
	if len(p.Quests) == 0 {
		return []string{"No quests yet. Talk to the people you meet."}
	}
	ids := make([]string, 0, len(p.Quests))
	for id := range p.Quests {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := []string{"Quests:"}
	for _, id := range ids {
		q := p.Quests[id]
		status := "active"
		if q.Done {
			status = "done"
		}
		out = append(out, fmt.Sprintf("  [%s] %s", status, q.Description))
	}
	return out
}

func (e *Engine) showStats() []string {
	p := e.Player
	atk, def, dodge := p.CombatStats()
	out := []string{
		fmt.Sprintf("Level %d  (%d/%d XP)", p.Level, p.XP, p.XPToNext),
		fmt.Sprintf("HP %d/%d   Attack %d   Defense %d   Dodge %d", p.HP, p.MaxHP, atk, def, dodge),
		fmt.Sprintf("Gold %d   Position (%d,%d)", p.Gold, p.Pos.X, p.Pos.Y),
	}
	if w := p.EquippedWeapon(); w != nil {
		out = append(out, fmt.Sprintf("Weapon: %s (+%d)", w.Name, w.Power))
	}
	if a := p.EquippedArmor(); a != nil {
		out = append(out, fmt.Sprintf("Armor: %s (+%d)", a.Name, a.Power))
	}
	return out
}

// startRiddle engages the riddle door if it is in the current room or an
// adjacent one.
func (e *Engine) startRiddle() []string {
	r := &e.World.Riddle
	room := e.World.Room(r.Room)
	if room == nil {
		return []string{"You recall no riddles in these lands."}
	}
	if !room.Locked {
		return []string{"The riddle door already stands open."}
	}
	if manhattan(e.Player.Pos, r.Room) > 1 {
		return []string{"There is no riddle door within sight."}
	}

	e.mode = modeRiddle
	return []string{
		"Words glow faintly on the stone door:",
		fmt.Sprintf("  \"%s\"", r.Text),
		"Speak your answer.",
	}
}

func (e *Engine) startCombat() []string {
	r := e.room()
	if !r.HostilePresent() {
		return []string{"There is nothing here to fight."}
	}

	e.mode = modeCombat
	e.enc = NewEncounter(e.Player, r.Enemy, e.World.Game.Start, e.RNG)

	out := []string{fmt.Sprintf("You square off against the %s!", r.Enemy.Name)}
	out = append(out, e.enc.Attack()...)
	out = append(out, e.afterCombat()...)
	return out
}

// afterCombat reacts to the encounter leaving the Ongoing state: loot
// drops, the scripted ending, and the return to exploring.
func (e *Engine) afterCombat() []string {
	if e.enc == nil || e.enc.State == Ongoing {
		return nil
	}
	enc := e.enc
	e.enc = nil
	e.mode = modeExplore

	var out []string
	if enc.State == PlayerVictory {
		if enc.DroppedLoot {
			loot := types.Item{
				ID:          freshID("tonic"),
				Name:        "Crude Tonic",
				Description: "A murky flask the creature was carrying. Smells medicinal. Probably.",
				Kind:        types.KindConsumable,
				Power:       10,
				Value:       6,
			}
			e.room().Items = append(e.room().Items, loot)
			out = append(out, fmt.Sprintf("The %s dropped something: %s.", enc.Enemy.Name, loot.Name))
		}
		if enc.Enemy.Final {
			e.Running = false
			out = append(out,
				"",
				fmt.Sprintf("The %s crumbles to dust. A deep silence settles over the land.", enc.Enemy.Name),
				fmt.Sprintf("You prevailed at level %d, after %d turns. The echoes are at rest.", e.Player.Level, e.TurnCount),
			)
		}
	}
	return out
}

func (e *Engine) help() []string {
	return []string{
		"Commands:",
		"  north/south/east/west (n/s/e/w), go <dir> — move",
		"  look (l)        — describe the room",
		"  map (m)         — show the minimap",
		"  inventory (i)   — list what you carry",
		"  inspect <item>  — examine an item",
		"  equip/unequip <item>",
		"  use <item>      — drink a potion, try a key",
		"  take/drop <item>",
		"  attack (a)      — fight the enemy here",
		"  flee            — try to escape a fight",
		"  talk            — speak to whoever is here",
		"  riddle          — face the riddle door",
		"  quests, stats   — your progress",
		"  save [name], load [name]",
		"  quit            — leave the game",
	}
}

// knownVerbs covers every verb some mode can act on. Anything outside it
// is rejected without consuming a turn, whatever mode the player is in.
var knownVerbs = map[string]bool{
	"look": true, "go": true, "map": true, "inventory": true,
	"inspect": true, "equip": true, "unequip": true, "use": true,
	"take": true, "drop": true, "talk": true, "shop": true,
	"quests": true, "stats": true, "riddle": true, "attack": true,
	"flee": true, "buy": true, "sell": true, "list": true,
	"leave": true, "help": true, "quit": true,
}

func (e *Engine) notUnderstood(verb string) []string {
	e.TurnCount-- // refund: unrecognized input never counts as a turn
	return []string{fmt.Sprintf("I don't understand '%s'. Type 'help' for commands.", verb)}
}

// sortedRooms returns rooms in a stable position order so behaviors that
// scan the grid (key unlocking) are deterministic.
func (e *Engine) sortedRooms() []*world.Room {
	rooms := make([]*world.Room, 0, len(e.World.Rooms))
	for _, r := range e.World.Rooms {
		rooms = append(rooms, r)
	}
	sort.Slice(rooms, func(i, j int) bool {
		if rooms[i].Pos.Y != rooms[j].Pos.Y {
			return rooms[i].Pos.Y < rooms[j].Pos.Y
		}
		return rooms[i].Pos.X < rooms[j].Pos.X
	})
	return rooms
}

func manhattan(a, b types.Position) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// freshID derives a unique item ID from a catalog base so clones and
// spawned items never collide.
func freshID(base string) string {
	return base + "-" + uuid.NewString()[:8]
}
