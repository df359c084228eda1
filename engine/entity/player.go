package entity

import (
	"strings"

	"github.com/nathoo/asteria/types"
)

// Leveling constants. Each level-up raises MaxHP, Attack, and Defense,
// refills HP, and scales the next XP threshold geometrically.
const (
	levelHPGain      = 8
	levelAttackGain  = 2
	levelDefenseGain = 1
	xpCurveFactor    = 1.4
)

// Player is the stateful aggregate for the human-controlled character.
// Equipped items stay members of Inventory; the slots hold item IDs so that
// "is this the equipped one" is an identity question, never a value one.
type Player struct {
	Entity
	Level      int
	XP         int
	XPToNext   int
	Gold       int
	Pos        types.Position
	Inventory  []types.Item
	WeaponID   string // "" when no weapon equipped
	ArmorID    string // "" when no armor equipped
	Discovered map[types.Position]bool
	Quests     map[string]types.Quest
}

// NewPlayer creates the starting character at the given position.
func NewPlayer(name string, start types.Position) *Player {
	p := &Player{
		Entity: Entity{
			Name:    name,
			MaxHP:   40,
			HP:      40,
			Attack:  6,
			Defense: 2,
			Dodge:   8,
		},
		Level:      1,
		XP:         0,
		XPToNext:   30,
		Gold:       30,
		Pos:        start,
		Discovered: map[types.Position]bool{},
		Quests:     map[string]types.Quest{},
	}
	p.Discover(start)
	return p
}

// CombatStats returns the player's effective stats: base plus equipped
// weapon/armor power. Derived on demand, never stored.
func (p *Player) CombatStats() (attack, defense, dodge int) {
	attack = p.Attack
	if w := p.EquippedWeapon(); w != nil {
		attack += w.Power
	}
	defense = p.Defense
	if a := p.EquippedArmor(); a != nil {
		defense += a.Power
	}
	return attack, defense, p.Dodge
}

// EquippedWeapon returns the equipped weapon, or nil.
func (p *Player) EquippedWeapon() *types.Item {
	return p.itemByID(p.WeaponID)
}

// EquippedArmor returns the equipped armor, or nil.
func (p *Player) EquippedArmor() *types.Item {
	return p.itemByID(p.ArmorID)
}

func (p *Player) itemByID(id string) *types.Item {
	if id == "" {
		return nil
	}
	for i := range p.Inventory {
		if p.Inventory[i].ID == id {
			return &p.Inventory[i]
		}
	}
	return nil
}

// AddItem appends an item to the inventory.
func (p *Player) AddItem(it types.Item) {
	p.Inventory = append(p.Inventory, it)
}

// RemoveItem removes the item with the given ID and returns it.
// Equipped slots referencing it are cleared.
func (p *Player) RemoveItem(id string) (types.Item, bool) {
	for i, it := range p.Inventory {
		if it.ID == id {
			p.Inventory = append(p.Inventory[:i], p.Inventory[i+1:]...)
			if p.WeaponID == id {
				p.WeaponID = ""
			}
			if p.ArmorID == id {
				p.ArmorID = ""
			}
			return it, true
		}
	}
	return types.Item{}, false
}

// FindItem returns the first inventory item whose name contains the given
// text, case-insensitively. Returns nil if nothing matches.
func (p *Player) FindItem(name string) *types.Item {
	name = strings.ToLower(name)
	if name == "" {
		return nil
	}
	for i := range p.Inventory {
		if strings.Contains(strings.ToLower(p.Inventory[i].Name), name) {
			return &p.Inventory[i]
		}
	}
	return nil
}

// Equip puts an owned weapon or armor item into its slot.
// Returns false if the item's kind fits neither slot.
func (p *Player) Equip(it *types.Item) bool {
	switch it.Kind {
	case types.KindWeapon:
		p.WeaponID = it.ID
		return true
	case types.KindArmor:
		p.ArmorID = it.ID
		return true
	default:
		return false
	}
}

// Unequip clears the named slot ("weapon" or "armor"). Returns the item
// that occupied it, or nil if the slot was empty or unknown.
func (p *Player) Unequip(slot string) *types.Item {
	switch slot {
	case "weapon":
		it := p.EquippedWeapon()
		p.WeaponID = ""
		return it
	case "armor":
		it := p.EquippedArmor()
		p.ArmorID = ""
		return it
	default:
		return nil
	}
}

// IsEquipped reports whether the item with the given ID occupies a slot.
func (p *Player) IsEquipped(id string) bool {
	return id != "" && (p.WeaponID == id || p.ArmorID == id)
}

// GainXP adds experience and applies every level-up the total crosses.
// Returns the number of levels gained. The loop terminates because
// XPToNext strictly grows and XP strictly shrinks per iteration.
func (p *Player) GainXP(amount int) int {
	p.XP += amount
	levels := 0
	for p.XP >= p.XPToNext {
		p.XP -= p.XPToNext
		p.levelUp()
		levels++
	}
	return levels
}

func (p *Player) levelUp() {
	p.Level++
	p.MaxHP += levelHPGain
	p.Attack += levelAttackGain
	p.Defense += levelDefenseGain
	p.HP = p.MaxHP
	p.XPToNext = int(float64(p.XPToNext) * xpCurveFactor)
}

// SpendGold deducts the price if affordable. Gold never goes negative.
func (p *Player) SpendGold(price int) bool {
	if price > p.Gold {
		return false
	}
	p.Gold -= price
	return true
}

// Discover records a visited tile. The set only grows.
func (p *Player) Discover(pos types.Position) {
	p.Discovered[pos] = true
}
