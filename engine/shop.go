package engine

import (
	"fmt"
	"strings"

	"github.com/nathoo/asteria/types"
)

// enterShop switches to shop mode and shows the catalog.
func (e *Engine) enterShop() []string {
	e.mode = modeShop
	out := []string{`"Ah, a customer! Have a look." (buy <item>, sell <item>, list, leave)`}
	return append(out, e.shopCatalog()...)
}

func (e *Engine) shopStep(in types.Intent) []string {
	switch in.Verb {
	case "list":
		return e.shopCatalog()
	case "buy":
		return e.buy(in.Arg)
	case "sell":
		return e.sell(in.Arg)
	case "inventory":
		return e.showInventory()
	case "stats":
		return e.showStats()
	case "help":
		return e.help()
	case "leave", "quit":
		e.mode = modeExplore
		return []string{`"Safe travels!" You step away from the stall.`}
	}
	if !knownVerbs[in.Verb] {
		return e.notUnderstood(in.Verb)
	}
	return []string{`The merchant raises an eyebrow. (buy <item>, sell <item>, list, leave)`}
}

func (e *Engine) shopCatalog() []string {
	out := []string{"For sale:"}
	for _, it := range e.World.ShopGoods {
		out = append(out, fmt.Sprintf("  %-14s %3d gold — %s", it.Name, it.Value, it.Description))
	}
	out = append(out, fmt.Sprintf("Your gold: %d", e.Player.Gold))
	return out
}

// buy clones the catalog template under a fresh ID so two purchases of the
// same good never share identity. Insufficient gold changes nothing.
func (e *Engine) buy(arg string) []string {
	if arg == "" {
		return []string{`"Buy what, exactly?"`}
	}
	tpl := findGood(e.World.ShopGoods, arg)
	if tpl == nil {
		return []string{fmt.Sprintf(`"No '%s' in my stock, friend."`, arg)}
	}
	if !e.Player.SpendGold(tpl.Value) {
		return []string{fmt.Sprintf(`"The %s runs %d gold. Come back when you have it."`, tpl.Name, tpl.Value)}
	}

	bought := *tpl
	bought.ID = freshID(tpl.ID)
	e.Player.AddItem(bought)
	return []string{
		fmt.Sprintf("You buy the %s for %d gold.", bought.Name, tpl.Value),
		fmt.Sprintf("Gold left: %d", e.Player.Gold),
	}
}

// sell trades an inventory item for its listed value. Equipped gear must
// be unequipped first.
func (e *Engine) sell(arg string) []string {
	if arg == "" {
		return []string{`"Sell what, exactly?"`}
	}
	it := e.Player.FindItem(arg)
	if it == nil {
		return []string{fmt.Sprintf(`"You don't seem to have a '%s'."`, arg)}
	}
	if e.Player.IsEquipped(it.ID) {
		return []string{fmt.Sprintf(`"You're still wearing the %s! Unequip it first."`, it.Name)}
	}
	if it.Value <= 0 {
		return []string{fmt.Sprintf(`"The %s? I couldn't give you a copper for it."`, it.Name)}
	}

	sold, _ := e.Player.RemoveItem(it.ID)
	e.Player.Gold += sold.Value
	return []string{
		fmt.Sprintf("You sell the %s for %d gold.", sold.Name, sold.Value),
		fmt.Sprintf("Gold now: %d", e.Player.Gold),
	}
}

func findGood(goods []types.Item, name string) *types.Item {
	for i := range goods {
		if containsFold(goods[i].Name, name) {
			return &goods[i]
		}
	}
	return nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
