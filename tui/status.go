package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderStatusBar produces a full-width inverted status line showing the
// player's vitals, progression, gold, position, and turn count.
func (m Model) renderStatusBar() string {
	p := m.engine.Player

	left := fmt.Sprintf(" HP %d/%d | Lv %d (%d/%d XP) | Gold %d",
		p.HP, p.MaxHP, p.Level, p.XP, p.XPToNext, p.Gold)
	if m.engine.InCombat() {
		left += " | FIGHT"
	}
	right := fmt.Sprintf("(%d,%d) | T:%d ", p.Pos.X, p.Pos.Y, m.engine.TurnCount)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
