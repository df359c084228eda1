package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleNarrative = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleRoomHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))

	styleYouSee = lipgloss.NewStyle().
			Bold(true)

	styleExits = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleDialogue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228"))

	styleCombat = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	styleReward = lipgloss.NewStyle().
			Foreground(lipgloss.Color("84"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	styleMap = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNarrative lineKind = iota
	kindRoomHeader
	kindYouSee
	kindExits
	kindDialogue
	kindCombat
	kindReward
	kindError
	kindMap
)

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	trimmed := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(line, "== ") && strings.HasSuffix(line, " =="):
		return kindRoomHeader
	case strings.HasPrefix(line, "You see:"):
		return kindYouSee
	case strings.HasPrefix(line, "Exits:"):
		return kindExits
	case strings.Contains(line, " dodged the attack"),
		strings.Contains(line, " damage"),
		strings.Contains(line, "HP remaining"),
		strings.Contains(line, "been defeated"):
		return kindCombat
	case strings.HasPrefix(line, "You gained "),
		strings.HasPrefix(line, "You found "),
		strings.HasPrefix(line, "***"),
		strings.HasPrefix(line, "Quest complete"):
		return kindReward
	case strings.HasPrefix(line, "You don't"),
		strings.HasPrefix(line, "You can't"),
		strings.HasPrefix(line, "I don't understand"):
		return kindError
	case isMapRow(trimmed):
		return kindMap
	case strings.Contains(line, `"`):
		return kindDialogue
	default:
		return kindNarrative
	}
}

// isMapRow reports whether the line is a minimap row: only map glyphs
// and spaces, at least one glyph.
func isMapRow(line string) bool {
	if line == "" {
		return false
	}
	glyphs := 0
	for _, r := range line {
		switch r {
		case '@', '!', '#', '*', '.':
			glyphs++
		case ' ':
		default:
			return false
		}
	}
	return glyphs > 0
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindRoomHeader:
		return styleRoomHeader.Render(line)
	case kindYouSee:
		return styledYouSee(line)
	case kindExits:
		return styleExits.Render(line)
	case kindDialogue:
		return styleDialogue.Render(line)
	case kindCombat:
		return styleCombat.Render(line)
	case kindReward:
		return styleReward.Render(line)
	case kindError:
		return styleError.Render(line)
	case kindMap:
		return styleMap.Render(line)
	default:
		return styleNarrative.Render(line)
	}
}

// styledYouSee renders "You see: <item>." with the item name bold.
func styledYouSee(line string) string {
	const prefix = "You see: "
	if !strings.HasPrefix(line, prefix) {
		return styleNarrative.Render(line)
	}
	return styleNarrative.Render(prefix) + styleYouSee.Render(line[len(prefix):])
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
