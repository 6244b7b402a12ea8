package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cardforge/zhajinhua/internal/deck"
	"github.com/cardforge/zhajinhua/internal/game"
)

// Static styles for content elements
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true)

	PotStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	RedCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	BlackCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true)

	FaceDownStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	PlayerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	FoldedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Strikethrough(true)

	WinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	ActionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7"))
)

// FormatCards renders a hand of cards with suit colouring
func FormatCards(cards []deck.Card) string {
	formatted := make([]string, 0, len(cards))
	for _, card := range cards {
		if card.IsRed() {
			formatted = append(formatted, RedCardStyle.Render(card.String()))
		} else {
			formatted = append(formatted, BlackCardStyle.Render(card.String()))
		}
	}
	return "[" + strings.Join(formatted, " ") + "]"
}

// FormatHandStrings renders already-redacted card strings from a view
func FormatHandStrings(hand []string) string {
	formatted := make([]string, 0, len(hand))
	for _, card := range hand {
		switch {
		case card == game.FaceDown:
			formatted = append(formatted, FaceDownStyle.Render(card))
		case strings.HasSuffix(card, "♥") || strings.HasSuffix(card, "♦"):
			formatted = append(formatted, RedCardStyle.Render(card))
		default:
			formatted = append(formatted, BlackCardStyle.Render(card))
		}
	}
	return "[" + strings.Join(formatted, " ") + "]"
}

// RenderTable renders one viewer's table state as a multi-line block
func RenderTable(view game.View) string {
	var b strings.Builder
	b.WriteString(PotStyle.Render(fmt.Sprintf("Pot %d", view.Pot)))
	b.WriteString("  ")
	b.WriteString(fmt.Sprintf("dark bet %d, round %d", view.CurrentBet, view.RoundCount))
	b.WriteString("\n")

	for _, p := range view.Players {
		line := fmt.Sprintf("seat %d  %4d chips  %s", p.Seat, p.Chips, FormatHandStrings(p.Hand))
		switch {
		case !p.Alive:
			line = FoldedStyle.Render(line + "  folded")
		case view.Finished && p.Seat == view.Winner:
			line = WinnerStyle.Render(line + "  wins")
		case p.Seat == view.CurrentPlayer && !view.Finished:
			line = PlayerStyle.Render(line + "  to act")
		default:
			line = PlayerStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// RenderAction renders one applied action for the hand log
func RenderAction(action game.Action, potAfter int) string {
	var detail string
	switch action.Type {
	case game.Raise:
		detail = fmt.Sprintf(" +%d", action.Amount)
	case game.Compare:
		detail = fmt.Sprintf(" vs seat %d", action.Target)
	case game.Accuse:
		detail = fmt.Sprintf(" vs seats %d and %d", action.Target, action.Target2)
	}
	return ActionStyle.Render(
		fmt.Sprintf("seat %d %s%s (pot %d)", action.Player, action.Type, detail, potAfter))
}
