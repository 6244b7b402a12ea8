package display

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cardforge/zhajinhua/internal/deck"
	"github.com/cardforge/zhajinhua/internal/game"
)

func TestFormatCards(t *testing.T) {
	assert.Equal(t, "[]", FormatCards(nil))

	out := FormatCards([]deck.Card{
		deck.NewCard(deck.Ace, deck.Spades),
		deck.NewCard(deck.Ten, deck.Hearts),
	})
	assert.Contains(t, out, "A♠")
	assert.Contains(t, out, "10♥")
}

func TestFormatHandStrings(t *testing.T) {
	out := FormatHandStrings([]string{game.FaceDown, "K♦", "2♣"})
	assert.Contains(t, out, game.FaceDown)
	assert.Contains(t, out, "K♦")
	assert.Contains(t, out, "2♣")
}

func TestRenderTable(t *testing.T) {
	view := game.View{
		Pot:           45,
		CurrentBet:    10,
		CurrentPlayer: 1,
		Players: []game.PlayerView{
			{Seat: 0, Chips: 280, Alive: true, Hand: []string{game.FaceDown, game.FaceDown, game.FaceDown}},
			{Seat: 1, Chips: 290, Alive: true, Hand: []string{game.FaceDown, game.FaceDown, game.FaceDown}},
			{Seat: 2, Chips: 300, Alive: false, Hand: []string{game.FaceDown, game.FaceDown, game.FaceDown}},
		},
	}
	out := RenderTable(view)
	assert.Contains(t, out, "Pot 45")
	assert.Contains(t, out, "to act")
	assert.Contains(t, out, "folded")
}

func TestRenderAction(t *testing.T) {
	raise := game.NewRaise(0, 20)
	assert.Contains(t, RenderAction(raise, 60), "RAISE")
	assert.Contains(t, RenderAction(raise, 60), "+20")

	compare := game.NewCompare(1, 2)
	assert.Contains(t, RenderAction(compare, 100), "vs seat 2")
}
