package device

import (
	"fmt"

	"blackjack/internal/domain"
)

const restartHint = "Issue RESET to start a new game, then DEAL to deal cards."

// Render formats the game the way a reader of the device sees it.
func Render(g *domain.Game) string {
	switch g.Phase {
	case domain.PhaseInProgress:
		return fmt.Sprintf(
			"Player has %s for a total of %d. Dealer shows %s for a total of %d. Does Player want another card? If so, respond with HIT, or STAND to hold.\n",
			g.Player.Describe(), g.Player.Total, g.Dealer.Describe(), g.Dealer.Total,
		)
	case domain.PhaseFinished:
		return fmt.Sprintf("Game over. %s %s\n", g.Message, restartHint)
	default:
		return fmt.Sprintf("%s %s\n", g.Message, restartHint)
	}
}
