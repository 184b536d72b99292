package domain

import "fmt"

// Evaluate returns the best blackjack total for the cards.
// Aces start at 11 and are demoted to 1, one at a time, while the total is over 21.
func Evaluate(cards []Card) int {
	total, _ := evaluate(cards)
	return total
}

// IsSoft reports whether the best total still counts an ace as 11.
func IsSoft(cards []Card) bool {
	_, softAces := evaluate(cards)
	return softAces > 0
}

func evaluate(cards []Card) (total, softAces int) {
	for _, c := range cards {
		total += c.Rank.Value()
		if c.Rank == Ace {
			total += softAceBonus
			softAces++
		}
	}
	for total > BlackjackTotal && softAces > 0 {
		total -= softAceBonus
		softAces--
	}
	return total, softAces
}

// Winner is the side a finished hand was awarded to.
type Winner string

const (
	WinnerPlayer Winner = "player"
	WinnerDealer Winner = "dealer"
	WinnerPush   Winner = "push"
)

// Reason explains why a hand was decided.
type Reason string

const (
	ReasonPlayerBust      Reason = "player_bust"
	ReasonDealerBust      Reason = "dealer_bust"
	ReasonPlayerBlackjack Reason = "player_blackjack"
	ReasonDealerBlackjack Reason = "dealer_blackjack"
	ReasonHigherTotal     Reason = "higher_total"
	ReasonTie             Reason = "tie"
)

// Outcome is the result of a finished hand.
type Outcome struct {
	Winner      Winner
	Reason      Reason
	PlayerTotal int
	DealerTotal int
}

// DecideOutcome applies the table's priority order to the final totals:
// player bust, dealer bust, player 21, dealer 21, higher total, tie.
func DecideOutcome(playerTotal, dealerTotal int) Outcome {
	o := Outcome{PlayerTotal: playerTotal, DealerTotal: dealerTotal}
	switch {
	case playerTotal > BlackjackTotal:
		o.Winner, o.Reason = WinnerDealer, ReasonPlayerBust
	case dealerTotal > BlackjackTotal:
		o.Winner, o.Reason = WinnerPlayer, ReasonDealerBust
	case playerTotal == BlackjackTotal:
		o.Winner, o.Reason = WinnerPlayer, ReasonPlayerBlackjack
	case dealerTotal == BlackjackTotal:
		o.Winner, o.Reason = WinnerDealer, ReasonDealerBlackjack
	case playerTotal > dealerTotal:
		o.Winner, o.Reason = WinnerPlayer, ReasonHigherTotal
	case playerTotal < dealerTotal:
		o.Winner, o.Reason = WinnerDealer, ReasonHigherTotal
	default:
		o.Winner, o.Reason = WinnerPush, ReasonTie
	}
	return o
}

// Message renders the outcome for read-back. Every message carries both totals.
func (o Outcome) Message() string {
	switch o.Reason {
	case ReasonPlayerBust:
		return fmt.Sprintf("Player busts with %d against dealer's %d. Dealer wins.", o.PlayerTotal, o.DealerTotal)
	case ReasonDealerBust:
		return fmt.Sprintf("Dealer busts with %d against player's %d. Player wins.", o.DealerTotal, o.PlayerTotal)
	case ReasonPlayerBlackjack:
		return fmt.Sprintf("Player hits Blackjack with %d against dealer's %d! Player wins.", o.PlayerTotal, o.DealerTotal)
	case ReasonDealerBlackjack:
		return fmt.Sprintf("Dealer hits Blackjack with %d against player's %d! Dealer wins.", o.DealerTotal, o.PlayerTotal)
	case ReasonHigherTotal:
		if o.Winner == WinnerPlayer {
			return fmt.Sprintf("Player wins with %d against dealer's %d.", o.PlayerTotal, o.DealerTotal)
		}
		return fmt.Sprintf("Dealer wins with %d against player's %d.", o.DealerTotal, o.PlayerTotal)
	case ReasonTie:
		return fmt.Sprintf("It's a tie with both at %d.", o.PlayerTotal)
	default:
		return ""
	}
}
