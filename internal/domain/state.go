package domain

// Phase represents the lifecycle stage of a blackjack table.
type Phase string

const (
	// PhaseIdle is the state before the first deal and after a reset.
	PhaseIdle Phase = "idle"
	// PhaseInProgress is the state between a deal and the hand's outcome.
	PhaseInProgress Phase = "in_progress"
	// PhaseFinished holds the last outcome until the next deal or reset.
	PhaseFinished Phase = "finished"
)

// Suit is one of the four French suits.
type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

// Suits lists every suit in canonical deck order.
var Suits = [...]Suit{Hearts, Diamonds, Clubs, Spades}

func (s Suit) String() string {
	switch s {
	case Hearts:
		return "Hearts"
	case Diamonds:
		return "Diamonds"
	case Clubs:
		return "Clubs"
	case Spades:
		return "Spades"
	default:
		return ""
	}
}

// Rank is a card rank, numbered Ace=1 through King=13.
type Rank int

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

var rankNames = [...]string{
	Ace:   "Ace",
	Two:   "Two",
	Three: "Three",
	Four:  "Four",
	Five:  "Five",
	Six:   "Six",
	Seven: "Seven",
	Eight: "Eight",
	Nine:  "Nine",
	Ten:   "Ten",
	Jack:  "Jack",
	Queen: "Queen",
	King:  "King",
}

func (r Rank) String() string {
	if r < Ace || r > King {
		return ""
	}
	return rankNames[r]
}

// Value is the nominal value of the rank: Ace=1, faces=10, others their pip count.
// The ace's soft value is applied by Evaluate.
func (r Rank) Value() int {
	if r >= Ten {
		return 10
	}
	return int(r)
}

// Card is a single playing card.
type Card struct {
	Suit Suit
	Rank Rank
}

// String renders the card as "<Rank> of <Suit>", e.g. "Queen of Spades".
func (c Card) String() string {
	return c.Rank.String() + " of " + c.Suit.String()
}

// Role identifies which side of the table a hand belongs to.
type Role string

const (
	RolePlayer Role = "player"
	RoleDealer Role = "dealer"
)
