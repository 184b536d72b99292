package domain

import "math/rand"

const (
	// MessageReady is shown before the first deal.
	MessageReady = "Ready for a new round."
	// MessageReset is shown after a RESET.
	MessageReset = "Game reset. Ready for a new round."
)

// Game is the authoritative state of a single blackjack table.
// Hands are non-empty only outside PhaseIdle.
type Game struct {
	Phase  Phase
	Deck   *Deck
	Player *Hand
	Dealer *Hand

	// Outcome is set once the current hand is decided.
	Outcome *Outcome
	// Message is the text shown while no hand is in progress.
	Message string
}

// NewGame returns an idle table with a freshly shuffled deck.
// handCapacity bounds both hands; 0 leaves them unbounded.
func NewGame(rng *rand.Rand, handCapacity int) *Game {
	deck := NewDeck(rng)
	deck.Shuffle()
	return &Game{
		Phase:   PhaseIdle,
		Deck:    deck,
		Player:  NewHand(RolePlayer, handCapacity),
		Dealer:  NewHand(RoleDealer, handCapacity),
		Message: MessageReady,
	}
}

// InProgress reports whether a hand is being played.
func (g *Game) InProgress() bool {
	return g.Phase == PhaseInProgress
}

// ClearHands empties both hands and forgets the last outcome.
func (g *Game) ClearHands() {
	g.Player.Clear()
	g.Dealer.Clear()
	g.Outcome = nil
}

// Finish records the outcome and moves the table to PhaseFinished.
func (g *Game) Finish(o Outcome) {
	g.Outcome = &o
	g.Message = o.Message()
	g.Phase = PhaseFinished
}

// Clone returns a deep copy suitable for trial runs that may be discarded.
func (g *Game) Clone() *Game {
	c := *g
	c.Deck = g.Deck.Clone()
	c.Player = g.Player.Clone()
	c.Dealer = g.Dealer.Clone()
	if g.Outcome != nil {
		o := *g.Outcome
		c.Outcome = &o
	}
	return &c
}
