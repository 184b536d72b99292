package domain

const (
	// DeckSize is the number of cards in a single French deck.
	DeckSize = 52

	// BlackjackTotal is the best possible hand total.
	BlackjackTotal = 21

	// DealerStandsOn is the total at which the dealer stops drawing.
	DealerStandsOn = 17

	// InitialHandSize is the number of cards dealt to each side on DEAL.
	InitialHandSize = 2

	// softAceBonus is what an ace adds on top of its nominal value when counted as 11.
	softAceBonus = 10
)
