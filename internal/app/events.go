package app

import "blackjack/internal/domain"

// EventKind identifies emitted table events for transport dispatch and logging.
type EventKind string

const (
	EventTableReset   EventKind = "table_reset"
	EventDeckShuffled EventKind = "deck_shuffled"
	EventHandDealt    EventKind = "hand_dealt"
	EventCardDrawn    EventKind = "card_drawn"
	EventDealerPlayed EventKind = "dealer_played"
	EventGameEnded    EventKind = "game_ended"
)

// Event is a state change produced by one command.
type Event struct {
	Kind    EventKind
	Payload any
}

type TableResetPayload struct {
	Message string
}

type DeckShuffledPayload struct {
	Remaining int
}

type HandDealtPayload struct {
	Player      []domain.Card
	Dealer      []domain.Card
	PlayerTotal int
	DealerTotal int
}

type CardDrawnPayload struct {
	Role  domain.Role
	Card  domain.Card
	Total int
}

type DealerPlayedPayload struct {
	Drawn []domain.Card
	Total int
}

type GameEndedPayload struct {
	Outcome domain.Outcome
}
