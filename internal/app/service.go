package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"blackjack/internal/domain"
	"blackjack/internal/random"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrIllegalTransition is returned when a known command is sent in the wrong phase.
var ErrIllegalTransition = errors.New("illegal transition")

// Rules are the table settings applied to every game the service creates.
type Rules struct {
	// HandCapacity bounds both hands; 0 means unbounded.
	HandCapacity int
}

// Service contains the blackjack use-cases operating on domain state.
type Service struct {
	rng    *rand.Rand
	rules  Rules
	tracer trace.Tracer
}

// NewService constructs a Service with provided rng or a crypto-seeded default.
// A positive hand capacity smaller than the opening deal is raised to fit it.
func NewService(rng *rand.Rand, rules Rules) *Service {
	if rng == nil {
		rng = random.New()
	}
	if rules.HandCapacity < 0 {
		rules.HandCapacity = DefaultHandCapacity
	}
	if rules.HandCapacity > 0 && rules.HandCapacity < domain.InitialHandSize {
		rules.HandCapacity = domain.InitialHandSize
	}
	return &Service{
		rng:    rng,
		rules:  rules,
		tracer: otel.Tracer(tracerName),
	}
}

// Rules returns the normalized table rules.
func (s *Service) Rules() Rules {
	return s.rules
}

// NewGame returns an idle table with a freshly shuffled deck.
func (s *Service) NewGame() *domain.Game {
	return domain.NewGame(s.rng, s.rules.HandCapacity)
}

// Apply dispatches one command against the game. On error the game is left untouched.
func (s *Service) Apply(ctx context.Context, game *domain.Game, cmd Command) ([]Event, error) {
	_, span := s.tracer.Start(ctx, "blackjack."+strings.ToLower(cmd.String()),
		trace.WithAttributes(attribute.String("blackjack.phase", string(game.Phase))))
	defer span.End()

	var (
		events []Event
		err    error
	)
	switch cmd {
	case CommandReset:
		events = s.Reset(game)
	case CommandShuffle:
		events = s.Shuffle(game)
	case CommandDeal:
		events, err = s.Deal(game)
	case CommandHit:
		events, err = s.Hit(game)
	case CommandStand:
		events, err = s.Stand(game)
	default:
		err = fmt.Errorf("%w: %s", ErrInvalidCommand, cmd)
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(
		attribute.String("blackjack.phase_after", string(game.Phase)),
		attribute.Int("blackjack.player_total", game.Player.Total),
		attribute.Int("blackjack.dealer_total", game.Dealer.Total),
	)
	return events, nil
}

// Reset returns the table to idle with a rebuilt, reshuffled deck. Valid in every phase.
func (s *Service) Reset(game *domain.Game) []Event {
	game.Deck.Reset()
	game.ClearHands()
	game.Phase = domain.PhaseIdle
	game.Message = domain.MessageReset

	return []Event{{Kind: EventTableReset, Payload: TableResetPayload{Message: game.Message}}}
}

// Shuffle reshuffles the deck without touching hands or phase. Valid in every phase.
func (s *Service) Shuffle(game *domain.Game) []Event {
	game.Deck.Shuffle()
	return []Event{{Kind: EventDeckShuffled, Payload: DeckShuffledPayload{Remaining: game.Deck.Remaining()}}}
}

// Deal starts a new hand: two cards each, alternating player then dealer.
func (s *Service) Deal(game *domain.Game) ([]Event, error) {
	if game.InProgress() {
		return nil, fmt.Errorf("%w: game already in progress", ErrIllegalTransition)
	}

	return transact(game, func(g *domain.Game) ([]Event, error) {
		g.ClearHands()
		for i := 0; i < domain.InitialHandSize; i++ {
			if err := g.Player.Add(g.Deck.Deal()); err != nil {
				return nil, fmt.Errorf("deal player: %w", err)
			}
			if err := g.Dealer.Add(g.Deck.Deal()); err != nil {
				return nil, fmt.Errorf("deal dealer: %w", err)
			}
		}
		g.Phase = domain.PhaseInProgress
		g.Message = ""

		return []Event{{
			Kind: EventHandDealt,
			Payload: HandDealtPayload{
				Player:      append([]domain.Card(nil), g.Player.Cards...),
				Dealer:      append([]domain.Card(nil), g.Dealer.Cards...),
				PlayerTotal: g.Player.Total,
				DealerTotal: g.Dealer.Total,
			},
		}}, nil
	})
}

// Hit deals one card to the player. A bust decides the hand immediately.
func (s *Service) Hit(game *domain.Game) ([]Event, error) {
	if !game.InProgress() {
		return nil, fmt.Errorf("%w: cannot hit while %s", ErrIllegalTransition, game.Phase)
	}
	if game.Player.Full() {
		return nil, fmt.Errorf("player hit: %w", domain.ErrHandCapacityExceeded)
	}

	return transact(game, func(g *domain.Game) ([]Event, error) {
		card := g.Deck.Deal()
		if err := g.Player.Add(card); err != nil {
			return nil, fmt.Errorf("player hit: %w", err)
		}
		events := []Event{{
			Kind:    EventCardDrawn,
			Payload: CardDrawnPayload{Role: domain.RolePlayer, Card: card, Total: g.Player.Total},
		}}

		if g.Player.Busted() {
			g.Finish(domain.DecideOutcome(g.Player.Total, g.Dealer.Total))
			events = append(events, Event{Kind: EventGameEnded, Payload: GameEndedPayload{Outcome: *g.Outcome}})
		}
		return events, nil
	})
}

// Stand plays out the dealer's hand and decides the outcome.
// The dealer draws while below 17; running out of hand capacity mid-draw is an error.
func (s *Service) Stand(game *domain.Game) ([]Event, error) {
	if !game.InProgress() {
		return nil, fmt.Errorf("%w: cannot stand while %s", ErrIllegalTransition, game.Phase)
	}

	return transact(game, func(g *domain.Game) ([]Event, error) {
		var drawn []domain.Card
		for g.Dealer.Total < domain.DealerStandsOn {
			if g.Dealer.Full() {
				return nil, fmt.Errorf("dealer draw at %d: %w", g.Dealer.Total, domain.ErrHandCapacityExceeded)
			}
			card := g.Deck.Deal()
			if err := g.Dealer.Add(card); err != nil {
				return nil, fmt.Errorf("dealer draw: %w", err)
			}
			drawn = append(drawn, card)
		}

		g.Finish(domain.DecideOutcome(g.Player.Total, g.Dealer.Total))
		return []Event{
			{Kind: EventDealerPlayed, Payload: DealerPlayedPayload{Drawn: drawn, Total: g.Dealer.Total}},
			{Kind: EventGameEnded, Payload: GameEndedPayload{Outcome: *g.Outcome}},
		}, nil
	})
}

// transact runs fn on a clone and commits it only when fn succeeds.
func transact(game *domain.Game, fn func(*domain.Game) ([]Event, error)) ([]Event, error) {
	trial := game.Clone()
	events, err := fn(trial)
	if err != nil {
		return nil, err
	}
	*game = *trial
	return events, nil
}
