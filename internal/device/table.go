package device

import (
	"context"
	"fmt"

	"blackjack/internal/app"
	"blackjack/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

// Table owns one blackjack game and the service that drives it.
// It is not safe for concurrent use; callers serialize through a Gate.
type Table struct {
	svc    *app.Service
	game   *domain.Game
	logger runtime.Logger
}

// NewTable creates a table with a freshly shuffled deck in the idle phase.
func NewTable(svc *app.Service, logger runtime.Logger) *Table {
	return &Table{
		svc:    svc,
		game:   svc.NewGame(),
		logger: logger,
	}
}

// Apply parses one command line and runs it against the game.
func (t *Table) Apply(ctx context.Context, line string) ([]app.Event, error) {
	cmd, err := app.ParseCommand(line)
	if err != nil {
		return nil, err
	}
	return t.Dispatch(ctx, cmd)
}

// Dispatch runs an already parsed command.
func (t *Table) Dispatch(ctx context.Context, cmd app.Command) ([]app.Event, error) {
	events, err := t.svc.Apply(ctx, t.game, cmd)
	if err != nil {
		t.logger.WithField("command", cmd.String()).Warn("command rejected: %v", err)
		return nil, err
	}
	t.logEvents(events)
	return events, nil
}

// Render returns the status text for the current state.
func (t *Table) Render() string {
	return Render(t.game)
}

// Phase returns the current game phase.
func (t *Table) Phase() domain.Phase {
	return t.game.Phase
}

func (t *Table) logEvents(events []app.Event) {
	for _, ev := range events {
		switch p := ev.Payload.(type) {
		case app.HandDealtPayload:
			t.logger.Debug("hand dealt: player %d, dealer %d", p.PlayerTotal, p.DealerTotal)
		case app.CardDrawnPayload:
			t.logger.Debug("%s drew %s (total %d)", p.Role, p.Card, p.Total)
		case app.DealerPlayedPayload:
			t.logger.Debug("dealer drew %d card(s), total %d", len(p.Drawn), p.Total)
		case app.GameEndedPayload:
			t.logger.WithFields(map[string]interface{}{
				"winner": string(p.Outcome.Winner),
				"reason": string(p.Outcome.Reason),
			}).Info("game ended: %s", p.Outcome.Message())
		case app.TableResetPayload:
			t.logger.Info("table reset")
		case app.DeckShuffledPayload:
			t.logger.Debug("deck shuffled, %d cards remaining", p.Remaining)
		default:
			t.logger.Debug("event %s", fmt.Sprint(ev.Kind))
		}
	}
}
