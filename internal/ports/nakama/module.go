package nakama

import (
	"context"
	"database/sql"
	"time"

	"blackjack/internal/device"
	"blackjack/internal/session"

	"github.com/heroiclabs/nakama-common/runtime"
)

// Module holds the plugin-wide table, oracle and RPC sessions.
// RPC handlers and match handlers share the one table, so the gate decides
// who plays regardless of transport.
type Module struct {
	device   *device.Device
	oracle   *device.Oracle
	tickets  *session.TicketIssuer
	sessions *sessionRegistry
	now      func() time.Time
}

// NewModule builds a Module around an existing table device and oracle.
func NewModule(dev *device.Device, oracle *device.Oracle, tickets *session.TicketIssuer) *Module {
	return &Module{
		device:   dev,
		oracle:   oracle,
		tickets:  tickets,
		sessions: newSessionRegistry(),
		now:      time.Now,
	}
}

// Register installs the RPCs and the match handler.
func (m *Module) Register(initializer runtime.Initializer) error {
	rpcs := map[string]func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error){
		RpcBlackjackOpen:  m.rpcOpen,
		RpcBlackjackWrite: m.rpcWrite,
		RpcBlackjackRead:  m.rpcRead,
		RpcBlackjackClose: m.rpcClose,
		RpcFindTable:      rpcFindTable,
		RpcMagic8BallAsk:  m.rpcAsk,
	}
	for id, fn := range rpcs {
		if err := initializer.RegisterRpc(id, fn); err != nil {
			return err
		}
	}

	return initializer.RegisterMatch(MatchNameBlackjack, func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
		return m.newMatchHandler(), nil
	})
}

func (m *Module) newMatchHandler() *matchHandler {
	return &matchHandler{device: m.device, reap: m.reapExpired}
}

// reapExpired closes RPC sessions whose ticket has expired, releasing the table they hold.
func (m *Module) reapExpired(logger runtime.Logger) {
	if reaped := m.sessions.reap(m.now()); len(reaped) > 0 {
		logger.Info("Closed %d expired session(s): %v", len(reaped), reaped)
	}
}
