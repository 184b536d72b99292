package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"

	"github.com/heroiclabs/nakama-common/runtime"
)

type ticketRequest struct {
	Ticket string `json:"ticket"`
}

type writeRequest struct {
	Ticket  string `json:"ticket"`
	Command string `json:"command"`
}

// OpenResponse is returned by blackjack_open.
type OpenResponse struct {
	Ticket string `json:"ticket"`
}

// ReadResponse is returned by blackjack_read. EOF is set once the snapshot was consumed.
type ReadResponse struct {
	Status string `json:"status"`
	EOF    bool   `json:"eof"`
}

// AskResponse is returned by magic8ball_ask.
type AskResponse struct {
	Answer string `json:"answer"`
}

// rpcOpen claims the table for the calling user.
//
// Payload: none.
// Returns: {"ticket": "..."} to pass to the other blackjack RPCs.
func (m *Module) rpcOpen(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", toRuntimeError(errNoUser)
	}

	m.reapExpired(logger)

	handle, err := m.device.Open(userID)
	if err != nil {
		logger.Warn("rpcOpen [User:%s]: %v", userID, err)
		return "", toRuntimeError(err)
	}

	token, ticket, err := m.tickets.Issue(userID)
	if err != nil {
		_ = handle.Close()
		logger.Error("rpcOpen [User:%s]: failed to issue ticket: %v", userID, err)
		return "", toRuntimeError(err)
	}
	m.sessions.add(ticket.SessionID, &openSession{handle: handle, owner: userID, expiresAt: ticket.ExpiresAt})
	logger.Info("rpcOpen [User:%s]: session %s opened", userID, ticket.SessionID)

	return marshal(OpenResponse{Ticket: token})
}

// rpcWrite applies one command.
//
// Payload: {"ticket": "...", "command": "DEAL\n"}.
func (m *Module) rpcWrite(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req writeRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", toRuntimeError(fmt.Errorf("%w: %v", errInvalidPayload, err))
	}
	s, id, err := m.lookup(ctx, logger, req.Ticket)
	if err != nil {
		return "", toRuntimeError(err)
	}

	s.mu.Lock()
	err = s.handle.WriteCommand(ctx, req.Command)
	s.mu.Unlock()
	if err != nil {
		logger.Debug("rpcWrite [Session:%s]: %v", id, err)
		return "", toRuntimeError(err)
	}
	return "{}", nil
}

// rpcRead returns the armed status snapshot.
//
// Payload: {"ticket": "..."}.
// Returns: {"status": "...", "eof": false}, or an empty status with eof set.
func (m *Module) rpcRead(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req ticketRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", toRuntimeError(fmt.Errorf("%w: %v", errInvalidPayload, err))
	}
	s, _, err := m.lookup(ctx, logger, req.Ticket)
	if err != nil {
		return "", toRuntimeError(err)
	}

	s.mu.Lock()
	status, ok, err := s.handle.Next()
	s.mu.Unlock()
	if err != nil {
		return "", toRuntimeError(err)
	}
	return marshal(ReadResponse{Status: status, EOF: !ok})
}

// rpcClose releases the table.
//
// Payload: {"ticket": "..."}.
func (m *Module) rpcClose(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req ticketRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", toRuntimeError(fmt.Errorf("%w: %v", errInvalidPayload, err))
	}
	_, id, err := m.lookup(ctx, logger, req.Ticket)
	if err != nil {
		return "", toRuntimeError(err)
	}

	s, ok := m.sessions.remove(id)
	if !ok {
		return "", toRuntimeError(errUnknownSession)
	}
	s.mu.Lock()
	err = s.handle.Close()
	s.mu.Unlock()
	if err != nil {
		logger.Error("rpcClose [Session:%s]: %v", id, err)
		return "", toRuntimeError(err)
	}
	logger.Info("rpcClose [User:%s]: session %s closed", s.owner, id)
	return "{}", nil
}

// rpcAsk consults the Magic 8 Ball.
func (m *Module) rpcAsk(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	h := m.oracle.Open()
	defer h.Close()

	answer, err := io.ReadAll(h)
	if err != nil {
		logger.Error("rpcAsk: %v", err)
		return "", toRuntimeError(err)
	}
	return marshal(AskResponse{Answer: string(answer)})
}

// lookup verifies the ticket against the caller and finds its open session.
// A failed or expired ticket triggers a sweep of expired sessions.
func (m *Module) lookup(ctx context.Context, logger runtime.Logger, token string) (*openSession, string, error) {
	ticket, err := m.tickets.Verify(token)
	if err != nil {
		m.reapExpired(logger)
		return nil, "", err
	}
	if userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string); userID != "" && userID != ticket.Owner {
		return nil, "", errNotOwner
	}
	s, ok := m.sessions.get(ticket.SessionID)
	if !ok {
		return nil, "", fmt.Errorf("%w: %s", errUnknownSession, ticket.SessionID)
	}
	if m.now().After(s.expiresAt) {
		m.reapExpired(logger)
		return nil, "", fmt.Errorf("%w: %s expired", errUnknownSession, ticket.SessionID)
	}
	return s, ticket.SessionID, nil
}

func marshal(v interface{}) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", runtime.NewError("Internal error", codeInternal)
	}
	return string(b), nil
}
